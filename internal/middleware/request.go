package middleware

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
	FlashKey        = "flash"
)

// RequestID 复用上游传入的 X-Request-ID，没有就生成一个
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// LoadFlash 取出一次性提示消息放到上下文
func LoadFlash() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if flashes := session.Flashes(); len(flashes) > 0 {
			if msg, ok := flashes[0].(string); ok {
				c.Set(FlashKey, msg)
			}
			if err := session.Save(); err != nil {
				log.Printf("[Session] save session: %v", err)
			}
		}
		c.Next()
	}
}

// GetRequestID 没有经过中间件时返回空字符串
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
