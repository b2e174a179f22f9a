package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hnreader/internal/middleware"
	"hnreader/internal/presenters"
	"hnreader/internal/services"
)

// Loader 页面数据来源，由 *services.Loader 实现
type Loader interface {
	TopStories(ctx context.Context, limit int) ([]presenters.StoryViewModel, error)
	CategoryStories(ctx context.Context, category string, limit int) ([]presenters.StoryViewModel, error)
	StoryDetails(ctx context.Context, id int) (*presenters.StoryViewModel, error)
	CommentsForStory(ctx context.Context, storyID int) ([]presenters.CommentViewModel, error)
	Thread(ctx context.Context, commentID int) (*services.ThreadView, error)
	User(ctx context.Context, id string) (*presenters.UserViewModel, error)
	Mutate(key string)
}

// Render helper to inject common variables like flash messages
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if flash := c.GetString(middleware.FlashKey); flash != "" {
		obj["Flash"] = flash
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Title": "Error"})
}

// renderLoadError 不存在返回 404，其它按上游失败处理
func renderLoadError(c *gin.Context, op string, err error) {
	code := http.StatusBadGateway
	if services.IsNotFound(err) {
		code = http.StatusNotFound
	}
	log.Printf("[Handler] %s request=%s: %v", op, middleware.GetRequestID(c), err)
	RenderError(c, code, err.Error())
}

// wantsRefresh ?refresh=1 时先让缓存失效
func wantsRefresh(c *gin.Context) bool {
	return c.Query("refresh") == "1"
}
