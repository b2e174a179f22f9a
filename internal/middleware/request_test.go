package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDForwarded(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

// brokenEncodeStore 第一组密钥的 block key 长度非法：编码总用第一组所以保存必失败，
// 解码会退到第二组，仍能读出旧 cookie
func brokenEncodeStore() sessions.Store {
	return cookie.NewStore([]byte("rotated"), []byte("short"), []byte("secret"), nil)
}

func TestLoadFlashLogsSaveError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	seed := gin.New()
	seed.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	seed.GET("/set", func(c *gin.Context) {
		s := sessions.Default(c)
		s.AddFlash("hello")
		_ = s.Save()
		c.Status(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	seed.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", brokenEncodeStore()))
	r.Use(LoadFlash())
	r.GET("/read", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(FlashKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "hello", rec.Body.String())
	assert.Contains(t, buf.String(), "[Session] save session:")
}

func TestLoadFlashConsumesMessage(t *testing.T) {
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(LoadFlash())
	r.GET("/set", func(c *gin.Context) {
		s := sessions.Default(c)
		s.AddFlash("hello")
		_ = s.Save()
		c.Status(http.StatusOK)
	})
	r.GET("/read", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(FlashKey))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "hello", rec.Body.String())
}
