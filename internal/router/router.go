package router

import (
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"hnreader/internal/handlers"
	"hnreader/internal/middleware"
	"hnreader/internal/repository"
	"hnreader/internal/services"
	"hnreader/web"
)

const sessionName = "hnreader_session"

// Deps 路由需要的全部依赖，由 main 组装
type Deps struct {
	Loader        handlers.Loader
	Stories       services.StoryAPI
	Comments      services.CommentAPI
	Metrics       http.Handler
	SessionSecret string
	StoryLimit    int
}

// New 创建 gin 引擎并注册所有路由
func New(deps Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	store := cookie.NewStore([]byte(deps.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.LoadFlash())

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, err
	}
	renderer, err := LoadTemplates(templates)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	RegisterRoutes(r, deps)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	storyHandler := handlers.NewStoryHandler(deps.Loader, deps.StoryLimit)
	userHandler := handlers.NewUserHandler(deps.Loader)
	submitHandler := handlers.NewSubmitHandler()
	apiHandler := handlers.NewAPIHandler(deps.Stories, deps.Comments, deps.StoryLimit)

	// 页面路由
	r.GET("/", storyHandler.ListTop)                  // 热门
	r.GET("/item/:id", storyHandler.Detail)           // 详情 + 评论
	r.GET("/comment/:id", storyHandler.CommentThread) // 单条评论的回复
	r.GET("/user/:id", userHandler.Profile)           // 用户主页
	r.GET("/submit", submitHandler.ShowSubmit)        // 演示提交页
	r.POST("/submit", submitHandler.Submit)           // 演示提交

	// new / ask / show / jobs / best
	for _, category := range repository.Categories() {
		r.GET("/"+category, storyHandler.ListCategory(category))
	}

	// JSON 接口
	api := r.Group("/api")
	{
		api.GET("/stories", apiHandler.Stories)
		api.GET("/item/:id", apiHandler.Item)
		api.GET("/item/:id/comments", apiHandler.Comments)
	}

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}
	r.GET("/healthz", handlers.Health)

	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "Page not found")
	})
}
