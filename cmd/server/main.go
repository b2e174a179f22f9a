package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hnreader/internal/config"
	"hnreader/internal/controllers"
	"hnreader/internal/hnapi"
	"hnreader/internal/metrics"
	"hnreader/internal/presenters"
	"hnreader/internal/repository"
	"hnreader/internal/router"
	"hnreader/internal/services"
	"hnreader/internal/usecase"
	"hnreader/internal/utils"
)

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	app, err := buildApp(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	app.revalidator.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("HN Reader server starting on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	app.revalidator.Wait()
}

type application struct {
	engine      *gin.Engine
	revalidator *services.Revalidator
	metrics     *metrics.Metrics
}

// buildApp 按 client -> repository -> usecase -> controller -> presenter -> loader -> router 组装
func buildApp(cfg config.Config) (*application, error) {
	m := metrics.New()

	client := hnapi.New(cfg.HN.BaseURL,
		hnapi.WithHTTPClient(&http.Client{Timeout: cfg.HN.Timeout}),
		hnapi.WithFanOut(cfg.HN.FanOut),
		hnapi.WithObserver(m),
	)

	storyRepo := repository.NewHNStoryRepository(client)
	commentRepo := repository.NewHNCommentRepository(client)
	userRepo := repository.NewHNUserRepository(client)

	storyController := controllers.NewStoryControllerFromRepository(storyRepo)
	commentController := controllers.NewCommentController(
		usecase.NewFetchComments(commentRepo),
		commentRepo,
		storyController,
	)
	userController := controllers.NewUserController(userRepo)

	revalidator := services.NewRevalidator(256, 2)
	cache, err := utils.NewSWRCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.MaxStale,
		utils.WithScheduler(revalidator),
		utils.WithCacheObserver(m),
	)
	if err != nil {
		return nil, err
	}

	loader := services.NewLoader(
		storyController,
		commentController,
		userController,
		presenters.NewStoryPresenter(),
		presenters.NewCommentPresenter(),
		presenters.NewUserPresenter(),
		cache,
		services.LoaderConfig{
			ListRefreshInterval: cfg.Cache.TopRefreshInterval,
			MaxStale:            cfg.Cache.MaxStale,
			ThreadDepth:         cfg.ThreadDepth,
			FanOut:              cfg.HN.FanOut,
		},
	)

	engine, err := router.New(router.Deps{
		Loader:        loader,
		Stories:       storyController,
		Comments:      commentController,
		Metrics:       m.Handler(),
		SessionSecret: cfg.SessionSecret,
		StoryLimit:    cfg.StoryLimit,
	})
	if err != nil {
		return nil, err
	}

	return &application{engine: engine, revalidator: revalidator, metrics: m}, nil
}
