package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"formlab-backend/internal/cep"
	"formlab-backend/internal/forms"
	"formlab-backend/internal/shared/config"
	"formlab-backend/internal/shared/server"
	"formlab-backend/internal/shared/storage/object"
	localstore "formlab-backend/internal/shared/storage/object/local"
	"formlab-backend/internal/uploads"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	Redis  *redis.Client

	FormsRepo    forms.Repo
	FormsService *forms.Service
	CEPService   *cep.Service
	UploadsStore object.ObjectStore

	FormsHandler   *forms.Handler
	CEPHandler     *cep.Handler
	UploadsHandler *uploads.Handler

	janitorCancel context.CancelFunc
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	repo, redisClient, err := buildFormsRepo(cfg)
	if err != nil {
		return nil, err
	}
	app.Redis = redisClient
	app.FormsRepo = repo

	if cfg.LocalStoreDir != "" {
		app.UploadsStore = localstore.New(cfg.LocalStoreDir)
	}

	app.FormsService = forms.NewService(app.FormsRepo)
	app.CEPService = cep.NewService()

	app.FormsHandler = forms.NewHandler(app.FormsService)
	app.CEPHandler = cep.NewHandler(app.CEPService)
	app.UploadsHandler = uploads.NewHandler(uploads.NewService(app.UploadsStore))

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		FormsHandler:   app.FormsHandler,
		CEPHandler:     app.CEPHandler,
		UploadsHandler: app.UploadsHandler,
	})

	return app, nil
}

// StartJanitor launches the periodic draft cleanup until Close is called.
func (a *App) StartJanitor() {
	if a.janitorCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.janitorCancel = cancel

	janitor := &forms.Janitor{Svc: a.FormsService, Interval: a.Config.CleanupInterval}
	go janitor.Run(ctx)
}

// Close cancels background work and releases connections.
func (a *App) Close() error {
	if a.janitorCancel != nil {
		a.janitorCancel()
		a.janitorCancel = nil
	}
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}

func buildFormsRepo(cfg config.Config) (forms.Repo, *redis.Client, error) {
	if cfg.RedisAddr == "" {
		return forms.NewMemoryRepo(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis connect failed; using in-memory store: %v", err)
			return forms.NewMemoryRepo(), nil, nil
		}
		return nil, nil, fmt.Errorf("redis connect: %w", err)
	}

	return forms.NewRedisRepo(client), client, nil
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local":
		return true
	default:
		return false
	}
}
