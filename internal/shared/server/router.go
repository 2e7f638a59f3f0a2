package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formlab-backend/internal/cep"
	"formlab-backend/internal/forms"
	"formlab-backend/internal/shared/config"
	"formlab-backend/internal/shared/metrics"
	"formlab-backend/internal/shared/server/middleware"
	"formlab-backend/internal/shared/server/respond"
	"formlab-backend/internal/uploads"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	FormsHandler   *forms.Handler
	CEPHandler     *cep.Handler
	UploadsHandler *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.MockAuth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 2, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/api/v1/complex-form/upload" {
					return "UPLOAD"
				}
				return ""
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.FormsHandler.RegisterRoutes(api)
	deps.CEPHandler.RegisterRoutes(api)
	deps.UploadsHandler.RegisterRoutes(api)

	if deps.Config.Env == "dev" {
		dev := api.Group("/dev")
		deps.FormsHandler.RegisterDevRoutes(dev)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
