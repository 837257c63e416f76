package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/mealdeck/backend/config"
	"github.com/pageza/mealdeck/backend/internal/api"
	"github.com/pageza/mealdeck/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	handlers *api.Handlers,
	validator middleware.TokenValidator,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.NoRoute(middleware.NotFound)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api.RegisterRoutes(router, handlers, validator, limiter)
	return router
}
