package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "paynlp/docs" // registers swagger docs
	"paynlp/internal/auth"
	"paynlp/internal/config"
	"paynlp/internal/handler"
	"paynlp/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *zap.Logger,
	tokens auth.TokenValidator,
	parseH *handler.ParseHandler,
	parseLogH *handler.ParseLogHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public parse route
	parse := v1.Group("/parse")
	if cfg.RateLimit.Enabled {
		parse.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))
	}
	parse.POST("", parseH.Parse)

	// Protected routes - require valid JWT
	logs := v1.Group("/parse-logs")
	logs.Use(middleware.AuthMiddleware(tokens))
	logs.GET("", parseLogH.List)
	logs.GET("/export", parseLogH.Export)

	return r
}
