package v1

import (
	"go-inquiry-backend/internal/delivery/http/middleware"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC   domain.ContactUsecase
	QuoteUC     domain.QuoteUsecase
	HealthUC    domain.HealthUsecase
	RateLimiter *middleware.RateLimiter // nil disables submit rate limiting
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog("/api/health", "/metrics"))
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.ErrorHandler())

	r.NoRoute(middleware.NotFound())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	submitLimit := func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		submitLimit = deps.RateLimiter.Middleware()
	}
	NewContactHandler(api, deps.ContactUC, submitLimit)
	NewQuoteHandler(api, deps.QuoteUC, submitLimit)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
