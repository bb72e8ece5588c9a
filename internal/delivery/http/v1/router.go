package v1

import (
	"time"

	"beauty-solutions-backend/config"
	"beauty-solutions-backend/internal/delivery/http/middleware"
	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/internal/usecase"
	"beauty-solutions-backend/pkg/metrics"
	"beauty-solutions-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Metrics   *metrics.Metrics
	Redis     *goredis.Client          // optional, rate limiting falls back to memory
	Audit     *security.SecurityLogger // optional
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins, deps.Config.IsProduction())) // CORS must be first!
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := r.Group("/api")

	// Swagger UI needs scripts, so it sits outside the strict headers
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := api.Group("")
	public.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	{
		NewHealthHandler(public, deps.HealthUC)

		rl := middleware.ContactRateLimitConfig(deps.Config.ContactRateLimit, contactWindow(deps.Config))
		rl.Redis = deps.Redis
		rl.Audit = deps.Audit
		NewContactHandler(public, deps.ContactUC,
			middleware.BodyLimit(deps.Config.MaxBodyBytes),
			middleware.RateLimitMiddleware(rl),
		)
	}

	return r
}

func contactWindow(cfg *config.Config) time.Duration {
	if cfg.ContactRateWindow <= 0 {
		return time.Minute
	}
	return cfg.ContactRateWindow
}
