package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/recruitbase/assessment-api/internal/api/http"
	"github.com/recruitbase/assessment-api/internal/api/http/middleware"
	assessmenthttp "github.com/recruitbase/assessment-api/internal/assessments/http"
	"github.com/recruitbase/assessment-api/internal/assessments/repository"
	"github.com/recruitbase/assessment-api/internal/assessments/service"
	"github.com/recruitbase/assessment-api/internal/assessments/validator"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	APIKey         string
	RateLimitRPS   int
	RateLimitBurst int
	DB             *sql.DB
	Redis          *redis.Client
	Service        *service.AssessmentService
	Logger         *zap.Logger
}

// BuildService wires the store, cache and service. The router and the cron
// scheduler share one instance.
func BuildService(db *sql.DB, rdb *redis.Client, log *zap.Logger) *service.AssessmentService {
	repo := repository.NewAssessmentRepository(db)
	var cache *repository.Cache
	if rdb != nil {
		cache = repository.NewCache(rdb)
	}
	return service.NewAssessmentService(repo, cache, log)
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.RecoveryMiddleware(dep.Logger))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.APIKeyMiddleware(dep.APIKey))
	api.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))

	handler := assessmenthttp.New(dep.Service, validator.New(), dep.Logger)
	handler.Register(api.Group("/assessments"))

	return r
}
