package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/config"
	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/application"
	"github.com/tpremraj1312/ledger-admin/internal/container"
	repo "github.com/tpremraj1312/ledger-admin/internal/domain/repository"
	"github.com/tpremraj1312/ledger-admin/internal/infrastructure/cache"
	"github.com/tpremraj1312/ledger-admin/internal/infrastructure/messaging"
	"github.com/tpremraj1312/ledger-admin/internal/infrastructure/search"
	handlers "github.com/tpremraj1312/ledger-admin/internal/interface/http"
	"github.com/tpremraj1312/ledger-admin/internal/interface/middleware"
	"github.com/tpremraj1312/ledger-admin/internal/router/modules"
	"github.com/tpremraj1312/ledger-admin/pkg/helpers"
)

// Deps are the services the HTTP modules are built from.
type Deps struct {
	Config    *config.Config
	Logger    logrus.FieldLogger
	Store     repo.Store
	Auth      *application.AuthService
	Records   *application.RecordsService
	Dashboard *application.DashboardService
	Reports   *application.ReportService
	Search    *application.SearchService
	// RateLimiter backs the login limiter; nil disables it.
	RateLimiter redis.Cmdable
}

// BuildDeps wires the application services from the container singletons.
// Redis, RabbitMQ, Elasticsearch and GCS are each optional.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	store := container.GetStore()
	timeout := cfg.StoreTimeout

	records := application.NewRecordsService(store, timeout, logger)
	dashboard := application.NewDashboardService(store, timeout, aggregation.ParseBasis(cfg.HighSpendingBasis), logger)
	var uploader application.ObjectUploader
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		uploader = &helpers.GCSBucket{Client: gcs, Bucket: cfg.GCSBucket}
	}
	var index application.UserSearch
	if es := container.GetES(); es != nil {
		index = search.NewUserIndex(es, cfg.ESUsersIndex, logger)
		records.Search = index
	}
	if pub := container.GetRabbitPub(); pub != nil {
		records.Events = messaging.NewAuditPublisher(pub)
	}

	d := Deps{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Auth:      application.NewAuthService(store.Admins, container.GetJWT(), logger, timeout),
		Records:   records,
		Dashboard: dashboard,
		Reports:   application.NewReportService(store, uploader, timeout, logger),
		Search:    application.NewSearchService(store.Users, index, timeout, logger),
	}
	if rdb := container.GetRedis(); rdb != nil {
		c := cache.NewRedisCache(rdb, cfg.AppName)
		records.Cache = c
		dashboard.Cache = c
		dashboard.CacheTTL = cfg.DashboardCacheTTL
		d.RateLimiter = rdb
	}
	return d
}

// InitModules registers every admin module on the registry.
func InitModules(r *Registry, d Deps) {
	auth := middleware.Auth(d.Auth)

	loginPerMin := 0
	allow := middleware.AllowFunc(nil)
	if d.Config != nil {
		loginPerMin = d.Config.LoginRatePerMinute
		if d.Config.Env == "development" {
			allow = middleware.AllowLoopback()
		}
	}
	limiter := middleware.RateLimit(d.RateLimiter, loginPerMin, time.Minute, middleware.KeyByIPAndPath(), allow, d.Logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Auth, d.Logger), limiter))
	r.Add(modules.NewRecordsModule(
		handlers.NewUserHandler(d.Records, d.Search),
		handlers.NewRecordHandler(d.Records),
		auth,
	))
	r.Add(modules.NewDashboardModule(
		handlers.NewDashboardHandler(d.Dashboard, d.Records),
		handlers.NewReportHandler(d.Reports),
		auth,
	))
	if d.Config == nil || d.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(auth))
	}
}

// Mount installs the request middleware, the health probe and the admin
// modules on engine.
func Mount(engine *gin.Engine, d Deps) {
	engine.Use(middleware.RequestID(), middleware.RealIP(), middleware.Metrics())
	engine.GET("/healthz", handlers.Healthz(d.Store.Ping))

	reg := NewRegistry(engine)
	InitModules(reg, d)
	reg.RegisterAll()
}
