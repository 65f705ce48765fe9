package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"social-care-go/internal/cache/redis"
	"social-care-go/internal/config"
	"social-care-go/internal/db"
	attendancedomain "social-care-go/internal/domain/attendance"
	benefitdomain "social-care-go/internal/domain/benefit"
	familydomain "social-care-go/internal/domain/family"
	settingsdomain "social-care-go/internal/domain/settings"
	"social-care-go/internal/metrics"
	"social-care-go/internal/repository/inmemory"
	attendancerepo "social-care-go/internal/repository/postgres/attendance"
	benefitrepo "social-care-go/internal/repository/postgres/benefit"
	familyrepo "social-care-go/internal/repository/postgres/family"
	personrepo "social-care-go/internal/repository/postgres/person"
	settingsrepo "social-care-go/internal/repository/postgres/settings"
	"social-care-go/internal/transport/httpserver"
	"social-care-go/internal/transport/httpserver/handler"
	"social-care-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return nil, err
	}

	var settingsCache settingsdomain.Cache
	if redisClient != nil {
		log.Info("app: settings cache backed by redis", "addr", cfg.Redis.Addr)
		settingsCache = redis.NewSettingsCache(redisClient, log)
	} else {
		log.Info("app: settings cache in memory")
		settingsCache = inmemory.NewSettingsCache()
	}

	directory := personrepo.NewPostgres(dbConn)
	families := familydomain.NewService(familyrepo.NewPostgres(dbConn), directory)
	settings := settingsdomain.NewService(settingsrepo.NewPostgres(dbConn), settingsCache, cfg.SettingsCache.TTL)
	attendances := attendancedomain.NewService(attendancerepo.NewPostgres(dbConn), families, directory, settings)
	benefits := benefitdomain.NewService(benefitrepo.NewPostgres(dbConn), directory, settings)

	var collector *metrics.Collector
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector(prometheus.NewRegistry())
		recorder = collector
	}

	handlers := handler.New(families, attendances, benefits, settings, directory, recorder, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, collector)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisClient,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
