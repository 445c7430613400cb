package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/config"
	"github.com/pkaveh/loyalty-gateway/internal/events"
	"github.com/pkaveh/loyalty-gateway/internal/handlers"
	"github.com/pkaveh/loyalty-gateway/internal/repository"
	"github.com/pkaveh/loyalty-gateway/internal/services"
	xhttp "github.com/pkaveh/loyalty-gateway/pkg/http"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
	"github.com/pkaveh/loyalty-gateway/pkg/prom"
	"github.com/pkaveh/loyalty-gateway/pkg/qr"
	"github.com/pkaveh/loyalty-gateway/pkg/redis"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	db, err := pg.CreateReadWrite(readConf, writeConf, config.Get().AppDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	stream, err := events.NewStream(redisAdap, events.StreamConfig{
		Name:              config.Get().StreamName,
		ConsumerGroup:     config.Get().StreamConsumerGroup,
		ConsumerName:      config.Get().StreamConsumerName,
		VisibilityTimeout: config.Get().StreamVisibilityTimeout,
		PollInterval:      config.Get().StreamPollInterval,
		BatchSize:         config.Get().StreamBatchSize,
		MaxLen:            config.Get().StreamMaxLen,
	})
	if err != nil {
		logger.Error("failed creating accrual stream", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		if err := prom.Create(config.Get().AppName, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed to register metrics", "error", err)
			return
		}
		go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	customerRepo := repository.NewCustomerRepository(db)
	itemRepo := repository.NewItemRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	brandingRepo := repository.NewBrandingRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// services
	accrualService := services.NewAccrualService(settingsRepo, customerRepo, itemRepo, ledgerRepo, transactionRepo, stream)
	customerService := services.NewCustomerService(customerRepo, ledgerRepo, qr.NewGenerator())
	catalogService := services.NewCatalogService(itemRepo)
	adminService := services.NewAdminService(settingsRepo, brandingRepo)
	analyticsService := services.NewAnalyticsService(customerRepo, ledgerRepo, transactionRepo)
	healthService := services.NewHealthService()

	// v1 handlers
	accrualHandler := handlers.NewAccrualHandler(accrualService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(adminService, catalogService, customerService, analyticsService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterAccrualRoutes(g, accrualHandler)
	handlers.RegisterCustomerRoutes(g, customerHandler)
	handlers.RegisterCatalogRoutes(g, catalogHandler)
	handlers.RegisterAdminRoutes(g, adminHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
