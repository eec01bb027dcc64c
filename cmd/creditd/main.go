package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creditdesk/credit-engine/internal/application/usecase"
	"github.com/creditdesk/credit-engine/internal/domain/port"
	"github.com/creditdesk/credit-engine/internal/domain/service"
	"github.com/creditdesk/credit-engine/internal/infrastructure/cache"
	"github.com/creditdesk/credit-engine/internal/infrastructure/config"
	"github.com/creditdesk/credit-engine/internal/infrastructure/kafka"
	pgstore "github.com/creditdesk/credit-engine/internal/infrastructure/persistence/postgres"
	"github.com/creditdesk/credit-engine/internal/observability"
	"github.com/creditdesk/credit-engine/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting credit-engine", "http_port", cfg.HTTPPort)

	// Database.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgstore.NewPool(dbCtx, cfg.DB.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pgstore.RunMigrations(cfg.DB.DSN(), "file://migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	// Infrastructure adapters.
	customerRepo := pgstore.NewCustomerRepo(pool)
	loanRepo := pgstore.NewLoanRepo(pool)
	uow := pgstore.NewUnitOfWork(pool)

	var publisher port.EventPublisher = kafka.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Brokers[0] != "" {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
	}

	var loanCache usecase.LoanDetailCache
	if cfg.RedisAddr != "" {
		c := cache.NewLoanCache(cfg.RedisAddr, logger)
		defer c.Close()
		loanCache = c
	}

	metrics := observability.NewMetrics()
	engine := service.NewEngine()

	// Use cases.
	registerUC := usecase.NewRegisterCustomerUseCase(customerRepo, publisher, logger)
	eligibilityUC := usecase.NewCheckEligibilityUseCase(customerRepo, loanRepo, engine)
	createLoanUC := usecase.NewCreateLoanUseCase(uow, publisher, engine, logger)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, customerRepo, loanCache)
	listLoansUC := usecase.NewListCustomerLoansUseCase(customerRepo, loanRepo)

	// HTTP server.
	handler := rest.NewHandler(registerUC, eligibilityUC, createLoanUC, getLoanUC, listLoansUC, logger, metrics)
	health := rest.NewHealthHandler(cfg.ServiceName, pool.Ping)
	router := rest.NewRouter(handler, health, metrics)

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-engine stopped")
}
