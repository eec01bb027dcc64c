// Command ingest loads bulk customer and loan data files into the record
// store. Records are upserted under their file-supplied IDs, so the job can
// be re-run safely.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/creditdesk/credit-engine/internal/application/usecase"
	"github.com/creditdesk/credit-engine/internal/infrastructure/config"
	"github.com/creditdesk/credit-engine/internal/infrastructure/ingest"
	pgstore "github.com/creditdesk/credit-engine/internal/infrastructure/persistence/postgres"
	"github.com/creditdesk/credit-engine/internal/observability"
)

func main() {
	customersPath := flag.String("customers", "", "path to the customer data CSV")
	loansPath := flag.String("loans", "", "path to the loan data CSV")
	flag.Parse()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if *customersPath == "" && *loansPath == "" {
		logger.Error("nothing to do: pass -customers and/or -loans")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DB.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pgstore.RunMigrations(cfg.DB.DSN(), "file://migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	uc := usecase.NewIngestUseCase(pgstore.NewCustomerRepo(pool), pgstore.NewLoanRepo(pool), logger)

	// Customers first: loans reference them.
	if *customersPath != "" {
		customers, err := ingest.ReadCustomers(*customersPath)
		if err != nil {
			logger.Error("failed to read customer file", "path", *customersPath, "error", err)
			os.Exit(1)
		}
		n, err := uc.UpsertCustomers(ctx, customers)
		if err != nil {
			logger.Error("customer ingest aborted", "ingested", n, "error", err)
			os.Exit(1)
		}
	}

	if *loansPath != "" {
		loans, err := ingest.ReadLoans(*loansPath)
		if err != nil {
			logger.Error("failed to read loan file", "path", *loansPath, "error", err)
			os.Exit(1)
		}
		n, err := uc.UpsertLoans(ctx, loans)
		if err != nil {
			logger.Error("loan ingest aborted", "ingested", n, "error", err)
			os.Exit(1)
		}
	}

	// Explicit-ID inserts do not advance the identity sequences.
	if err := pgstore.SyncIDSequences(ctx, pool); err != nil {
		logger.Error("failed to sync id sequences", "error", err)
		os.Exit(1)
	}

	logger.Info("ingest complete")
}
