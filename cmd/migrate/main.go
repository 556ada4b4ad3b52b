package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dokon/backoffice/internal/domain/catalog"
	"github.com/dokon/backoffice/internal/domain/debtor"
	"github.com/dokon/backoffice/internal/domain/finance"
	"github.com/dokon/backoffice/internal/domain/inventory"
	"github.com/dokon/backoffice/internal/domain/master"
	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/dokon/backoffice/internal/infrastructure/config"
	"github.com/dokon/backoffice/internal/infrastructure/logger"
	"github.com/dokon/backoffice/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running schema migration",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.DBName),
	)

	err = db.DB.AutoMigrate(
		&catalog.Product{},
		&inventory.StockEntry{},
		&debtor.DebtorAccount{},
		&debtor.OwedLine{},
		&debtor.PaymentEntry{},
		&sale.SaleRecord{},
		&finance.Budget{},
		&finance.ExchangeRate{},
		&master.Master{},
		&master.Car{},
		&master.CarSale{},
		&master.CarPayment{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration complete")
}
