package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
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
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog.LogMode(gormlogger.Warn))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running schema migration",
		zap.String("database", cfg.Database.DBName),
		zap.String("host", cfg.Database.Host),
	)

	if err := db.DB.AutoMigrate(
		&identity.User{},
		&store.StoreProfile{},
		&catalog.Category{},
		&catalog.Product{},
	); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Schema migration completed")
}
