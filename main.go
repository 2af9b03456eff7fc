package main

import (
	"context"
	"log"

	"sixsigma/adapters/excel"
	"sixsigma/adapters/postgres"
	"sixsigma/adapters/stats/engine"
	"sixsigma/app"
	"sixsigma/internal"
	"sixsigma/internal/config"
	"sixsigma/internal/migration"
	"sixsigma/ports"
	"sixsigma/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and runs schema migrations.
// A missing DATABASE_URL is not an error; the service runs without
// snapshot persistence.
func initDatabase(appConfig *config.Config, logger *internal.Logger) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		logger.Info("DATABASE_URL not set, running without snapshot persistence")
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	runner := migration.NewRunner()
	if err := runner.Run(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("database migrated to schema version %s", runner.Version())

	return db, nil
}

func main() {
	// .env is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	logger := internal.NewDefaultLogger()

	db, err := initDatabase(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	var repo ports.AnalysisRepository
	if db != nil {
		repo = postgres.NewAnalysisRepository(db)
	}

	eng := engine.NewQualityEngine()
	service := app.NewAnalysisService(eng, repo, appConfig.Analysis.MaxConcurrency, logger)

	// Optionally preload a data file so /api/analyze callers can see
	// what column roles were detected at startup.
	if appConfig.Data.File != "" {
		var reader ports.DatasetReader = excel.NewDataReader(appConfig.Data.File)
		table, err := reader.Read()
		if err != nil {
			log.Fatalf("Failed to load data file %s: %v", appConfig.Data.File, err)
		}
		logger.Info("loaded %s: %d rows, %d columns (%d numeric)",
			appConfig.Data.File, table.Rows, len(table.Columns), len(table.NumericColumns()))
		for _, guess := range service.ClassifyColumns(table) {
			logger.Debug("column %s: role=%s confidence=%.2f", guess.Name, guess.Role, guess.Confidence)
		}
	}

	server := ui.NewServer(eng, service, logger)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
