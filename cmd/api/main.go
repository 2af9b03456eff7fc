package main

import (
	"context"
	"log"

	"sixsigma/adapters/postgres"
	"sixsigma/adapters/stats/engine"
	"sixsigma/app"
	"sixsigma/internal"
	"sixsigma/internal/config"
	"sixsigma/internal/migration"
	"sixsigma/ports"
	"sixsigma/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Read-only API entrypoint. Serves stored snapshots and conversion
// tables without the compute endpoints; run the root binary for those.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var repo ports.AnalysisRepository
	if appConfig.Database.URL != "" {
		db, err := sqlx.Connect("postgres", appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := migration.NewRunner().Run(context.Background(), db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		repo = postgres.NewAnalysisRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, snapshot endpoints will be empty")
	}

	eng := engine.NewQualityEngine()
	service := app.NewAnalysisService(eng, repo, appConfig.Analysis.MaxConcurrency, logger)

	apiApp := ui.NewApp(eng, service, logger)
	if err := apiApp.Start(ui.AppConfig{Port: appConfig.Server.Port}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
