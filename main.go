package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datacraft/adapters/localfs"
	"datacraft/adapters/memory"
	"datacraft/adapters/postgres"
	"datacraft/adapters/recommend"
	"datacraft/app"
	"datacraft/internal/api"
	"datacraft/internal/config"
	loader "datacraft/internal/dataset"
	"datacraft/internal/diagnose"
	"datacraft/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	// Report persistence is optional; without DATABASE_URL reports live only
	// in job results.
	var reports ports.ReportRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		reports, err = postgres.NewReportRepository(db)
		if err != nil {
			log.Fatalf("Failed to initialize report repository: %v", err)
		}
		log.Println("[Main] report persistence enabled")
	} else {
		log.Println("[Main] DATABASE_URL not set, running without report persistence")
	}

	storage, err := localfs.NewStorage(cfg.Storage.PublicDir)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	ld := loader.NewLoader()
	aggregator := diagnose.NewAggregator(cfg.Diagnose)
	recommender := recommend.NewRecommender()
	cache := memory.NewSummaryCache()

	datasets := app.NewDatasetService(storage, ld, cache, reports)
	statistics := app.NewStatisticsService(storage, ld, aggregator, recommender, reports)
	tasks := app.NewTaskService(storage, ld, aggregator, reports, datasets, statistics)
	queue := memory.NewTaskQueue(tasks.Handle)

	server := api.NewServer(datasets, queue, reports, cfg.Storage.MaxFileSize)
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
