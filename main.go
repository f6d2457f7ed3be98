package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rehabengine/adapters/llm"
	"rehabengine/adapters/postgres"
	"rehabengine/api"
	"rehabengine/app"
	"rehabengine/domain/dataset"
	"rehabengine/internal"
	"rehabengine/internal/config"
	"rehabengine/internal/nlp"
	"rehabengine/internal/scoring"
	"rehabengine/ports"
	"rehabengine/report"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	logger := internal.NewDefaultLogger()

	// Optional persistence. Without DATABASE_URL the service is in-memory only.
	var profileRepo ports.ProfileRepository
	var assessmentRepo ports.AssessmentRepository
	if appConfig.Database.Enabled() {
		db, err := postgres.Connect(appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.Bootstrap(context.Background(), db); err != nil {
			log.Fatalf("Failed to bootstrap database schema: %v", err)
		}
		profileRepo = postgres.NewProfileRepository(db)
		assessmentRepo = postgres.NewAssessmentRepository(db)
		logger.Info("PostgreSQL persistence enabled")
	} else {
		logger.Info("No DATABASE_URL configured, running in-memory only")
	}

	// Optional LLM justifications. Without a key the services use templates.
	var justifier ports.JustificationClient
	if appConfig.AI.Enabled() {
		justifier = llm.NewClient(appConfig.AI)
		logger.Info("LLM justifications enabled (model %s)", appConfig.AI.OpenAIModel)
	}

	store := dataset.NewStore()
	registry := scoring.NewModelRegistry(appConfig.Artifacts.ModelsDir, logger)
	scorer := scoring.NewService(registry, logger)

	generation := app.NewGenerationService(store, appConfig.Generator, profileRepo, assessmentRepo, logger)
	assessment := app.NewAssessmentService(store, scorer, justifier, logger)
	recommendation := app.NewRecommendationService(store, justifier, logger)

	if appConfig.Report.Enabled {
		reportServer := report.NewServer(store, logger)
		go func() {
			if err := reportServer.Start(":" + appConfig.Report.Port); err != nil {
				logger.Error("Report server failed: %v", err)
			}
		}()
	}

	server := api.NewServer(generation, assessment, recommendation, nlp.NewAnalyzer(), logger)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
