package main

import (
	"context"
	"net/http"
	"os"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/api"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/config"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/database"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/engine"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/handler"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/jobs"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/logger"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		logger.Error("Schema migration failed: %v", err)
		os.Exit(1)
	}

	// Wire stores and engine
	challenges := store.NewChallengeStore(db)
	participants := store.NewParticipantStore(db)
	events := store.NewEventStore(db)
	badges := store.NewBadgeStore(db)
	social := store.NewSocialStore(db)

	eng := engine.New(challenges, participants, events, social, social, social, clock.SystemClock{})

	// Badge worker: consomme les complétions hors du chemin de requête
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.RunBadgeWorker(ctx, badges)

	// Nightly reconciliation sweep
	sched, err := jobs.StartReconcileJob(eng, cfg.ReconcileAt)
	if err != nil {
		logger.Error("Could not start reconcile job: %v", err)
		os.Exit(1)
	}
	defer func() { _ = sched.Shutdown() }()

	// Initialize routes
	handler.Init(eng, challenges)
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
