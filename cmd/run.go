package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"wordleclub/config"
	"wordleclub/database"
	"wordleclub/events"
	"wordleclub/handlers"
	"wordleclub/repository"
	"wordleclub/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting wordleclub...")

	// Load configuration
	cfg := config.Get()

	loc, err := time.LoadLocation(cfg.RevealTimezone)
	if err != nil {
		return fmt.Errorf("invalid reveal timezone %q: %w", cfg.RevealTimezone, err)
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	policy := service.NewRevealPolicy(loc, cfg.RevealCutoffHour)
	groupService := service.NewGroupService(uowFactory, policy)
	recapService := service.NewRecapService(cfg.RecapServiceURL)
	reactionService := service.NewReactionService(cfg.ReactionServiceURL)
	log.Println("Services initialized successfully")

	// Start the recap sweep
	scheduler := service.NewRecapScheduler(groupService, recapService, policy)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start recap scheduler: %w", err)
	}
	log.Println("Recap scheduler started")

	// Initialize HTTP server
	app := fiber.New(fiber.Config{
		AppName: "wordleclub",
	})

	broadcaster := handlers.NewBroadcaster(eventBus)
	handlers.SetupGroupRoutes(app, handlers.NewGroupHandler(groupService, cfg.BaseURL))
	handlers.SetupBoardRoutes(app, handlers.NewBoardHandler(groupService, reactionService, policy))
	handlers.SetupStatsRoutes(app, handlers.NewStatsHandler(groupService))
	handlers.SetupWatchRoutes(app, handlers.NewWatchHandler(groupService, broadcaster))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(cfg.ListenAddr)
	}()
	log.Printf("Listening on %s in %s mode...", cfg.ListenAddr, cfg.Environment)

	// Wait for shutdown signal or server failure
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down...")

	if err := scheduler.Stop(); err != nil {
		log.Printf("Error stopping recap scheduler: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
