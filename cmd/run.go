package cmd

import (
	"context"
	"fmt"
	"time"

	"debatearena/config"
	"debatearena/database"
	"debatearena/events"
	"debatearena/repository"
	"debatearena/server"
	"debatearena/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting arena...")

	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	platformService := service.NewPlatformService(uowFactory)
	userService := service.NewUserService(uowFactory)
	topicService := service.NewTopicService(uowFactory)
	debateService := service.NewDebateService(uowFactory)
	bettingService := service.NewBettingService(uowFactory)

	handler := server.NewHandler(platformService, userService, topicService, debateService, bettingService)
	srv := server.New(handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	log.WithField("environment", cfg.Environment).Info("Arena is running")

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	log.Info("Shutdown completed")
	return nil
}
