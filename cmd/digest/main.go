package main

import (
	"context"
	"net/http"

	"github.com/just-nibble/git-digest/internal/http/handlers"
	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/just-nibble/git-digest/internal/routes"
	"github.com/just-nibble/git-digest/internal/seeder"
	"github.com/just-nibble/git-digest/internal/storage"
	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize the database
	db, err := storage.InitDB(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	// Create the stores
	repoStore := repository.NewGormRepositoryStore(db)
	commitStore := repository.NewGormCommitStore(db)
	postStore := repository.NewGormPostStore(db)
	analyticsStore := repository.NewGormAnalyticsStore(db)
	runStore := repository.NewGormRunStore(db)
	statsStore := repository.NewGormStatsStore(db)

	// Create the usecases
	repositories := usecases.NewRepositoryUsecase(repoStore)
	commits := usecases.NewCommitUsecase(commitStore, repoStore)
	posts := usecases.NewPostUsecase(postStore)
	analytics := usecases.NewAnalyticsUsecase(analyticsStore)
	runs := usecases.NewRunUsecase(runStore, cfg.RunStaleAfter)
	retention := usecases.NewRetentionUsecase(analyticsStore, runStore)
	stats := usecases.NewStatsUsecase(statsStore)

	// Set up HTTP routes
	router := routes.NewRouter(
		handlers.NewRepositoryHandler(repositories, stats),
		handlers.NewCommitHandler(commits),
		handlers.NewPostHandler(posts, stats),
		handlers.NewAnalyticsHandler(analytics),
		handlers.NewRunHandler(runs),
	)

	ctx := context.Background()

	// Seed the registry if necessary
	if err := seeder.SeedRepositories(ctx, repositories, cfg.Repositories); err != nil {
		log.Fatal().Err(err).Msg("failed to seed repositories")
	}

	// Start the background retention loop
	go retention.Start(ctx, cfg.RetentionInterval, cfg.RetentionDays)

	// Start the HTTP server
	log.Info().Str("port", cfg.ServerPort).Msg("server is running")
	if err := http.ListenAndServe(":"+cfg.ServerPort, router); err != nil {
		log.Fatal().Err(err).Msg("could not start server")
	}
}
