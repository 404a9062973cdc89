package main

import (
	"context"
	"flag"

	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/just-nibble/git-digest/internal/storage"
	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/config"
	"github.com/rs/zerolog/log"
)

// One-shot cleanup for external schedulers (cron and the like). The digest
// service runs the same routine on its own ticker; this binary exists for
// deployments that prefer scheduling outside the process.
func main() {
	days := flag.Int("days", 0, "retention window in days (0 uses RETENTION_DAYS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := storage.InitDB(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	retention := usecases.NewRetentionUsecase(
		repository.NewGormAnalyticsStore(db),
		repository.NewGormRunStore(db),
	)

	daysToKeep := *days
	if daysToKeep <= 0 {
		daysToKeep = cfg.RetentionDays
	}

	deleted, err := retention.Cleanup(context.Background(), daysToKeep)
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup failed")
	}
	log.Info().Int64("analytics_deleted", deleted).Msg("cleanup complete")
}
