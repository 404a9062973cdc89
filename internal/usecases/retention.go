package usecases

import (
	"context"
	"time"

	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultRetentionDays is the cleanup window when the caller passes
	// zero or a negative value.
	DefaultRetentionDays = 30

	// analyticsExtraDays shortens the analytics window below the general
	// cutoff; events are high volume and low long-term value.
	analyticsExtraDays = 7

	retentionBatchSize = 500
)

type RetentionUsecase interface {
	Cleanup(ctx context.Context, daysToKeep int) (int64, error)
	Start(ctx context.Context, interval time.Duration, daysToKeep int)
}

type retentionUsecase struct {
	analyticsStore repository.AnalyticsStore
	runStore       repository.RunStore

	now func() time.Time
}

func NewRetentionUsecase(analyticsStore repository.AnalyticsStore, runStore repository.RunStore) RetentionUsecase {
	return &retentionUsecase{
		analyticsStore: analyticsStore,
		runStore:       runStore,
		now:            time.Now,
	}
}

// Cleanup prunes aged analytics events and collection runs. Commits are
// never touched here; history is the durable asset, only telemetry
// expires. Returns the number of analytics rows deleted. Idempotent for a
// fixed clock: a second call at the same instant deletes nothing.
func (u *retentionUsecase) Cleanup(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep <= 0 {
		daysToKeep = DefaultRetentionDays
	}

	now := u.now().UTC()
	analyticsCutoff := now.AddDate(0, 0, -(daysToKeep + analyticsExtraDays))
	runsCutoff := now.AddDate(0, 0, -daysToKeep)

	eventsDeleted, err := u.analyticsStore.DeleteEventsBefore(ctx, analyticsCutoff, retentionBatchSize)
	if err != nil {
		return eventsDeleted, err
	}

	runsDeleted, err := u.runStore.DeleteRunsBefore(ctx, runsCutoff, retentionBatchSize)
	if err != nil {
		return eventsDeleted, err
	}

	log.Info().
		Int64("analytics_deleted", eventsDeleted).
		Int64("runs_deleted", runsDeleted).
		Int("days_to_keep", daysToKeep).
		Msg("retention cleanup finished")

	return eventsDeleted, nil
}

// Start runs Cleanup on a ticker until the context is cancelled. Batch
// work only; nothing in a request path waits on this.
func (u *retentionUsecase) Start(ctx context.Context, interval time.Duration, daysToKeep int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := u.Cleanup(ctx, daysToKeep); err != nil {
				log.Error().Err(err).Msg("retention cleanup failed")
			}
		}
	}
}
