package usecases

import (
	"context"
	"time"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/repository"
)

// RunReport is one collection run with its derived status.
type RunReport struct {
	Run    repository.CollectionRun `json:"run"`
	Status domain.RunStatus         `json:"status"`
}

type RunUsecase interface {
	BeginRun(ctx context.Context, repositoryID uint) (*repository.CollectionRun, error)
	CompleteRun(ctx context.Context, runID uint, commitsCollected int, success bool, errorMessage string) error
	RunHealth(ctx context.Context, repositoryID uint, limit int) ([]RunReport, error)
}

type runUsecase struct {
	runStore repository.RunStore

	// staleAfter is how long an open run may sit before it counts as
	// abandoned. The collector writes no heartbeat, so staleness is the
	// only signal a crash leaves behind.
	staleAfter time.Duration
}

func NewRunUsecase(runStore repository.RunStore, staleAfter time.Duration) RunUsecase {
	if staleAfter <= 0 {
		staleAfter = 2 * time.Hour
	}
	return &runUsecase{runStore: runStore, staleAfter: staleAfter}
}

// BeginRun opens the run record at collector start; CompleteRun closes it.
// A crash in between leaves the run open, surfaced later by RunHealth.
func (u *runUsecase) BeginRun(ctx context.Context, repositoryID uint) (*repository.CollectionRun, error) {
	run := &repository.CollectionRun{
		RepositoryID: repositoryID,
		StartedAt:    time.Now().UTC(),
	}
	if err := u.runStore.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (u *runUsecase) CompleteRun(ctx context.Context, runID uint, commitsCollected int, success bool, errorMessage string) error {
	return u.runStore.CompleteRun(ctx, runID, commitsCollected, success, errorMessage)
}

// RunHealth lists recent runs with their derived status. This is a health
// signal, not an exception path.
func (u *runUsecase) RunHealth(ctx context.Context, repositoryID uint, limit int) ([]RunReport, error) {
	runs, err := u.runStore.ListRunsByRepository(ctx, repositoryID, limit)
	if err != nil {
		return nil, err
	}

	reports := make([]RunReport, 0, len(runs))
	for _, run := range runs {
		reports = append(reports, RunReport{Run: run, Status: u.status(run)})
	}
	return reports, nil
}

func (u *runUsecase) status(run repository.CollectionRun) domain.RunStatus {
	if run.CompletedAt == nil {
		if time.Since(run.StartedAt) > u.staleAfter {
			return domain.RunStatusAbandoned
		}
		return domain.RunStatusInProgress
	}
	if run.Success {
		return domain.RunStatusSucceeded
	}
	return domain.RunStatusFailed
}
