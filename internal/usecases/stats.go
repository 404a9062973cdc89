package usecases

import (
	"context"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/repository"
)

type StatsUsecase interface {
	RepositoryStats(ctx context.Context) ([]domain.RepositoryStats, error)
	PostPerformance(ctx context.Context, postID uint) (*domain.PostPerformance, error)
	TopContributors(ctx context.Context, repositoryID uint, limit int) ([]domain.ContributorStats, error)
}

type statsUsecase struct {
	statsStore repository.StatsStore
}

func NewStatsUsecase(statsStore repository.StatsStore) StatsUsecase {
	return &statsUsecase{statsStore: statsStore}
}

func (u *statsUsecase) RepositoryStats(ctx context.Context) ([]domain.RepositoryStats, error) {
	return u.statsStore.RepositoryStats(ctx)
}

func (u *statsUsecase) PostPerformance(ctx context.Context, postID uint) (*domain.PostPerformance, error) {
	return u.statsStore.PostPerformance(ctx, postID)
}

func (u *statsUsecase) TopContributors(ctx context.Context, repositoryID uint, limit int) ([]domain.ContributorStats, error) {
	return u.statsStore.TopContributors(ctx, repositoryID, limit)
}
