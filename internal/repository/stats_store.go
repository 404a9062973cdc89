package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"gorm.io/gorm"
)

// StatsStore serves the derived reporting views. Everything here is
// recomputed on read; nothing is cached.
type StatsStore interface {
	RepositoryStats(ctx context.Context) ([]domain.RepositoryStats, error)
	PostPerformance(ctx context.Context, postID uint) (*domain.PostPerformance, error)
	TopContributors(ctx context.Context, repositoryID uint, limit int) ([]domain.ContributorStats, error)
}

// GormStatsStore is a GORM-based implementation of StatsStore
type GormStatsStore struct {
	db *gorm.DB
}

// NewGormStatsStore initializes a new GormStatsStore
func NewGormStatsStore(db *gorm.DB) StatsStore {
	return &GormStatsStore{db: db}
}

// RepositoryStats aggregates commit and post activity per active
// repository. One aggregate query per repository; this is a reporting
// path, freshness beats cleverness.
func (s *GormStatsStore) RepositoryStats(ctx context.Context) ([]domain.RepositoryStats, error) {
	var repos []Repository
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&repos).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve repositories: %w", err)
	}

	stats := make([]domain.RepositoryStats, 0, len(repos))
	for _, repo := range repos {
		entry := domain.RepositoryStats{
			RepositoryID: repo.ID,
			Name:         repo.Name,
			FullName:     repo.FullName,
		}

		var agg struct {
			CommitCount      int64
			TotalAdditions   int64
			TotalDeletions   int64
			ContributorCount int64
		}
		err := s.db.WithContext(ctx).Model(&Commit{}).
			Select("COUNT(*) AS commit_count, COALESCE(SUM(additions), 0) AS total_additions, COALESCE(SUM(deletions), 0) AS total_deletions, COUNT(DISTINCT author_email) AS contributor_count").
			Where("repository_id = ?", repo.ID).
			Scan(&agg).Error
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate commits: %w", err)
		}
		entry.CommitCount = agg.CommitCount
		entry.TotalAdditions = agg.TotalAdditions
		entry.TotalDeletions = agg.TotalDeletions
		entry.ContributorCount = agg.ContributorCount

		if err := s.db.WithContext(ctx).Model(&Post{}).Where("repository_id = ?", repo.ID).Count(&entry.PostCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count posts: %w", err)
		}

		var latestCommit Commit
		if err := s.db.WithContext(ctx).Where("repository_id = ?", repo.ID).
			Order("commit_date DESC").Limit(1).Find(&latestCommit).Error; err != nil {
			return nil, fmt.Errorf("failed to find latest commit: %w", err)
		}
		if latestCommit.ID != 0 {
			t := latestCommit.CommitDate
			entry.LatestCommitAt = &t
		}

		var latestPost Post
		if err := s.db.WithContext(ctx).Where("repository_id = ?", repo.ID).
			Order("created_at DESC").Limit(1).Find(&latestPost).Error; err != nil {
			return nil, fmt.Errorf("failed to find latest post: %w", err)
		}
		if latestPost.ID != 0 {
			t := latestPost.CreatedAt
			entry.LatestPostAt = &t
		}

		stats = append(stats, entry)
	}
	return stats, nil
}

// PostPerformance reports engagement for one post. ViewsPerHour stays nil
// for posts younger than an hour instead of dividing by a near-zero age.
func (s *GormStatsStore) PostPerformance(ctx context.Context, postID uint) (*domain.PostPerformance, error) {
	var post Post
	if err := s.db.WithContext(ctx).Limit(1).Find(&post, postID).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	if post.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}

	var commentCount int64
	err := s.db.WithContext(ctx).Model(&AnalyticsEvent{}).
		Where("post_id = ? AND event_type = ?", postID, "comment").
		Count(&commentCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	perf := &domain.PostPerformance{
		PostID:       post.ID,
		Title:        post.Title,
		Views:        post.Views,
		Likes:        post.Likes,
		Shares:       post.Shares,
		CommentCount: commentCount,
		CreatedAt:    post.CreatedAt,
	}

	if age := time.Since(post.CreatedAt); age >= time.Hour {
		vph := float64(post.Views) / age.Hours()
		perf.ViewsPerHour = &vph
	}

	return perf, nil
}

// TopContributors ranks authors in one repository by commit volume.
func (s *GormStatsStore) TopContributors(ctx context.Context, repositoryID uint, limit int) ([]domain.ContributorStats, error) {
	if limit <= 0 {
		limit = 10
	}
	var contributors []domain.ContributorStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT commits.author_name AS name, commits.author_email AS email,
		       COUNT(commits.id) AS commit_count,
		       COALESCE(SUM(commits.additions), 0) AS additions,
		       COALESCE(SUM(commits.deletions), 0) AS deletions
		FROM commits
		WHERE commits.repository_id = ?
		GROUP BY commits.author_name, commits.author_email
		ORDER BY commit_count DESC
		LIMIT ?
	`, repositoryID, limit).Scan(&contributors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank contributors: %w", err)
	}
	return contributors, nil
}
