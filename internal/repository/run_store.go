package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/just-nibble/git-digest/pkg/errcodes"
	"gorm.io/gorm"
)

// RunStore defines database operations on the collection run ledger
type RunStore interface {
	CreateRun(ctx context.Context, run *CollectionRun) error
	CompleteRun(ctx context.Context, runID uint, commitsCollected int, success bool, errorMessage string) error
	GetRunByID(ctx context.Context, id uint) (*CollectionRun, error)
	ListRunsByRepository(ctx context.Context, repositoryID uint, limit int) ([]CollectionRun, error)
	DeleteRunsBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}

// GormRunStore is a GORM-based implementation of RunStore
type GormRunStore struct {
	db *gorm.DB
}

// NewGormRunStore initializes a new GormRunStore
func NewGormRunStore(db *gorm.DB) RunStore {
	return &GormRunStore{db: db}
}

// CreateRun opens a run record at collector start. CompletedAt stays nil
// until the collector reports back.
func (s *GormRunStore) CreateRun(ctx context.Context, run *CollectionRun) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Repository{}).Where("id = ?", run.RepositoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check repository existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("repository %d: %w", run.RepositoryID, errcodes.ErrReferentialViolation)
	}

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create collection run: %w", err)
	}
	return nil
}

// CompleteRun closes the run. The outcome fields are written exactly once;
// completing an already-closed run is rejected.
func (s *GormRunStore) CompleteRun(ctx context.Context, runID uint, commitsCollected int, success bool, errorMessage string) error {
	now := time.Now().UTC()
	tx := s.db.WithContext(ctx).Model(&CollectionRun{}).
		Where("id = ? AND completed_at IS NULL", runID).
		Updates(map[string]interface{}{
			"completed_at":      now,
			"commits_collected": commitsCollected,
			"success":           success,
			"error_message":     errorMessage,
		})
	if tx.Error != nil {
		return fmt.Errorf("failed to complete collection run: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errcodes.ErrNoRecordFound
	}
	return nil
}

func (s *GormRunStore) GetRunByID(ctx context.Context, id uint) (*CollectionRun, error) {
	var run CollectionRun
	err := s.db.WithContext(ctx).Limit(1).Find(&run, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve collection run: %w", err)
	}
	if run.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return &run, nil
}

func (s *GormRunStore) ListRunsByRepository(ctx context.Context, repositoryID uint, limit int) ([]CollectionRun, error) {
	if limit <= 0 {
		limit = DEFAULTLIMIT
	}
	var runs []CollectionRun
	err := s.db.WithContext(ctx).
		Where("repository_id = ?", repositoryID).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve collection runs: %w", err)
	}
	return runs, nil
}

// DeleteRunsBefore prunes aged runs in bounded batches.
func (s *GormRunStore) DeleteRunsBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	var total int64
	for {
		sub := s.db.Model(&CollectionRun{}).Select("id").
			Where("started_at < ?", cutoff).Limit(batchSize)
		tx := s.db.WithContext(ctx).Where("id IN (?)", sub).Delete(&CollectionRun{})
		if tx.Error != nil {
			return total, fmt.Errorf("failed to delete collection runs: %w", tx.Error)
		}
		total += tx.RowsAffected
		if tx.RowsAffected < int64(batchSize) {
			return total, nil
		}
	}
}
