package repository

import (
	"context"
	"fmt"

	"github.com/just-nibble/git-digest/pkg/errcodes"
	"gorm.io/gorm"
)

// RepositoryStore defines database operations for the repository registry
type RepositoryStore interface {
	CreateRepository(ctx context.Context, repo *Repository) error
	GetRepositoryByID(ctx context.Context, id uint) (*Repository, error)
	GetRepositoryByName(ctx context.Context, name string) (*Repository, error)
	GetAllRepositories(ctx context.Context) ([]Repository, error)
	SetRepositoryActive(ctx context.Context, id uint, active bool) error
	DeleteRepository(ctx context.Context, id uint) error
	CountRepository(ctx context.Context) (int64, error)
}

// GormRepositoryStore is a GORM-based implementation of RepositoryStore
type GormRepositoryStore struct {
	db *gorm.DB
}

// NewGormRepositoryStore initializes a new GormRepositoryStore
func NewGormRepositoryStore(db *gorm.DB) RepositoryStore {
	return &GormRepositoryStore{db: db}
}

func (s *GormRepositoryStore) CreateRepository(ctx context.Context, repo *Repository) error {
	if err := s.db.WithContext(ctx).Create(repo).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("repository %q: %w", repo.Name, errcodes.ErrDuplicateRecord)
		}
		return fmt.Errorf("failed to create repository: %w", err)
	}
	return nil
}

func (s *GormRepositoryStore) GetRepositoryByID(ctx context.Context, id uint) (*Repository, error) {
	var repo Repository
	err := s.db.WithContext(ctx).Limit(1).Find(&repo, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve repository: %w", err)
	}
	if repo.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return &repo, nil
}

func (s *GormRepositoryStore) GetRepositoryByName(ctx context.Context, name string) (*Repository, error) {
	var repo Repository
	err := s.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&repo).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve repository: %w", err)
	}
	if repo.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return &repo, nil
}

// GetAllRepositories retrieves all repositories from the database
func (s *GormRepositoryStore) GetAllRepositories(ctx context.Context) ([]Repository, error) {
	var repositories []Repository
	if err := s.db.WithContext(ctx).Order("name").Find(&repositories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve repositories: %w", err)
	}
	return repositories, nil
}

// SetRepositoryActive flips the monitoring flag. Deactivation keeps the
// commit history; only DeleteRepository cascades.
func (s *GormRepositoryStore) SetRepositoryActive(ctx context.Context, id uint, active bool) error {
	tx := s.db.WithContext(ctx).Model(&Repository{}).Where("id = ?", id).
		Updates(map[string]interface{}{"active": active})
	if tx.Error != nil {
		return fmt.Errorf("failed to update repository: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errcodes.ErrNoRecordFound
	}
	return nil
}

// DeleteRepository removes the repository and, through the cascade tree,
// every commit, file change, post, association, event and run under it.
func (s *GormRepositoryStore) DeleteRepository(ctx context.Context, id uint) error {
	tx := s.db.WithContext(ctx).Delete(&Repository{}, id)
	if tx.Error != nil {
		return fmt.Errorf("failed to delete repository: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errcodes.ErrNoRecordFound
	}
	return nil
}

func (s *GormRepositoryStore) CountRepository(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Repository{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
