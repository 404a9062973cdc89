package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CommitFilter narrows the commit ledger query surface. Zero values mean
// "no constraint" except RepositoryID, which is required.
type CommitFilter struct {
	RepositoryID uint
	Since        *time.Time
	Until        *time.Time
	Kind         domain.CommitKind
	SecurityOnly bool
	BreakingOnly bool
}

// CommitStore defines database operations on the commit ledger
type CommitStore interface {
	CreateCommit(ctx context.Context, commit *Commit) error
	GetCommitByHash(ctx context.Context, repositoryID uint, sha string) (*Commit, error)
	GetCommitsByIDs(ctx context.Context, ids []uint) ([]Commit, error)
	AttachFileChanges(ctx context.Context, commitID uint, changes []FileChange) error
	ReclassifyCommit(ctx context.Context, commitID uint, kind domain.CommitKind) error
	ListCommits(ctx context.Context, filter CommitFilter, query dtos.APIPagingDto) ([]Commit, dtos.PagingInfo, error)
}

// GormCommitStore is a GORM-based implementation of CommitStore
type GormCommitStore struct {
	db *gorm.DB
}

// NewGormCommitStore initializes a new GormCommitStore
func NewGormCommitStore(db *gorm.DB) CommitStore {
	return &GormCommitStore{db: db}
}

// CreateCommit inserts a new commit into the ledger. A losing concurrent
// writer of the same (repository, sha) pair gets ErrDuplicateCommit; the
// unique index is the arbiter, not a read-before-write.
func (s *GormCommitStore) CreateCommit(ctx context.Context, commit *Commit) error {
	if ctx.Err() == context.Canceled {
		return errcodes.ErrContextCancelled
	}

	if err := s.db.WithContext(ctx).Create(commit).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("commit %s in repository %d: %w",
				commit.SHA, commit.RepositoryID, errcodes.ErrDuplicateCommit)
		}
		return fmt.Errorf("failed to create commit: %w", err)
	}
	return nil
}

// GetCommitByHash retrieves a commit by its hash within one repository.
// Hashes are not globally unique across repositories.
func (s *GormCommitStore) GetCommitByHash(ctx context.Context, repositoryID uint, sha string) (*Commit, error) {
	var commit Commit
	err := s.db.WithContext(ctx).
		Where("repository_id = ? AND sha = ?", repositoryID, sha).
		Limit(1).Find(&commit).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve commit: %w", err)
	}
	if commit.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return &commit, nil
}

func (s *GormCommitStore) GetCommitsByIDs(ctx context.Context, ids []uint) ([]Commit, error) {
	var commits []Commit
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&commits).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve commits: %w", err)
	}
	return commits, nil
}

// AttachFileChanges inserts the per-file deltas for a commit. A filename
// appearing twice in one change set is a collector bug; it is logged and
// kept rather than rejected.
func (s *GormCommitStore) AttachFileChanges(ctx context.Context, commitID uint, changes []FileChange) error {
	if len(changes) == 0 {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Commit{}).Where("id = ?", commitID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check commit existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("commit %d: %w", commitID, errcodes.ErrReferentialViolation)
	}

	seen := make(map[string]bool, len(changes))
	for i := range changes {
		changes[i].CommitID = commitID
		if seen[changes[i].Filename] {
			log.Warn().Uint("commit_id", commitID).Str("filename", changes[i].Filename).
				Msg("duplicate filename in change set")
		}
		seen[changes[i].Filename] = true
	}

	if err := s.db.WithContext(ctx).Create(&changes).Error; err != nil {
		return fmt.Errorf("failed to attach file changes: %w", err)
	}
	return nil
}

// ReclassifyCommit updates the taxonomy kind and the flags it implies. The
// breaking flag comes from the commit message at ingest time, never from
// the kind, so it survives retagging. Post rollups that already reference
// the commit are snapshots and stay untouched.
func (s *GormCommitStore) ReclassifyCommit(ctx context.Context, commitID uint, kind domain.CommitKind) error {
	security, performance := kind.Flags()
	tx := s.db.WithContext(ctx).Model(&Commit{}).Where("id = ?", commitID).
		Updates(map[string]interface{}{
			"kind":                kind,
			"affects_security":    security,
			"affects_performance": performance,
		})
	if tx.Error != nil {
		return fmt.Errorf("failed to reclassify commit: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errcodes.ErrNoRecordFound
	}
	return nil
}

// ListCommits runs the indexed query surface: repository plus time range,
// taxonomy kind, and the security/breaking flags.
func (s *GormCommitStore) ListCommits(ctx context.Context, filter CommitFilter, query dtos.APIPagingDto) ([]Commit, dtos.PagingInfo, error) {
	queryInfo, offset := getPaginationInfo(query)

	db := s.db.WithContext(ctx).Model(&Commit{}).
		Where("repository_id = ?", filter.RepositoryID)

	if filter.Since != nil {
		db = db.Where("commit_date >= ?", *filter.Since)
	}
	if filter.Until != nil {
		db = db.Where("commit_date < ?", *filter.Until)
	}
	if filter.Kind != "" {
		db = db.Where("kind = ?", filter.Kind)
	}
	if filter.SecurityOnly {
		db = db.Where("affects_security = ?", true)
	}
	if filter.BreakingOnly {
		db = db.Where("is_breaking_change = ?", true)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, dtos.PagingInfo{}, fmt.Errorf("failed to count commits: %w", err)
	}

	var commits []Commit
	err := db.Offset(offset).Limit(queryInfo.Limit).
		Order(fmt.Sprintf("%s %s", queryInfo.Sort, queryInfo.Direction)).
		Find(&commits).Error
	if err != nil {
		log.Info().Msgf("fetch commits error %v", err.Error())
		return nil, dtos.PagingInfo{}, err
	}

	pagingInfo := getPagingInfo(queryInfo, int(count))
	pagingInfo.Count = len(commits)

	return commits, pagingInfo, nil
}
