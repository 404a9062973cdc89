package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/rs/zerolog/log"
)

// IngestCommitInput is the collector-facing payload for one commit.
type IngestCommitInput struct {
	RepositoryID   uint
	SHA            string
	Message        string
	AuthorName     string
	AuthorEmail    string
	AuthorUsername string
	CommitterName  string
	CommitterEmail string
	CommitDate     time.Time
	URL            string

	// Kind is optional; when empty the commit message is classified.
	Kind domain.CommitKind

	Additions    int
	Deletions    int
	TotalChanges int
	FilesChanged int
}

// FileChangeInput is one per-file delta supplied by the collector.
type FileChangeInput struct {
	Filename  string
	Status    domain.FileStatus
	Additions int
	Deletions int
	Changes   int
	Patch     string
}

type CommitUsecase interface {
	IngestCommit(ctx context.Context, input IngestCommitInput) (*repository.Commit, error)
	AttachFileChanges(ctx context.Context, commitID uint, changes []FileChangeInput) error
	Reclassify(ctx context.Context, commitID uint, kind domain.CommitKind) error
	ListCommits(ctx context.Context, filter repository.CommitFilter, query dtos.APIPagingDto) ([]repository.Commit, dtos.PagingInfo, error)
}

type commitUsecase struct {
	commitStore     repository.CommitStore
	repositoryStore repository.RepositoryStore
}

func NewCommitUsecase(commitStore repository.CommitStore, repositoryStore repository.RepositoryStore) CommitUsecase {
	return &commitUsecase{
		commitStore:     commitStore,
		repositoryStore: repositoryStore,
	}
}

// IngestCommit writes a new ledger entry. Re-running a collector over the
// same window surfaces ErrDuplicateCommit, which callers treat as success.
func (u *commitUsecase) IngestCommit(ctx context.Context, input IngestCommitInput) (*repository.Commit, error) {
	if input.SHA == "" || len(input.SHA) > 40 {
		return nil, fmt.Errorf("invalid commit hash %q", input.SHA)
	}

	if _, err := u.repositoryStore.GetRepositoryByID(ctx, input.RepositoryID); err != nil {
		if err == errcodes.ErrNoRecordFound {
			return nil, fmt.Errorf("repository %d: %w", input.RepositoryID, errcodes.ErrReferentialViolation)
		}
		return nil, err
	}

	commit := &repository.Commit{
		RepositoryID:   input.RepositoryID,
		SHA:            input.SHA,
		Message:        input.Message,
		AuthorName:     input.AuthorName,
		AuthorEmail:    input.AuthorEmail,
		AuthorUsername: input.AuthorUsername,
		CommitterName:  input.CommitterName,
		CommitterEmail: input.CommitterEmail,
		CommitDate:     input.CommitDate,
		URL:            input.URL,
		Additions:      input.Additions,
		Deletions:      input.Deletions,
		TotalChanges:   input.TotalChanges,
		FilesChanged:   input.FilesChanged,
	}

	// The breaking scan always runs: an explicit kind overrides the
	// classified kind, not the message's breaking marker.
	c := domain.ClassifyMessage(input.Message)
	commit.IsBreakingChange = c.IsBreakingChange
	if input.Kind != "" {
		if !input.Kind.Valid() {
			return nil, fmt.Errorf("invalid commit kind %q", input.Kind)
		}
		commit.Kind = input.Kind
		commit.AffectsSecurity, commit.AffectsPerformance = input.Kind.Flags()
	} else {
		commit.Kind = c.Kind
		commit.AffectsSecurity = c.AffectsSecurity
		commit.AffectsPerformance = c.AffectsPerformance
	}

	// The schema does not enforce this arithmetic; the writer does.
	if commit.TotalChanges == 0 {
		commit.TotalChanges = commit.Additions + commit.Deletions
	} else if commit.TotalChanges != commit.Additions+commit.Deletions {
		log.Warn().Str("sha", commit.SHA).
			Int("total_changes", commit.TotalChanges).
			Int("additions", commit.Additions).
			Int("deletions", commit.Deletions).
			Msg("total_changes disagrees with additions+deletions")
	}

	if err := u.commitStore.CreateCommit(ctx, commit); err != nil {
		return nil, err
	}
	return commit, nil
}

func (u *commitUsecase) AttachFileChanges(ctx context.Context, commitID uint, changes []FileChangeInput) error {
	rows := make([]repository.FileChange, 0, len(changes))
	for _, ch := range changes {
		if !ch.Status.Valid() {
			return fmt.Errorf("invalid file status %q for %s", ch.Status, ch.Filename)
		}
		rows = append(rows, repository.FileChange{
			Filename:  ch.Filename,
			Status:    ch.Status,
			Additions: ch.Additions,
			Deletions: ch.Deletions,
			Changes:   ch.Changes,
			Patch:     ch.Patch,
		})
	}
	return u.commitStore.AttachFileChanges(ctx, commitID, rows)
}

// Reclassify retags a commit. Rollups on existing posts are snapshots and
// are deliberately left alone.
func (u *commitUsecase) Reclassify(ctx context.Context, commitID uint, kind domain.CommitKind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid commit kind %q", kind)
	}
	return u.commitStore.ReclassifyCommit(ctx, commitID, kind)
}

func (u *commitUsecase) ListCommits(ctx context.Context, filter repository.CommitFilter, query dtos.APIPagingDto) ([]repository.Commit, dtos.PagingInfo, error) {
	if filter.RepositoryID == 0 {
		return nil, dtos.PagingInfo{}, fmt.Errorf("repository id is required")
	}
	return u.commitStore.ListCommits(ctx, filter, query)
}
