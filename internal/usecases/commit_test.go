package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommitUsecase(db *gorm.DB) CommitUsecase {
	return NewCommitUsecase(
		repository.NewGormCommitStore(db),
		repository.NewGormRepositoryStore(db),
	)
}

func TestIngestCommitClassifiesMessage(t *testing.T) {
	db := setupDB(t)
	u := newCommitUsecase(db)
	repo := seedRepository(t, db, "widgets")

	commit, err := u.IngestCommit(context.Background(), IngestCommitInput{
		RepositoryID: repo.ID,
		SHA:          "abc123",
		Message:      "fix(auth)!: reject expired tokens",
		CommitDate:   time.Now().UTC(),
		Additions:    12,
		Deletions:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CommitKindBugfix, commit.Kind)
	assert.True(t, commit.IsBreakingChange)
	assert.Equal(t, 15, commit.TotalChanges) // computed, collector sent zero
}

func TestIngestCommitExplicitKind(t *testing.T) {
	db := setupDB(t)
	u := newCommitUsecase(db)
	repo := seedRepository(t, db, "widgets")

	commit, err := u.IngestCommit(context.Background(), IngestCommitInput{
		RepositoryID: repo.ID,
		SHA:          "abc123",
		Message:      "misc work", // would classify as other
		Kind:         domain.CommitKindSecurity,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CommitKindSecurity, commit.Kind)
	assert.True(t, commit.AffectsSecurity)
	assert.False(t, commit.IsBreakingChange)
}

// An explicit kind overrides the classifier's kind only; the message's
// breaking marker still applies.
func TestIngestCommitExplicitKindKeepsBreakingMarker(t *testing.T) {
	db := setupDB(t)
	u := newCommitUsecase(db)
	repo := seedRepository(t, db, "widgets")

	commit, err := u.IngestCommit(context.Background(), IngestCommitInput{
		RepositoryID: repo.ID,
		SHA:          "abc123",
		Message:      "refactor(core)!: rework plugin loading",
		Kind:         domain.CommitKindChore,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CommitKindChore, commit.Kind)
	assert.True(t, commit.IsBreakingChange)
	assert.False(t, commit.AffectsSecurity)
}

func TestIngestCommitValidation(t *testing.T) {
	db := setupDB(t)
	u := newCommitUsecase(db)
	repo := seedRepository(t, db, "widgets")

	_, err := u.IngestCommit(context.Background(), IngestCommitInput{RepositoryID: repo.ID})
	assert.Error(t, err) // empty hash

	_, err = u.IngestCommit(context.Background(), IngestCommitInput{
		RepositoryID: repo.ID,
		SHA:          strings.Repeat("a", 41),
	})
	assert.Error(t, err) // over 40 characters

	_, err = u.IngestCommit(context.Background(), IngestCommitInput{
		RepositoryID: repo.ID,
		SHA:          "abc123",
		Kind:         domain.CommitKind("wip"),
	})
	assert.Error(t, err) // unknown kind

	_, err = u.IngestCommit(context.Background(), IngestCommitInput{
		RepositoryID: 404,
		SHA:          "abc123",
	})
	assert.ErrorIs(t, err, errcodes.ErrReferentialViolation)
}

func TestIngestCommitDuplicate(t *testing.T) {
	db := setupDB(t)
	u := newCommitUsecase(db)
	repo := seedRepository(t, db, "widgets")

	input := IngestCommitInput{RepositoryID: repo.ID, SHA: "abc123", Message: "feat: x"}
	_, err := u.IngestCommit(context.Background(), input)
	require.NoError(t, err)

	_, err = u.IngestCommit(context.Background(), input)
	assert.ErrorIs(t, err, errcodes.ErrDuplicateCommit)
}

func TestAttachFileChangesValidatesStatus(t *testing.T) {
	db := setupDB(t)
	u := newCommitUsecase(db)
	repo := seedRepository(t, db, "widgets")

	commit, err := u.IngestCommit(context.Background(), IngestCommitInput{
		RepositoryID: repo.ID,
		SHA:          "abc123",
	})
	require.NoError(t, err)

	err = u.AttachFileChanges(context.Background(), commit.ID, []FileChangeInput{
		{Filename: "main.go", Status: domain.FileStatus("touched")},
	})
	assert.Error(t, err)
	assert.EqualValues(t, 0, countRows(t, db, &repository.FileChange{}))

	err = u.AttachFileChanges(context.Background(), commit.ID, []FileChangeInput{
		{Filename: "main.go", Status: domain.FileStatusModified, Additions: 2, Changes: 2},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, countRows(t, db, &repository.FileChange{}))
}
