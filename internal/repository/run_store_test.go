package repository

import (
	"context"
	"testing"
	"time"

	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndCompleteRun(t *testing.T) {
	db := setupDB(t)
	store := NewGormRunStore(db)
	repo := seedRepository(t, db, "widgets")

	run := &CollectionRun{RepositoryID: repo.ID}
	require.NoError(t, store.CreateRun(context.Background(), run))
	assert.False(t, run.StartedAt.IsZero())

	fetched, err := store.GetRunByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.CompletedAt)

	err = store.CompleteRun(context.Background(), run.ID, 42, true, "")
	require.NoError(t, err)

	fetched, err = store.GetRunByID(context.Background(), run.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.CompletedAt)
	assert.Equal(t, 42, fetched.CommitsCollected)
	assert.True(t, fetched.Success)
}

// Outcome fields are write-once; a second completion is rejected and the
// first outcome survives.
func TestCompleteRunTwice(t *testing.T) {
	db := setupDB(t)
	store := NewGormRunStore(db)
	repo := seedRepository(t, db, "widgets")

	run := &CollectionRun{RepositoryID: repo.ID}
	require.NoError(t, store.CreateRun(context.Background(), run))
	require.NoError(t, store.CompleteRun(context.Background(), run.ID, 10, true, ""))

	err := store.CompleteRun(context.Background(), run.ID, 99, false, "late writer")
	assert.ErrorIs(t, err, errcodes.ErrNoRecordFound)

	fetched, err := store.GetRunByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fetched.CommitsCollected)
	assert.True(t, fetched.Success)
	assert.Empty(t, fetched.ErrorMessage)
}

func TestCreateRunUnknownRepository(t *testing.T) {
	db := setupDB(t)
	store := NewGormRunStore(db)

	err := store.CreateRun(context.Background(), &CollectionRun{RepositoryID: 404})
	assert.ErrorIs(t, err, errcodes.ErrReferentialViolation)
}

func TestListRunsByRepository(t *testing.T) {
	db := setupDB(t)
	store := NewGormRunStore(db)
	repo := seedRepository(t, db, "widgets")
	other := seedRepository(t, db, "gadgets")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		run := &CollectionRun{RepositoryID: repo.ID, StartedAt: now.Add(time.Duration(-i) * time.Hour)}
		require.NoError(t, store.CreateRun(context.Background(), run))
	}
	require.NoError(t, store.CreateRun(context.Background(), &CollectionRun{RepositoryID: other.ID}))

	runs, err := store.ListRunsByRepository(context.Background(), repo.ID, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}

func TestDeleteRunsBefore(t *testing.T) {
	db := setupDB(t)
	store := NewGormRunStore(db)
	repo := seedRepository(t, db, "widgets")

	now := time.Now().UTC()
	for _, age := range []time.Duration{-96 * time.Hour, -50 * time.Hour, -2 * time.Hour} {
		run := &CollectionRun{RepositoryID: repo.ID, StartedAt: now.Add(age)}
		require.NoError(t, store.CreateRun(context.Background(), run))
	}

	deleted, err := store.DeleteRunsBefore(context.Background(), now.Add(-48*time.Hour), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	assert.EqualValues(t, 1, countRows(t, db, &CollectionRun{}))
}
