package repository

import (
	"context"
	"testing"
	"time"

	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/stretchr/testify/assert"
)

func TestCreateRepository(t *testing.T) {
	db := setupDB(t)
	store := NewGormRepositoryStore(db)

	repo := &Repository{
		Name:     "widgets",
		FullName: "acme/widgets",
		URL:      "https://github.com/acme/widgets",
		Active:   true,
	}
	err := store.CreateRepository(context.Background(), repo)
	assert.NoError(t, err)
	assert.NotZero(t, repo.ID)

	fetched, err := store.GetRepositoryByName(context.Background(), "widgets")
	assert.NoError(t, err)
	assert.Equal(t, repo.ID, fetched.ID)
	assert.Equal(t, "acme/widgets", fetched.FullName)
	assert.True(t, fetched.Active)
}

func TestCreateRepositoryDuplicateName(t *testing.T) {
	db := setupDB(t)
	store := NewGormRepositoryStore(db)

	first := &Repository{Name: "widgets", FullName: "acme/widgets"}
	assert.NoError(t, store.CreateRepository(context.Background(), first))

	second := &Repository{Name: "widgets", FullName: "other/widgets"}
	err := store.CreateRepository(context.Background(), second)
	assert.ErrorIs(t, err, errcodes.ErrDuplicateRecord)
}

func TestDeactivateRepositoryKeepsHistory(t *testing.T) {
	db := setupDB(t)
	store := NewGormRepositoryStore(db)

	repo := seedRepository(t, db, "widgets")
	seedCommit(t, db, repo.ID, "aaa111")

	err := store.SetRepositoryActive(context.Background(), repo.ID, false)
	assert.NoError(t, err)

	fetched, err := store.GetRepositoryByID(context.Background(), repo.ID)
	assert.NoError(t, err)
	assert.False(t, fetched.Active)
	assert.EqualValues(t, 1, countRows(t, db, &Commit{}))
}

func TestSetActiveRefreshesUpdatedAt(t *testing.T) {
	db := setupDB(t)
	store := NewGormRepositoryStore(db)

	repo := seedRepository(t, db, "widgets")
	before := repo.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	assert.NoError(t, store.SetRepositoryActive(context.Background(), repo.ID, false))

	fetched, err := store.GetRepositoryByID(context.Background(), repo.ID)
	assert.NoError(t, err)
	assert.True(t, fetched.UpdatedAt.After(before))
}

// TestDeleteRepositoryCascades covers the whole ownership tree: commits,
// file changes, posts, associations, analytics events and runs under the
// deleted repository all go, and a sibling repository keeps everything.
func TestDeleteRepositoryCascades(t *testing.T) {
	db := setupDB(t)
	store := NewGormRepositoryStore(db)
	posts := NewGormPostStore(db)

	doomed := seedRepository(t, db, "doomed")
	keeper := seedRepository(t, db, "keeper")

	c1 := seedCommit(t, db, doomed.ID, "aaa111")
	c2 := seedCommit(t, db, doomed.ID, "bbb222")
	kept := seedCommit(t, db, keeper.ID, "ccc333")

	assert.NoError(t, db.Create(&FileChange{CommitID: c1.ID, Filename: "main.go", Status: "modified"}).Error)
	assert.NoError(t, db.Create(&FileChange{CommitID: kept.ID, Filename: "keep.go", Status: "added"}).Error)

	doomedPost := &Post{RepositoryID: doomed.ID, Kind: "general", Template: "general", Title: "doomed digest"}
	assert.NoError(t, posts.CreatePost(context.Background(), doomedPost, []uint{c1.ID, c2.ID}))
	keeperPost := &Post{RepositoryID: keeper.ID, Kind: "general", Template: "general", Title: "keeper digest"}
	assert.NoError(t, posts.CreatePost(context.Background(), keeperPost, []uint{kept.ID}))

	assert.NoError(t, posts.TagPost(context.Background(), doomedPost.ID, "security"))
	assert.NoError(t, posts.TagPost(context.Background(), keeperPost.ID, "release"))

	assert.NoError(t, db.Create(&AnalyticsEvent{PostID: doomedPost.ID, EventType: "view"}).Error)
	assert.NoError(t, db.Create(&AnalyticsEvent{PostID: keeperPost.ID, EventType: "view"}).Error)

	assert.NoError(t, db.Create(&CollectionRun{RepositoryID: doomed.ID, StartedAt: time.Now()}).Error)
	assert.NoError(t, db.Create(&CollectionRun{RepositoryID: keeper.ID, StartedAt: time.Now()}).Error)

	assert.NoError(t, store.DeleteRepository(context.Background(), doomed.ID))

	assert.EqualValues(t, 1, countRows(t, db, &Repository{}))
	assert.EqualValues(t, 1, countRows(t, db, &Commit{}))
	assert.EqualValues(t, 1, countRows(t, db, &FileChange{}))
	assert.EqualValues(t, 1, countRows(t, db, &Post{}))
	assert.EqualValues(t, 1, countRows(t, db, &PostCommit{}))
	assert.EqualValues(t, 1, countRows(t, db, &PostTag{}))
	assert.EqualValues(t, 1, countRows(t, db, &AnalyticsEvent{}))
	assert.EqualValues(t, 1, countRows(t, db, &CollectionRun{}))

	// Tags are shared labels, not owned by any repository.
	assert.EqualValues(t, 2, countRows(t, db, &Tag{}))
}

func TestDeleteRepositoryNotFound(t *testing.T) {
	db := setupDB(t)
	store := NewGormRepositoryStore(db)

	err := store.DeleteRepository(context.Background(), 999)
	assert.ErrorIs(t, err, errcodes.ErrNoRecordFound)
}
