package usecases

import (
	"context"
	"testing"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostDefaults(t *testing.T) {
	db := setupDB(t)
	u := NewPostUsecase(repository.NewGormPostStore(db))
	repo := seedRepository(t, db, "widgets")

	post, err := u.CreatePost(context.Background(), CreatePostInput{
		RepositoryID: repo.ID,
		Title:        "Weekly digest",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PostKindGeneral, post.Kind)
	assert.Equal(t, domain.PostTemplateGeneral, post.Template)
}

func TestCreatePostValidation(t *testing.T) {
	db := setupDB(t)
	u := NewPostUsecase(repository.NewGormPostStore(db))
	repo := seedRepository(t, db, "widgets")

	_, err := u.CreatePost(context.Background(), CreatePostInput{RepositoryID: repo.ID})
	assert.Error(t, err) // missing title

	_, err = u.CreatePost(context.Background(), CreatePostInput{
		RepositoryID: repo.ID,
		Title:        "bad kind",
		Kind:         domain.PostKind("listicle"),
	})
	assert.Error(t, err)

	_, err = u.CreatePost(context.Background(), CreatePostInput{
		RepositoryID: repo.ID,
		Title:        "bad template",
		Template:     domain.PostTemplate("haiku"),
	})
	assert.Error(t, err)

	assert.EqualValues(t, 0, countRows(t, db, &repository.Post{}))
}

func TestRecordEngagementRejectsNegative(t *testing.T) {
	db := setupDB(t)
	u := NewPostUsecase(repository.NewGormPostStore(db))
	repo := seedRepository(t, db, "widgets")
	post := seedPost(t, db, repo.ID, "weekly digest")

	err := u.RecordEngagement(context.Background(), post.ID, repository.EngagementDelta{Views: -1})
	assert.Error(t, err)

	err = u.RecordEngagement(context.Background(), post.ID, repository.EngagementDelta{Views: 2, Shares: 1})
	require.NoError(t, err)

	fetched, err := u.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fetched.Views)
	assert.EqualValues(t, 1, fetched.Shares)
}
