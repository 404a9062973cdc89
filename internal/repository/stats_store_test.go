package repository

import (
	"context"
	"testing"
	"time"

	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryStats(t *testing.T) {
	db := setupDB(t)
	store := NewGormStatsStore(db)
	active := seedRepository(t, db, "widgets")
	inactive := seedRepository(t, db, "attic")
	require.NoError(t, db.Model(inactive).UpdateColumn("active", false).Error)

	newest := time.Now().UTC().Truncate(time.Second)
	seedCommit(t, db, active.ID, "c1", func(c *Commit) {
		c.Additions = 100
		c.Deletions = 10
		c.AuthorEmail = "jo@example.com"
		c.CommitDate = newest.Add(-24 * time.Hour)
	})
	seedCommit(t, db, active.ID, "c2", func(c *Commit) {
		c.Additions = 30
		c.Deletions = 5
		c.AuthorEmail = "sam@example.com"
		c.CommitDate = newest
	})
	seedCommit(t, db, inactive.ID, "hidden")
	seedPost(t, db, active.ID, "weekly digest")

	stats, err := store.RepositoryStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1) // inactive repositories are excluded

	entry := stats[0]
	assert.Equal(t, active.ID, entry.RepositoryID)
	assert.EqualValues(t, 2, entry.CommitCount)
	assert.EqualValues(t, 1, entry.PostCount)
	assert.EqualValues(t, 130, entry.TotalAdditions)
	assert.EqualValues(t, 15, entry.TotalDeletions)
	assert.EqualValues(t, 2, entry.ContributorCount)
	require.NotNil(t, entry.LatestCommitAt)
	assert.WithinDuration(t, newest, *entry.LatestCommitAt, time.Second)
	assert.NotNil(t, entry.LatestPostAt)
}

func TestRepositoryStatsEmptyRepository(t *testing.T) {
	db := setupDB(t)
	store := NewGormStatsStore(db)
	seedRepository(t, db, "fresh")

	stats, err := store.RepositoryStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.EqualValues(t, 0, stats[0].CommitCount)
	assert.Nil(t, stats[0].LatestCommitAt)
	assert.Nil(t, stats[0].LatestPostAt)
}

func TestPostPerformanceYoungPost(t *testing.T) {
	db := setupDB(t)
	store := NewGormStatsStore(db)
	repo := seedRepository(t, db, "widgets")
	post := seedPost(t, db, repo.ID, "just published")
	require.NoError(t, db.Model(post).UpdateColumn("views", 500).Error)

	perf, err := store.PostPerformance(context.Background(), post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 500, perf.Views)
	assert.Nil(t, perf.ViewsPerHour) // younger than an hour
}

func TestPostPerformanceMaturePost(t *testing.T) {
	db := setupDB(t)
	store := NewGormStatsStore(db)
	repo := seedRepository(t, db, "widgets")
	post := seedPost(t, db, repo.ID, "last week's digest")

	created := time.Now().UTC().Add(-10 * time.Hour)
	require.NoError(t, db.Model(post).UpdateColumn("created_at", created).Error)
	require.NoError(t, db.Model(post).UpdateColumn("views", 100).Error)

	events := NewGormAnalyticsStore(db)
	require.NoError(t, events.RecordEvent(context.Background(),
		&AnalyticsEvent{PostID: post.ID, EventType: "comment"}))
	require.NoError(t, events.RecordEvent(context.Background(),
		&AnalyticsEvent{PostID: post.ID, EventType: "view"}))

	perf, err := store.PostPerformance(context.Background(), post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, perf.CommentCount)
	require.NotNil(t, perf.ViewsPerHour)
	assert.InDelta(t, 10.0, *perf.ViewsPerHour, 0.2)
}

func TestPostPerformanceUnknownPost(t *testing.T) {
	db := setupDB(t)
	store := NewGormStatsStore(db)

	_, err := store.PostPerformance(context.Background(), 404)
	assert.ErrorIs(t, err, errcodes.ErrNoRecordFound)
}

func TestTopContributors(t *testing.T) {
	db := setupDB(t)
	store := NewGormStatsStore(db)
	repo := seedRepository(t, db, "widgets")

	for i, sha := range []string{"a1", "a2", "a3"} {
		i := i
		seedCommit(t, db, repo.ID, sha, func(c *Commit) {
			c.AuthorName = "Jo Dev"
			c.AuthorEmail = "jo@example.com"
			c.Additions = 10 * (i + 1)
			c.Deletions = i + 1
		})
	}
	seedCommit(t, db, repo.ID, "b1", func(c *Commit) {
		c.AuthorName = "Sam Ops"
		c.AuthorEmail = "sam@example.com"
	})

	contributors, err := store.TopContributors(context.Background(), repo.ID, 10)
	require.NoError(t, err)
	require.Len(t, contributors, 2)
	assert.Equal(t, "jo@example.com", contributors[0].Email)
	assert.EqualValues(t, 3, contributors[0].CommitCount)
	assert.EqualValues(t, 60, contributors[0].Additions)
	assert.EqualValues(t, 6, contributors[0].Deletions)
	assert.Equal(t, "sam@example.com", contributors[1].Email)

	// Limit caps the ranking.
	contributors, err = store.TopContributors(context.Background(), repo.ID, 1)
	require.NoError(t, err)
	require.Len(t, contributors, 1)
	assert.Equal(t, "jo@example.com", contributors[0].Email)
}
