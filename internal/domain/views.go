package domain

import "time"

// RepositoryStats is the per-repository reporting view, recomputed on read.
type RepositoryStats struct {
	RepositoryID     uint       `json:"repository_id"`
	Name             string     `json:"name"`
	FullName         string     `json:"full_name"`
	CommitCount      int64      `json:"commit_count"`
	PostCount        int64      `json:"post_count"`
	LatestCommitAt   *time.Time `json:"latest_commit_at"`
	LatestPostAt     *time.Time `json:"latest_post_at"`
	TotalAdditions   int64      `json:"total_additions"`
	TotalDeletions   int64      `json:"total_deletions"`
	ContributorCount int64      `json:"contributor_count"`
}

// PostPerformance is the per-post engagement view. ViewsPerHour is nil for
// posts younger than one hour; a zero-age division is never attempted.
type PostPerformance struct {
	PostID       uint      `json:"post_id"`
	Title        string    `json:"title"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Shares       int64     `json:"shares"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	ViewsPerHour *float64  `json:"views_per_hour"`
}

// ContributorStats ranks one author's activity within a repository.
type ContributorStats struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CommitCount int64  `json:"commit_count"`
	Additions   int64  `json:"additions"`
	Deletions   int64  `json:"deletions"`
}

// RunStatus describes the observable state of a collection run. Open runs
// past the staleness threshold are reported abandoned rather than left
// in-progress forever.
type RunStatus string

const (
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusAbandoned  RunStatus = "abandoned"
	RunStatusSucceeded  RunStatus = "succeeded"
	RunStatusFailed     RunStatus = "failed"
)
