package dtos

import "time"

// CreatePostRequest is the summarizer payload
type CreatePostRequest struct {
	RepositoryID uint   `json:"repository_id"`
	Kind         string `json:"kind"`
	Template     string `json:"template"`
	CommitIDs    []uint `json:"commit_ids"`

	Title          string `json:"title"`
	Summary        string `json:"summary"`
	Explanation    string `json:"explanation"`
	ContentHTML    string `json:"content_html"`
	FilePath       string `json:"file_path"`
	TimePeriod     string `json:"time_period"`
	TargetAudience string `json:"target_audience"`

	GenerationTimeSeconds float64 `json:"generation_time_seconds"`
	TokensUsed            int     `json:"tokens_used"`
}

// PostResponse mirrors a post row with its rollup snapshot
type PostResponse struct {
	ID           uint   `json:"id"`
	RepositoryID uint   `json:"repository_id"`
	Kind         string `json:"kind"`
	Template     string `json:"template"`

	Title          string `json:"title"`
	Summary        string `json:"summary"`
	TimePeriod     string `json:"time_period"`
	TargetAudience string `json:"target_audience"`

	CommitCount       int `json:"commit_count"`
	LinesAdded        int `json:"lines_added"`
	LinesRemoved      int `json:"lines_removed"`
	FilesChanged      int `json:"files_changed"`
	ContributorsCount int `json:"contributors_count"`
	BreakingChanges   int `json:"breaking_changes"`
	SecurityFixes     int `json:"security_fixes"`

	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
	Shares int64 `json:"shares"`

	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MultiPostsResponse is a page of posts
type MultiPostsResponse struct {
	Posts    []PostResponse `json:"posts"`
	PageInfo PagingInfo     `json:"page_info"`
}

// EngagementRequest carries counter increments for one post
type EngagementRequest struct {
	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
	Shares int64 `json:"shares"`
}

// TagRequest attaches a label to a post
type TagRequest struct {
	Name string `json:"name"`
}
