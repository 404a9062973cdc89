package dtos

import "time"

// IngestCommitRequest is the collector payload for one commit
type IngestCommitRequest struct {
	SHA            string    `json:"sha"`
	Message        string    `json:"message"`
	AuthorName     string    `json:"author_name"`
	AuthorEmail    string    `json:"author_email"`
	AuthorUsername string    `json:"author_username"`
	CommitterName  string    `json:"committer_name"`
	CommitterEmail string    `json:"committer_email"`
	CommitDate     time.Time `json:"commit_date"`
	URL            string    `json:"url"`
	Kind           string    `json:"kind"`
	Additions      int       `json:"additions"`
	Deletions      int       `json:"deletions"`
	TotalChanges   int       `json:"total_changes"`
	FilesChanged   int       `json:"files_changed"`

	FileChanges []FileChangeRequest `json:"file_changes"`
}

// FileChangeRequest is one per-file delta within an ingest payload
type FileChangeRequest struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	Patch     string `json:"patch"`
}

// CommitResponse mirrors one ledger entry
type CommitResponse struct {
	ID                 uint      `json:"id"`
	RepositoryID       uint      `json:"repository_id"`
	SHA                string    `json:"sha"`
	Message            string    `json:"message"`
	AuthorName         string    `json:"author_name"`
	AuthorEmail        string    `json:"author_email"`
	CommitDate         time.Time `json:"commit_date"`
	URL                string    `json:"url"`
	Kind               string    `json:"kind"`
	Additions          int       `json:"additions"`
	Deletions          int       `json:"deletions"`
	TotalChanges       int       `json:"total_changes"`
	FilesChanged       int       `json:"files_changed"`
	IsBreakingChange   bool      `json:"is_breaking_change"`
	AffectsSecurity    bool      `json:"affects_security"`
	AffectsPerformance bool      `json:"affects_performance"`
}

// MultiCommitsResponse is a page of ledger entries
type MultiCommitsResponse struct {
	Commits  []CommitResponse `json:"commits"`
	PageInfo PagingInfo       `json:"page_info"`
}

// ReclassifyRequest retags one commit
type ReclassifyRequest struct {
	Kind string `json:"kind"`
}
