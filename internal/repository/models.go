package repository

import (
	"time"

	"github.com/just-nibble/git-digest/internal/domain"
)

// Repository represents a monitored source-control project. It is the root
// of the cascade tree for commits, posts and collection runs; deactivating
// a repository never deletes its history.
type Repository struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;size:255"`
	FullName      string `gorm:"size:255"`
	Description   string
	URL           string
	DefaultBranch string `gorm:"size:100;default:main"`
	Active        bool   `gorm:"default:true;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Commits        []Commit        `gorm:"constraint:OnDelete:CASCADE"`
	Posts          []Post          `gorm:"constraint:OnDelete:CASCADE"`
	CollectionRuns []CollectionRun `gorm:"constraint:OnDelete:CASCADE"`
}

// Commit represents one ingested version-control change record. The SHA is
// unique per repository, not globally; forks and cherry-picks can carry the
// same hash in unrelated repositories.
type Commit struct {
	ID           uint   `gorm:"primaryKey"`
	RepositoryID uint   `gorm:"uniqueIndex:idx_commits_repo_sha;index"`
	SHA          string `gorm:"size:40;uniqueIndex:idx_commits_repo_sha"`
	Message      string `gorm:"type:text"`

	AuthorName     string `gorm:"size:255"`
	AuthorEmail    string `gorm:"size:255;index"`
	AuthorUsername string `gorm:"size:255"`
	CommitterName  string `gorm:"size:255"`
	CommitterEmail string `gorm:"size:255"`

	CommitDate time.Time `gorm:"index"`
	URL        string

	Kind domain.CommitKind `gorm:"size:50;default:other;index"`

	Additions    int
	Deletions    int
	TotalChanges int
	FilesChanged int

	IsBreakingChange   bool `gorm:"default:false;index"`
	AffectsSecurity    bool `gorm:"default:false;index"`
	AffectsPerformance bool `gorm:"default:false"`

	CreatedAt time.Time

	FileChanges []FileChange `gorm:"constraint:OnDelete:CASCADE"`
}

// FileChange is a per-file delta within a commit.
type FileChange struct {
	ID        uint              `gorm:"primaryKey"`
	CommitID  uint              `gorm:"index"`
	Filename  string            `gorm:"size:500"`
	Status    domain.FileStatus `gorm:"size:20"`
	Additions int
	Deletions int
	Changes   int
	Patch     string `gorm:"type:text"`
}

// Post is a generated summary document over a set of commits. The rollup
// counters are a snapshot taken at creation time; they are not recomputed
// when commits are later reclassified or deleted.
type Post struct {
	ID           uint                `gorm:"primaryKey"`
	RepositoryID uint                `gorm:"index"`
	Kind         domain.PostKind     `gorm:"size:50;index"`
	Template     domain.PostTemplate `gorm:"size:50"`

	Title          string `gorm:"size:500"`
	Summary        string `gorm:"type:text"`
	Explanation    string `gorm:"type:text"`
	ContentHTML    string `gorm:"type:text"`
	FilePath       string
	TimePeriod     string `gorm:"size:50"`
	TargetAudience string `gorm:"size:100"`

	CommitCount       int
	LinesAdded        int
	LinesRemoved      int
	FilesChanged      int
	ContributorsCount int
	BreakingChanges   int
	SecurityFixes     int

	GenerationTimeSeconds float64
	TokensUsed            int

	Views  int64 `gorm:"default:0"`
	Likes  int64 `gorm:"default:0"`
	Shares int64 `gorm:"default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Commits []Commit         `gorm:"many2many:post_commits;constraint:OnDelete:CASCADE"`
	Tags    []Tag            `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	Events  []AnalyticsEvent `gorm:"constraint:OnDelete:CASCADE"`
}

// Tag is a unique label attached to posts for discovery.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100"`
}

// PostCommit is the pure association between a post and the commits it
// summarizes. It has no lifecycle of its own; the foreign keys cascade it
// away when either side goes.
type PostCommit struct {
	PostID   uint   `gorm:"primaryKey"`
	CommitID uint   `gorm:"primaryKey"`
	Post     Post   `gorm:"constraint:OnDelete:CASCADE"`
	Commit   Commit `gorm:"constraint:OnDelete:CASCADE"`
}

// PostTag is the pure association between a post and a tag.
type PostTag struct {
	PostID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
	Post   Post `gorm:"constraint:OnDelete:CASCADE"`
	Tag    Tag  `gorm:"constraint:OnDelete:CASCADE"`
}

// AnalyticsEvent is one recorded interaction with a post. Append-only; the
// event type is an open vocabulary on purpose.
type AnalyticsEvent struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index"`
	EventType string `gorm:"size:50;index"`
	UserID    string `gorm:"size:100"`
	UserAgent string
	IPAddress string    `gorm:"size:45"`
	Referrer  string    `gorm:"size:500"`
	CreatedAt time.Time `gorm:"index"`
}

// CollectionRun records one execution of the external collector. A nil
// CompletedAt marks a run that is still open, or was abandoned mid-flight.
type CollectionRun struct {
	ID               uint      `gorm:"primaryKey"`
	RepositoryID     uint      `gorm:"index"`
	StartedAt        time.Time `gorm:"index"`
	CompletedAt      *time.Time
	CommitsCollected int
	Success          bool
	ErrorMessage     string
}

// AllModels is the migration set, parents before children.
func AllModels() []interface{} {
	return []interface{}{
		&Repository{},
		&Commit{},
		&FileChange{},
		&Post{},
		&Tag{},
		&PostCommit{},
		&PostTag{},
		&AnalyticsEvent{},
		&CollectionRun{},
	}
}
