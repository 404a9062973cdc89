package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementDelta carries counter increments for one post. Negative values
// are rejected at the handler boundary.
type EngagementDelta struct {
	Views  int64
	Likes  int64
	Shares int64
}

// PostStore defines database operations on the post aggregate store
type PostStore interface {
	CreatePost(ctx context.Context, post *Post, commitIDs []uint) error
	GetPostByID(ctx context.Context, id uint) (*Post, error)
	ListPostsByRepository(ctx context.Context, repositoryID uint, query dtos.APIPagingDto) ([]Post, dtos.PagingInfo, error)
	IncrementEngagement(ctx context.Context, postID uint, delta EngagementDelta) error
	TagPost(ctx context.Context, postID uint, name string) error
	GetPostsByTag(ctx context.Context, name string) ([]Post, error)
	SearchPosts(ctx context.Context, term string, limit int) ([]Post, error)
}

// GormPostStore is a GORM-based implementation of PostStore
type GormPostStore struct {
	db *gorm.DB
}

// NewGormPostStore initializes a new GormPostStore
func NewGormPostStore(db *gorm.DB) PostStore {
	return &GormPostStore{db: db}
}

// CreatePost validates the referenced commits, snapshots the rollup
// counters, and writes the post plus its commit associations in one
// transaction. One bad commit id means nothing is written.
func (s *GormPostStore) CreatePost(ctx context.Context, post *Post, commitIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var repoCount int64
		if err := tx.Model(&Repository{}).Where("id = ?", post.RepositoryID).Count(&repoCount).Error; err != nil {
			return fmt.Errorf("failed to check repository: %w", err)
		}
		if repoCount == 0 {
			return fmt.Errorf("repository %d: %w", post.RepositoryID, errcodes.ErrReferentialViolation)
		}

		var commits []Commit
		commitIDs = dedupeIDs(commitIDs)
		if len(commitIDs) > 0 {
			if err := tx.Where("id IN ?", commitIDs).Find(&commits).Error; err != nil {
				return fmt.Errorf("failed to load commits: %w", err)
			}
			if len(commits) != len(commitIDs) {
				return fmt.Errorf("unknown commit id: %w", errcodes.ErrReferentialViolation)
			}
			for _, c := range commits {
				if c.RepositoryID != post.RepositoryID {
					return fmt.Errorf("commit %d belongs to repository %d, post declares %d: %w",
						c.ID, c.RepositoryID, post.RepositoryID, errcodes.ErrCrossRepositoryReference)
				}
			}
		}

		applyRollups(post, commits)

		if err := tx.Omit("Commits", "Tags", "Events").Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		if len(commits) > 0 {
			associations := make([]PostCommit, 0, len(commits))
			for _, c := range commits {
				associations = append(associations, PostCommit{PostID: post.ID, CommitID: c.ID})
			}
			if err := tx.Omit(clause.Associations).Create(&associations).Error; err != nil {
				return fmt.Errorf("failed to associate commits: %w", err)
			}
		}

		return nil
	})
}

// applyRollups snapshots the aggregate counters over the referenced
// commits. Contributors are counted by distinct author email.
func applyRollups(post *Post, commits []Commit) {
	authors := make(map[string]bool, len(commits))

	post.CommitCount = len(commits)
	post.LinesAdded = 0
	post.LinesRemoved = 0
	post.FilesChanged = 0
	post.BreakingChanges = 0
	post.SecurityFixes = 0

	for _, c := range commits {
		post.LinesAdded += c.Additions
		post.LinesRemoved += c.Deletions
		post.FilesChanged += c.FilesChanged
		if c.IsBreakingChange {
			post.BreakingChanges++
		}
		if c.AffectsSecurity {
			post.SecurityFixes++
		}
		authors[strings.ToLower(c.AuthorEmail)] = true
	}
	post.ContributorsCount = len(authors)
}

func (s *GormPostStore) GetPostByID(ctx context.Context, id uint) (*Post, error) {
	var post Post
	err := s.db.WithContext(ctx).Preload("Tags").Limit(1).Find(&post, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	if post.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return &post, nil
}

func (s *GormPostStore) ListPostsByRepository(ctx context.Context, repositoryID uint, query dtos.APIPagingDto) ([]Post, dtos.PagingInfo, error) {
	query.Sort = "created_at"
	queryInfo, offset := getPaginationInfo(query)

	db := s.db.WithContext(ctx).Model(&Post{}).Where("repository_id = ?", repositoryID)

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, dtos.PagingInfo{}, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []Post
	err := db.Offset(offset).Limit(queryInfo.Limit).
		Order(fmt.Sprintf("%s %s", queryInfo.Sort, queryInfo.Direction)).
		Find(&posts).Error
	if err != nil {
		return nil, dtos.PagingInfo{}, fmt.Errorf("failed to retrieve posts: %w", err)
	}

	pagingInfo := getPagingInfo(queryInfo, int(count))
	pagingInfo.Count = len(posts)

	return posts, pagingInfo, nil
}

// IncrementEngagement bumps the engagement counters in a single UPDATE with
// database-side arithmetic, so concurrent callers never lose updates. The
// post's updated_at refreshes as part of the same statement.
func (s *GormPostStore) IncrementEngagement(ctx context.Context, postID uint, delta EngagementDelta) error {
	updates := map[string]interface{}{}
	if delta.Views != 0 {
		updates["views"] = gorm.Expr("views + ?", delta.Views)
	}
	if delta.Likes != 0 {
		updates["likes"] = gorm.Expr("likes + ?", delta.Likes)
	}
	if delta.Shares != 0 {
		updates["shares"] = gorm.Expr("shares + ?", delta.Shares)
	}
	if len(updates) == 0 {
		return nil
	}

	tx := s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", postID).Updates(updates)
	if tx.Error != nil {
		return fmt.Errorf("failed to record engagement: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errcodes.ErrNoRecordFound
	}
	return nil
}

// TagPost attaches a label to a post, creating the tag row on first use.
// Tagging the same post twice with the same label is a no-op.
func (s *GormPostStore) TagPost(ctx context.Context, postID uint, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("empty tag name")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postCount int64
		if err := tx.Model(&Post{}).Where("id = ?", postID).Count(&postCount).Error; err != nil {
			return err
		}
		if postCount == 0 {
			return fmt.Errorf("post %d: %w", postID, errcodes.ErrReferentialViolation)
		}

		var tag Tag
		if err := tx.Where(&Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return fmt.Errorf("failed to upsert tag: %w", err)
		}

		association := PostTag{PostID: postID, TagID: tag.ID}
		if err := tx.Omit(clause.Associations).Create(&association).Error; err != nil {
			if isDuplicateKey(err) {
				return nil
			}
			return fmt.Errorf("failed to tag post: %w", err)
		}
		return nil
	})
}

func (s *GormPostStore) GetPostsByTag(ctx context.Context, name string) ([]Post, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var posts []Post
	err := s.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.name = ?", name).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve posts by tag: %w", err)
	}
	return posts, nil
}

// SearchPosts ranks posts against the term over title, summary and
// explanation as one combined document. Postgres full-text search when
// available, a LIKE scan elsewhere; both are best-effort matches.
func (s *GormPostStore) SearchPosts(ctx context.Context, term string, limit int) ([]Post, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DEFAULTLIMIT
	}

	var posts []Post
	var err error

	if s.db.Dialector.Name() == "postgres" {
		err = s.db.WithContext(ctx).Raw(`
			SELECT posts.*
			FROM posts,
			     to_tsvector('english', coalesce(title,'') || ' ' || coalesce(summary,'') || ' ' || coalesce(explanation,'')) document,
			     plainto_tsquery('english', ?) query
			WHERE document @@ query
			ORDER BY ts_rank(document, query) DESC
			LIMIT ?
		`, term, limit).Scan(&posts).Error
	} else {
		pattern := "%" + strings.ToLower(term) + "%"
		err = s.db.WithContext(ctx).
			Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(explanation) LIKE ?",
				pattern, pattern, pattern).
			Order("created_at DESC").
			Limit(limit).
			Find(&posts).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return posts, nil
}
