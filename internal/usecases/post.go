package usecases

import (
	"context"
	"fmt"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/internal/repository"
)

// CreatePostInput is the summarizer-facing payload. Generation metadata is
// opaque pass-through; the core never computes it.
type CreatePostInput struct {
	RepositoryID uint
	Kind         domain.PostKind
	Template     domain.PostTemplate
	CommitIDs    []uint

	Title          string
	Summary        string
	Explanation    string
	ContentHTML    string
	FilePath       string
	TimePeriod     string
	TargetAudience string

	GenerationTimeSeconds float64
	TokensUsed            int
}

type PostUsecase interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*repository.Post, error)
	GetPost(ctx context.Context, id uint) (*repository.Post, error)
	ListPosts(ctx context.Context, repositoryID uint, query dtos.APIPagingDto) ([]repository.Post, dtos.PagingInfo, error)
	RecordEngagement(ctx context.Context, postID uint, delta repository.EngagementDelta) error
	TagPost(ctx context.Context, postID uint, name string) error
	PostsByTag(ctx context.Context, name string) ([]repository.Post, error)
	SearchPosts(ctx context.Context, term string, limit int) ([]repository.Post, error)
}

type postUsecase struct {
	postStore repository.PostStore
}

func NewPostUsecase(postStore repository.PostStore) PostUsecase {
	return &postUsecase{postStore: postStore}
}

// CreatePost persists a post and its commit associations atomically. The
// rollup counters are computed inside the same transaction from the
// referenced commits.
func (u *postUsecase) CreatePost(ctx context.Context, input CreatePostInput) (*repository.Post, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("post title is required")
	}
	if input.Kind == "" {
		input.Kind = domain.PostKindGeneral
	}
	if input.Template == "" {
		input.Template = domain.PostTemplateGeneral
	}
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("invalid post kind %q", input.Kind)
	}
	if !input.Template.Valid() {
		return nil, fmt.Errorf("invalid post template %q", input.Template)
	}

	post := &repository.Post{
		RepositoryID:          input.RepositoryID,
		Kind:                  input.Kind,
		Template:              input.Template,
		Title:                 input.Title,
		Summary:               input.Summary,
		Explanation:           input.Explanation,
		ContentHTML:           input.ContentHTML,
		FilePath:              input.FilePath,
		TimePeriod:            input.TimePeriod,
		TargetAudience:        input.TargetAudience,
		GenerationTimeSeconds: input.GenerationTimeSeconds,
		TokensUsed:            input.TokensUsed,
	}

	if err := u.postStore.CreatePost(ctx, post, input.CommitIDs); err != nil {
		return nil, err
	}
	return post, nil
}

func (u *postUsecase) GetPost(ctx context.Context, id uint) (*repository.Post, error) {
	return u.postStore.GetPostByID(ctx, id)
}

func (u *postUsecase) ListPosts(ctx context.Context, repositoryID uint, query dtos.APIPagingDto) ([]repository.Post, dtos.PagingInfo, error) {
	return u.postStore.ListPostsByRepository(ctx, repositoryID, query)
}

// RecordEngagement applies counter increments. Decrements are not a thing;
// the ledger only ever counts up.
func (u *postUsecase) RecordEngagement(ctx context.Context, postID uint, delta repository.EngagementDelta) error {
	if delta.Views < 0 || delta.Likes < 0 || delta.Shares < 0 {
		return fmt.Errorf("engagement deltas must be non-negative")
	}
	return u.postStore.IncrementEngagement(ctx, postID, delta)
}

func (u *postUsecase) TagPost(ctx context.Context, postID uint, name string) error {
	return u.postStore.TagPost(ctx, postID, name)
}

func (u *postUsecase) PostsByTag(ctx context.Context, name string) ([]repository.Post, error) {
	return u.postStore.GetPostsByTag(ctx, name)
}

func (u *postUsecase) SearchPosts(ctx context.Context, term string, limit int) ([]repository.Post, error) {
	return u.postStore.SearchPosts(ctx, term, limit)
}
