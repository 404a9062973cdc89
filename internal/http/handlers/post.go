package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/response"
)

// PostHandler serves the post aggregate endpoints
type PostHandler struct {
	posts usecases.PostUsecase
	stats usecases.StatsUsecase
}

func NewPostHandler(posts usecases.PostUsecase, stats usecases.StatsUsecase) *PostHandler {
	return &PostHandler{posts: posts, stats: stats}
}

// Create is the summarizer boundary: a chosen commit set plus generated
// content comes in, a post with snapshotted rollups comes out.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.posts.CreatePost(r.Context(), usecases.CreatePostInput{
		RepositoryID:          req.RepositoryID,
		Kind:                  domain.PostKind(req.Kind),
		Template:              domain.PostTemplate(req.Template),
		CommitIDs:             req.CommitIDs,
		Title:                 req.Title,
		Summary:               req.Summary,
		Explanation:           req.Explanation,
		ContentHTML:           req.ContentHTML,
		FilePath:              req.FilePath,
		TimePeriod:            req.TimePeriod,
		TargetAudience:        req.TargetAudience,
		GenerationTimeSeconds: req.GenerationTimeSeconds,
		TokensUsed:            req.TokensUsed,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusCreated, postResponse(post))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, postResponse(post))
}

func (h *PostHandler) ListByRepository(w http.ResponseWriter, r *http.Request) {
	repoID, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid repository id")
		return
	}

	posts, pageInfo, err := h.posts.ListPosts(r.Context(), repoID, pagingFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	out := dtos.MultiPostsResponse{PageInfo: pageInfo}
	for i := range posts {
		out.Posts = append(out.Posts, postResponse(&posts[i]))
	}
	response.SuccessResponse(w, http.StatusOK, out)
}

// RecordEngagement is the write-only engagement endpoint for the web layer.
func (h *PostHandler) RecordEngagement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req dtos.EngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	delta := repository.EngagementDelta{Views: req.Views, Likes: req.Likes, Shares: req.Shares}
	if err := h.posts.RecordEngagement(r.Context(), id, delta); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) Tag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req dtos.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.posts.TagPost(r.Context(), id, req.Name); err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, map[string]string{"tag": req.Name})
}

func (h *PostHandler) ByTag(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("tag")
	if name == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "tag name is required")
		return
	}

	posts, err := h.posts.PostsByTag(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]dtos.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, postResponse(&posts[i]))
	}
	response.SuccessResponse(w, http.StatusOK, out)
}

func (h *PostHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "search term is required")
		return
	}

	posts, err := h.posts.SearchPosts(r.Context(), term, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]dtos.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, postResponse(&posts[i]))
	}
	response.SuccessResponse(w, http.StatusOK, out)
}

func (h *PostHandler) Performance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	perf, err := h.stats.PostPerformance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, perf)
}

func postResponse(p *repository.Post) dtos.PostResponse {
	out := dtos.PostResponse{
		ID:                p.ID,
		RepositoryID:      p.RepositoryID,
		Kind:              string(p.Kind),
		Template:          string(p.Template),
		Title:             p.Title,
		Summary:           p.Summary,
		TimePeriod:        p.TimePeriod,
		TargetAudience:    p.TargetAudience,
		CommitCount:       p.CommitCount,
		LinesAdded:        p.LinesAdded,
		LinesRemoved:      p.LinesRemoved,
		FilesChanged:      p.FilesChanged,
		ContributorsCount: p.ContributorsCount,
		BreakingChanges:   p.BreakingChanges,
		SecurityFixes:     p.SecurityFixes,
		Views:             p.Views,
		Likes:             p.Likes,
		Shares:            p.Shares,
		CreatedAt:         p.CreatedAt,
	}
	for _, t := range p.Tags {
		out.Tags = append(out.Tags, t.Name)
	}
	return out
}
