package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/response"
)

// RepositoryHandler serves the repository registry endpoints
type RepositoryHandler struct {
	repositories usecases.RepositoryUsecase
	stats        usecases.StatsUsecase
}

func NewRepositoryHandler(repositories usecases.RepositoryUsecase, stats usecases.StatsUsecase) *RepositoryHandler {
	return &RepositoryHandler{repositories: repositories, stats: stats}
}

func (h *RepositoryHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRepositoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	repo, err := h.repositories.RegisterRepository(r.Context(), usecases.RegisterRepositoryInput{
		Name:          req.Name,
		FullName:      req.FullName,
		Description:   req.Description,
		URL:           req.URL,
		DefaultBranch: req.DefaultBranch,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusCreated, repositoryResponse(repo))
}

func (h *RepositoryHandler) List(w http.ResponseWriter, r *http.Request) {
	repos, err := h.repositories.ListRepositories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]dtos.RepositoryResponse, 0, len(repos))
	for i := range repos {
		out = append(out, repositoryResponse(&repos[i]))
	}
	response.SuccessResponse(w, http.StatusOK, out)
}

func (h *RepositoryHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid repository id")
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.repositories.SetActive(r.Context(), id, req.Active); err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (h *RepositoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid repository id")
		return
	}

	if err := h.repositories.DeleteRepository(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RepositoryHandler) TopContributors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid repository id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("n"))
	contributors, err := h.stats.TopContributors(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, contributors)
}

func (h *RepositoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.RepositoryStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, stats)
}

func repositoryResponse(repo *repository.Repository) dtos.RepositoryResponse {
	return dtos.RepositoryResponse{
		ID:            repo.ID,
		Name:          repo.Name,
		FullName:      repo.FullName,
		Description:   repo.Description,
		URL:           repo.URL,
		DefaultBranch: repo.DefaultBranch,
		Active:        repo.Active,
		CreatedAt:     repo.CreatedAt,
		UpdatedAt:     repo.UpdatedAt,
	}
}
