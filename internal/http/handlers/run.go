package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/response"
)

// RunHandler serves the collection run ledger endpoints
type RunHandler struct {
	runs usecases.RunUsecase
}

func NewRunHandler(runs usecases.RunUsecase) *RunHandler {
	return &RunHandler{runs: runs}
}

func (h *RunHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var req dtos.BeginRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run, err := h.runs.BeginRun(r.Context(), req.RepositoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, run)
}

func (h *RunHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid run id")
		return
	}

	var req dtos.CompleteRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.runs.CompleteRun(r.Context(), id, req.CommitsCollected, req.Success, req.ErrorMessage); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health reports recent runs with derived statuses, including open runs
// past the staleness threshold.
func (h *RunHandler) Health(w http.ResponseWriter, r *http.Request) {
	repoID, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid repository id")
		return
	}

	reports, err := h.runs.RunHealth(r.Context(), repoID, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, reports)
}
