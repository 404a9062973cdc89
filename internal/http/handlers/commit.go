package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/just-nibble/git-digest/internal/domain"
	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/internal/repository"
	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/just-nibble/git-digest/pkg/response"
)

// CommitHandler serves the commit ledger endpoints
type CommitHandler struct {
	commits usecases.CommitUsecase
}

func NewCommitHandler(commits usecases.CommitUsecase) *CommitHandler {
	return &CommitHandler{commits: commits}
}

// Ingest accepts one commit from the collector. A duplicate is reported as
// 200 with the duplicate flag set, so re-runs stay idempotent.
func (h *CommitHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	repoID, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid repository id")
		return
	}

	var req dtos.IngestCommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	commit, err := h.commits.IngestCommit(r.Context(), usecases.IngestCommitInput{
		RepositoryID:   repoID,
		SHA:            req.SHA,
		Message:        req.Message,
		AuthorName:     req.AuthorName,
		AuthorEmail:    req.AuthorEmail,
		AuthorUsername: req.AuthorUsername,
		CommitterName:  req.CommitterName,
		CommitterEmail: req.CommitterEmail,
		CommitDate:     req.CommitDate,
		URL:            req.URL,
		Kind:           domain.CommitKind(req.Kind),
		Additions:      req.Additions,
		Deletions:      req.Deletions,
		TotalChanges:   req.TotalChanges,
		FilesChanged:   req.FilesChanged,
	})
	if err != nil {
		if errors.Is(err, errcodes.ErrDuplicateCommit) {
			response.SuccessResponse(w, http.StatusOK, map[string]bool{"duplicate": true})
			return
		}
		writeError(w, err)
		return
	}

	if len(req.FileChanges) > 0 {
		changes := make([]usecases.FileChangeInput, 0, len(req.FileChanges))
		for _, fc := range req.FileChanges {
			changes = append(changes, usecases.FileChangeInput{
				Filename:  fc.Filename,
				Status:    domain.FileStatus(fc.Status),
				Additions: fc.Additions,
				Deletions: fc.Deletions,
				Changes:   fc.Changes,
				Patch:     fc.Patch,
			})
		}
		if err := h.commits.AttachFileChanges(r.Context(), commit.ID, changes); err != nil {
			writeError(w, err)
			return
		}
	}

	response.SuccessResponse(w, http.StatusCreated, commitResponse(commit))
}

func (h *CommitHandler) Reclassify(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid commit id")
		return
	}

	var req dtos.ReclassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.commits.Reclassify(r.Context(), id, domain.CommitKind(req.Kind)); err != nil {
		writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, map[string]string{"kind": req.Kind})
}

// List serves the indexed query surface: time range, kind, flags.
func (h *CommitHandler) List(w http.ResponseWriter, r *http.Request) {
	repoID, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid repository id")
		return
	}

	q := r.URL.Query()
	filter := repository.CommitFilter{
		RepositoryID: repoID,
		Kind:         domain.CommitKind(q.Get("kind")),
		SecurityOnly: q.Get("security") == "true",
		BreakingOnly: q.Get("breaking") == "true",
	}
	if since := q.Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			response.ErrorResponse(w, http.StatusBadRequest, "invalid since date, use RFC3339")
			return
		}
		filter.Since = &t
	}
	if until := q.Get("until"); until != "" {
		t, err := time.Parse(time.RFC3339, until)
		if err != nil {
			response.ErrorResponse(w, http.StatusBadRequest, "invalid until date, use RFC3339")
			return
		}
		filter.Until = &t
	}

	commits, pageInfo, err := h.commits.ListCommits(r.Context(), filter, pagingFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	out := dtos.MultiCommitsResponse{PageInfo: pageInfo}
	for i := range commits {
		out.Commits = append(out.Commits, commitResponse(&commits[i]))
	}
	response.SuccessResponse(w, http.StatusOK, out)
}

func commitResponse(c *repository.Commit) dtos.CommitResponse {
	return dtos.CommitResponse{
		ID:                 c.ID,
		RepositoryID:       c.RepositoryID,
		SHA:                c.SHA,
		Message:            c.Message,
		AuthorName:         c.AuthorName,
		AuthorEmail:        c.AuthorEmail,
		CommitDate:         c.CommitDate,
		URL:                c.URL,
		Kind:               string(c.Kind),
		Additions:          c.Additions,
		Deletions:          c.Deletions,
		TotalChanges:       c.TotalChanges,
		FilesChanged:       c.FilesChanged,
		IsBreakingChange:   c.IsBreakingChange,
		AffectsSecurity:    c.AffectsSecurity,
		AffectsPerformance: c.AffectsPerformance,
	}
}
