package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/pkg/errcodes"
	"github.com/just-nibble/git-digest/pkg/response"
)

// writeError maps the error taxonomy onto HTTP statuses. Storage failures
// fall through as 500; the core never retries.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errcodes.ErrNoRecordFound):
		response.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errcodes.ErrDuplicateCommit), errors.Is(err, errcodes.ErrDuplicateRecord):
		response.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, errcodes.ErrCrossRepositoryReference):
		response.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errcodes.ErrReferentialViolation):
		response.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func pagingFromQuery(r *http.Request) dtos.APIPagingDto {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return dtos.APIPagingDto{
		Page:      page,
		Limit:     limit,
		Sort:      q.Get("sort"),
		Direction: q.Get("direction"),
	}
}
