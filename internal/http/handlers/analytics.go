package handlers

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/just-nibble/git-digest/internal/http/dtos"
	"github.com/just-nibble/git-digest/internal/usecases"
	"github.com/just-nibble/git-digest/pkg/response"
)

// AnalyticsHandler serves the analytics ledger write endpoint
type AnalyticsHandler struct {
	analytics usecases.AnalyticsUsecase
}

func NewAnalyticsHandler(analytics usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req dtos.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ip, _, splitErr := net.SplitHostPort(r.RemoteAddr)
	if splitErr != nil {
		ip = r.RemoteAddr
	}

	err = h.analytics.RecordEvent(r.Context(), id, req.EventType, usecases.EventContext{
		UserID:    req.UserID,
		UserAgent: r.UserAgent(),
		IPAddress: ip,
		Referrer:  req.Referrer,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
