package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/just-nibble/git-digest/internal/repository"
)

// EventContext carries the optional request context for one interaction.
type EventContext struct {
	UserID    string
	UserAgent string
	IPAddress string
	Referrer  string
}

type AnalyticsUsecase interface {
	RecordEvent(ctx context.Context, postID uint, eventType string, evCtx EventContext) error
	CommentCount(ctx context.Context, postID uint) (int64, error)
}

type analyticsUsecase struct {
	analyticsStore repository.AnalyticsStore
}

func NewAnalyticsUsecase(analyticsStore repository.AnalyticsStore) AnalyticsUsecase {
	return &analyticsUsecase{analyticsStore: analyticsStore}
}

// RecordEvent appends one interaction. Event types are an open vocabulary;
// only emptiness and length are checked.
func (u *analyticsUsecase) RecordEvent(ctx context.Context, postID uint, eventType string, evCtx EventContext) error {
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return fmt.Errorf("event type is required")
	}
	if len(eventType) > 50 {
		return fmt.Errorf("event type exceeds 50 characters")
	}

	event := &repository.AnalyticsEvent{
		PostID:    postID,
		EventType: eventType,
		UserID:    evCtx.UserID,
		UserAgent: evCtx.UserAgent,
		IPAddress: evCtx.IPAddress,
		Referrer:  evCtx.Referrer,
	}
	return u.analyticsStore.RecordEvent(ctx, event)
}

func (u *analyticsUsecase) CommentCount(ctx context.Context, postID uint) (int64, error) {
	return u.analyticsStore.CountEvents(ctx, postID, "comment")
}
