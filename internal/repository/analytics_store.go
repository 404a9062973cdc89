package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/just-nibble/git-digest/pkg/errcodes"
	"gorm.io/gorm"
)

// AnalyticsStore defines database operations on the analytics ledger.
// Events are append-only; the only deletion path is retention.
type AnalyticsStore interface {
	RecordEvent(ctx context.Context, event *AnalyticsEvent) error
	CountEvents(ctx context.Context, postID uint, eventType string) (int64, error)
	DeleteEventsBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}

// GormAnalyticsStore is a GORM-based implementation of AnalyticsStore
type GormAnalyticsStore struct {
	db *gorm.DB
}

// NewGormAnalyticsStore initializes a new GormAnalyticsStore
func NewGormAnalyticsStore(db *gorm.DB) AnalyticsStore {
	return &GormAnalyticsStore{db: db}
}

// RecordEvent appends one interaction. The event type is not validated
// against a closed set; new kinds need no schema change.
func (s *GormAnalyticsStore) RecordEvent(ctx context.Context, event *AnalyticsEvent) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", event.PostID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check post existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("post %d: %w", event.PostID, errcodes.ErrReferentialViolation)
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

func (s *GormAnalyticsStore) CountEvents(ctx context.Context, postID uint, eventType string) (int64, error) {
	var count int64
	db := s.db.WithContext(ctx).Model(&AnalyticsEvent{}).Where("post_id = ?", postID)
	if eventType != "" {
		db = db.Where("event_type = ?", eventType)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// DeleteEventsBefore prunes aged events in bounded batches so the delete
// never holds a long-lived lock across the whole table.
func (s *GormAnalyticsStore) DeleteEventsBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	var total int64
	for {
		sub := s.db.Model(&AnalyticsEvent{}).Select("id").
			Where("created_at < ?", cutoff).Limit(batchSize)
		tx := s.db.WithContext(ctx).Where("id IN (?)", sub).Delete(&AnalyticsEvent{})
		if tx.Error != nil {
			return total, fmt.Errorf("failed to delete events: %w", tx.Error)
		}
		total += tx.RowsAffected
		if tx.RowsAffected < int64(batchSize) {
			return total, nil
		}
	}
}
