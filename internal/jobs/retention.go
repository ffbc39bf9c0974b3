package jobs

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultHistoryRetention keeps three months of search history.
const DefaultHistoryRetention = 90 * 24 * time.Hour

// SearchHistoryStore is the slice of the history repository the retention
// job needs.
type SearchHistoryStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// HistoryRetentionProcessor prunes search history past the retention window.
// History is best-effort telemetry, so old rows carry no product value and
// are removed on a schedule.
type HistoryRetentionProcessor struct {
	store     SearchHistoryStore
	retention time.Duration
}

// NewHistoryRetentionProcessor creates a new HistoryRetentionProcessor instance
func NewHistoryRetentionProcessor(store SearchHistoryStore, retention time.Duration) *HistoryRetentionProcessor {
	if retention <= 0 {
		retention = DefaultHistoryRetention
	}
	return &HistoryRetentionProcessor{
		store:     store,
		retention: retention,
	}
}

// ProcessJobs implements the JobProcessor interface
func (p *HistoryRetentionProcessor) ProcessJobs(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-p.retention)

	deleted, err := p.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune search history: %w", err)
	}

	if deleted > 0 {
		log.Printf("Pruned %d search history rows older than %s", deleted, cutoff.Format(time.RFC3339))
	}
	return nil
}
