package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SearchHistoryEntry captures one executed search for a signed-in user.
type SearchHistoryEntry struct {
	UserID       string
	SearchQuery  string
	CategoryID   string
	Filters      SearchFilters
	ResultsCount int
}

// SearchHistoryRecord is the persisted form of an entry.
type SearchHistoryRecord struct {
	ID           string
	UserID       string
	SearchQuery  string
	CategoryID   string
	Filters      SearchFilters
	ResultsCount int
	CreatedAt    time.Time
}

// SearchHistoryRepository persists executed searches.
type SearchHistoryRepository interface {
	InsertSearch(ctx context.Context, record SearchHistoryRecord) error
	// DeleteOlderThan removes history rows created before the cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SearchHistoryRecorder records executed searches on a best-effort basis.
// Recording is telemetry: it must never affect the surrounding search flow,
// so insert failures are logged and swallowed.
type SearchHistoryRecorder struct {
	repo SearchHistoryRepository
}

// NewSearchHistoryRecorder creates a new SearchHistoryRecorder instance
func NewSearchHistoryRecorder(repo SearchHistoryRepository) *SearchHistoryRecorder {
	return &SearchHistoryRecorder{repo: repo}
}

// Record persists one executed search. Anonymous users and blank queries are
// never recorded; in both cases Record returns without touching the store.
func (r *SearchHistoryRecorder) Record(ctx context.Context, entry SearchHistoryEntry) {
	query := strings.TrimSpace(entry.SearchQuery)
	if entry.UserID == "" || query == "" {
		return
	}

	record := SearchHistoryRecord{
		ID:           uuid.NewString(),
		UserID:       entry.UserID,
		SearchQuery:  query,
		CategoryID:   entry.CategoryID,
		Filters:      entry.Filters,
		ResultsCount: entry.ResultsCount,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.repo.InsertSearch(ctx, record); err != nil {
		log.Printf("search history insert failed for user %s: %v", entry.UserID, err)
	}
}

// RecordDetached records the search in a detached goroutine so the caller
// never waits on history persistence. The write runs on a background context
// because the request that triggered it may already be finished.
func (r *SearchHistoryRecorder) RecordDetached(entry SearchHistoryEntry) {
	go r.Record(context.Background(), entry)
}
