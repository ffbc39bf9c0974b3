package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/elsouk/elsouk/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchHistoryRepository stores executed searches for signed-in users.
type SearchHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewSearchHistoryRepository(pool *pgxpool.Pool) *SearchHistoryRepository {
	return &SearchHistoryRepository{pool: pool}
}

func (r *SearchHistoryRepository) InsertSearch(ctx context.Context, record service.SearchHistoryRecord) error {
	filtersJSON, _ := json.Marshal(filterSnapshot(record.Filters))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO search_history (id, user_id, search_query, category_id, filters, results_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID,
		record.UserID,
		record.SearchQuery,
		nullableString(record.CategoryID),
		filtersJSON,
		record.ResultsCount,
		record.CreatedAt,
	)
	return err
}

func (r *SearchHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM search_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

// ListByUser returns a user's recent searches, newest first.
func (r *SearchHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*service.SearchHistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, search_query, category_id, results_count, created_at
		 FROM search_history WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*service.SearchHistoryRecord
	for rows.Next() {
		var rec service.SearchHistoryRecord
		var categoryID *string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SearchQuery, &categoryID, &rec.ResultsCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if categoryID != nil {
			rec.CategoryID = *categoryID
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// filterSnapshot keeps only the filters that were actually set, so the
// stored snapshot stays readable. An empty filter set snapshots as {}.
func filterSnapshot(filters service.SearchFilters) map[string]any {
	snapshot := map[string]any{}
	if filters.CategoryID != "" {
		snapshot["category_id"] = filters.CategoryID
	}
	if filters.SubcategoryID != "" {
		snapshot["subcategory_id"] = filters.SubcategoryID
	}
	if filters.Wilaya != "" {
		snapshot["wilaya"] = filters.Wilaya
	}
	if filters.Commune != "" {
		snapshot["commune"] = filters.Commune
	}
	if filters.MinPrice != nil {
		snapshot["min_price"] = *filters.MinPrice
	}
	if filters.MaxPrice != nil {
		snapshot["max_price"] = *filters.MaxPrice
	}
	if filters.ListingType != "" {
		snapshot["listing_type"] = filters.ListingType
	}
	if filters.BrandID != "" {
		snapshot["brand_id"] = filters.BrandID
	}
	if filters.ModelID != "" {
		snapshot["model_id"] = filters.ModelID
	}
	return snapshot
}
