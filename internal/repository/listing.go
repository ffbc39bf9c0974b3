package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/pagination"
	"github.com/elsouk/elsouk/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `id, user_id, category_id, subcategory_id, category_slug, title, description,
	 price, currency, listing_type, offer_type, status, wilaya, commune, attributes, photo_keys,
	 created_at, updated_at`

type ListingRepository struct {
	db dbtx
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: pool}
}

func NewListingRepositoryWithTx(tx pgx.Tx) *ListingRepository {
	return &ListingRepository{db: tx}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO listings (id, user_id, category_id, subcategory_id, category_slug, title, description,
		 price, currency, listing_type, offer_type, status, wilaya, commune, attributes, photo_keys, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		l.ID, l.UserID, l.CategoryID, nullableString(l.SubcategoryID), nullableString(l.CategorySlug),
		l.Title, l.Description, l.Price, l.Currency, l.ListingType, nullableString(string(l.OfferType)),
		l.Status, nullableString(l.Wilaya), nullableString(l.Commune), l.Attributes, l.PhotoKeys,
		l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)

	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

// RankedSearch calls the search_listings procedure. Every filter is bound
// explicitly, nil values as SQL NULLs, so the procedure can distinguish an
// unset filter from an empty string. Rows come back ranked; the relevance
// column is carried onto the results untouched.
func (r *ListingRepository) RankedSearch(ctx context.Context, params service.RankedSearchParams, limit int) ([]*service.SearchResult, error) {
	query := `SELECT ` + listingColumns + `, relevance
		 FROM search_listings($1, $2, $3, $4, $5, $6, $7, $8)`
	args := []any{
		params.SearchTerm,
		params.Category,
		params.Subcategory,
		params.Wilaya,
		params.Commune,
		params.MinPrice,
		params.MaxPrice,
		params.ListingType,
	}

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*service.SearchResult
	for rows.Next() {
		listing, relevance, err := scanListingWithRelevance(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, &service.SearchResult{Listing: listing, Relevance: relevance})
	}
	return results, rows.Err()
}

// QueryListings composes a structured filter query. Absent fields contribute
// no predicate; results are always restricted to active listings and ordered
// newest first.
func (r *ListingRepository) QueryListings(ctx context.Context, q service.ListingQuery) ([]*service.SearchResult, error) {
	var predicates []string
	var args []any

	addPredicate := func(column string, value any) {
		args = append(args, value)
		predicates = append(predicates, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if q.CategoryID != "" {
		addPredicate("category_id", q.CategoryID)
	}
	if q.SubcategoryID != "" {
		addPredicate("subcategory_id", q.SubcategoryID)
	}
	if q.Wilaya != "" {
		addPredicate("wilaya", q.Wilaya)
	}
	if q.Commune != "" {
		addPredicate("commune", q.Commune)
	}
	if q.ListingType != "" {
		addPredicate("listing_type", string(q.ListingType))
	}
	if q.BrandID != "" {
		addPredicate("attributes->>'brand_id'", q.BrandID)
	}
	if q.ModelID != "" {
		addPredicate("attributes->>'model_id'", q.ModelID)
	}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		predicates = append(predicates, fmt.Sprintf("price >= $%d", len(args)))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		predicates = append(predicates, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = 'active'`
	if len(predicates) > 0 {
		query += " AND " + strings.Join(predicates, " AND ")
	}

	if q.Cursor != nil {
		args = append(args, q.Cursor.Timestamp, q.Cursor.LastID)
		query += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", len(args)-1, len(args))
	}

	query += " ORDER BY created_at DESC, id DESC"

	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings, err := scanListingRows(rows)
	if err != nil {
		return nil, err
	}

	results := make([]*service.SearchResult, 0, len(listings))
	for _, listing := range listings {
		results = append(results, &service.SearchResult{Listing: listing})
	}
	return results, nil
}

// ListRecent returns one page of active listings newest first, keyset
// paginated on (created_at, id).
func (r *ListingRepository) ListRecent(ctx context.Context, cursor *pagination.Cursor, limit int) (*service.ListingPage, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT `+listingColumns+`
			 FROM listings
			 WHERE status = 'active' AND (created_at, id) < ($1, $2)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`,
			cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+listingColumns+`
			 FROM listings
			 WHERE status = 'active'
			 ORDER BY created_at DESC, id DESC
			 LIMIT $1`,
			limit+1,
		)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanListingRows(rows)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	var nextCursor string
	if hasMore {
		nextCursor = pagination.CreateNextCursor(items, limit,
			func(l *domain.Listing) string { return l.ID },
			func(l *domain.Listing) time.Time { return l.CreatedAt },
		)
	}

	return &service.ListingPage{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE listings SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	var subcategoryID, categorySlug, offerType, wilaya, commune *string
	err := row.Scan(
		&l.ID, &l.UserID, &l.CategoryID, &subcategoryID, &categorySlug, &l.Title, &l.Description,
		&l.Price, &l.Currency, &l.ListingType, &offerType, &l.Status, &wilaya, &commune,
		&l.Attributes, &l.PhotoKeys, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyOptionalColumns(&l, subcategoryID, categorySlug, offerType, wilaya, commune)
	return &l, nil
}

func scanListingWithRelevance(rows pgx.Rows) (*domain.Listing, *float64, error) {
	var l domain.Listing
	var subcategoryID, categorySlug, offerType, wilaya, commune *string
	var relevance *float64
	err := rows.Scan(
		&l.ID, &l.UserID, &l.CategoryID, &subcategoryID, &categorySlug, &l.Title, &l.Description,
		&l.Price, &l.Currency, &l.ListingType, &offerType, &l.Status, &wilaya, &commune,
		&l.Attributes, &l.PhotoKeys, &l.CreatedAt, &l.UpdatedAt, &relevance,
	)
	if err != nil {
		return nil, nil, err
	}
	applyOptionalColumns(&l, subcategoryID, categorySlug, offerType, wilaya, commune)
	return &l, relevance, nil
}

func scanListingRows(rows pgx.Rows) ([]*domain.Listing, error) {
	var results []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, listing)
	}
	return results, rows.Err()
}

func applyOptionalColumns(l *domain.Listing, subcategoryID, categorySlug, offerType, wilaya, commune *string) {
	if subcategoryID != nil {
		l.SubcategoryID = *subcategoryID
	}
	if categorySlug != nil {
		l.CategorySlug = *categorySlug
	}
	if offerType != nil {
		l.OfferType = domain.OfferType(*offerType)
	}
	if wilaya != nil {
		l.Wilaya = *wilaya
	}
	if commune != nil {
		l.Commune = *commune
	}
}
