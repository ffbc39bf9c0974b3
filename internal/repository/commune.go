package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/elsouk/elsouk/internal/geo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommuneRepository reads the communes reference table. Coordinates are
// stored as string-encoded decimals, a legacy of the original import; rows
// with missing or unparseable values resolve to "no coordinates" rather
// than an error.
type CommuneRepository struct {
	db dbtx
}

func NewCommuneRepository(pool *pgxpool.Pool) *CommuneRepository {
	return &CommuneRepository{db: pool}
}

// GetCoordinatesByName resolves a commune name case-insensitively.
// Returns (nil, nil) when the commune is unknown or has no usable
// coordinates.
func (r *CommuneRepository) GetCoordinatesByName(ctx context.Context, name string) (*geo.Coordinates, error) {
	var latitude, longitude *string
	err := r.db.QueryRow(ctx,
		`SELECT latitude, longitude FROM communes WHERE LOWER(name) = LOWER($1) LIMIT 1`,
		name,
	).Scan(&latitude, &longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if latitude == nil || longitude == nil {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(*latitude, 64)
	lon, lonErr := strconv.ParseFloat(*longitude, 64)
	if latErr != nil || lonErr != nil {
		return nil, nil
	}

	return &geo.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// ListNames returns all commune names, used to warm caches offline.
func (r *CommuneRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM communes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
