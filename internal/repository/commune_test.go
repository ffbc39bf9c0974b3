//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/elsouk/elsouk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommuneRepository_GetCoordinatesByName(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewCommuneRepository(pool)

	// Seeded by migrations.
	coords, err := repo.GetCoordinatesByName(ctx, "Alger Centre")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 36.7631, coords.Latitude, 0.001)
	assert.InDelta(t, 3.0573, coords.Longitude, 0.001)
}

func TestCommuneRepository_GetCoordinatesByName_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewCommuneRepository(pool)

	coords, err := repo.GetCoordinatesByName(ctx, "ORAN")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 35.6971, coords.Latitude, 0.001)
}

func TestCommuneRepository_GetCoordinatesByName_Unknown(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewCommuneRepository(pool)

	coords, err := repo.GetCoordinatesByName(ctx, "Atlantis")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestCommuneRepository_GetCoordinatesByName_UnparseableCoordinates(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	_, err := pool.Exec(ctx,
		`INSERT INTO communes (id, name, wilaya, latitude, longitude)
		 VALUES ('commune-bad', 'Brisville', 'Test', 'n/a', '3.05')`)
	require.NoError(t, err)

	_, err = pool.Exec(ctx,
		`INSERT INTO communes (id, name, wilaya, latitude, longitude)
		 VALUES ('commune-null', 'Videville', 'Test', NULL, NULL)`)
	require.NoError(t, err)

	repo := NewCommuneRepository(pool)

	// Malformed reference rows are treated as "no coordinates", not errors.
	coords, err := repo.GetCoordinatesByName(ctx, "Brisville")
	require.NoError(t, err)
	assert.Nil(t, coords)

	coords, err = repo.GetCoordinatesByName(ctx, "Videville")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestCommuneRepository_ListNames(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewCommuneRepository(pool)

	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, names)
	assert.Contains(t, names, "Alger Centre")
	assert.Contains(t, names, "Tamanrasset")
}
