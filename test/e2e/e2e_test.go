//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchResponse struct {
	Items []struct {
		Listing struct {
			ID           string  `json:"id"`
			Title        string  `json:"title"`
			Price        float64 `json:"price"`
			ListingType  string  `json:"listing_type"`
			TypeLabel    string  `json:"type_label"`
			PurchaseType string  `json:"purchase_type"`
			Wilaya       string  `json:"wilaya"`
			Commune      string  `json:"commune"`
		} `json:"listing"`
		Relevance     *float64 `json:"relevance"`
		DistanceKm    *float64 `json:"distance_km"`
		DistanceLabel string   `json:"distance_label"`
	} `json:"items"`
	Count int `json:"count"`
}

type listingListResponse struct {
	Items []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"items"`
	Cursor  string `json:"cursor"`
	HasMore bool   `json:"has_more"`
}

func seedListing(env *E2ETestEnv, title, commune string) *domain.Listing {
	now := time.Now().UTC().Truncate(time.Microsecond)
	l := &domain.Listing{
		ID:          uuid.NewString(),
		UserID:      "seller-1",
		CategoryID:  "cat-vehicules",
		Title:       title,
		Description: "annonce de test",
		Price:       250000,
		Currency:    "DZD",
		ListingType: domain.DBListingTypeSale,
		Status:      domain.ListingStatusActive,
		Wilaya:      "Alger",
		Commune:     commune,
		Attributes:  map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	repo := repository.NewListingRepository(env.Pool)
	require.NoError(env.T, repo.Create(env.Ctx, l))
	return l
}

func TestE2E_RankedSearchFlow(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	clio := seedListing(env, "Renault Clio 4 très propre", "Alger Centre")
	seedListing(env, "Téléviseur Samsung", "Alger Centre")

	resp, err := env.Post("/search", map[string]any{
		"search_term": "renault clio",
	}, "user-e2e")
	require.NoError(t, err)

	var sr searchResponse
	require.NoError(t, json.Unmarshal(resp.Data, &sr))
	require.Equal(t, 1, sr.Count)
	assert.Equal(t, clio.ID, sr.Items[0].Listing.ID)
	assert.Equal(t, "offre", sr.Items[0].Listing.ListingType)
	require.NotNil(t, sr.Items[0].Relevance)
	assert.Greater(t, *sr.Items[0].Relevance, float64(0))

	// History recording is detached from the request; give it a moment.
	historyRepo := repository.NewSearchHistoryRepository(env.Pool)
	require.Eventually(t, func() bool {
		records, err := historyRepo.ListByUser(env.Ctx, "user-e2e", 10)
		return err == nil && len(records) == 1
	}, 5*time.Second, 100*time.Millisecond)

	records, err := historyRepo.ListByUser(env.Ctx, "user-e2e", 10)
	require.NoError(t, err)
	assert.Equal(t, "renault clio", records[0].SearchQuery)
	assert.Equal(t, 1, records[0].ResultsCount)
}

func TestE2E_AnonymousSearchSkipsHistory(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	seedListing(env, "Clavier mécanique", "Alger Centre")

	_, err := env.Post("/search", map[string]any{
		"search_term": "clavier",
	}, "")
	require.NoError(t, err)

	// Nothing should ever show up; a short wait keeps the check honest.
	time.Sleep(500 * time.Millisecond)
	var count int
	require.NoError(t, env.Pool.QueryRow(env.Ctx,
		`SELECT COUNT(*) FROM search_history`).Scan(&count))
	assert.Zero(t, count)
}

func TestE2E_StructuredSearchWithDistance(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	alger := seedListing(env, "Appartement F3", "Alger Centre")
	oran := seedListing(env, "Appartement F2", "Oran")

	resp, err := env.Post("/search", map[string]any{
		"category_id":       "cat-vehicules",
		"reference_commune": "Hydra",
	}, "")
	require.NoError(t, err)

	var sr searchResponse
	require.NoError(t, json.Unmarshal(resp.Data, &sr))
	require.Equal(t, 2, sr.Count)

	byID := map[string]int{}
	for i, item := range sr.Items {
		// No search term means the structured path: no relevance scores.
		assert.Nil(t, item.Relevance)
		byID[item.Listing.ID] = i
	}

	algerItem := sr.Items[byID[alger.ID]]
	require.NotNil(t, algerItem.DistanceKm)
	assert.Less(t, *algerItem.DistanceKm, 10.0)
	assert.NotEmpty(t, algerItem.DistanceLabel)

	oranItem := sr.Items[byID[oran.ID]]
	require.NotNil(t, oranItem.DistanceKm)
	assert.InDelta(t, 350, *oranItem.DistanceKm, 30)
	assert.Contains(t, oranItem.DistanceLabel, "km")
}

func TestE2E_SearchValidation(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	_, err := env.Post("/search", map[string]any{
		"listing_type": "not_a_type",
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")

	_, err = env.Post("/search", map[string]any{
		"min_price": 5000,
		"max_price": 100,
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestE2E_QuickSearch(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	seedListing(env, "Vélo de route", "Alger Centre")
	seedListing(env, "Vélo électrique", "Alger Centre")

	resp, err := env.Get("/search/quick?q="+url.QueryEscape("vélo")+"&limit=1", "")
	require.NoError(t, err)

	var sr searchResponse
	require.NoError(t, json.Unmarshal(resp.Data, &sr))
	assert.Equal(t, 1, sr.Count)
}

func TestE2E_ListingsBrowse(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	var ids []string
	for i := 0; i < 3; i++ {
		l := seedListing(env, fmt.Sprintf("Annonce %d", i), "Alger Centre")
		ids = append(ids, l.ID)
		// Distinct created_at keeps the page order deterministic.
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := env.Get("/listings?limit=2", "")
	require.NoError(t, err)

	var page listingListResponse
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	require.NotEmpty(t, page.Cursor)
	assert.Equal(t, ids[2], page.Items[0].ID)

	resp, err = env.Get("/listings?limit=2&cursor="+url.QueryEscape(page.Cursor), "")
	require.NoError(t, err)

	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)
	assert.Equal(t, ids[0], page.Items[0].ID)
}

func TestE2E_GetListing(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	l := seedListing(env, "Machine à café", "Hydra")

	resp, err := env.Get("/listings/"+l.ID, "")
	require.NoError(t, err)

	var got struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		TypeLabel string `json:"type_label"`
		Badge     struct {
			Label string `json:"label"`
		} `json:"badge"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, "Machine à café", got.Title)
	assert.Equal(t, "Offre", got.TypeLabel)
	assert.Equal(t, "Vente", got.Badge.Label)

	_, err = env.Get("/listings/"+uuid.NewString(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestE2E_CLI(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()
	env.BuildBinaries()

	l := seedListing(env, "Renault Symbol 2019", "Oran")

	out, err := env.RunElsouk(t.TempDir(), "user-cli", "search", "renault")
	require.NoError(t, err, "search output: %s", out)
	assert.Contains(t, out, "Renault Symbol 2019")

	out, err = env.RunElsouk(t.TempDir(), "", "get", l.ID)
	require.NoError(t, err, "get output: %s", out)
	assert.Contains(t, out, "Renault Symbol 2019")
	assert.Contains(t, out, "Oran")

	out, err = env.RunElsouk(t.TempDir(), "", "list", "-n", "5")
	require.NoError(t, err, "list output: %s", out)
	assert.Contains(t, out, l.ID)

	out, err = env.RunElsouk(t.TempDir(), "", "quick", "renault")
	require.NoError(t, err, "quick output: %s", out)
	assert.Contains(t, out, "Renault Symbol 2019")

	// JSON output mode.
	out, err = env.RunElsouk(t.TempDir(), "", "--output", "search", "renault")
	require.NoError(t, err, "json search output: %s", out)
	var sr searchResponse
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &sr))
	assert.Equal(t, 1, sr.Count)
}
