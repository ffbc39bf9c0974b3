package service

import (
	"context"
	"testing"

	"github.com/elsouk/elsouk/internal/cache"
	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommuneRepository struct {
	mock.Mock
}

func (m *MockCommuneRepository) GetCoordinatesByName(ctx context.Context, name string) (*geo.Coordinates, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Coordinates), args.Error(1)
}

var (
	algerCentre = geo.Coordinates{Latitude: 36.7631, Longitude: 3.0573}
	oranCoords  = geo.Coordinates{Latitude: 35.6971, Longitude: -0.6308}
	hydraCoords = geo.Coordinates{Latitude: 36.7411, Longitude: 3.0314}
)

func newDistanceService(repo CommuneRepository) *DistanceService {
	return NewDistanceService(repo, cache.NewMemory())
}

func TestCommuneCoordinates_NormalizesAndCaches(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "hydra").Return(&hydraCoords, nil).Once()

	first := svc.CommuneCoordinates(context.Background(), "  Hydra ")
	second := svc.CommuneCoordinates(context.Background(), "HYDRA")

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, hydraCoords, *first)

	mockRepo.AssertNumberOfCalls(t, "GetCoordinatesByName", 1)
}

func TestCommuneCoordinates_BlankName(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	assert.Nil(t, svc.CommuneCoordinates(context.Background(), "   "))
	mockRepo.AssertNotCalled(t, "GetCoordinatesByName", mock.Anything, mock.Anything)
}

func TestCommuneCoordinates_AbsenceIsCached(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "atlantis").Return(nil, nil).Once()

	assert.Nil(t, svc.CommuneCoordinates(context.Background(), "atlantis"))
	assert.Nil(t, svc.CommuneCoordinates(context.Background(), "atlantis"))

	mockRepo.AssertNumberOfCalls(t, "GetCoordinatesByName", 1)
}

func TestCommuneCoordinates_LookupErrorCachedAsAbsent(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "hydra").Return(nil, assert.AnError).Once()

	assert.Nil(t, svc.CommuneCoordinates(context.Background(), "hydra"))
	// The failure is cached; the repository is not retried.
	assert.Nil(t, svc.CommuneCoordinates(context.Background(), "hydra"))

	mockRepo.AssertNumberOfCalls(t, "GetCoordinatesByName", 1)
}

func TestCommuneDistance(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "alger centre").Return(&algerCentre, nil)
	mockRepo.On("GetCoordinatesByName", mock.Anything, "oran").Return(&oranCoords, nil)

	distance := svc.CommuneDistance(context.Background(), "Alger Centre", "Oran")

	require.NotNil(t, distance)
	assert.InDelta(t, 355, *distance, 15)
}

func TestCommuneDistance_BlankOrUnknownCommune(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "oran").Return(&oranCoords, nil)
	mockRepo.On("GetCoordinatesByName", mock.Anything, "atlantis").Return(nil, nil)

	assert.Nil(t, svc.CommuneDistance(context.Background(), "", "Oran"))
	assert.Nil(t, svc.CommuneDistance(context.Background(), "Oran", "  "))
	assert.Nil(t, svc.CommuneDistance(context.Background(), "Atlantis", "Oran"))
}

func listingResult(commune string) *SearchResult {
	return &SearchResult{Listing: &domain.Listing{ID: "lst-" + commune, Commune: commune}}
}

func TestEnrichWithDistance_EmptyInput(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	results := svc.EnrichWithDistance(context.Background(), []*SearchResult{}, "Hydra")

	assert.Empty(t, results)
	mockRepo.AssertNotCalled(t, "GetCoordinatesByName", mock.Anything, mock.Anything)
}

func TestEnrichWithDistance_BlankReferenceSkipsLookups(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	results := svc.EnrichWithDistance(context.Background(), []*SearchResult{listingResult("Oran")}, "  ")

	require.Len(t, results, 1)
	assert.Nil(t, results[0].DistanceKm)
	mockRepo.AssertNotCalled(t, "GetCoordinatesByName", mock.Anything, mock.Anything)
}

func TestEnrichWithDistance_UnresolvableReferenceSkipsPerListingLookups(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "atlantis").Return(nil, nil).Once()

	results := svc.EnrichWithDistance(context.Background(), []*SearchResult{listingResult("Oran")}, "Atlantis")

	require.Len(t, results, 1)
	assert.Nil(t, results[0].DistanceKm)
	// Only the reference itself was looked up.
	mockRepo.AssertNumberOfCalls(t, "GetCoordinatesByName", 1)
}

func TestEnrichWithDistance_AnnotatesAndPreservesOrder(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "hydra").Return(&hydraCoords, nil)
	mockRepo.On("GetCoordinatesByName", mock.Anything, "oran").Return(&oranCoords, nil)
	mockRepo.On("GetCoordinatesByName", mock.Anything, "alger centre").Return(&algerCentre, nil)
	mockRepo.On("GetCoordinatesByName", mock.Anything, "atlantis").Return(nil, nil)

	input := []*SearchResult{
		listingResult("Oran"),
		listingResult("Atlantis"),
		listingResult(""),
		listingResult("Alger Centre"),
	}

	results := svc.EnrichWithDistance(context.Background(), input, "Hydra")

	require.Len(t, results, 4)
	assert.Equal(t, "lst-Oran", results[0].Listing.ID)
	assert.Equal(t, "lst-Atlantis", results[1].Listing.ID)
	assert.Equal(t, "lst-", results[2].Listing.ID)
	assert.Equal(t, "lst-Alger Centre", results[3].Listing.ID)

	require.NotNil(t, results[0].DistanceKm)
	assert.InDelta(t, 350, *results[0].DistanceKm, 20)

	// Unknown and blank communes stay unannotated.
	assert.Nil(t, results[1].DistanceKm)
	assert.Nil(t, results[2].DistanceKm)

	require.NotNil(t, results[3].DistanceKm)
	assert.InDelta(t, 3.3, *results[3].DistanceKm, 1)
}

func TestEnrichWithDistance_DuplicateCommunesHitCacheOnce(t *testing.T) {
	mockRepo := new(MockCommuneRepository)
	svc := newDistanceService(mockRepo)

	mockRepo.On("GetCoordinatesByName", mock.Anything, "hydra").Return(&hydraCoords, nil).Once()
	mockRepo.On("GetCoordinatesByName", mock.Anything, "oran").Return(&oranCoords, nil)

	// Resolve the reference first so the fan-out only races on "oran".
	svc.CommuneCoordinates(context.Background(), "Hydra")

	input := []*SearchResult{listingResult("Oran"), listingResult("Oran"), listingResult("Oran")}
	results := svc.EnrichWithDistance(context.Background(), input, "Hydra")

	for _, r := range results {
		require.NotNil(t, r.DistanceKm)
	}
}
