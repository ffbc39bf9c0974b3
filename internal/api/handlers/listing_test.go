package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/pagination"
	"github.com/elsouk/elsouk/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingProvider struct {
	mock.Mock
}

func (m *MockListingProvider) GetListing(ctx context.Context, id string) (*domain.Listing, []string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Listing), args.Get(1).([]string), args.Error(2)
}

func (m *MockListingProvider) ListRecent(ctx context.Context, cursor string, limit int) (*service.ListingPage, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingPage), args.Error(1)
}

func (m *MockListingProvider) MediaURLs(ctx context.Context, listing *domain.Listing) []string {
	args := m.Called(ctx, listing)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func requestWithURLParam(method, url, key, value string) *http.Request {
	req := httptest.NewRequest(method, url, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListingHandler_Get_Success(t *testing.T) {
	mockSvc := new(MockListingProvider)
	handler := NewListingHandler(mockSvc)

	listing := newTestListing()
	photos := []string{"https://media.example/photos/lst-123/1.jpg"}
	mockSvc.On("GetListing", mock.Anything, "lst-123").Return(listing, photos, nil)

	req := requestWithURLParam(http.MethodGet, "/listings/lst-123", "id", "lst-123")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data ListingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "lst-123", envelope.Data.ID)
	assert.Equal(t, "offre", envelope.Data.ListingType)
	assert.Equal(t, photos, envelope.Data.Photos)
	assert.Equal(t, "Offre", envelope.Data.TypeLabel)
	assert.Equal(t, "Prix", envelope.Data.PriceLabel)
	assert.Equal(t, "Vente", envelope.Data.Badge.Label)

	mockSvc.AssertExpectations(t)
}

func TestListingHandler_Get_NotFound(t *testing.T) {
	mockSvc := new(MockListingProvider)
	handler := NewListingHandler(mockSvc)

	mockSvc.On("GetListing", mock.Anything, "missing").Return(nil, nil, domain.ErrListingNotFound)

	req := requestWithURLParam(http.MethodGet, "/listings/missing", "id", "missing")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingHandler_Get_MissingID(t *testing.T) {
	handler := NewListingHandler(new(MockListingProvider))

	req := requestWithURLParam(http.MethodGet, "/listings/", "id", "")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_List_Success(t *testing.T) {
	mockSvc := new(MockListingProvider)
	handler := NewListingHandler(mockSvc)

	listing := newTestListing()
	page := &service.ListingPage{
		Items:      []*domain.Listing{listing},
		NextCursor: "next-cursor",
		HasMore:    true,
	}
	mockSvc.On("ListRecent", mock.Anything, "", 25).Return(page, nil)
	mockSvc.On("MediaURLs", mock.Anything, listing).Return([]string{"https://media.example/1.jpg"})

	req := httptest.NewRequest(http.MethodGet, "/listings?limit=25", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data pagination.PageResult[*ListingResponse] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "next-cursor", envelope.Data.Cursor)
	assert.True(t, envelope.Data.HasMore)

	mockSvc.AssertExpectations(t)
}

func TestListingHandler_List_InvalidCursor(t *testing.T) {
	mockSvc := new(MockListingProvider)
	handler := NewListingHandler(mockSvc)

	mockSvc.On("ListRecent", mock.Anything, "garbage", 0).Return(nil, pagination.ErrInvalidCursor)

	req := httptest.NewRequest(http.MethodGet, "/listings?cursor=garbage", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
