package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/listings/lst-1", r.URL.Path)
		assert.Equal(t, "user-42", r.Header.Get("X-User-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"lst-1"}}`))
	}))
	defer server.Close()

	apiClient, err := NewAPIClientWithConfig(server.URL, "user-42")
	require.NoError(t, err)

	resp, err := apiClient.Get("/listings/lst-1")
	require.NoError(t, err)

	var data map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "lst-1", data["id"])
}

func TestAPIClient_Post_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "clio", body["search_term"])

		w.Write([]byte(`{"data":{"items":[],"count":0}}`))
	}))
	defer server.Close()

	apiClient, err := NewAPIClientWithConfig(server.URL, "")
	require.NoError(t, err)

	_, err = apiClient.Post("/search", map[string]string{"search_term": "clio"})
	require.NoError(t, err)
}

func TestAPIClient_AnonymousOmitsUserHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-User-Id"]
		assert.False(t, present)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	apiClient, err := NewAPIClientWithConfig(server.URL, "")
	require.NoError(t, err)

	_, err = apiClient.Get("/health")
	require.NoError(t, err)
}

func TestAPIClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"listing not found"}`))
	}))
	defer server.Close()

	apiClient, err := NewAPIClientWithConfig(server.URL, "")
	require.NoError(t, err)

	_, err = apiClient.Get("/listings/missing")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "listing not found", apiErr.Message)
}

func TestAPIClient_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	apiClient, err := NewAPIClientWithConfig(server.URL, "")
	require.NoError(t, err)

	_, err = apiClient.Get("/search/quick")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "upstream unavailable")
}
