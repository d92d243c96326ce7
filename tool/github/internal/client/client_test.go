package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSuccess(t *testing.T) {
	var gotAuth, gotAccept, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]any{"total_count": 2})
	}))
	defer srv.Close()

	c := New("tok-123", srv.Client())

	var out map[string]any
	err := c.Get(context.Background(), srv.URL+"/search/issues",
		map[string]string{"q": "is:open no:label"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/vnd.github.v3+json", gotAccept)
	assert.Equal(t, "is:open no:label", gotQuery)
	assert.Equal(t, map[string]any{"total_count": float64(2)}, out)
}

func TestGetNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("tok", srv.Client())

	var out map[string]any
	err := c.Get(context.Background(), srv.URL, nil, &out)
	require.Error(t, err)
	assert.Nil(t, out)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestPostSuccess(t *testing.T) {
	var gotBody []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode([]map[string]any{{"name": "bot triaged"}})
	}))
	defer srv.Close()

	c := New("tok", srv.Client())

	var out []map[string]any
	err := c.Post(context.Background(), srv.URL, []string{"core", "bot triaged"}, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "bot triaged"}, gotBody)
	require.Len(t, out, 1)
	assert.Equal(t, "bot triaged", out[0]["name"])
}

func TestPostNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("tok", srv.Client())

	err := c.Post(context.Background(), srv.URL, map[string]string{"x": "y"}, nil)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestGetEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New("tok", srv.Client())
	require.NoError(t, c.Get(context.Background(), srv.URL, nil, nil))
}
