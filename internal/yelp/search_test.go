package yelp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "yelp-test-key")
	c.HTTP = srv.Client()
	return c
}

func TestNewClient_DefaultURL(t *testing.T) {
	c := NewClient("  ", "k")
	assert.Equal(t, DefaultURL, c.URL)
}

func TestTopRestaurants_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer yelp-test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, `categories: "restaurants"`)
		assert.Contains(t, body.Query, `sort_by: "rating"`)
		assert.Equal(t, "94107", body.Variables["location"])
		assert.EqualValues(t, SearchLimit, body.Variables["limit"])

		_, _ = w.Write([]byte(`{"data":{"search":{"business":[{"name":"Joe's Diner"},{"name":"  "},{"name":"Tartine"}]}}}`))
	})

	names, err := c.TopRestaurants(context.Background(), " 94107 ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Joe's Diner", "Tartine"}, names)
}

func TestTopRestaurants_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"search":{"business":[]}}}`))
	})

	names, err := c.TopRestaurants(context.Background(), "94107")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestTopRestaurants_GraphQLErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"search":null},"errors":[{"message":"Invalid location","extensions":{"code":"LOCATION_NOT_FOUND"}}]}`))
	})

	_, err := c.TopRestaurants(context.Background(), "00000")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGraphQL)
	assert.Contains(t, err.Error(), "LOCATION_NOT_FOUND: Invalid location")
}

func TestTopRestaurants_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"TOKEN_MISSING"}}`))
	})

	_, err := c.TopRestaurants(context.Background(), "94107")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 401")
}

func TestTopRestaurants_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := c.TopRestaurants(context.Background(), "94107")
	assert.Error(t, err)
}

func TestTopRestaurants_MissingSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	_, err := c.TopRestaurants(context.Background(), "94107")
	assert.Error(t, err)
}

func TestTopRestaurants_EmptyPostalCode(t *testing.T) {
	c := NewClient("", "k")
	_, err := c.TopRestaurants(context.Background(), "")
	assert.Error(t, err)
}
