package yelp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	DefaultURL = "https://api.yelp.com/v3/graphql"

	// SearchLimit is the most restaurants requested per lookup.
	SearchLimit = 20
)

const topRestaurantsQuery = `
query TopRestaurants($location: String!, $limit: Int!) {
  search(location: $location, limit: $limit, sort_by: "rating", categories: "restaurants") {
    business {
      name
    }
  }
}`

type searchData struct {
	Search *struct {
		Business []struct {
			Name string `json:"name"`
		} `json:"business"`
	} `json:"search"`
}

// Client queries the Yelp Fusion GraphQL endpoint.
type Client struct {
	URL    string
	APIKey string
	HTTP   *http.Client
}

func NewClient(url, apiKey string) *Client {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultURL
	}
	return &Client{URL: url, APIKey: apiKey, HTTP: http.DefaultClient}
}

// TopRestaurants returns up to SearchLimit restaurant names near postalCode,
// highest rated first as ordered by Yelp. An empty result is not an error.
func (c *Client) TopRestaurants(ctx context.Context, postalCode string) ([]string, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, errors.New("yelp search: empty postal code")
	}

	vars := map[string]any{
		"location": postalCode,
		"limit":    SearchLimit,
	}
	res, _, err := PostGraphQL[searchData](ctx, c.HTTP, c.URL, c.APIKey, topRestaurantsQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("yelp search: %w", err)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("yelp search: %w", err)
	}
	if res.Data.Search == nil {
		return nil, fmt.Errorf("yelp search: response has no search field")
	}

	names := make([]string, 0, len(res.Data.Search.Business))
	for _, b := range res.Data.Search.Business {
		if n := strings.TrimSpace(b.Name); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
