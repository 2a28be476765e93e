package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/almanacai/almanac/internal/models"
)

// WikipediaService fetches introductory article extracts from the
// MediaWiki action API, following redirects.
type WikipediaService struct {
	apiURL string
	client *http.Client
}

func NewWikipediaService(apiURL string, timeout time.Duration) *WikipediaService {
	return &WikipediaService{
		apiURL: apiURL,
		client: &http.Client{Timeout: timeout},
	}
}

type wikiPage struct {
	Title   string           `json:"title"`
	Extract string           `json:"extract"`
	FullURL string           `json:"fullurl"`
	Missing *json.RawMessage `json:"missing"` // present (often empty) when the page does not exist
}

type wikiResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

// Summary returns the title, intro extract and canonical URL for the
// best page matching query.
func (s *WikipediaService) Summary(ctx context.Context, query string) (*models.ArticleSummary, error) {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {query},
		"prop":        {"extracts|info"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"inprop":      {"url"},
		"redirects":   {"1"},
	}

	var payload wikiResponse
	if err := getJSON(ctx, s.client, s.apiURL+"?"+params.Encode(), "wikipedia", &payload); err != nil {
		return nil, err
	}

	if len(payload.Query.Pages) == 0 {
		return nil, &NotFoundError{Upstream: "wikipedia", Query: query}
	}

	// The API keys pages by ID; a single-title query yields one entry.
	var page wikiPage
	for _, p := range payload.Query.Pages {
		page = p
		break
	}

	if page.Missing != nil {
		return nil, &NotFoundError{Upstream: "wikipedia", Query: query}
	}
	if page.Title == "" || page.Extract == "" || page.FullURL == "" {
		return nil, &SchemaError{Upstream: "wikipedia", Reason: "page entry missing title/extract/url"}
	}

	return &models.ArticleSummary{
		Title:   page.Title,
		Summary: page.Extract,
		URL:     page.FullURL,
	}, nil
}
