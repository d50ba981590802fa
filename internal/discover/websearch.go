package discover

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

// WebSearchAdapter queries a Brave-compatible web search API.
type WebSearchAdapter struct {
	Client   *http.Client
	Endpoint string
	APIKey   string
	Limit    int
}

func (a *WebSearchAdapter) Name() string                 { return "web_search" }
func (a *WebSearchAdapter) SourceType() model.SourceType { return model.SourceTypeWeb }

func (a *WebSearchAdapter) Discover(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate {
	if a.APIKey == "" {
		return nil
	}

	results := braveSearch(ctx, a.Client, a.Endpoint, a.APIKey, analysis.Claim.Text, a.Limit)

	var out []model.DiscoveryCandidate
	for _, r := range results {
		out = append(out, model.DiscoveryCandidate{
			URL:         r.URL,
			Title:       r.Title,
			Description: r.Snippet,
			SourceName:  hostOf(r.URL),
			SourceType:  TypeFor(r.URL),
			Credibility: CredibilityFor(r.URL),
		})
	}
	return out
}

type searchResult struct {
	Title   string
	URL     string
	Snippet string
}

// braveSearch calls the search API and decodes the web-results block.
// Failures of any kind return nil: the fan-out treats a dead channel as an
// empty one.
func braveSearch(ctx context.Context, client *http.Client, endpoint, apiKey, query string, limit int) []searchResult {
	if client == nil {
		client = http.DefaultClient
	}
	u := endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var raw struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil
	}

	var out []searchResult
	for i, r := range raw.Web.Results {
		if i >= limit {
			break
		}
		out = append(out, searchResult{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return out
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := parsed.Hostname()
	if len(host) > 4 && host[:4] == "www." {
		host = host[4:]
	}
	return host
}
