package discover

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

// NewsAdapter queries a NewsAPI-compatible article index.
type NewsAdapter struct {
	Client   *http.Client
	Endpoint string
	APIKey   string
	Limit    int
}

func (a *NewsAdapter) Name() string                 { return "news" }
func (a *NewsAdapter) SourceType() model.SourceType { return model.SourceTypeNews }

func (a *NewsAdapter) Discover(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate {
	if a.APIKey == "" {
		return nil
	}
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	query := analysis.Claim.Text
	if len(analysis.Keywords) >= 3 {
		query = strings.Join(analysis.Keywords[:3], " ")
	}

	u := a.Endpoint + "?q=" + url.QueryEscape(query) + "&sortBy=relevancy&pageSize=" + strconv.Itoa(a.Limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("X-Api-Key", a.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var raw struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Author      string `json:"author"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil
	}

	var out []model.DiscoveryCandidate
	for i, art := range raw.Articles {
		if i >= a.Limit {
			break
		}
		cand := model.DiscoveryCandidate{
			URL:         art.URL,
			Title:       art.Title,
			Description: art.Description,
			Author:      art.Author,
			SourceName:  art.Source.Name,
			SourceType:  model.SourceTypeNews,
			Credibility: CredibilityFor(art.URL),
		}
		if t, err := time.Parse(time.RFC3339, art.PublishedAt); err == nil {
			cand.PublishedAt = &t
		}
		out = append(out, cand)
	}
	return out
}
