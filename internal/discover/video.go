package discover

import (
	"context"
	"net/http"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

// VideoAdapter surfaces video coverage via a site-restricted web search.
type VideoAdapter struct {
	Client   *http.Client
	Endpoint string
	APIKey   string
	Limit    int
}

func (a *VideoAdapter) Name() string                 { return "video" }
func (a *VideoAdapter) SourceType() model.SourceType { return model.SourceTypeVideo }

func (a *VideoAdapter) Discover(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate {
	if a.APIKey == "" {
		return nil
	}

	query := analysis.Claim.Text + " site:youtube.com"
	results := braveSearch(ctx, a.Client, a.Endpoint, a.APIKey, query, a.Limit)

	var out []model.DiscoveryCandidate
	for _, r := range results {
		out = append(out, model.DiscoveryCandidate{
			URL:         r.URL,
			Title:       r.Title,
			Description: r.Snippet,
			SourceName:  hostOf(r.URL),
			SourceType:  model.SourceTypeVideo,
			Platform:    "youtube",
			Credibility: CredibilityFor(r.URL),
		})
	}
	return out
}
