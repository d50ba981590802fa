package discover

import (
	"context"
	"net/http"
	"strings"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

// Sites whose verdict pages the fact-check adapter targets.
var factCheckSites = []string{
	"snopes.com",
	"politifact.com",
	"factcheck.org",
	"fullfact.org",
}

// FactCheckAdapter searches the established fact-checking site cluster. It is
// the adapter that guarantees forward progress: when the search yields
// nothing (or no API key is configured) it emits a single tagged placeholder
// so the pipeline always has at least one candidate to carry through ranking.
type FactCheckAdapter struct {
	Client   *http.Client
	Endpoint string
	APIKey   string
	Limit    int
}

func (a *FactCheckAdapter) Name() string                 { return "fact_check" }
func (a *FactCheckAdapter) SourceType() model.SourceType { return model.SourceTypeFactCheck }

func (a *FactCheckAdapter) Discover(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate {
	var out []model.DiscoveryCandidate

	if a.APIKey != "" {
		query := analysis.Claim.Text + " (" + siteFilter() + ")"
		for _, r := range braveSearch(ctx, a.Client, a.Endpoint, a.APIKey, query, a.Limit) {
			if !fromFactCheckSite(r.URL) {
				continue
			}
			out = append(out, model.DiscoveryCandidate{
				URL:         r.URL,
				Title:       r.Title,
				Description: r.Snippet,
				SourceName:  hostOf(r.URL),
				SourceType:  model.SourceTypeFactCheck,
				Credibility: CredibilityFor(r.URL),
				Verified:    true,
			})
		}
	}

	if len(out) == 0 {
		out = append(out, a.placeholder(analysis))
	}
	return out
}

// placeholder is non-factual filler tagged so downstream scoring can exclude
// it from credibility statistics and label it in the methodology note.
func (a *FactCheckAdapter) placeholder(analysis *preprocess.Analysis) model.DiscoveryCandidate {
	return model.DiscoveryCandidate{
		URL:         "https://veridict.invalid/placeholder/fact-check",
		Title:       "No fact-check coverage found",
		Description: "No established fact-checking organization has published a review of: " + analysis.Claim.Text,
		SourceName:  "fact_check_placeholder",
		SourceType:  model.SourceTypeFactCheck,
		Credibility: 0,
		Placeholder: true,
	}
}

func siteFilter() string {
	parts := make([]string, len(factCheckSites))
	for i, s := range factCheckSites {
		parts[i] = "site:" + s
	}
	return strings.Join(parts, " OR ")
}

func fromFactCheckSite(rawURL string) bool {
	host := hostOf(rawURL)
	for _, s := range factCheckSites {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}
