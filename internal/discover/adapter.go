package discover

import (
	"context"
	"net/http"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

// Adapter queries one external discovery channel. Implementations must never
// return an error: internal failures and timeouts yield an empty slice so one
// dead channel cannot stall the fan-out.
type Adapter interface {
	// Name identifies the adapter in logs and methodology notes.
	Name() string

	// SourceType is the category this adapter's candidates carry by default.
	SourceType() model.SourceType

	// Discover returns a bounded list of candidate references for the
	// analyzed claim. It must respect ctx cancellation.
	Discover(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate
}

// NewAdapterSet builds the closed set of source adapters. The fan-out and the
// tests iterate this slice; there is no runtime registration.
func NewAdapterSet(cfg *model.Config, client *http.Client) []Adapter {
	limit := cfg.Discovery.PerAdapterLimit
	if limit <= 0 {
		limit = 10
	}
	return []Adapter{
		&WebSearchAdapter{
			Client:   client,
			Endpoint: cfg.Discovery.SearchEndpoint,
			APIKey:   cfg.Discovery.SearchAPIKey,
			Limit:    limit,
		},
		&NewsAdapter{
			Client:   client,
			Endpoint: cfg.Discovery.NewsEndpoint,
			APIKey:   cfg.Discovery.NewsAPIKey,
			Limit:    limit,
		},
		&FactCheckAdapter{
			Client:   client,
			Endpoint: cfg.Discovery.SearchEndpoint,
			APIKey:   cfg.Discovery.SearchAPIKey,
			Limit:    limit,
		},
		&AcademicAdapter{Client: client, Limit: limit},
		&SocialAdapter{Client: client, Limit: limit},
		&VideoAdapter{
			Client:   client,
			Endpoint: cfg.Discovery.SearchEndpoint,
			APIKey:   cfg.Discovery.SearchAPIKey,
			Limit:    limit,
		},
	}
}
