package access

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ppiankov/veridict/internal/model"
)

// ContentFetcher is the capability the engine uses to retrieve page content.
// An error means "drop this candidate".
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Engine turns ranked candidates into Evidence with a bounded concurrent
// fan-out. Fetch failures drop the candidate silently; a phase timeout keeps
// whatever completed (best-effort, not all-or-nothing).
type Engine struct {
	fetcher   ContentFetcher
	extractor *Extractor
	workers   int
	perFetch  time.Duration
	logger    *log.Logger
}

// NewEngine creates an extraction engine.
func NewEngine(fetcher ContentFetcher, workers int, perFetch time.Duration, logger *log.Logger) *Engine {
	if workers <= 0 {
		workers = 8
	}
	return &Engine{
		fetcher:   fetcher,
		extractor: NewExtractor(),
		workers:   workers,
		perFetch:  perFetch,
		logger:    logger,
	}
}

// Extract fetches and extracts all candidates under ctx. Placeholder
// candidates never become Evidence; they are counted separately by the
// caller for the methodology note. Result order follows candidate rank.
func (e *Engine) Extract(ctx context.Context, candidates []model.DiscoveryCandidate) []model.Evidence {
	results := make([]*model.Evidence, len(candidates))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, e.workers)

	for i, cand := range candidates {
		if cand.Placeholder {
			continue
		}

		wg.Add(1)
		go func(idx int, c model.DiscoveryCandidate) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			fetchCtx, cancel := context.WithTimeout(ctx, e.perFetch)
			defer cancel()

			html, err := e.fetcher.Fetch(fetchCtx, c.URL)
			if err != nil {
				if e.logger != nil {
					e.logger.Printf("drop candidate %s: %v", c.URL, err)
				}
				return
			}

			ev := e.extractor.Extract(html, c)
			results[idx] = &ev
		}(i, cand)
	}

	wg.Wait()

	evidence := make([]model.Evidence, 0, len(candidates))
	for _, r := range results {
		if r != nil {
			evidence = append(evidence, *r)
		}
	}
	return evidence
}
