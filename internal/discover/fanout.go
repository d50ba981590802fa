package discover

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

// FanOut dispatches every registered adapter concurrently and reduces
// whatever settles before the phase timeout.
type FanOut struct {
	adapters []Adapter
	timeout  time.Duration
	max      int
	logger   *log.Logger
}

// NewFanOut builds a fan-out over the given adapter set.
func NewFanOut(adapters []Adapter, timeout time.Duration, maxCandidates int, logger *log.Logger) *FanOut {
	if maxCandidates <= 0 {
		maxCandidates = 50
	}
	return &FanOut{adapters: adapters, timeout: timeout, max: maxCandidates, logger: logger}
}

// Run queries all adapters under one phase deadline and returns the ranked,
// deduplicated candidate list. Adapter failures and timeouts contribute
// empty slices; Run itself never fails.
func (f *FanOut) Run(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var mu sync.Mutex
	var collected []model.DiscoveryCandidate

	g, gctx := errgroup.WithContext(ctx)
	for _, adapter := range f.adapters {
		g.Go(func() error {
			start := time.Now()
			candidates := adapter.Discover(gctx, analysis)
			if f.logger != nil {
				f.logger.Printf("adapter %s: %d candidates in %v", adapter.Name(), len(candidates), time.Since(start).Round(time.Millisecond))
			}
			mu.Lock()
			collected = append(collected, candidates...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // adapters never error; Wait just fences the fan-in

	return Reduce(collected, f.max)
}
