package pipeline

import (
	"log"
	"net/http"

	"github.com/ppiankov/veridict/internal/access"
	"github.com/ppiankov/veridict/internal/cache"
	"github.com/ppiankov/veridict/internal/discover"
	"github.com/ppiankov/veridict/internal/interact"
	"github.com/ppiankov/veridict/internal/llm"
	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/store"
	"github.com/ppiankov/veridict/internal/synthesis"
	"github.com/ppiankov/veridict/internal/util"
)

// New wires a complete two-tier Checker from configuration. The simplified
// tier shares the fetcher and adapters with the comprehensive one but runs
// with its own tighter budgets.
func New(cfg *model.Config, st store.Store, logger *log.Logger) (*Checker, error) {
	var pages cache.Cache
	if cfg.Cache.Enabled {
		pages = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	fetcher := access.NewFetcher(cfg, pages)

	client := &http.Client{
		Timeout: cfg.HTTP.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		},
	}
	adapters := discover.NewAdapterSet(cfg, client)

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy))
	if err != nil {
		return nil, err
	}
	synth := synthesis.NewSynthesizer(provider, logger)

	fanout := discover.NewFanOut(adapters, cfg.Budget.Discovery, cfg.Discovery.MaxCandidates, logger)
	engine := access.NewEngine(fetcher, cfg.Concurrency.ExtractWorkers, cfg.Budget.PerFetch, logger)

	var stage Enricher
	if cfg.Interact.Enabled {
		renderer := &interact.ChromeRenderer{UserAgent: cfg.Interact.ChromeUA, MaxChars: cfg.Interact.MaxChars}
		stage = interact.NewStage(renderer, cfg.Budget.PerInteract, access.SubClaims, logger)
	}

	orch := NewOrchestrator(cfg.Budget, fanout, engine, stage, synth, logger)

	simpleFanout := discover.NewFanOut(adapters, cfg.Budget.SimplifiedDiscovery, cfg.Discovery.MaxCandidates, logger)
	simpleEngine := access.NewEngine(fetcher, cfg.Concurrency.ExtractWorkers, cfg.Budget.SimplifiedPerFetch, logger)
	simplified := NewSimplified(cfg.Budget, simpleFanout, simpleEngine, synth, logger)

	return NewChecker(orch, simplified, st, logger), nil
}
