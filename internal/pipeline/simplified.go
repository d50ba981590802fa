package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
	"github.com/ppiankov/veridict/internal/synthesis"
)

// Simplified is the degraded fallback pipeline: tighter per-call limits, no
// dynamic interaction, and a bias towards UNVERIFIED when evidence is thin.
// It runs when the comprehensive pipeline fails and never fails itself; the
// worst case is an UNVERIFIED result with zero evidence.
type Simplified struct {
	budget   model.BudgetConfig
	discover Discoverer
	engine   Extractor
	synth    *synthesis.Synthesizer
	logger   *log.Logger

	now func() time.Time
}

// NewSimplified wires the fallback pipeline. The engine passed here should
// already carry the simplified per-fetch timeout.
func NewSimplified(budget model.BudgetConfig, d Discoverer, e Extractor, synth *synthesis.Synthesizer, logger *log.Logger) *Simplified {
	return &Simplified{
		budget:   budget,
		discover: d,
		engine:   e,
		synth:    synth,
		logger:   logger,
		now:      time.Now,
	}
}

// Run produces a best-effort result for the claim. Every stage is optional:
// whatever fails is skipped and synthesis proceeds with what remains.
func (s *Simplified) Run(ctx context.Context, claim model.Claim, onProgress ProgressFunc) *model.FactCheckResult {
	start := s.now()
	report := func(pct int) {
		if onProgress != nil {
			onProgress(pct)
		}
	}
	s.logf("simplified run start: claim %q", claim.Text)

	var (
		evidence     []model.Evidence
		placeholders int
	)

	analysis, err := preprocess.Analyze(claim)
	if err != nil {
		s.logf("simplified: preprocess failed, synthesizing empty: %v", err)
	} else {
		report(progressPreprocessed)

		discoverCtx, cancelDiscover := context.WithTimeout(ctx, s.budget.SimplifiedDiscovery)
		candidates := s.discover.Run(discoverCtx, analysis)
		cancelDiscover()
		placeholders = countPlaceholders(candidates)
		report(progressDiscovered)

		accessCtx, cancelAccess := context.WithTimeout(ctx, s.budget.SimplifiedAccess)
		evidence = s.engine.Extract(accessCtx, candidates)
		cancelAccess()
		report(progressExtracted)
	}

	result := s.synth.Synthesize(ctx, claim, evidence, placeholders, s.now().Sub(start))
	result.Degraded = true
	report(progressAnalyzed)

	result.ProcessingTime = s.now().Sub(start)
	report(progressDone)
	s.logf("simplified run done in %v: verdict %s (%.0f%%)", result.ProcessingTime.Round(time.Millisecond), result.Verdict, result.Confidence)
	return result
}

func (s *Simplified) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
