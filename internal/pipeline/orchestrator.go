package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ppiankov/veridict/internal/discover"
	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
	"github.com/ppiankov/veridict/internal/synthesis"
)

// Phase names the orchestrator states.
type Phase string

const (
	PhaseInitializing  Phase = "INITIALIZING"
	PhasePreprocessing Phase = "PREPROCESSING"
	PhaseDiscovery     Phase = "DISCOVERY"
	PhaseAccessExtract Phase = "ACCESS_EXTRACT"
	PhaseInteraction   Phase = "INTERACTION"
	PhaseAnalysis      Phase = "ANALYSIS"
	PhaseDone          Phase = "DONE"
	PhaseFailed        Phase = "FAILED"
)

// Progress checkpoints emitted at phase boundaries.
const (
	progressPreprocessed = 10
	progressDiscovered   = 30
	progressExtracted    = 60
	progressInteracted   = 80
	progressAnalyzed     = 95
	progressDone         = 100
)

// ProgressFunc receives the 0-100 progress checkpoints. It is an alias so
// callers outside this package can satisfy interfaces with model.ProgressFunc.
type ProgressFunc = model.ProgressFunc

// Discoverer is the discovery fan-out capability.
type Discoverer interface {
	Run(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate
}

// Extractor is the access/extraction capability.
type Extractor interface {
	Extract(ctx context.Context, candidates []model.DiscoveryCandidate) []model.Evidence
}

// Enricher is the dynamic interaction capability.
type Enricher interface {
	Enrich(ctx context.Context, evidence []model.Evidence) []model.Evidence
}

// Orchestrator sequences the comprehensive pipeline under the global time
// budget. Each phase races its own work against its sub-budget; recovery
// policy is per phase: discovery, extraction and interaction skip forward
// with partial data, preprocessing aborts the run.
type Orchestrator struct {
	budget   model.BudgetConfig
	discover Discoverer
	engine   Extractor
	stage    Enricher // nil when interaction is disabled
	synth    *synthesis.Synthesizer
	logger   *log.Logger

	now func() time.Time // injectable for budget tests
}

// NewOrchestrator wires the comprehensive pipeline.
func NewOrchestrator(budget model.BudgetConfig, d Discoverer, e Extractor, s Enricher, synth *synthesis.Synthesizer, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		budget:   budget,
		discover: d,
		engine:   e,
		stage:    s,
		synth:    synth,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes the full phase sequence for one claim. It returns a complete
// result or a typed error (PhaseTimeoutError, BudgetExhaustedError); it
// never returns both nil.
func (o *Orchestrator) Run(ctx context.Context, claim model.Claim, onProgress ProgressFunc) (*model.FactCheckResult, error) {
	start := o.now()
	deadline := start.Add(o.budget.Global)

	runCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	report := func(pct int) {
		if onProgress != nil {
			onProgress(pct)
		}
	}
	phase := PhaseInitializing
	o.logf("run start: phase %s, claim %q", phase, claim.Text)

	// PREPROCESSING: pure analysis, but still bounded; no partial mode.
	phase = PhasePreprocessing
	analysis, err := o.preprocessClaim(runCtx, claim)
	if err != nil {
		o.logf("run failed in %s: %v", phase, err)
		return nil, err
	}
	report(progressPreprocessed)

	// DISCOVERY: fan-out settles or times out; either way we proceed with
	// whatever was collected.
	phase = PhaseDiscovery
	if err := o.ensureBudget(phase, deadline, o.budget.AnalysisFloor); err != nil {
		return nil, err
	}
	candidates := o.discover.Run(runCtx, analysis)
	placeholders := countPlaceholders(candidates)
	o.logf("%s: %d candidates (%d placeholder)", phase, len(candidates), placeholders)
	report(progressDiscovered)

	// ACCESS_EXTRACT: best-effort fan-out; partial results survive a
	// phase timeout.
	phase = PhaseAccessExtract
	if err := o.ensureBudget(phase, deadline, o.budget.AnalysisFloor); err != nil {
		return nil, err
	}
	accessCtx, cancelAccess := context.WithTimeout(runCtx, o.budget.Access)
	evidence := o.engine.Extract(accessCtx, candidates)
	cancelAccess()
	o.logf("%s: %d evidence items", phase, len(evidence))
	report(progressExtracted)

	// INTERACTION: no-op without qualifying evidence; failures leave
	// records untouched.
	phase = PhaseInteraction
	if o.stage != nil {
		interactCtx, cancelInteract := context.WithTimeout(runCtx, o.budget.Interact)
		evidence = o.stage.Enrich(interactCtx, evidence)
		cancelInteract()
	}
	report(progressInteracted)

	// ANALYSIS: needs a safe floor of remaining budget to start.
	phase = PhaseAnalysis
	if err := o.ensureBudget(phase, deadline, o.budget.AnalysisFloor); err != nil {
		return nil, err
	}
	analysisCtx, cancelAnalysis := context.WithTimeout(runCtx, o.budget.Analysis)
	result := o.synth.Synthesize(analysisCtx, claim, evidence, placeholders, o.now().Sub(start))
	cancelAnalysis()
	report(progressAnalyzed)

	phase = PhaseDone
	result.ProcessingTime = o.now().Sub(start)
	report(progressDone)
	o.logf("run done in %v: verdict %s (%.0f%%)", result.ProcessingTime.Round(time.Millisecond), result.Verdict, result.Confidence)
	return result, nil
}

// preprocessClaim races the pure analysis against its sub-budget.
func (o *Orchestrator) preprocessClaim(ctx context.Context, claim model.Claim) (*preprocess.Analysis, error) {
	type outcome struct {
		analysis *preprocess.Analysis
		err      error
	}
	done := make(chan outcome, 1)
	go func() {
		a, err := preprocess.Analyze(claim)
		done <- outcome{a, err}
	}()

	timer := time.NewTimer(o.budget.Preprocess)
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("preprocess: %w", out.err)
		}
		return out.analysis, nil
	case <-timer.C:
		return nil, &PhaseTimeoutError{Phase: PhasePreprocessing, Budget: o.budget.Preprocess}
	case <-ctx.Done():
		return nil, &PhaseTimeoutError{Phase: PhasePreprocessing, Budget: o.budget.Preprocess}
	}
}

// ensureBudget fails fast when the remaining global budget is below the
// floor required to safely start the phase.
func (o *Orchestrator) ensureBudget(phase Phase, deadline time.Time, required time.Duration) error {
	remaining := deadline.Sub(o.now())
	if remaining < required {
		return &BudgetExhaustedError{Phase: phase, Remaining: remaining, Required: required}
	}
	return nil
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Printf(format, args...)
	}
}

func countPlaceholders(candidates []model.DiscoveryCandidate) int {
	n := 0
	for _, c := range candidates {
		if c.Placeholder {
			n++
		}
	}
	return n
}

var _ Discoverer = (*discover.FanOut)(nil)
