package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
	"github.com/ppiankov/veridict/internal/synthesis"
)

func testBudget() model.BudgetConfig {
	return model.BudgetConfig{
		Global:        5 * time.Second,
		Preprocess:    time.Second,
		Discovery:     time.Second,
		Access:        time.Second,
		PerFetch:      500 * time.Millisecond,
		Interact:      time.Second,
		PerInteract:   500 * time.Millisecond,
		Analysis:      time.Second,
		AnalysisFloor: 100 * time.Millisecond,

		SimplifiedDiscovery: 500 * time.Millisecond,
		SimplifiedAccess:    500 * time.Millisecond,
		SimplifiedPerFetch:  200 * time.Millisecond,
	}
}

// fakeDiscoverer returns fixed candidates.
type fakeDiscoverer struct {
	candidates []model.DiscoveryCandidate
}

func (f *fakeDiscoverer) Run(context.Context, *preprocess.Analysis) []model.DiscoveryCandidate {
	return f.candidates
}

// fakeExtractor maps candidates to fixed evidence.
type fakeExtractor struct {
	evidence []model.Evidence
}

func (f *fakeExtractor) Extract(context.Context, []model.DiscoveryCandidate) []model.Evidence {
	return f.evidence
}

// fakeEnricher records whether it ran.
type fakeEnricher struct {
	called bool
}

func (f *fakeEnricher) Enrich(_ context.Context, evidence []model.Evidence) []model.Evidence {
	f.called = true
	return evidence
}

func mustClaim(t *testing.T, text string) model.Claim {
	t.Helper()
	claim, err := model.NewClaim(text)
	if err != nil {
		t.Fatalf("NewClaim(%q): %v", text, err)
	}
	return claim
}

func TestOrchestrator_Run(t *testing.T) {
	discoverer := &fakeDiscoverer{candidates: []model.DiscoveryCandidate{
		{URL: "https://a.com/1", SourceType: model.SourceTypeNews, Credibility: 8},
		{URL: "https://veridict.invalid/placeholder/fact-check", Placeholder: true},
	}}
	extractor := &fakeExtractor{evidence: []model.Evidence{
		{URL: "https://a.com/1", Sentiment: 0.5, Credibility: 8},
	}}
	enricher := &fakeEnricher{}
	synth := synthesis.NewSynthesizer(nil, nil)

	orch := NewOrchestrator(testBudget(), discoverer, extractor, enricher, synth, nil)

	var checkpoints []int
	result, err := orch.Run(context.Background(), mustClaim(t, "Honey never spoils when stored in sealed containers"), func(pct int) {
		checkpoints = append(checkpoints, pct)
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}

	want := []int{10, 30, 60, 80, 95, 100}
	if !reflect.DeepEqual(checkpoints, want) {
		t.Errorf("expected checkpoints %v, got %v", want, checkpoints)
	}
	if !enricher.called {
		t.Error("expected interaction stage to run")
	}
	if result.ProcessingTime <= 0 {
		t.Error("expected positive processing time")
	}
	if result.Evidence.Total() != 1 {
		t.Errorf("expected 1 evidence item, got %d", result.Evidence.Total())
	}
}

func TestOrchestrator_TotalOutage(t *testing.T) {
	// Every adapter and fetch fails: no candidates, no evidence. The run
	// must still complete with an UNVERIFIED verdict.
	orch := NewOrchestrator(testBudget(),
		&fakeDiscoverer{}, &fakeExtractor{}, nil, synthesis.NewSynthesizer(nil, nil), nil)

	result, err := orch.Run(context.Background(), mustClaim(t, "A claim nobody has ever written about anywhere"), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Verdict != model.VerdictUnverified {
		t.Errorf("expected UNVERIFIED, got %s", result.Verdict)
	}
	if result.Evidence.Total() != 0 {
		t.Errorf("expected no evidence, got %d", result.Evidence.Total())
	}
	if result.ProcessingTime <= 0 {
		t.Error("expected positive processing time")
	}
}

func TestOrchestrator_BudgetExhausted(t *testing.T) {
	budget := testBudget()
	budget.AnalysisFloor = time.Hour // impossible floor

	orch := NewOrchestrator(budget,
		&fakeDiscoverer{}, &fakeExtractor{}, nil, synthesis.NewSynthesizer(nil, nil), nil)

	_, err := orch.Run(context.Background(), mustClaim(t, "Honey never spoils when stored in sealed containers"), nil)
	var exhausted *BudgetExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected BudgetExhaustedError, got %v", err)
	}
	if exhausted.Required != time.Hour {
		t.Errorf("expected required floor carried in error, got %v", exhausted.Required)
	}
}

func TestSimplified_NeverFails(t *testing.T) {
	s := NewSimplified(testBudget(), &fakeDiscoverer{}, &fakeExtractor{}, synthesis.NewSynthesizer(nil, nil), nil)

	result := s.Run(context.Background(), mustClaim(t, "A claim nobody has ever written about anywhere"), nil)
	if result == nil {
		t.Fatal("simplified run must always produce a result")
	}
	if result.Verdict != model.VerdictUnverified {
		t.Errorf("expected UNVERIFIED, got %s", result.Verdict)
	}
	if !result.Degraded {
		t.Error("expected result marked as degraded")
	}
}

func TestSimplified_SkipsInteraction(t *testing.T) {
	// The simplified pipeline has no interaction stage by construction;
	// evidence passes straight from extraction to synthesis.
	extractor := &fakeExtractor{evidence: []model.Evidence{
		{URL: "https://twitter.com/a/status/1", Sentiment: -0.5, Credibility: 3},
	}}
	s := NewSimplified(testBudget(), &fakeDiscoverer{candidates: []model.DiscoveryCandidate{{URL: "https://twitter.com/a/status/1"}}},
		extractor, synthesis.NewSynthesizer(nil, nil), nil)

	result := s.Run(context.Background(), mustClaim(t, "The study was never actually published anywhere"), nil)
	if result.Evidence.Total() != 1 {
		t.Errorf("expected 1 evidence item, got %d", result.Evidence.Total())
	}
}
