package synthesis

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/veridict/internal/llm"
	"github.com/ppiankov/veridict/internal/model"
)

const analysisSampleSize = 15

// Synthesizer reduces gathered evidence to a final FactCheckResult. The AI
// analysis capability is optional: any failure there (or empty evidence)
// falls back to the deterministic stance-ratio rules, so Synthesize itself
// never fails.
type Synthesizer struct {
	provider llm.Provider // nil disables AI analysis
	logger   *log.Logger
}

// NewSynthesizer creates a Synthesizer. provider may be nil.
func NewSynthesizer(provider llm.Provider, logger *log.Logger) *Synthesizer {
	return &Synthesizer{provider: provider, logger: logger}
}

// Synthesize categorizes and aggregates the evidence, obtains a verdict and
// assembles the immutable result. placeholders counts the synthetic
// discovery filler that was excluded from extraction; it is recorded in the
// methodology note so the record can be audited.
func (s *Synthesizer) Synthesize(ctx context.Context, claim model.Claim, evidence []model.Evidence, placeholders int, elapsed time.Duration) *model.FactCheckResult {
	buckets := Categorize(evidence)

	result := &model.FactCheckResult{
		Claim:         claim.Text,
		Evidence:      buckets,
		Sources:       SourceStats(evidence),
		Timeline:      BuildTimeline(evidence),
		SocialSignals: SocialSignalsFor(evidence, buckets),
	}

	usedFallback := s.applyVerdict(ctx, claim, evidence, buckets, result)
	result.RiskAssessment = AssessRisk(result)
	result.ProcessingTime = elapsed
	result.Methodology = s.methodology(len(evidence), placeholders, usedFallback)
	return result
}

// applyVerdict fills verdict, confidence, summary and reasoning. Returns
// true when the deterministic fallback decided the verdict.
func (s *Synthesizer) applyVerdict(ctx context.Context, claim model.Claim, evidence []model.Evidence, buckets model.EvidenceBuckets, result *model.FactCheckResult) bool {
	if s.provider != nil && len(evidence) > 0 {
		resp, err := s.provider.Analyze(ctx, llm.AnalysisRequest{
			Claim:    claim.Text,
			Evidence: topByCredibility(evidence, analysisSampleSize),
		})
		if err == nil {
			result.Verdict = resp.Verdict
			result.Confidence = resp.Confidence
			result.Summary = resp.Summary
			result.Reasoning = resp.Reasoning
			return false
		}
		if s.logger != nil {
			s.logger.Printf("warn: AI analysis failed, using rule-based fallback: %v", err)
		}
	}

	verdict, confidence := FallbackVerdict(buckets)
	summary, reasoning := FallbackNarrative(claim.Text, verdict, buckets)
	result.Verdict = verdict
	result.Confidence = confidence
	result.Summary = summary
	result.Reasoning = reasoning
	return true
}

func (s *Synthesizer) methodology(evidenceCount, placeholders int, usedFallback bool) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d evidence items scored and categorized by sentiment", evidenceCount))
	if placeholders > 0 {
		parts = append(parts, fmt.Sprintf("%d synthetic placeholder candidates excluded from scoring", placeholders))
	}
	if usedFallback {
		parts = append(parts, "verdict from deterministic stance-ratio rules")
	} else {
		parts = append(parts, fmt.Sprintf("verdict from %s analysis over the top-%d evidence sample", s.provider.Name(), analysisSampleSize))
	}
	return strings.Join(parts, "; ")
}

// topByCredibility returns the n highest-credibility evidence items,
// breaking ties by URL for determinism.
func topByCredibility(evidence []model.Evidence, n int) []model.Evidence {
	ranked := make([]model.Evidence, len(evidence))
	copy(ranked, evidence)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Credibility != ranked[j].Credibility {
			return ranked[i].Credibility > ranked[j].Credibility
		}
		return ranked[i].URL < ranked[j].URL
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
