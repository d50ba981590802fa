package synthesis

import (
	"fmt"

	"github.com/ppiankov/veridict/internal/model"
)

// FallbackVerdict classifies by supporting/contradicting ratios when the AI
// capability fails or no evidence exists. The thresholds are fixed:
//
//	support   > 0.7                -> TRUE,           confidence 80
//	contradict > 0.7               -> FALSE,          confidence 80
//	support > 0.4, contradict <0.3 -> PARTIALLY_TRUE, confidence 65
//	contradict > 0.4               -> MISLEADING,     confidence 70
//	otherwise                      -> UNVERIFIED,     confidence 50
//
// With no evidence at all the verdict is UNVERIFIED at confidence 30:
// an empty record warrants less certainty than a mixed one.
func FallbackVerdict(buckets model.EvidenceBuckets) (model.Verdict, float64) {
	total := buckets.Total()
	if total == 0 {
		return model.VerdictUnverified, 30
	}

	support := float64(len(buckets.Supporting)) / float64(total)
	contradict := float64(len(buckets.Contradicting)) / float64(total)

	switch {
	case support > 0.7:
		return model.VerdictTrue, 80
	case contradict > 0.7:
		return model.VerdictFalse, 80
	case support > 0.4 && contradict < 0.3:
		return model.VerdictPartiallyTrue, 65
	case contradict > 0.4:
		return model.VerdictMisleading, 70
	default:
		return model.VerdictUnverified, 50
	}
}

// FallbackNarrative generates the summary and reasoning text from evidence
// counts when no AI analysis is available.
func FallbackNarrative(claim string, verdict model.Verdict, buckets model.EvidenceBuckets) (summary, reasoning string) {
	total := buckets.Total()
	if total == 0 {
		summary = "No verifiable evidence could be gathered for this claim."
		reasoning = fmt.Sprintf("Discovery and extraction produced no usable sources for %q; the claim remains unverified.", claim)
		return summary, reasoning
	}

	summary = fmt.Sprintf("Rule-based assessment: %s, from %d supporting, %d contradicting and %d neutral sources.",
		verdict, len(buckets.Supporting), len(buckets.Contradicting), len(buckets.Neutral))
	reasoning = fmt.Sprintf(
		"Of %d evidence items gathered for %q, %d lean supporting, %d lean contradicting and %d are neutral by sentiment. "+
			"The verdict follows the fixed stance-ratio thresholds; no generative analysis was applied.",
		total, claim, len(buckets.Supporting), len(buckets.Contradicting), len(buckets.Neutral))
	return summary, reasoning
}
