package synthesis

import "github.com/ppiankov/veridict/internal/model"

const (
	viralityRiskFloor   = 60.0
	lowCredibilityCeil  = 5.0
	highConfidenceFloor = 70.0
)

// AssessRisk combines verdict, confidence and evidence quality into a risk
// grade with explanatory factors and recommendations. The rules are fixed;
// the factors explain which ones fired.
func AssessRisk(result *model.FactCheckResult) model.RiskAssessment {
	level := 0 // 0=LOW .. 3=CRITICAL
	var factors []string

	falseish := result.Verdict == model.VerdictFalse || result.Verdict == model.VerdictMisleading
	if falseish && result.Confidence >= highConfidenceFloor {
		level += 2
		factors = append(factors, "high-confidence false or misleading claim")
	} else if falseish {
		level++
		factors = append(factors, "claim contradicted by available evidence")
	}

	if result.SocialSignals.ViralityScore >= viralityRiskFloor {
		level++
		factors = append(factors, "viral content detected")
	}

	if lowCredibilityMajority(result.Evidence) {
		level++
		factors = append(factors, "majority of sources low-credibility")
	}

	if result.Verdict == model.VerdictUnverified && result.Evidence.Total() == 0 {
		factors = append(factors, "no verifiable evidence found")
	}

	if level > 3 {
		level = 3
	}

	assessment := model.RiskAssessment{
		Level:   [4]model.RiskLevel{model.RiskLow, model.RiskMedium, model.RiskHigh, model.RiskCritical}[level],
		Factors: factors,
	}
	assessment.Recommendations = recommendationsFor(assessment.Level, result.Verdict)
	return assessment
}

func lowCredibilityMajority(buckets model.EvidenceBuckets) bool {
	total := buckets.Total()
	if total == 0 {
		return false
	}
	low := 0
	for _, group := range [][]model.Evidence{buckets.Supporting, buckets.Contradicting, buckets.Neutral} {
		for _, ev := range group {
			if ev.Credibility < lowCredibilityCeil {
				low++
			}
		}
	}
	return low*2 > total
}

func recommendationsFor(level model.RiskLevel, verdict model.Verdict) []string {
	var recs []string
	switch level {
	case model.RiskCritical:
		recs = append(recs,
			"do not share this claim",
			"report the claim where it is spreading",
		)
	case model.RiskHigh:
		recs = append(recs, "avoid sharing until corroborated by high-credibility sources")
	case model.RiskMedium:
		recs = append(recs, "verify against primary sources before sharing")
	default:
		recs = append(recs, "standard verification practices apply")
	}
	if verdict == model.VerdictUnverified {
		recs = append(recs, "treat the claim as unconfirmed; evidence is insufficient")
	}
	return recs
}
