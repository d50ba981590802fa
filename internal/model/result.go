package model

import "time"

// Verdict is the final truth label for a claim.
type Verdict string

const (
	VerdictTrue          Verdict = "TRUE"
	VerdictFalse         Verdict = "FALSE"
	VerdictPartiallyTrue Verdict = "PARTIALLY_TRUE"
	VerdictMisleading    Verdict = "MISLEADING"
	VerdictUnverified    Verdict = "UNVERIFIED"
)

// RiskLevel grades how dangerous a claim is if it spreads.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// EvidenceBuckets partitions evidence by its stance toward the claim.
// The three slices are pairwise disjoint and together cover all evidence.
type EvidenceBuckets struct {
	Supporting    []Evidence `json:"supporting"`
	Contradicting []Evidence `json:"contradicting"`
	Neutral       []Evidence `json:"neutral"`
}

// Total returns the number of evidence items across all buckets.
func (b EvidenceBuckets) Total() int {
	return len(b.Supporting) + len(b.Contradicting) + len(b.Neutral)
}

// SourceStats summarizes where the evidence came from.
type SourceStats struct {
	Total           int            `json:"total"`
	ByPlatform      map[string]int `json:"by_platform"`
	HighCredibility int            `json:"high_credibility"` // score >= 8
	Verified        int            `json:"verified"`
}

// KeyEvent is one dated, high-credibility evidence item on the timeline.
type KeyEvent struct {
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	SourceName  string    `json:"source_name"`
	Credibility float64   `json:"credibility"`
}

// Timeline bounds the evidence in time.
type Timeline struct {
	Earliest  *time.Time `json:"earliest,omitempty"`
	Latest    *time.Time `json:"latest,omitempty"`
	KeyEvents []KeyEvent `json:"key_events,omitempty"`
}

// SocialSignals aggregates engagement across social/video/forum evidence.
type SocialSignals struct {
	TotalEngagement    int64   `json:"total_engagement"`
	Sentiment          string  `json:"sentiment"` // positive, negative, mixed, neutral
	ViralityScore      float64 `json:"virality_score"`
	InfluencerMentions int     `json:"influencer_mentions"`
}

// RiskAssessment combines verdict, confidence and evidence quality.
type RiskAssessment struct {
	Level           RiskLevel `json:"level"`
	Factors         []string  `json:"factors,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

// FactCheckResult is the pipeline's single output, immutable after synthesis.
type FactCheckResult struct {
	Claim          string          `json:"claim"`
	Verdict        Verdict         `json:"verdict"`
	Confidence     float64         `json:"confidence"` // 0-100
	Summary        string          `json:"summary"`
	Reasoning      string          `json:"reasoning"`
	Evidence       EvidenceBuckets `json:"evidence"`
	Sources        SourceStats     `json:"sources"`
	Timeline       Timeline        `json:"timeline"`
	SocialSignals  SocialSignals   `json:"social_signals"`
	RiskAssessment RiskAssessment  `json:"risk_assessment"`
	ProcessingTime time.Duration   `json:"processing_time"`
	Methodology    string          `json:"methodology"`
	Degraded       bool            `json:"degraded,omitempty"` // produced by the simplified fallback
}
