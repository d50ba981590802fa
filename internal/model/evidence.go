package model

import "time"

// Credibility and sentiment bounds. Every persisted Evidence value is clamped
// into these ranges regardless of what extraction produced.
const (
	MinCredibility = 0.0
	MaxCredibility = 10.0
	MinSentiment   = -1.0
	MaxSentiment   = 1.0
)

// Evidence is the durable unit produced by the access/extraction engine.
// URL is the deduplication key. Content and Claims may be enriched by the
// dynamic interaction stage; credibility and sentiment never change after
// extraction.
type Evidence struct {
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Snippet     string      `json:"snippet,omitempty"`
	Author      string      `json:"author,omitempty"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	SourceName  string      `json:"source_name"`
	SourceType  SourceType  `json:"source_type"`
	Credibility float64     `json:"credibility"` // 0-10
	Sentiment   float64     `json:"sentiment"`   // -1..1 relative to the claim
	Entities    []string    `json:"entities,omitempty"`
	Keywords    []string    `json:"keywords,omitempty"`
	Claims      []string    `json:"claims,omitempty"`
	Platform    string      `json:"platform,omitempty"`
	Verified    bool        `json:"verified"`
	Engagement  *Engagement `json:"engagement,omitempty"`
}

// Clamp normalizes credibility and sentiment into their legal ranges.
func (e *Evidence) Clamp() {
	e.Credibility = ClampCredibility(e.Credibility)
	e.Sentiment = ClampSentiment(e.Sentiment)
}

// PlatformOrSource returns the platform name when set, else the source name.
// Used for per-platform aggregation in the synthesizer.
func (e Evidence) PlatformOrSource() string {
	if e.Platform != "" {
		return e.Platform
	}
	return e.SourceName
}

// ClampCredibility bounds a raw credibility score to [0,10].
func ClampCredibility(v float64) float64 {
	return clamp(v, MinCredibility, MaxCredibility)
}

// ClampSentiment bounds a raw sentiment score to [-1,1].
func ClampSentiment(v float64) float64 {
	return clamp(v, MinSentiment, MaxSentiment)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
