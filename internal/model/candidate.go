package model

import "time"

// SourceType classifies where a discovered reference came from.
type SourceType string

const (
	SourceTypeNews        SourceType = "news"
	SourceTypeFactCheck   SourceType = "fact_check"
	SourceTypeSocialMedia SourceType = "social_media"
	SourceTypeAcademic    SourceType = "academic"
	SourceTypeOfficial    SourceType = "official"
	SourceTypeForum       SourceType = "forum"
	SourceTypeVideo       SourceType = "video"
	SourceTypeBlog        SourceType = "blog"
	SourceTypeWeb         SourceType = "web"
	SourceTypeOther       SourceType = "other"
)

// Priority returns the fixed ranking weight used when ordering candidates of
// equal credibility. Fact-checkers outrank academic sources, which outrank
// news, and so on down to generic web results.
func (t SourceType) Priority() int {
	switch t {
	case SourceTypeFactCheck:
		return 9
	case SourceTypeAcademic:
		return 8
	case SourceTypeNews:
		return 7
	case SourceTypeOfficial:
		return 6
	case SourceTypeForum:
		return 5
	case SourceTypeVideo:
		return 4
	case SourceTypeSocialMedia:
		return 3
	case SourceTypeBlog:
		return 2
	case SourceTypeWeb:
		return 1
	default:
		return 0
	}
}

// Engagement captures social interaction counts attached to a source.
type Engagement struct {
	Likes    int64 `json:"likes"`
	Shares   int64 `json:"shares"`
	Comments int64 `json:"comments"`
	Views    int64 `json:"views"`
}

// Total returns the weighted engagement sum. Views are heavily discounted
// because they are cheap relative to active interactions.
func (e Engagement) Total() int64 {
	return e.Likes + e.Shares + e.Comments + e.Views/100
}

// DiscoveryCandidate is a reference returned by one source adapter. It lives
// only until ranking; candidates that survive become Evidence during access.
type DiscoveryCandidate struct {
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	SourceName  string      `json:"source_name"`
	SourceType  SourceType  `json:"source_type"`
	Credibility float64     `json:"credibility"` // provisional, 0-10
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	Author      string      `json:"author,omitempty"`
	Platform    string      `json:"platform,omitempty"`
	Verified    bool        `json:"verified"`
	Engagement  *Engagement `json:"engagement,omitempty"`

	// Placeholder marks synthetic filler emitted to guarantee forward
	// progress under total adapter failure. Placeholders never contribute
	// to credibility statistics and are excluded from extraction.
	Placeholder bool `json:"placeholder,omitempty"`
}
