package preprocess

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/veridict/internal/model"
)

// Level grades urgency and complexity.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Analysis is the preprocessor output consumed by the discovery fan-out.
type Analysis struct {
	Claim            model.Claim `json:"claim"`
	Entities         []string    `json:"entities,omitempty"`
	Keywords         []string    `json:"keywords,omitempty"` // ranked by frequency with domain-term boost
	ClaimType        string      `json:"claim_type"`
	SearchVariations []string    `json:"search_variations"`
	Urgency          Level       `json:"urgency"`
	Complexity       Level       `json:"complexity"`
	TargetPlatforms  []string    `json:"target_platforms,omitempty"`
	RiskFactors      []string    `json:"risk_factors,omitempty"`
	TargetAudience   []string    `json:"target_audience,omitempty"`
}

var entityPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*\b`)

// Domain terms that should rank above generic vocabulary when they appear.
var domainTerms = map[string]bool{
	"vaccine": true, "virus": true, "covid": true, "pandemic": true,
	"election": true, "vote": true, "government": true, "president": true,
	"climate": true, "cancer": true, "cure": true, "study": true,
	"scientist": true, "research": true, "law": true, "court": true,
	"economy": true, "war": true, "military": true, "immigration": true,
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"that": true, "this": true, "these": true, "those": true, "it": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "from": true, "as": true, "has": true, "have": true,
	"had": true, "will": true, "would": true, "can": true, "could": true,
	"not": true, "no": true, "all": true, "they": true, "their": true,
	"he": true, "she": true, "his": true, "her": true, "its": true, "we": true,
}

var riskIndicators = []string{
	"death", "die", "kill", "dangerous", "deadly", "poison", "toxic",
	"cure", "miracle", "secret", "they don't want you to know",
	"conspiracy", "cover-up", "hoax", "exposed", "banned", "urgent",
	"breaking", "shocking", "emergency", "outbreak",
}

// Analyze derives search terms, claim classification and risk signals from
// the claim text. It is a pure function: no I/O, deterministic for a given
// input.
func Analyze(claim model.Claim) (*Analysis, error) {
	text := claim.Text
	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	if len(words) == 0 {
		return nil, fmt.Errorf("claim has no analyzable words")
	}

	keywords := rankKeywords(words)
	entities := extractEntities(text)
	claimType := classifyClaim(lower)
	risks := matchRiskFactors(lower)

	a := &Analysis{
		Claim:            claim,
		Entities:         entities,
		Keywords:         keywords,
		ClaimType:        claimType,
		SearchVariations: searchVariations(text, keywords),
		Urgency:          urgencyFor(risks),
		Complexity:       complexityFor(keywords, words),
		TargetPlatforms:  platformsFor(claimType),
		RiskFactors:      risks,
		TargetAudience:   audienceFor(claimType),
	}
	return a, nil
}

// rankKeywords orders distinct non-stopwords by frequency, breaking ties so
// that domain terms come first and ordering stays deterministic.
func rankKeywords(words []string) []string {
	freq := make(map[string]int)
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) < 3 || stopwords[w] {
			continue
		}
		freq[w]++
	}

	keywords := make([]string, 0, len(freq))
	for w := range freq {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		wi, wj := keywords[i], keywords[j]
		bi, bj := boost(wi, freq[wi]), boost(wj, freq[wj])
		if bi != bj {
			return bi > bj
		}
		return wi < wj
	})

	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	return keywords
}

func boost(word string, count int) int {
	if domainTerms[word] {
		return count + 3
	}
	return count
}

func extractEntities(text string) []string {
	matches := entityPattern.FindAllString(text, -1)
	seen := make(map[string]bool)
	var entities []string
	for _, m := range matches {
		if len(m) < 3 || seen[m] {
			continue
		}
		seen[m] = true
		entities = append(entities, m)
	}
	if len(entities) > 8 {
		entities = entities[:8]
	}
	return entities
}

func classifyClaim(lower string) string {
	switch {
	case strings.ContainsAny(lower, "0123456789") && (strings.Contains(lower, "%") || strings.Contains(lower, "percent") || strings.Contains(lower, "million") || strings.Contains(lower, "billion")):
		return "statistical"
	case containsAny(lower, "vaccine", "virus", "disease", "cure", "treatment", "doctor", "cancer", "health", "drug"):
		return "medical"
	case containsAny(lower, "election", "vote", "president", "government", "senator", "congress", "minister", "policy"):
		return "political"
	case containsAny(lower, "study", "research", "scientist", "climate", "physics", "species", "nasa", "earth"):
		return "scientific"
	default:
		return "general"
	}
}

func matchRiskFactors(lower string) []string {
	var risks []string
	for _, ind := range riskIndicators {
		if strings.Contains(lower, ind) {
			risks = append(risks, ind)
		}
	}
	return risks
}

// searchVariations builds the query set for the discovery fan-out: the claim
// itself, a keyword join, the quoted form, and fact-check-oriented variants.
func searchVariations(text string, keywords []string) []string {
	variations := []string{text}

	if len(keywords) > 0 {
		top := keywords
		if len(top) > 5 {
			top = top[:5]
		}
		joined := strings.Join(top, " ")
		variations = append(variations,
			joined,
			fmt.Sprintf("%q", text),
			joined+" fact check",
			joined+" debunked",
			joined+" hoax",
		)
	}
	return variations
}

func urgencyFor(risks []string) Level {
	switch {
	case len(risks) >= 3:
		return LevelHigh
	case len(risks) >= 1:
		return LevelMedium
	default:
		return LevelLow
	}
}

func complexityFor(keywords, words []string) Level {
	switch {
	case len(keywords) >= 8 || len(words) >= 40:
		return LevelHigh
	case len(keywords) >= 4 || len(words) >= 15:
		return LevelMedium
	default:
		return LevelLow
	}
}

func platformsFor(claimType string) []string {
	switch claimType {
	case "political":
		return []string{"twitter", "facebook", "reddit"}
	case "medical", "scientific":
		return []string{"twitter", "reddit", "youtube"}
	default:
		return []string{"twitter", "facebook", "instagram", "tiktok"}
	}
}

func audienceFor(claimType string) []string {
	switch claimType {
	case "medical":
		return []string{"patients", "general public"}
	case "political":
		return []string{"voters", "general public"}
	case "statistical", "scientific":
		return []string{"general public", "students"}
	default:
		return []string{"general public"}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
