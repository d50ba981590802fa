package access

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/ppiankov/veridict/internal/model"
)

const (
	minRegionLength = 200 // shorter content regions are boilerplate, not body text
	maxSubClaims    = 5
)

// Content-region heuristics tried in order; the first non-empty,
// length-filtered region wins.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".article-body",
	".post-content",
	".entry-content",
	".story-body",
	"#content",
}

// selectorRule pairs a CSS selector with the attribute carrying the value;
// an empty attr means the element text itself.
type selectorRule struct {
	selector string
	attr     string
}

var authorSelectors = []selectorRule{
	{`meta[name="author"]`, "content"},
	{`meta[property="article:author"]`, "content"},
	{`[rel="author"]`, ""},
	{".author-name", ""},
	{".byline", ""},
	{".author", ""},
}

var dateSelectors = []selectorRule{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="publish-date"]`, "content"},
	{`meta[name="date"]`, "content"},
	{"time[datetime]", "datetime"},
	{".published-date", ""},
	{".post-date", ""},
}

// Phrases that introduce an embedded sub-claim.
var claimIndicators = []string{
	"claims that",
	"claimed that",
	"according to",
	"alleges that",
	"stated that",
	"says that",
	"reports that",
	"asserts that",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 January 2006",
}

// Extractor turns raw HTML into a structured Evidence record.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds Evidence from the fetched page of a ranked candidate.
// Credibility and sentiment are clamped before return.
func (e *Extractor) Extract(htmlContent string, cand model.DiscoveryCandidate) model.Evidence {
	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))

	content := ""
	title := cand.Title
	author := cand.Author
	published := cand.PublishedAt

	if docErr == nil {
		content = e.mainContent(doc, cand.URL, htmlContent)
		if title == "" {
			title = strings.TrimSpace(doc.Find("title").First().Text())
		}
		if author == "" {
			author = e.firstMatch(doc, authorSelectors)
		}
		if published == nil {
			if t := e.publishedDate(doc); t != nil {
				published = t
			}
		}
	}
	if content == "" {
		content = cand.Description
	}

	ev := model.Evidence{
		URL:         cand.URL,
		Title:       title,
		Content:     content,
		Snippet:     snippet(content),
		Author:      author,
		PublishedAt: published,
		SourceName:  cand.SourceName,
		SourceType:  cand.SourceType,
		Credibility: cand.Credibility,
		Sentiment:   Sentiment(content),
		Entities:    extractEntities(content),
		Keywords:    extractKeywords(content),
		Claims:      extractSubClaims(content),
		Platform:    cand.Platform,
		Verified:    cand.Verified,
		Engagement:  cand.Engagement,
	}
	ev.Clamp()
	return ev
}

// mainContent walks the prioritized selector list, falls back to
// readability, and finally to whole-page text.
func (e *Extractor) mainContent(doc *goquery.Document, rawURL, htmlContent string) string {
	for _, selector := range contentSelectors {
		text := normalizeSpace(doc.Find(selector).First().Text())
		if len(text) >= minRegionLength {
			return text
		}
	}

	if parsed, err := url.Parse(rawURL); err == nil {
		if article, err := readability.FromReader(strings.NewReader(htmlContent), parsed); err == nil {
			if text := normalizeSpace(article.TextContent); len(text) >= minRegionLength {
				return text
			}
		}
	}

	body := doc.Clone()
	body.Find("script, style, nav, header, footer, aside, noscript").Remove()
	return normalizeSpace(body.Find("body").Text())
}

func (e *Extractor) firstMatch(doc *goquery.Document, selectors []selectorRule) string {
	for _, s := range selectors {
		sel := doc.Find(s.selector).First()
		if sel.Length() == 0 {
			continue
		}
		var val string
		if s.attr != "" {
			val, _ = sel.Attr(s.attr)
		} else {
			val = sel.Text()
		}
		val = normalizeSpace(val)
		if val != "" && len(val) < 120 {
			return val
		}
	}
	return ""
}

func (e *Extractor) publishedDate(doc *goquery.Document) *time.Time {
	raw := e.firstMatch(doc, dateSelectors)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// SubClaims exposes sub-claim extraction for the interaction stage, which
// re-runs it over scripted-render output.
func SubClaims(content string) []string {
	return extractSubClaims(content)
}

// extractSubClaims finds sentences introduced by indicator phrases, capped
// at maxSubClaims.
func extractSubClaims(content string) []string {
	var claims []string
	for _, sentence := range splitSentences(content) {
		lower := strings.ToLower(sentence)
		for _, ind := range claimIndicators {
			if strings.Contains(lower, ind) {
				claims = append(claims, sentence)
				break
			}
		}
		if len(claims) >= maxSubClaims {
			break
		}
	}
	return claims
}

var entityPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)+\b`)

func extractEntities(content string) []string {
	matches := entityPattern.FindAllString(content, -1)
	seen := make(map[string]bool)
	var entities []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		entities = append(entities, m)
		if len(entities) >= 10 {
			break
		}
	}
	return entities
}

var keywordStopwords = map[string]bool{
	"the": true, "and": true, "that": true, "this": true, "with": true,
	"from": true, "have": true, "has": true, "was": true, "were": true,
	"are": true, "for": true, "not": true, "but": true, "they": true,
	"their": true, "would": true, "could": true, "been": true, "which": true,
	"will": true, "about": true, "there": true, "when": true, "what": true,
	"more": true, "also": true, "than": true, "into": true, "after": true,
}

func extractKeywords(content string) []string {
	freq := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(content)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) < 4 || keywordStopwords[w] {
			continue
		}
		freq[w]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		if freq[w] >= 2 {
			words = append(words, w)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > 10 {
		words = words[:10]
	}
	return words
}

// splitSentences splits text on sentence terminators, keeping only spans
// that plausibly are full sentences.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				sentence := strings.TrimSpace(current.String())
				if len(sentence) >= 30 && len(sentence) <= 500 {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); len(s) >= 30 && len(s) <= 500 {
		sentences = append(sentences, s)
	}
	return sentences
}

func snippet(content string) string {
	if len(content) <= 280 {
		return content
	}
	return content[:280]
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
