package access

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/veridict/internal/model"
)

// mapFetcher serves canned pages and fails everything else.
type mapFetcher struct {
	pages map[string]string
}

func (m *mapFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if html, ok := m.pages[url]; ok {
		return html, nil
	}
	return "", errors.New("connection refused")
}

func page(text string) string {
	return "<html><body><article>" + strings.Repeat(text+" ", 30) + "</article></body></html>"
}

func TestEngine_Extract(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{
		"https://a.com/1": page("Content from the first source with plenty of words."),
		"https://c.com/3": page("Content from the third source with plenty of words."),
	}}
	engine := NewEngine(fetcher, 4, time.Second, nil)

	candidates := []model.DiscoveryCandidate{
		{URL: "https://a.com/1", SourceType: model.SourceTypeNews, Credibility: 8},
		{URL: "https://b.com/2", SourceType: model.SourceTypeWeb, Credibility: 5}, // fetch fails
		{URL: "https://c.com/3", SourceType: model.SourceTypeBlog, Credibility: 3},
	}

	evidence := engine.Extract(context.Background(), candidates)

	if len(evidence) != 2 {
		t.Fatalf("expected 2 evidence items (failed fetch dropped), got %d", len(evidence))
	}
	// Rank order must be preserved
	if evidence[0].URL != "https://a.com/1" || evidence[1].URL != "https://c.com/3" {
		t.Errorf("expected rank order preserved, got %s then %s", evidence[0].URL, evidence[1].URL)
	}
	if evidence[0].Credibility != 8 {
		t.Errorf("expected candidate credibility carried over, got %v", evidence[0].Credibility)
	}
}

func TestEngine_SkipsPlaceholders(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{}}
	engine := NewEngine(fetcher, 2, time.Second, nil)

	candidates := []model.DiscoveryCandidate{
		{URL: "https://veridict.invalid/placeholder/fact-check", Placeholder: true, SourceType: model.SourceTypeFactCheck},
	}

	evidence := engine.Extract(context.Background(), candidates)
	if len(evidence) != 0 {
		t.Errorf("expected placeholders to be skipped, got %d evidence items", len(evidence))
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{
		"https://a.com/1": page("Some content that would normally be extracted fine."),
	}}
	engine := NewEngine(fetcher, 2, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evidence := engine.Extract(ctx, []model.DiscoveryCandidate{
		{URL: "https://a.com/1", SourceType: model.SourceTypeNews},
	})
	if len(evidence) != 0 {
		t.Errorf("expected no evidence under a cancelled context, got %d", len(evidence))
	}
}
