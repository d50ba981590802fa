package discover

import (
	"context"
	"testing"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

func TestCredibilityFor(t *testing.T) {
	cases := []struct {
		url  string
		want float64
	}{
		{"https://www.snopes.com/fact-check/some-claim/", 9.5},
		{"https://en.wikipedia.org/wiki/Topic", 7.0},
		{"https://health.cdc.gov/advisory", 9.5},
		{"https://epa.gov/report", 9.0},
		{"https://physics.mit.edu/paper", 8.5},
		{"https://random-blog.example.net/post", 5.0},
		{"://broken", 5.0},
	}

	for _, tc := range cases {
		if got := CredibilityFor(tc.url); got != tc.want {
			t.Errorf("CredibilityFor(%q): expected %v, got %v", tc.url, tc.want, got)
		}
	}
}

func TestTypeFor(t *testing.T) {
	cases := []struct {
		url  string
		want model.SourceType
	}{
		{"https://www.politifact.com/factchecks/2024/", model.SourceTypeFactCheck},
		{"https://x.com/user/status/1", model.SourceTypeSocialMedia},
		{"https://old.reddit.com/r/news/comments/abc", model.SourceTypeForum},
		{"https://www.youtube.com/watch?v=abc", model.SourceTypeVideo},
		{"https://arxiv.org/abs/2401.00001", model.SourceTypeAcademic},
		{"https://www.cdc.gov/flu", model.SourceTypeOfficial},
		{"https://www.reuters.com/world/story", model.SourceTypeNews},
		{"https://medium.com/@author/post", model.SourceTypeBlog},
		{"https://unknown-site.example.com/page", model.SourceTypeWeb},
	}

	for _, tc := range cases {
		if got := TypeFor(tc.url); got != tc.want {
			t.Errorf("TypeFor(%q): expected %s, got %s", tc.url, tc.want, got)
		}
	}
}

func TestFactCheckAdapter_PlaceholderOnNoResults(t *testing.T) {
	adapter := &FactCheckAdapter{} // no API key configured

	claim, err := model.NewClaim("The moon landing was staged in a Hollywood studio")
	if err != nil {
		t.Fatalf("NewClaim: %v", err)
	}
	analysis, err := preprocess.Analyze(claim)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	out := adapter.Discover(context.Background(), analysis)

	if len(out) != 1 {
		t.Fatalf("expected exactly one placeholder candidate, got %d", len(out))
	}
	p := out[0]
	if !p.Placeholder {
		t.Error("expected candidate to be tagged as placeholder")
	}
	if p.Credibility != 0 {
		t.Errorf("expected placeholder credibility 0, got %v", p.Credibility)
	}
	if p.SourceName != "fact_check_placeholder" {
		t.Errorf("expected placeholder source name, got %s", p.SourceName)
	}
	if p.SourceType != model.SourceTypeFactCheck {
		t.Errorf("expected fact_check source type, got %s", p.SourceType)
	}
}
