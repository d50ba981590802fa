package discover

import (
	"reflect"
	"testing"

	"github.com/ppiankov/veridict/internal/model"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://Example.com/Article?utm_source=x#top", "https://example.com/Article"},
		{"https://www.example.com/article/", "https://example.com/article"},
		{"https://example.com/article", "https://example.com/article"},
		{"http://WWW.Example.COM/a?b=c", "http://example.com/a"},
	}

	for _, tc := range cases {
		if got := NormalizeURL(tc.in); got != tc.want {
			t.Errorf("NormalizeURL(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestReduce_DedupKeepsHigherCredibility(t *testing.T) {
	candidates := []model.DiscoveryCandidate{
		{URL: "https://www.example.com/story?ref=feed", SourceName: "web_search", SourceType: model.SourceTypeWeb, Credibility: 3},
		{URL: "https://example.com/story", SourceName: "news", SourceType: model.SourceTypeNews, Credibility: 7},
		{URL: "https://example.com/story/#comments", SourceName: "social", SourceType: model.SourceTypeSocialMedia, Credibility: 2},
	}

	reduced := Reduce(candidates, 50)

	if len(reduced) != 1 {
		t.Fatalf("expected 1 candidate after dedup, got %d", len(reduced))
	}
	if reduced[0].Credibility != 7 {
		t.Errorf("expected the credibility-7 duplicate to survive, got %v", reduced[0].Credibility)
	}
	if reduced[0].SourceName != "news" {
		t.Errorf("expected the news duplicate to survive, got %s", reduced[0].SourceName)
	}
}

func TestReduce_TotalOrder(t *testing.T) {
	candidates := []model.DiscoveryCandidate{
		{URL: "https://b.com/post", SourceType: model.SourceTypeWeb, Credibility: 5},
		{URL: "https://a.com/post", SourceType: model.SourceTypeWeb, Credibility: 5},
		{URL: "https://factcheck.org/claim", SourceType: model.SourceTypeFactCheck, Credibility: 9},
		{URL: "https://blog.com/take", SourceType: model.SourceTypeBlog, Credibility: 5},
		{URL: "https://news.com/story", SourceType: model.SourceTypeNews, Credibility: 5, Verified: true},
		{URL: "https://news2.com/story", SourceType: model.SourceTypeNews, Credibility: 5},
	}

	reduced := Reduce(candidates, 50)

	if len(reduced) != 6 {
		t.Fatalf("expected 6 candidates, got %d", len(reduced))
	}
	if reduced[0].URL != "https://factcheck.org/claim" {
		t.Errorf("expected fact-check first, got %s", reduced[0].URL)
	}
	if reduced[1].URL != "https://news.com/story" {
		t.Errorf("expected verified news second, got %s", reduced[1].URL)
	}
	if reduced[2].URL != "https://news2.com/story" {
		t.Errorf("expected unverified news third, got %s", reduced[2].URL)
	}
	if reduced[3].URL != "https://blog.com/take" {
		t.Errorf("expected blog (priority 2) before web, got %s", reduced[3].URL)
	}
	if reduced[4].URL != "https://a.com/post" || reduced[5].URL != "https://b.com/post" {
		t.Errorf("expected web candidates ordered by URL, got %s then %s", reduced[4].URL, reduced[5].URL)
	}
}

func TestReduce_Idempotent(t *testing.T) {
	candidates := []model.DiscoveryCandidate{
		{URL: "https://a.com/1", SourceType: model.SourceTypeNews, Credibility: 6},
		{URL: "https://b.com/2", SourceType: model.SourceTypeWeb, Credibility: 4},
		{URL: "https://www.a.com/1", SourceType: model.SourceTypeBlog, Credibility: 2},
	}

	once := Reduce(candidates, 50)
	twice := Reduce(once, 50)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected Reduce to be idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestReduce_Truncation(t *testing.T) {
	var candidates []model.DiscoveryCandidate
	for i := 0; i < 60; i++ {
		candidates = append(candidates, model.DiscoveryCandidate{
			URL:         "https://example.com/" + string(rune('a'+i%26)) + "/" + string(rune('a'+i/26)),
			SourceType:  model.SourceTypeWeb,
			Credibility: float64(i % 10),
		})
	}

	reduced := Reduce(candidates, 50)
	if len(reduced) != 50 {
		t.Errorf("expected cap of 50, got %d", len(reduced))
	}

	// Highest credibility must survive the cut
	if reduced[0].Credibility != 9 {
		t.Errorf("expected top credibility 9 first, got %v", reduced[0].Credibility)
	}
}
