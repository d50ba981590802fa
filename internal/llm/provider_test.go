package llm

import (
	"strings"
	"testing"

	"github.com/ppiankov/veridict/internal/model"
)

func TestParseResponse_PlainJSON(t *testing.T) {
	raw := `{"verdict": "FALSE", "confidence": 85, "summary": "Refuted.", "reasoning": "Sources contradict it."}`

	resp, err := ParseResponse(raw, "test-model", 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Verdict != model.VerdictFalse {
		t.Errorf("expected FALSE, got %s", resp.Verdict)
	}
	if resp.Confidence != 85 {
		t.Errorf("expected confidence 85, got %v", resp.Confidence)
	}
	if resp.Model != "test-model" || resp.TokensUsed != 100 {
		t.Errorf("expected model metadata carried through")
	}
}

func TestParseResponse_CodeFence(t *testing.T) {
	raw := "Here is my analysis:\n```json\n{\"verdict\": \"PARTIALLY_TRUE\", \"confidence\": 60, \"summary\": \"s\", \"reasoning\": \"r\"}\n```\nLet me know if you need more."

	resp, err := ParseResponse(raw, "m", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Verdict != model.VerdictPartiallyTrue {
		t.Errorf("expected PARTIALLY_TRUE, got %s", resp.Verdict)
	}
}

func TestParseResponse_ConfidenceClamped(t *testing.T) {
	resp, err := ParseResponse(`{"verdict": "true", "confidence": 150, "summary": "s", "reasoning": "r"}`, "m", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Confidence != 100 {
		t.Errorf("expected confidence clamped to 100, got %v", resp.Confidence)
	}
	if resp.Verdict != model.VerdictTrue {
		t.Errorf("expected lowercase verdict accepted, got %s", resp.Verdict)
	}
}

func TestParseResponse_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no JSON", "the claim is probably false"},
		{"unknown verdict", `{"verdict": "MAYBE", "confidence": 50}`},
		{"truncated object", `{"verdict": "TRUE", "confidence": 50`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseResponse(tc.raw, "m", 0); err == nil {
				t.Errorf("expected error for %q", tc.raw)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	evidence := []model.Evidence{
		{SourceName: "snopes.com", SourceType: model.SourceTypeFactCheck, Credibility: 9.5,
			Sentiment: -0.8, Title: "Claim rated false", Snippet: "The claim has been rated false."},
	}

	prompt := BuildPrompt("The moon is made of cheese", evidence)

	if !strings.Contains(prompt, "The moon is made of cheese") {
		t.Error("expected claim in prompt")
	}
	if !strings.Contains(prompt, "snopes.com") {
		t.Error("expected evidence source in prompt")
	}
	if !strings.Contains(prompt, "Judge ONLY from the evidence listed") {
		t.Error("expected strict-evidence rule in prompt")
	}
	if !strings.Contains(prompt, "1 items") {
		t.Error("expected evidence count in prompt")
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("expected no error for disabled provider, got %v", err)
	}
	if provider != nil {
		t.Error("expected nil provider when disabled")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "bard"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{`prefix {"a": {"b": 2}} suffix`, `{"a": {"b": 2}}`},
		{`no braces here`, ""},
		{`{"unbalanced": `, ""},
	}
	for _, tc := range cases {
		if got := extractJSONObject(tc.in); got != tc.want {
			t.Errorf("extractJSONObject(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
