package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/veridict/internal/model"
)

// Provider defines the interface for AI-analysis providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze produces a verdict with confidence and reasoning for the
	// claim, judged strictly against the supplied evidence sample.
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnalysisRequest contains the input for verdict synthesis.
type AnalysisRequest struct {
	// Claim is the statement under review
	Claim string

	// Evidence is the credibility-ranked sample the model may rely on.
	// It is the STRICT basis for the verdict - the model must not reach
	// beyond it.
	Evidence []model.Evidence

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnalysisResponse is the provider's structured verdict.
type AnalysisResponse struct {
	Verdict    model.Verdict
	Confidence float64 // 0-100
	Summary    string
	Reasoning  string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds analysis provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1200,
	}
}

const systemPrompt = "You are a fact-checking analyst. You judge claims strictly against the evidence provided and respond only with the requested JSON object."

// BuildPrompt constructs the analysis prompt. The evidence sample is the
// model's entire world: it must not cite or rely on anything else.
func BuildPrompt(claim string, evidence []model.Evidence) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Evaluate the following claim against the evidence below.

CLAIM: %s

RULES:
1. Judge ONLY from the evidence listed. Do not use outside knowledge to settle the verdict.
2. If the evidence is insufficient or conflicting, say so via the verdict and confidence.
3. Respond with a single JSON object, no prose around it:
   {"verdict": "TRUE|FALSE|PARTIALLY_TRUE|MISLEADING|UNVERIFIED", "confidence": 0-100, "summary": "...", "reasoning": "..."}

EVIDENCE (%d items, credibility 0-10, sentiment -1..1):
`, claim, len(evidence))

	for i, ev := range evidence {
		snippet := ev.Snippet
		if snippet == "" && len(ev.Content) > 0 {
			snippet = ev.Content
			if len(snippet) > 280 {
				snippet = snippet[:280]
			}
		}
		fmt.Fprintf(&b, "%d. [%s | %s | cred %.1f | sent %+.2f] %s — %s\n",
			i+1, ev.SourceName, ev.SourceType, ev.Credibility, ev.Sentiment, ev.Title, snippet)
	}

	return b.String()
}

// ParseResponse decodes the model's JSON verdict, tolerating markdown code
// fences and stray prose around the object.
func ParseResponse(raw, modelName string, tokens int) (*AnalysisResponse, error) {
	cleaned := extractJSONObject(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var decoded struct {
		Verdict    string  `json:"verdict"`
		Confidence float64 `json:"confidence"`
		Summary    string  `json:"summary"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("decode verdict JSON: %w", err)
	}

	verdict, err := parseVerdict(decoded.Verdict)
	if err != nil {
		return nil, err
	}
	if decoded.Confidence < 0 {
		decoded.Confidence = 0
	}
	if decoded.Confidence > 100 {
		decoded.Confidence = 100
	}

	return &AnalysisResponse{
		Verdict:    verdict,
		Confidence: decoded.Confidence,
		Summary:    strings.TrimSpace(decoded.Summary),
		Reasoning:  strings.TrimSpace(decoded.Reasoning),
		Model:      modelName,
		TokensUsed: tokens,
	}, nil
}

func parseVerdict(s string) (model.Verdict, error) {
	switch model.Verdict(strings.ToUpper(strings.TrimSpace(s))) {
	case model.VerdictTrue:
		return model.VerdictTrue, nil
	case model.VerdictFalse:
		return model.VerdictFalse, nil
	case model.VerdictPartiallyTrue:
		return model.VerdictPartiallyTrue, nil
	case model.VerdictMisleading:
		return model.VerdictMisleading, nil
	case model.VerdictUnverified:
		return model.VerdictUnverified, nil
	default:
		return "", fmt.Errorf("unknown verdict %q", s)
	}
}

// extractJSONObject returns the first top-level {...} span in the text.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
