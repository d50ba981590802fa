package access

import (
	"strings"

	"github.com/ppiankov/veridict/internal/model"
)

// Small fixed lexicons. The score is a coarse polarity signal, not a
// language model: hits are counted per token and scaled.
var positiveLexicon = map[string]bool{
	"true": true, "accurate": true, "correct": true, "confirmed": true,
	"verified": true, "proven": true, "legitimate": true, "authentic": true,
	"credible": true, "reliable": true, "supported": true, "valid": true,
	"factual": true, "genuine": true, "real": true,
}

var negativeLexicon = map[string]bool{
	"false": true, "fake": true, "hoax": true, "debunked": true,
	"misleading": true, "wrong": true, "incorrect": true, "fabricated": true,
	"unfounded": true, "baseless": true, "myth": true, "disproven": true,
	"inaccurate": true, "untrue": true, "refuted": true, "fraudulent": true,
}

// Sentiment computes clamp(-1, 1, (positiveHits - negativeHits) / tokens * 100)
// over the fixed lexicons. Empty content scores neutral.
func Sentiment(content string) float64 {
	tokens := strings.Fields(strings.ToLower(content))
	if len(tokens) == 0 {
		return 0
	}

	var positive, negative int
	for _, tok := range tokens {
		tok = strings.Trim(tok, ".,;:!?\"'()[]")
		if positiveLexicon[tok] {
			positive++
		} else if negativeLexicon[tok] {
			negative++
		}
	}

	raw := float64(positive-negative) / float64(len(tokens)) * 100
	return model.ClampSentiment(raw)
}
