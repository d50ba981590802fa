package model

import (
	"fmt"
	"strings"
)

// Claim length bounds enforced before a job is created.
const (
	MinClaimLength = 10
	MaxClaimLength = 1000
)

// Claim is the user-submitted statement to be fact-checked. It is immutable
// after submission; every pipeline phase receives it read-only.
type Claim struct {
	Text string `json:"text"`
}

// NewClaim validates and normalizes the raw claim text.
func NewClaim(text string) (Claim, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinClaimLength {
		return Claim{}, fmt.Errorf("%w: claim must be at least %d characters", ErrInvalidClaim, MinClaimLength)
	}
	if len(trimmed) > MaxClaimLength {
		return Claim{}, fmt.Errorf("%w: claim must be at most %d characters", ErrInvalidClaim, MaxClaimLength)
	}
	return Claim{Text: trimmed}, nil
}

// Normalized returns the canonical form used for duplicate detection:
// lowercased with runs of whitespace collapsed to single spaces.
func (c Claim) Normalized() string {
	return strings.Join(strings.Fields(strings.ToLower(c.Text)), " ")
}

func (c Claim) String() string {
	return c.Text
}
