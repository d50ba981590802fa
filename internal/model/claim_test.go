package model

import (
	"errors"
	"strings"
	"testing"
)

func TestNewClaim_Valid(t *testing.T) {
	claim, err := NewClaim("  The Great Wall of China is visible from space  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claim.Text != "The Great Wall of China is visible from space" {
		t.Errorf("expected trimmed text, got %q", claim.Text)
	}
}

func TestNewClaim_TooShort(t *testing.T) {
	_, err := NewClaim("too short")
	if !errors.Is(err, ErrInvalidClaim) {
		t.Errorf("expected ErrInvalidClaim, got %v", err)
	}

	// Whitespace padding must not rescue a short claim
	_, err = NewClaim("   hi    ")
	if !errors.Is(err, ErrInvalidClaim) {
		t.Errorf("expected ErrInvalidClaim for padded short claim, got %v", err)
	}
}

func TestNewClaim_TooLong(t *testing.T) {
	_, err := NewClaim(strings.Repeat("a", MaxClaimLength+1))
	if !errors.Is(err, ErrInvalidClaim) {
		t.Errorf("expected ErrInvalidClaim, got %v", err)
	}
}

func TestClaim_Normalized(t *testing.T) {
	claim, err := NewClaim("The  Moon   Landing WAS\tFaked")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "the moon landing was faked"
	if got := claim.Normalized(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Variants normalize to the same key
	other, _ := NewClaim("the moon landing was faked")
	if claim.Normalized() != other.Normalized() {
		t.Errorf("expected case/whitespace variants to normalize identically")
	}
}

func TestEvidence_Clamp(t *testing.T) {
	ev := Evidence{Credibility: 14, Sentiment: -3}
	ev.Clamp()
	if ev.Credibility != MaxCredibility {
		t.Errorf("expected credibility clamped to %v, got %v", MaxCredibility, ev.Credibility)
	}
	if ev.Sentiment != MinSentiment {
		t.Errorf("expected sentiment clamped to %v, got %v", MinSentiment, ev.Sentiment)
	}

	ev = Evidence{Credibility: 7.5, Sentiment: 0.4}
	ev.Clamp()
	if ev.Credibility != 7.5 || ev.Sentiment != 0.4 {
		t.Errorf("in-range values must be unchanged, got %v / %v", ev.Credibility, ev.Sentiment)
	}
}

func TestEngagement_Total(t *testing.T) {
	e := Engagement{Likes: 100, Shares: 50, Comments: 25, Views: 1000}
	want := int64(100 + 50 + 25 + 10)
	if got := e.Total(); got != want {
		t.Errorf("expected total %d, got %d", want, got)
	}
}

func TestJobState_Terminal(t *testing.T) {
	cases := []struct {
		state    JobState
		terminal bool
	}{
		{JobWaiting, false},
		{JobActive, false},
		{JobCompleted, true},
		{JobFailed, true},
	}
	for _, tc := range cases {
		if got := tc.state.Terminal(); got != tc.terminal {
			t.Errorf("%s: expected terminal=%v, got %v", tc.state, tc.terminal, got)
		}
	}
}
