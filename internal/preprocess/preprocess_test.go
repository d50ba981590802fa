package preprocess

import (
	"reflect"
	"testing"

	"github.com/ppiankov/veridict/internal/model"
)

func mustClaim(t *testing.T, text string) model.Claim {
	t.Helper()
	claim, err := model.NewClaim(text)
	if err != nil {
		t.Fatalf("NewClaim(%q): %v", text, err)
	}
	return claim
}

func TestAnalyze_Deterministic(t *testing.T) {
	claim := mustClaim(t, "The new vaccine causes severe side effects in children")

	a1, err := Analyze(claim)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	a2, err := Analyze(claim)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(a1, a2) {
		t.Errorf("expected identical analyses for identical claims")
	}
}

func TestAnalyze_Classification(t *testing.T) {
	cases := []struct {
		claim string
		want  string
	}{
		{"The new vaccine causes severe side effects in children", "medical"},
		{"The president rigged the election with fake mail-in votes", "political"},
		{"A NASA study found the earth's core stopped rotating", "scientific"},
		{"Unemployment rose 40% to over 12 million people last year", "statistical"},
		{"My neighbor painted his whole house bright purple overnight", "general"},
	}

	for _, tc := range cases {
		a, err := Analyze(mustClaim(t, tc.claim))
		if err != nil {
			t.Fatalf("Analyze(%q): %v", tc.claim, err)
		}
		if a.ClaimType != tc.want {
			t.Errorf("%q: expected claim type %s, got %s", tc.claim, tc.want, a.ClaimType)
		}
	}
}

func TestAnalyze_KeywordsExcludeStopwords(t *testing.T) {
	a, err := Analyze(mustClaim(t, "The government is hiding the truth about the economy"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(a.Keywords) == 0 {
		t.Fatal("expected at least one keyword")
	}
	for _, kw := range a.Keywords {
		if stopwords[kw] {
			t.Errorf("stopword %q leaked into keywords", kw)
		}
		if len(kw) < 3 {
			t.Errorf("short token %q leaked into keywords", kw)
		}
	}

	// Domain term should rank first
	if a.Keywords[0] != "government" && a.Keywords[0] != "economy" {
		t.Errorf("expected a domain term ranked first, got %q", a.Keywords[0])
	}
}

func TestAnalyze_Entities(t *testing.T) {
	a, err := Analyze(mustClaim(t, "Elon Musk bought CNN for two billion dollars last Tuesday"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found := false
	for _, e := range a.Entities {
		if e == "Elon Musk" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected entity 'Elon Musk', got %v", a.Entities)
	}
}

func TestAnalyze_SearchVariations(t *testing.T) {
	a, err := Analyze(mustClaim(t, "Drinking bleach cures covid infections within hours"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(a.SearchVariations) < 4 {
		t.Fatalf("expected at least 4 variations, got %d", len(a.SearchVariations))
	}
	if a.SearchVariations[0] != a.Claim.Text {
		t.Errorf("expected first variation to be the claim itself, got %q", a.SearchVariations[0])
	}

	hasFactCheck := false
	for _, v := range a.SearchVariations {
		if len(v) > 10 && v[len(v)-10:] == "fact check" {
			hasFactCheck = true
		}
	}
	if !hasFactCheck {
		t.Errorf("expected a 'fact check' variation, got %v", a.SearchVariations)
	}
}

func TestAnalyze_Urgency(t *testing.T) {
	cases := []struct {
		claim string
		want  Level
	}{
		{"My neighbor painted his whole house bright purple overnight", LevelLow},
		{"This miracle supplement cures baldness in just three days", LevelMedium},
		{"Breaking: deadly outbreak kills thousands, urgent warning issued", LevelHigh},
	}

	for _, tc := range cases {
		a, err := Analyze(mustClaim(t, tc.claim))
		if err != nil {
			t.Fatalf("Analyze(%q): %v", tc.claim, err)
		}
		if a.Urgency != tc.want {
			t.Errorf("%q: expected urgency %s, got %s (risks: %v)", tc.claim, tc.want, a.Urgency, a.RiskFactors)
		}
	}
}

func TestAnalyze_TargetPlatforms(t *testing.T) {
	a, err := Analyze(mustClaim(t, "The president rigged the election with fake mail-in votes"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"twitter", "facebook", "reddit"}
	if !reflect.DeepEqual(a.TargetPlatforms, want) {
		t.Errorf("expected platforms %v, got %v", want, a.TargetPlatforms)
	}
}
