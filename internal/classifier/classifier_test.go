package classifier

import (
	"testing"

	"github.com/digiraksha/mitra/internal/models"
)

func TestClassifyGreeting(t *testing.T) {
	c := New(nil)
	got := c.Classify("Hello there!")
	if got.Category != models.CategoryGreeting {
		t.Errorf("expected greeting, got %s", got.Category)
	}
	if got.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %f", got.Confidence)
	}
	if len(got.MatchedPatterns) == 0 {
		t.Error("expected matched patterns recorded")
	}
}

func TestClassifyPatternMatches(t *testing.T) {
	c := New(nil)
	cases := []struct {
		query    string
		category string
	}{
		{"I'm scared, someone scammed me", models.CategoryEmotionalDistress},
		{"what does RBI say about transaction limits", models.CategoryRBISpecific},
		{"what are the common fraud types these days", models.CategoryFraudTypes},
		{"how do I secure my payment apps", models.CategorySecurityMeasures},
		{"give me the cyber crime helpline", models.CategoryEmergencyHelp},
		{"what are the kyc requirements", models.CategoryCompliance},
		{"will I recover my money back", models.CategoryComfortSeeking},
		{"who are you anyway", models.CategoryCasual},
	}
	for _, tc := range cases {
		got := c.Classify(tc.query)
		if got.Category != tc.category {
			t.Errorf("Classify(%q) = %s, want %s", tc.query, got.Category, tc.category)
		}
		if got.Confidence != 0.8 {
			t.Errorf("Classify(%q) confidence = %f, want 0.8", tc.query, got.Confidence)
		}
	}
}

func TestClassifyKeywordOnly(t *testing.T) {
	c := New(nil)
	got := c.Classify("upi question")
	if got.Category != models.CategoryGeneral {
		t.Errorf("keyword-only match should stay general, got %s", got.Category)
	}
	if got.Confidence != 0.6 {
		t.Errorf("expected keyword confidence 0.6, got %f", got.Confidence)
	}
	if len(got.Keywords) == 0 {
		t.Error("expected keywords recorded")
	}
}

func TestClassifyKeywordNeverOverridesPattern(t *testing.T) {
	c := New(nil)
	// Contains both a greeting pattern and many keywords.
	got := c.Classify("hello, I need help with a fraud report on my upi account")
	if got.Confidence != 0.8 {
		t.Errorf("pattern confidence must win, got %f", got.Confidence)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	c := New(nil)
	got := c.Classify("zebra quantum juggling")
	if got.Category != models.CategoryGeneral {
		t.Errorf("expected general, got %s", got.Category)
	}
	if got.Confidence != 0 {
		t.Errorf("expected confidence 0, got %f", got.Confidence)
	}
}

func TestClassifyEarliestCategoryWinsTie(t *testing.T) {
	c := New(nil)
	// Matches greeting ("hello") and casual ("can you help me") patterns at
	// equal confidence; the earlier-registered category must win.
	got := c.Classify("hello, can you help me")
	if got.Category != models.CategoryGreeting {
		t.Errorf("tie should resolve to greeting, got %s", got.Category)
	}
}
