package personality

import (
	"strings"
	"testing"

	"github.com/digiraksha/mitra/internal/models"
)

func neutralReading() *models.EmotionReading {
	return models.NeutralReading()
}

func fearReading() *models.EmotionReading {
	return &models.EmotionReading{
		PrimaryEmotion: models.EmotionFear,
		Intensity:      0.8,
		UrgencyLevel:   models.UrgencyMedium,
	}
}

func TestShapeNeverEmpty(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	for _, key := range []string{ProfileCompassionateGuardian, ProfileKnowledgeableMentor, ProfileFriendlyCompanion} {
		out := s.Shape("Here is the answer.", fearReading(), NewRegistry().Get(key), StageOngoing)
		if out == "" {
			t.Errorf("%s: shaped output must not be empty", key)
		}
	}
}

func TestShapeNilInputsFallBack(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	out := s.Shape("Base answer.", nil, nil, StageOngoing)
	if out == "" {
		t.Error("nil reading/profile should still produce output")
	}
	if !strings.Contains(out, "Base answer.") {
		t.Errorf("base content must survive shaping, got %q", out)
	}
}

func TestHighFormalityExpandsContractions(t *testing.T) {
	reg := NewRegistry()
	// Mentor sits at 0.6 formality, below the expansion bar; push it up.
	profile := *reg.Get(ProfileKnowledgeableMentor)
	profile.FormalityLevel = 0.9
	s := NewShaper(reg, nil)
	out := s.Shape("Don't worry, it's going to be fine.", neutralReading(), &profile, StageOngoing)
	if strings.Contains(out, "don't") || strings.Contains(out, "Don't") {
		t.Errorf("formal register should expand contractions, got %q", out)
	}
	if !strings.Contains(out, "do not") {
		t.Errorf("expected expanded form, got %q", out)
	}
}

func TestLowFormalityContracts(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	profile := NewRegistry().Get(ProfileFriendlyCompanion) // formality 0.2
	out := s.Shape("Do not share your PIN. It is important.", neutralReading(), profile, StageOngoing)
	if !strings.Contains(strings.ToLower(out), "don't") {
		t.Errorf("casual register should contract, got %q", out)
	}
}

func TestGreetingStagePrependsOpener(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	profile := NewRegistry().Get(ProfileCompassionateGuardian)
	base := "Here is how to secure your account."
	out := s.Shape(base, neutralReading(), profile, StageGreeting)
	if !strings.HasSuffix(strings.TrimSpace(out), base) && !strings.Contains(out, base) {
		t.Fatalf("base text must survive, got %q", out)
	}
	if strings.Index(out, base) == 0 {
		t.Error("greeting stage should prepend an opener before the base text")
	}
}

func TestDistressGetsEncouragementSuffix(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	profile := NewRegistry().Get(ProfileCompassionateGuardian) // supportiveness 0.95
	base := "Block your card and call the bank."
	out := s.Shape(base, fearReading(), profile, StageOngoing)
	idx := strings.Index(out, "Block your card")
	if idx < 0 {
		t.Fatalf("base text must survive, got %q", out)
	}
	after := out[idx+len(base):]
	if strings.TrimSpace(after) == "" {
		t.Error("distress with supportive profile should append encouragement")
	}
}

func TestWarmthMarkersForDistress(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	profile := NewRegistry().Get(ProfileCompassionateGuardian) // empathy 0.95
	out := s.Shape("I understand. You should report this.", fearReading(), profile, StageOngoing)
	if !strings.Contains(out, "I truly understand") {
		t.Errorf("expected warmth markers, got %q", out)
	}
	if !strings.Contains(out, "You might consider") {
		t.Errorf("expected softened directive, got %q", out)
	}
}

func TestNoHumorUnderHighUrgency(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	profile := NewRegistry().Get(ProfileFriendlyCompanion) // humor 0.7
	urgent := &models.EmotionReading{
		PrimaryEmotion: models.EmotionHope,
		UrgencyLevel:   models.UrgencyHigh,
	}
	// Humor injection is probabilistic, so run repeatedly.
	for i := 0; i < 50; i++ {
		out := s.Shape("Answer text.", urgent, profile, StageOngoing)
		for _, suffix := range humorSuffixes {
			if strings.Contains(out, strings.TrimSpace(suffix)) {
				t.Fatal("humor must never appear under high urgency")
			}
		}
	}
}

func TestHumorIgnoresSentimentScore(t *testing.T) {
	s := NewShaper(NewRegistry(), nil)
	profile := NewRegistry().Get(ProfileFriendlyCompanion) // humor 0.7
	grumpy := &models.EmotionReading{
		PrimaryEmotion: models.EmotionNeutral,
		UrgencyLevel:   models.UrgencyLow,
		SentimentScore: -0.8,
	}
	// The gate is emotion and urgency only; negative sentiment alone must
	// not suppress humor. Injection is probabilistic at 0.3 per call.
	for i := 0; i < 200; i++ {
		out := s.Shape("Answer text.", grumpy, profile, StageOngoing)
		for _, suffix := range humorSuffixes {
			if strings.Contains(out, strings.TrimSpace(suffix)) {
				return
			}
		}
	}
	t.Error("humor never injected for a neutral, low-urgency reading with negative sentiment")
}

func TestEnhanceStructureBoldsLabelLines(t *testing.T) {
	got := enhanceStructure("Step one: block the card\njust a plain line")
	if !strings.Contains(got, "**Step one: block the card**") {
		t.Errorf("label line should be emphasized, got %q", got)
	}
	if strings.Contains(got, "**just a plain line**") {
		t.Errorf("plain line should stay unformatted, got %q", got)
	}
}

func TestRegistryGetFallsBack(t *testing.T) {
	reg := NewRegistry()
	if p := reg.Get("no_such_profile"); p.Key != DefaultProfile {
		t.Errorf("unknown profile should fall back to default, got %s", p.Key)
	}
	if p := reg.Get(""); p.Key != DefaultProfile {
		t.Errorf("empty profile should fall back to default, got %s", p.Key)
	}
}

func TestRegistryAdjustBounded(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < 10; i++ {
		if _, err := reg.Adjust(ProfileFriendlyCompanion, true, true); err != nil {
			t.Fatalf("Adjust: %v", err)
		}
	}
	p := reg.Get(ProfileFriendlyCompanion)
	if p.FormalityLevel < 0.1 {
		t.Errorf("formality must clamp at 0.1, got %f", p.FormalityLevel)
	}
	if p.HumorUsage > 1.0 {
		t.Errorf("humor must clamp at 1.0, got %f", p.HumorUsage)
	}
	if _, err := reg.Adjust("nope", true, false); err == nil {
		t.Error("unknown profile should error")
	}
}
