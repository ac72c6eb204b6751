// Package personality shapes base answers with a consistent persona:
// register, warmth, structure, stage openings, encouragement, and tone.
package personality

import (
	"math/rand"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/models"
)

// Conversation stages recognized by the shaper.
const (
	StageGreeting = "greeting"
	StageOngoing  = "ongoing"
)

// Shaper applies the personality pipeline to base responses. Phrase choices
// are deliberately randomized, so repeated calls differ in wording; callers
// should not depend on exact output text.
type Shaper struct {
	registry *Registry
	logger   *zap.Logger
}

// NewShaper builds a shaper over the profile registry.
func NewShaper(registry *Registry, logger *zap.Logger) *Shaper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shaper{registry: registry, logger: logger}
}

// Shape transforms base text through the personality pipeline. On any
// internal failure the base text is returned unchanged; shaping is never
// allowed to fail a request.
func (s *Shaper) Shape(base string, reading *models.EmotionReading, profile *Profile, stage string) (out string) {
	out = base
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("response shaping panicked", zap.Any("panic", r))
			out = base
		}
	}()
	if profile == nil {
		profile = s.registry.Get("")
	}
	if reading == nil {
		reading = models.NeutralReading()
	}

	text := base
	text = adjustRegister(text, profile.FormalityLevel)
	if profile.EmpathyLevel > 0.8 && models.IsDistressEmotion(reading.PrimaryEmotion) {
		text = addWarmthMarkers(text)
	}
	if profile.DetailOrientation > 0.8 {
		text = enhanceStructure(text)
	}
	if stage == StageGreeting {
		if openers := greetingTemplates[profile.Key]; len(openers) > 0 {
			text = openers[rand.Intn(len(openers))] + "\n\n" + text
		}
	}
	if models.IsDistressEmotion(reading.PrimaryEmotion) && profile.Supportiveness > 0.8 {
		if lines := encouragementTemplates[profile.Key]; len(lines) > 0 {
			text = text + "\n\n" + lines[rand.Intn(len(lines))]
		}
	}
	if profile.HumorUsage > 0.5 && !models.IsDistressEmotion(reading.PrimaryEmotion) &&
		reading.UrgencyLevel != models.UrgencyHigh {
		if rand.Float64() < 0.3 {
			text += humorSuffixes[rand.Intn(len(humorSuffixes))]
		}
	}
	text = applyToneAdjustments(text, reading.PrimaryEmotion, profile.Key)
	return text
}

var contractions = []struct{ formal, casual string }{
	{"I am", "I'm"},
	{"do not", "don't"},
	{"cannot", "can't"},
	{"will not", "won't"},
	{"should not", "shouldn't"},
	{"would not", "wouldn't"},
	{"it is", "it's"},
	{"that is", "that's"},
}

var contractionPatterns = buildContractionPatterns()

func buildContractionPatterns() []struct {
	formal, casual *regexp.Regexp
	formalText     string
	casualText     string
} {
	out := make([]struct {
		formal, casual *regexp.Regexp
		formalText     string
		casualText     string
	}, len(contractions))
	for i, c := range contractions {
		out[i].formal = regexp.MustCompile(`(?i)\b` + c.formal + `\b`)
		out[i].casual = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c.casual) + `\b`)
		out[i].formalText = c.formal
		out[i].casualText = c.casual
	}
	return out
}

// adjustRegister contracts below 0.3 formality and expands above 0.7;
// anything between leaves the text alone.
func adjustRegister(text string, formality float64) string {
	switch {
	case formality < 0.3:
		for _, p := range contractionPatterns {
			text = p.formal.ReplaceAllString(text, p.casualText)
		}
	case formality > 0.7:
		for _, p := range contractionPatterns {
			text = p.casual.ReplaceAllString(text, p.formalText)
		}
	}
	return text
}

var warmthMarkers = []struct{ cold, warm string }{
	{"I understand", "I truly understand"},
	{"This is difficult", "This must be so difficult for you"},
	{"You should", "You might consider"},
	{"Here's what to do", "Here's what I'd gently suggest"},
}

func addWarmthMarkers(text string) string {
	for _, m := range warmthMarkers {
		text = strings.ReplaceAll(text, m.cold, m.warm)
	}
	return text
}

// enhanceStructure bolds label:content lines in lightly formatted text.
func enhanceStructure(text string) string {
	if !strings.Contains(text, ":") || strings.Count(text, "**") > 4 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, ":") && trimmed != "" &&
			!strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "*") {
			lines[i] = "**" + line + "**"
		}
	}
	return strings.Join(lines, "\n")
}

var reassuranceLeads = []string{
	"You're absolutely safe now.",
	"This is completely manageable.",
	"You're taking exactly the right steps.",
}

// applyToneAdjustments is the fixed emotion-by-profile transform table.
func applyToneAdjustments(text, emotion, profileKey string) string {
	switch {
	case emotion == models.EmotionFear && profileKey == ProfileCompassionateGuardian:
		// Soften imperative phrasing and prepend reassurance.
		text = strings.ReplaceAll(text, "You need to", "When you're ready, you might")
		text = strings.ReplaceAll(text, "You must", "I'd gently recommend that you")
		text = reassuranceLeads[rand.Intn(len(reassuranceLeads))] + " " + text
	case emotion == models.EmotionFear && profileKey == ProfileKnowledgeableMentor:
		if strings.Contains(text, "1.") || strings.Contains(text, "- ") {
			text = "Let me break this down into clear, manageable steps:\n\n" + text
		}
	case emotion == models.EmotionAnxiety && profileKey == ProfileCompassionateGuardian:
		text = "Take a breath; we'll go one step at a time. " + text
	case emotion == models.EmotionAnger:
		text = "Your frustration is completely understandable. " + text
	}
	return text
}
