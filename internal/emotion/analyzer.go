// Package emotion infers emotional state, sentiment, urgency, and a
// recommended response tone from user messages.
package emotion

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/models"
)

// ModelClassifier is an optional external emotion model. Its labels are
// mapped into the built-in emotion vocabulary and merged with the pattern
// scores. Failures degrade to pattern-only detection.
type ModelClassifier interface {
	ClassifyEmotion(ctx context.Context, text string) (label string, score float64, err error)
}

// modelLabelMap folds external model vocabularies into the built-in set.
var modelLabelMap = map[string]string{
	"joy":      models.EmotionHope,
	"fear":     models.EmotionFear,
	"anger":    models.EmotionAnger,
	"sadness":  models.EmotionSadness,
	"disgust":  models.EmotionAnger,
	"surprise": models.EmotionAnxiety,
}

// Analyzer scores messages against the emotion pattern tables. Stateless
// after construction and safe for concurrent use.
type Analyzer struct {
	emotions  []emotionPatterns
	urgency   []urgencyGroup
	support   []supportGroup
	sentiment SentimentScorer
	secondary SentimentScorer
	model     ModelClassifier
	logger    *zap.Logger
}

// NewAnalyzer builds an analyzer. model may be nil for pattern-only
// detection.
func NewAnalyzer(model ModelClassifier, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		emotions:  buildEmotionTable(),
		urgency:   buildUrgencyTable(),
		support:   buildSupportTable(),
		sentiment: LexiconScorer{},
		secondary: PunctuationScorer{},
		model:     model,
		logger:    logger,
	}
}

// Analyze never fails: any internal panic is swallowed and a neutral
// reading is returned instead.
func (a *Analyzer) Analyze(ctx context.Context, text string) (reading *models.EmotionReading) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("emotion analysis panicked", zap.Any("panic", r))
			reading = models.NeutralReading()
		}
	}()

	lower := strings.ToLower(text)

	detected := map[string]float64{}
	primary := models.EmotionNeutral
	maxScore := 0.0

	for _, entry := range a.emotions {
		score := 0.0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				score += 0.3
			}
		}
		for _, phrase := range entry.phrases {
			if phrase.MatchString(lower) {
				score += 0.4
			}
		}
		for _, marker := range entry.intensity {
			if strings.Contains(lower, marker) {
				score += 0.2
			}
		}
		if score > 0 {
			if score > 1.0 {
				score = 1.0
			}
			detected[entry.name] = score
			// Strictly greater, so the first-registered emotion keeps ties.
			if score > maxScore {
				maxScore = score
				primary = entry.name
			}
		}
	}

	if a.model != nil {
		if label, score, err := a.model.ClassifyEmotion(ctx, text); err == nil {
			mapped := label
			if m, ok := modelLabelMap[strings.ToLower(label)]; ok {
				mapped = m
			}
			if existing, ok := detected[mapped]; !ok || score > existing {
				detected[mapped] = score
			}
			if score > maxScore {
				maxScore = score
				primary = mapped
			}
		} else {
			a.logger.Debug("emotion model unavailable, using pattern detection only", zap.Error(err))
		}
	}

	sentimentScore := a.sentiment.Score(text)
	if sentimentScore == 0.0 && a.secondary != nil {
		sentimentScore = a.secondary.Score(text)
	}

	urgency := a.determineUrgency(lower)
	support := a.determineSupportType(lower)
	tone := recommendTone(primary, sentimentScore, urgency)

	return &models.EmotionReading{
		PrimaryEmotion:    primary,
		Confidence:        maxScore,
		SecondaryEmotions: detected,
		SentimentScore:    sentimentScore,
		Intensity:         maxScore,
		UrgencyLevel:      urgency,
		SupportType:       support,
		RecommendedTone:   tone,
	}
}

// determineUrgency tests the ordered urgency groups, high first. The first
// group with a hit wins; no hit defaults to low.
func (a *Analyzer) determineUrgency(lower string) string {
	for _, group := range a.urgency {
		for _, p := range group.patterns {
			if p.MatchString(lower) {
				return group.level
			}
		}
	}
	return models.UrgencyLow
}

// determineSupportType counts hits per support group; the group with the
// most hits wins, ties going to the earlier group. No hit defaults to
// informational.
func (a *Analyzer) determineSupportType(lower string) string {
	best := models.SupportInformational
	bestHits := 0
	for _, group := range a.support {
		hits := 0
		for _, p := range group.patterns {
			if p.MatchString(lower) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = group.kind
		}
	}
	return best
}

// recommendTone is the fixed emotion/urgency/sentiment decision table.
func recommendTone(emotion string, sentiment float64, urgency string) string {
	switch {
	case models.IsDistressEmotion(emotion) && urgency == models.UrgencyHigh:
		return models.ToneEmergencySupportive
	case models.IsDistressEmotion(emotion):
		return models.ToneEmpathetic
	case emotion == models.EmotionAnger:
		return models.ToneCalming
	case emotion == models.EmotionHope || emotion == models.EmotionGratitude:
		return models.ToneEncouraging
	case sentiment > 0.3:
		return models.TonePositive
	case sentiment < -0.3:
		return models.ToneSupportive
	default:
		return models.ToneNeutral
	}
}
