package models

// Emotion names in registration order. Order matters: ties in per-emotion
// scoring resolve to the earliest-registered emotion.
const (
	EmotionFear      = "fear"
	EmotionAnger     = "anger"
	EmotionSadness   = "sadness"
	EmotionAnxiety   = "anxiety"
	EmotionHope      = "hope"
	EmotionGratitude = "gratitude"
	EmotionNeutral   = "neutral"
)

// Urgency levels.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Support types.
const (
	SupportEmotional     = "emotional"
	SupportInformational = "informational"
	SupportProcedural    = "procedural"
)

// Recommended response tones.
const (
	ToneEmergencySupportive = "emergency_supportive"
	ToneEmpathetic          = "empathetic"
	ToneCalming             = "calming"
	ToneEncouraging         = "encouraging"
	TonePositive            = "positive"
	ToneSupportive          = "supportive"
	ToneNeutral             = "neutral"
)

// IsDistressEmotion reports whether emotion belongs to the distress class
// that triggers specialized tone and shaping rules.
func IsDistressEmotion(emotion string) bool {
	return emotion == EmotionFear || emotion == EmotionAnxiety || emotion == EmotionSadness
}

// EmotionReading is the immutable result of analyzing one inbound message.
type EmotionReading struct {
	PrimaryEmotion    string             `json:"primary_emotion"`
	Confidence        float64            `json:"confidence"`
	SecondaryEmotions map[string]float64 `json:"secondary_emotions"`
	SentimentScore    float64            `json:"sentiment_score"`
	Intensity         float64            `json:"emotional_intensity"`
	UrgencyLevel      string             `json:"urgency_level"`
	SupportType       string             `json:"support_type_needed"`
	RecommendedTone   string             `json:"recommended_response_tone"`
}

// NeutralReading is the zero-value reading substituted when analysis fails.
func NeutralReading() *EmotionReading {
	return &EmotionReading{
		PrimaryEmotion:    EmotionNeutral,
		Confidence:        0,
		SecondaryEmotions: map[string]float64{},
		SentimentScore:    0,
		Intensity:         0,
		UrgencyLevel:      UrgencyLow,
		SupportType:       SupportInformational,
		RecommendedTone:   ToneNeutral,
	}
}

// Emotional trend directions reported by context summaries.
const (
	TrendWorsening = "worsening"
	TrendImproving = "improving"
	TrendStable    = "stable"
)

// EmotionalStateSummary summarizes a user's recent emotional trajectory.
// Computed over a trailing window of the capped reading history.
type EmotionalStateSummary struct {
	Status            string   `json:"status"`
	DominantEmotion   string   `json:"dominant_emotion,omitempty"`
	AverageIntensity  float64  `json:"average_intensity,omitempty"`
	Trend             string   `json:"emotion_trend,omitempty"`
	NeedsExtraSupport bool     `json:"needs_extra_support,omitempty"`
	TotalInteractions int      `json:"total_interactions,omitempty"`
	Recommendations   []string `json:"recommendations,omitempty"`
}
