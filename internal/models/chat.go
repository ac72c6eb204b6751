package models

import "time"

// Query categories in registration order. Classification tie-breaks favor
// the earliest category, so these are iterated as an ordered list, never as
// map keys.
const (
	CategoryGreeting          = "greeting"
	CategoryCasual            = "casual_conversation"
	CategoryEmotionalDistress = "emotional_distress"
	CategoryComfortSeeking    = "comfort_seeking"
	CategoryRBISpecific       = "rbi_specific"
	CategoryFraudTypes        = "fraud_types"
	CategorySecurityMeasures  = "security_measures"
	CategoryEmergencyHelp     = "emergency_help"
	CategoryCompliance        = "compliance"
	CategoryGeneral           = "general"
)

// Answer sources reported in chat responses.
const (
	SourceKnowledgeBase = "knowledge_base"
	SourceComposed      = "composed"
	SourceFallback      = "fallback"
)

// Classification is the result of routing a query to a category.
type Classification struct {
	Category        string   `json:"category"`
	Confidence      float64  `json:"confidence"`
	MatchedPatterns []string `json:"matched_patterns,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// ChatRequest is one inbound user message.
type ChatRequest struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	Personality string `json:"personality,omitempty"`
}

// ChatResponse is the full answer envelope returned to the client.
type ChatResponse struct {
	ResponseID  string          `json:"response_id"`
	Answer      string          `json:"answer"`
	Source      string          `json:"source"`
	Category    string          `json:"category"`
	Confidence  float64         `json:"confidence"`
	MatchType   string          `json:"match_type,omitempty"`
	Matched     string          `json:"matched_question,omitempty"`
	Emotion     *EmotionReading `json:"emotion,omitempty"`
	Personality string          `json:"personality"`
	TookMS      int64           `json:"took_ms"`
	CreatedAt   time.Time       `json:"created_at"`
}
