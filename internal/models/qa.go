// Package models defines the data structures shared across the mitra engine.
package models

import "time"

// QARecord is a trained question/answer pair with its precomputed keyword set
// and embedding. Records are deduplicated by normalized question text; the
// embedding is regenerated whenever the record set changes.
type QARecord struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	Keywords  []string  `json:"keywords"`
	Embedding []float32 `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// QAPairInput is an inbound training pair before validation and dedup.
type QAPairInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

// Match types identifying which resolver tier produced a result.
const (
	MatchSemantic = "semantic"
	MatchFuzzy    = "fuzzy"
	MatchKeyword  = "keyword"
)

// Confidence labels bucketing a continuous similarity score.
const (
	ConfidenceVeryHigh = "very_high"
	ConfidenceHigh     = "high"
	ConfidenceMedium   = "medium"
	ConfidenceLow      = "low"
	ConfidenceVeryLow  = "very_low"
)

// ConfidenceLabel buckets a similarity score into a coarse confidence label.
func ConfidenceLabel(score float64) string {
	switch {
	case score >= 0.9:
		return ConfidenceVeryHigh
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.7:
		return ConfidenceMedium
	case score >= 0.6:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// MatchResult is the single result of a resolver call. Exactly one tier
// produces it; scores from different tiers are never blended.
type MatchResult struct {
	Answer          string  `json:"answer"`
	MatchedQuestion string  `json:"matched_question"`
	SimilarityScore float64 `json:"similarity_score"`
	MatchType       string  `json:"match_type"`
	Confidence      string  `json:"confidence"`
	RecordID        string  `json:"record_id"`
}
