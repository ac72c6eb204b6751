// Package classifier routes queries to payment-security categories using an
// ordered pattern table plus a keyword vocabulary fallback.
package classifier

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/models"
)

// categoryPatterns binds one category to its regex set. Categories are
// evaluated in registration order so confidence ties resolve to the
// earliest entry.
type categoryPatterns struct {
	category string
	patterns []*regexp.Regexp
}

// Classifier tags queries with a category and confidence. It is stateless
// after construction and safe for concurrent use.
type Classifier struct {
	table    []categoryPatterns
	keywords []string
	logger   *zap.Logger
}

// New compiles the built-in pattern table.
func New(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		table:    buildPatternTable(),
		keywords: keywordVocabulary(),
		logger:   logger,
	}
}

// Classify evaluates the pattern table against the lowercased query. A
// pattern hit scores 0.8; keyword hits score 0.6 but only when no pattern
// matched. Unmatched input gets category "general" with confidence 0.
func (c *Classifier) Classify(query string) *models.Classification {
	lower := strings.ToLower(query)
	result := &models.Classification{
		Category:   models.CategoryGeneral,
		Confidence: 0,
	}

	maxConfidence := 0.0
	for _, entry := range c.table {
		for _, pattern := range entry.patterns {
			if pattern.MatchString(lower) {
				if patternConfidence > maxConfidence {
					maxConfidence = patternConfidence
					result.Category = entry.category
				}
				result.MatchedPatterns = append(result.MatchedPatterns, pattern.String())
			}
		}
	}

	for _, keyword := range c.keywords {
		if strings.Contains(lower, keyword) {
			result.Keywords = append(result.Keywords, keyword)
			// Keyword evidence never overrides a pattern match.
			if maxConfidence == 0 {
				maxConfidence = keywordConfidence
			}
		}
	}

	result.Confidence = maxConfidence
	if result.Confidence > 0 {
		c.logger.Debug("query classified",
			zap.String("category", result.Category),
			zap.Float64("confidence", result.Confidence),
			zap.Int("patterns", len(result.MatchedPatterns)))
	}
	return result
}

const (
	patternConfidence = 0.8
	keywordConfidence = 0.6
)

func buildPatternTable() []categoryPatterns {
	compile := func(exprs ...string) []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(exprs))
		for i, e := range exprs {
			out[i] = regexp.MustCompile(e)
		}
		return out
	}
	return []categoryPatterns{
		{models.CategoryGreeting, compile(
			`^(hi|hello|hey|good\s+(morning|afternoon|evening)|greetings)\b`,
			`how\s+(are\s+you|is\s+it\s+going)`,
			`what'?s\s+up`,
			`^(sup|yo)\b`,
			`nice\s+to\s+meet\s+you`,
		)},
		{models.CategoryCasual, compile(
			`how\s+are\s+you\s+(doing|today)`,
			`what.*your.*name`,
			`who\s+are\s+you`,
			`tell\s+me\s+about\s+yourself`,
			`what\s+do\s+you\s+do`,
			`can\s+you\s+help\s+me`,
		)},
		{models.CategoryEmotionalDistress, compile(
			`(i|i'm|im)\s+(scared|afraid|worried|nervous|panicking|stressed)`,
			`(fraud|scam).*happened.*me`,
			`(lost|stolen).*money`,
			`(someone|they)\s+(cheated|scammed|fooled)\s+me`,
			`(i|my)\s+(account|card|upi)\s+(hacked|compromised)`,
			`(feel|feeling)\s+(anxious|depressed|helpless|devastated)`,
			`don't\s+know\s+what\s+to\s+do`,
			`(help|support).*me.*please`,
			`(victim|target)\s+of\s+(fraud|scam)`,
		)},
		{models.CategoryComfortSeeking, compile(
			`(everything|will\s+be|going\s+to\s+be)\s+(okay|alright|fine)`,
			`(what|how)\s+(should|do)\s+i\s+do\s+now`,
			`(is|am)\s+i\s+(safe|secure|protected)`,
			`(can|will)\s+i\s+(recover|get).*money\s+back`,
			`(how|when)\s+(long|much).*take.*recover`,
		)},
		{models.CategoryRBISpecific, compile(
			`rbi\s+(guideline|regulation|rule|policy)`,
			`reserve\s+bank.*guideline`,
			`central\s+bank.*regulation`,
			`rbi.*transaction\s+limit`,
			`what.*rbi.*says?`,
		)},
		{models.CategoryFraudTypes, compile(
			`types?\s+of\s+fraud`,
			`common\s+fraud`,
			`fraud\s+(pattern|method)`,
			`how.*fraud.*work`,
			`latest.*fraud.*trend`,
		)},
		{models.CategorySecurityMeasures, compile(
			`security\s+(measure|tip|practice)`,
			`how.*secure.*payment`,
			`protect.*upi.*account`,
			`safety.*guideline`,
			`best\s+practice`,
		)},
		{models.CategoryEmergencyHelp, compile(
			`emergency.*contact`,
			`fraud.*report`,
			`help.*number`,
			`complaint.*process`,
			`cyber.*crime.*helpline`,
		)},
		{models.CategoryCompliance, compile(
			`compliance.*requirement`,
			`legal.*framework`,
			`payment.*law`,
			`regulation.*act`,
			`kyc.*requirement`,
		)},
	}
}

func keywordVocabulary() []string {
	return []string{
		"rbi", "guideline", "regulation", "fraud", "security", "upi",
		"payment", "scam", "emergency", "help", "report", "compliance",
		"law", "act", "transaction", "limit", "kyc", "protection",
		"hi", "hello", "hey", "greetings", "how", "are", "you",
		"scared", "afraid", "worried", "nervous", "panicking", "stressed",
		"lost", "stolen", "money", "hacked", "compromised", "victim",
		"comfort", "support", "okay", "safe", "secure", "recover",
	}
}
