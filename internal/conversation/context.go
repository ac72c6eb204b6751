// Package conversation tracks per-user dialogue history and emotional
// trajectory. Histories are capped FIFO; summaries look at a trailing
// window of recent readings.
package conversation

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/models"
)

const (
	// historyCap bounds both the exchange and emotion histories per user.
	historyCap = 20
	// summaryWindow is how many trailing readings a summary covers.
	summaryWindow = 5
)

// Exchange is one user message / response pair.
type Exchange struct {
	Timestamp   time.Time              `json:"timestamp"`
	UserMessage string                 `json:"user_message"`
	Response    string                 `json:"response"`
	Emotion     *models.EmotionReading `json:"emotion,omitempty"`
}

// userContext is the per-user mutable state. Its mutex serializes writes
// from concurrent requests by the same user; different users never share a
// lock.
type userContext struct {
	mu                sync.Mutex
	exchanges         []Exchange
	emotions          []*models.EmotionReading
	totalInteractions int
	lastInteraction   time.Time
}

// Tracker owns all user contexts.
type Tracker struct {
	mu     sync.RWMutex
	users  map[string]*userContext
	logger *zap.Logger
}

// NewTracker builds an empty tracker.
func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{users: make(map[string]*userContext), logger: logger}
}

func (t *Tracker) user(userID string) *userContext {
	t.mu.RLock()
	uc, ok := t.users[userID]
	t.mu.RUnlock()
	if ok {
		return uc
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if uc, ok = t.users[userID]; ok {
		return uc
	}
	uc = &userContext{}
	t.users[userID] = uc
	return uc
}

// Update appends one exchange to the user's history. Both histories are
// trimmed to the cap, oldest first.
func (t *Tracker) Update(userID, userMessage, response string, reading *models.EmotionReading) {
	uc := t.user(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	uc.exchanges = append(uc.exchanges, Exchange{
		Timestamp:   now,
		UserMessage: userMessage,
		Response:    response,
		Emotion:     reading,
	})
	if reading != nil {
		uc.emotions = append(uc.emotions, reading)
	}
	uc.totalInteractions++
	uc.lastInteraction = now

	if len(uc.exchanges) > historyCap {
		uc.exchanges = uc.exchanges[len(uc.exchanges)-historyCap:]
	}
	if len(uc.emotions) > historyCap {
		uc.emotions = uc.emotions[len(uc.emotions)-historyCap:]
	}
}

// History returns a copy of the user's exchange history.
func (t *Tracker) History(userID string) []Exchange {
	uc := t.user(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]Exchange, len(uc.exchanges))
	copy(out, uc.exchanges)
	return out
}

// Stage reports the conversation stage used by response shaping: "greeting"
// for a user's first exchange, "ongoing" after that.
func (t *Tracker) Stage(userID string) string {
	uc := t.user(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.totalInteractions == 0 {
		return "greeting"
	}
	return "ongoing"
}

// Summary analyzes the user's recent emotional readings.
func (t *Tracker) Summary(userID string) *models.EmotionalStateSummary {
	uc := t.user(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(uc.emotions) == 0 {
		return &models.EmotionalStateSummary{Status: "no_history"}
	}

	recent := uc.emotions
	if len(recent) > summaryWindow {
		recent = recent[len(recent)-summaryWindow:]
	}

	counts := map[string]int{}
	totalIntensity := 0.0
	for _, r := range recent {
		counts[r.PrimaryEmotion]++
		totalIntensity += r.Intensity
	}
	dominant := dominantEmotion(recent, counts)
	avgIntensity := totalIntensity / float64(len(recent))

	needsSupport := models.IsDistressEmotion(dominant) && avgIntensity > 0.6

	return &models.EmotionalStateSummary{
		Status:            "analyzed",
		DominantEmotion:   dominant,
		AverageIntensity:  avgIntensity,
		Trend:             intensityTrend(recent),
		NeedsExtraSupport: needsSupport,
		TotalInteractions: uc.totalInteractions,
		Recommendations:   recommendations(dominant, intensityTrend(recent), needsSupport),
	}
}

// dominantEmotion picks the most frequent primary emotion; ties resolve to
// the most recently seen one.
func dominantEmotion(recent []*models.EmotionReading, counts map[string]int) string {
	best := models.EmotionNeutral
	bestCount := 0
	for _, r := range recent {
		if counts[r.PrimaryEmotion] >= bestCount {
			bestCount = counts[r.PrimaryEmotion]
			best = r.PrimaryEmotion
		}
	}
	return best
}

// intensityTrend compares the mean of the last two readings with the mean
// of the two before them. Fewer than four readings is always "stable".
func intensityTrend(recent []*models.EmotionReading) string {
	if len(recent) < 4 {
		return models.TrendStable
	}
	n := len(recent)
	recentMean := (recent[n-1].Intensity + recent[n-2].Intensity) / 2
	earlierMean := (recent[n-3].Intensity + recent[n-4].Intensity) / 2
	switch {
	case recentMean > earlierMean+0.2:
		return models.TrendWorsening
	case recentMean < earlierMean-0.2:
		return models.TrendImproving
	default:
		return models.TrendStable
	}
}

func recommendations(dominant, trend string, needsSupport bool) []string {
	var out []string
	if needsSupport {
		out = append(out,
			"Provide extra emotional support and reassurance",
			"Use calming and empathetic language",
			"Offer specific, actionable steps to reduce anxiety")
	}
	switch dominant {
	case models.EmotionFear:
		out = append(out,
			"Focus on safety and security information",
			"Provide clear, step-by-step guidance")
	case models.EmotionAnger:
		out = append(out,
			"Acknowledge the user's frustration",
			"Provide channels for proper complaint resolution")
	case models.EmotionSadness:
		out = append(out,
			"Offer hope and recovery guidance",
			"Connect with support resources")
	}
	switch trend {
	case models.TrendWorsening:
		out = append(out, "Consider escalating to human support if available")
	case models.TrendImproving:
		out = append(out, "Acknowledge progress and encourage continued engagement")
	}
	return out
}

// Users returns the number of tracked users.
func (t *Tracker) Users() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.users)
}
