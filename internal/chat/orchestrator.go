// Package chat orchestrates the full request pipeline: classification and
// emotion analysis in parallel, cascade resolution, source selection,
// personality shaping, and context update.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/classifier"
	"github.com/digiraksha/mitra/internal/conversation"
	"github.com/digiraksha/mitra/internal/emotion"
	"github.com/digiraksha/mitra/internal/knowledge"
	"github.com/digiraksha/mitra/internal/models"
	"github.com/digiraksha/mitra/internal/personality"
	"github.com/digiraksha/mitra/internal/resolver"
)

// ErrMalformedInput rejects empty or whitespace-only messages. It is the
// only error the orchestrator surfaces to callers.
var ErrMalformedInput = errors.New("message must not be empty")

const defaultUserID = "anonymous"

// fallbackAnswer is the terminal guarantee: always available, no
// dependencies.
const fallbackAnswer = `I want to make sure I help you properly. I specialize in payment security: fraud prevention, RBI guidelines, UPI safety, and emergency reporting.

Could you rephrase your question? If this is urgent, call the Cybercrime Helpline at 1930 right away.`

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	classifier *classifier.Classifier
	analyzer   *emotion.Analyzer
	resolver   *resolver.Resolver
	composer   *knowledge.Composer
	shaper     *personality.Shaper
	profiles   *personality.Registry
	contexts   *conversation.Tracker
	logger     *zap.Logger
}

// New wires an orchestrator from its stages.
func New(
	cls *classifier.Classifier,
	analyzer *emotion.Analyzer,
	res *resolver.Resolver,
	composer *knowledge.Composer,
	shaper *personality.Shaper,
	profiles *personality.Registry,
	contexts *conversation.Tracker,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		classifier: cls,
		analyzer:   analyzer,
		resolver:   res,
		composer:   composer,
		shaper:     shaper,
		profiles:   profiles,
		contexts:   contexts,
		logger:     logger,
	}
}

// Chat handles one message end to end. Malformed input is the only error;
// every other failure degrades to a generic fallback response so the caller
// always receives a non-empty answer.
func (o *Orchestrator) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrMalformedInput
	}
	userID := req.UserID
	if userID == "" {
		userID = defaultUserID
	}

	start := time.Now()
	resp := o.handle(ctx, message, userID, req.Personality)
	resp.ResponseID = uuid.New().String()
	resp.TookMS = time.Since(start).Milliseconds()
	resp.CreatedAt = time.Now()
	return resp, nil
}

// handle runs the pipeline; any panic in a stage terminates in the
// fallback response rather than an error.
func (o *Orchestrator) handle(ctx context.Context, message, userID, profileKey string) (resp *models.ChatResponse) {
	profile := o.profiles.Get(profileKey)
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("chat pipeline panicked",
				zap.Any("panic", r),
				zap.String("user_id", userID))
			resp = &models.ChatResponse{
				Answer:      fallbackAnswer,
				Source:      models.SourceFallback,
				Category:    models.CategoryGeneral,
				Personality: profile.Key,
			}
		}
	}()

	// Classification and emotion analysis are independent reads of the raw
	// message; run them in parallel.
	var (
		cls     *models.Classification
		reading *models.EmotionReading
	)
	clsDone := make(chan struct{})
	emoDone := make(chan struct{})
	go func() {
		defer close(clsDone)
		// A panic here would escape handle's recover and kill the process;
		// degrade to the general category instead.
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("classifier panicked", zap.Any("panic", r))
				cls = &models.Classification{Category: models.CategoryGeneral}
			}
		}()
		cls = o.classifier.Classify(message)
	}()
	go func() {
		defer close(emoDone)
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("emotion analyzer panicked", zap.Any("panic", r))
				reading = models.NeutralReading()
			}
		}()
		reading = o.analyzer.Analyze(ctx, message)
	}()
	<-clsDone
	<-emoDone

	stage := o.contexts.Stage(userID)

	answer, source, match := o.selectSource(ctx, message, cls)
	shaped := o.shaper.Shape(answer, reading, profile, stage)

	resp = &models.ChatResponse{
		Answer:      shaped,
		Source:      source,
		Category:    cls.Category,
		Confidence:  cls.Confidence,
		Emotion:     reading,
		Personality: profile.Key,
	}
	if match != nil {
		resp.MatchType = match.MatchType
		resp.Matched = match.MatchedQuestion
		resp.Confidence = match.SimilarityScore
	}

	o.contexts.Update(userID, message, shaped, reading)

	o.logger.Info("chat handled",
		zap.String("user_id", userID),
		zap.String("category", cls.Category),
		zap.String("source", source),
		zap.String("emotion", reading.PrimaryEmotion))
	return resp
}

// selectSource picks the answer: a cascade match first, then a
// category-driven knowledge composition, then the generic fallback.
func (o *Orchestrator) selectSource(ctx context.Context, message string, cls *models.Classification) (string, string, *models.MatchResult) {
	if match := o.resolver.Resolve(ctx, message); match != nil {
		return match.Answer, models.SourceKnowledgeBase, match
	}
	if text, ok := o.composer.Compose(cls.Category, message); ok {
		return text, models.SourceComposed, nil
	}
	return fallbackAnswer, models.SourceFallback, nil
}

// ContextSummary exposes the emotional state summary for a user.
func (o *Orchestrator) ContextSummary(userID string) *models.EmotionalStateSummary {
	return o.contexts.Summary(userID)
}
