// Package resolver matches user questions against the trained QA store
// through a three-tier cascade: semantic similarity, fuzzy string matching,
// then keyword overlap. Tiers are strictly ordered; a hit in an earlier
// tier is final even if a later tier would score higher.
package resolver

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/embedding"
	"github.com/digiraksha/mitra/internal/models"
	"github.com/digiraksha/mitra/internal/vector"
	"github.com/digiraksha/mitra/pkg/utils"
)

// Default thresholds for the three tiers.
const (
	DefaultSemanticThreshold = 0.65
	DefaultFuzzyThreshold    = 0.70
	DefaultKeywordThreshold  = 0.3
	DefaultEmbedTimeout      = 2 * time.Second
)

// RecordSource is the view of the QA store the cascade needs. Records
// returns a stable snapshot in insertion order.
type RecordSource interface {
	Records() []*models.QARecord
	RecordByID(id string) (*models.QARecord, bool)
	SearchSimilar(ctx context.Context, query []float32, k int) ([]*vector.Result, error)
}

// Options tune the cascade thresholds. Zero values take the defaults.
type Options struct {
	SemanticThreshold float64
	FuzzyThreshold    float64
	KeywordThreshold  float64
	EmbedTimeout      time.Duration
}

// Resolver runs the cascade. Safe for concurrent use.
type Resolver struct {
	store    RecordSource
	embedder embedding.Embedder
	opts     Options
	logger   *zap.Logger
}

// New builds a resolver over the given store and embedder.
func New(store RecordSource, embedder embedding.Embedder, opts Options, logger *zap.Logger) *Resolver {
	if opts.SemanticThreshold == 0 {
		opts.SemanticThreshold = DefaultSemanticThreshold
	}
	if opts.FuzzyThreshold == 0 {
		opts.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if opts.KeywordThreshold == 0 {
		opts.KeywordThreshold = DefaultKeywordThreshold
	}
	if opts.EmbedTimeout == 0 {
		opts.EmbedTimeout = DefaultEmbedTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, embedder: embedder, opts: opts, logger: logger}
}

// Resolve returns the best match for question, or nil when no tier
// clears its threshold. It never returns an error for provider failures;
// those degrade to the next tier.
func (r *Resolver) Resolve(ctx context.Context, question string) *models.MatchResult {
	question = strings.TrimSpace(question)
	if question == "" || len(r.store.Records()) == 0 {
		return nil
	}

	if m := r.semanticMatch(ctx, question); m != nil {
		return m
	}
	if m := r.fuzzyMatch(question); m != nil {
		return m
	}
	return r.keywordMatch(question)
}

// semanticMatch embeds the question under a timeout and takes the nearest
// stored embedding. Embedding failure or timeout falls through silently.
func (r *Resolver) semanticMatch(ctx context.Context, question string) *models.MatchResult {
	if r.embedder == nil {
		return nil
	}
	queryVec, err := embedding.EmbedWithTimeout(ctx, r.embedder, question, r.opts.EmbedTimeout)
	if err != nil {
		r.logger.Debug("semantic tier skipped", zap.Error(err))
		return nil
	}
	hits, err := r.store.SearchSimilar(ctx, queryVec, 1)
	if err != nil || len(hits) == 0 {
		return nil
	}
	best := hits[0]
	if best.Score < r.opts.SemanticThreshold {
		return nil
	}
	record, ok := r.store.RecordByID(best.ID)
	if !ok {
		return nil
	}
	r.logger.Debug("semantic match",
		zap.String("record", record.ID),
		zap.Float64("score", best.Score))
	return &models.MatchResult{
		Answer:          record.Answer,
		MatchedQuestion: record.Question,
		SimilarityScore: best.Score,
		MatchType:       models.MatchSemantic,
		Confidence:      models.ConfidenceLabel(best.Score),
		RecordID:        record.ID,
	}
}

// fuzzyMatch scans all records with an edit-distance ratio. The strictly
// greater comparison keeps the earliest record on ties.
func (r *Resolver) fuzzyMatch(question string) *models.MatchResult {
	lower := strings.ToLower(question)
	bestRatio := 0.0
	var bestRecord *models.QARecord
	for _, record := range r.store.Records() {
		ratio := similarityRatio(lower, strings.ToLower(record.Question))
		if ratio > bestRatio {
			bestRatio = ratio
			bestRecord = record
		}
	}
	if bestRecord == nil || bestRatio < r.opts.FuzzyThreshold {
		return nil
	}
	r.logger.Debug("fuzzy match",
		zap.String("record", bestRecord.ID),
		zap.Float64("ratio", bestRatio))
	return &models.MatchResult{
		Answer:          bestRecord.Answer,
		MatchedQuestion: bestRecord.Question,
		SimilarityScore: bestRatio,
		MatchType:       models.MatchFuzzy,
		Confidence:      models.ConfidenceLabel(bestRatio),
		RecordID:        bestRecord.ID,
	}
}

// keywordMatch scores Jaccard overlap between the question's keyword set
// and each record's stored keywords. The confidence label is derived from
// a discounted score, but the reported similarity stays raw.
func (r *Resolver) keywordMatch(question string) *models.MatchResult {
	queryKeywords := utils.KeywordSet(utils.ExtractKeywords(question))
	if len(queryKeywords) == 0 {
		return nil
	}
	bestScore := 0.0
	var bestRecord *models.QARecord
	for _, record := range r.store.Records() {
		if len(record.Keywords) == 0 {
			continue
		}
		score := jaccard(queryKeywords, record.Keywords)
		if score > bestScore {
			bestScore = score
			bestRecord = record
		}
	}
	if bestRecord == nil || bestScore < r.opts.KeywordThreshold {
		return nil
	}
	r.logger.Debug("keyword match",
		zap.String("record", bestRecord.ID),
		zap.Float64("jaccard", bestScore))
	return &models.MatchResult{
		Answer:          bestRecord.Answer,
		MatchedQuestion: bestRecord.Question,
		SimilarityScore: bestScore,
		MatchType:       models.MatchKeyword,
		Confidence:      models.ConfidenceLabel(bestScore * 0.8),
		RecordID:        bestRecord.ID,
	}
}

func jaccard(a map[string]bool, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	bSet := utils.KeywordSet(b)
	intersection := 0
	for w := range a {
		if bSet[w] {
			intersection++
		}
	}
	union := len(a) + len(bSet) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
