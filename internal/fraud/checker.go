package fraud

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
)

// Risk levels returned in a Report, bucketed on fraud probability.
const (
	RiskSafe     = "safe"     // p <= 0.3
	RiskModerate = "moderate" // p <= 0.7
	RiskDanger   = "danger"
)

// ErrNoScorer is returned when no scoring model has been configured.
var ErrNoScorer = errors.New("fraud scorer not configured")

// ErrEmptyUPIID rejects blank input before feature extraction.
var ErrEmptyUPIID = errors.New("upi id must not be empty")

// Scorer turns a feature vector into a fraud probability in [0,1].
// Implementations wrap whatever model is deployed; the checker treats it
// as a black box.
type Scorer interface {
	Score(ctx context.Context, features []float32) (float64, error)
}

// Report is the risk assessment for one UPI ID.
type Report struct {
	UPIID            string    `json:"upi_id"`
	FraudProbability float64   `json:"fraud_probability"`
	SafetyScore      int       `json:"safety_score"`
	RiskLevel        string    `json:"risk_level"`
	Prediction       string    `json:"model_prediction"`
	Confidence       float64   `json:"confidence"`
	Features         Features  `json:"features_used"`
	CreatedAt        time.Time `json:"timestamp"`
}

// Checker scores UPI IDs through the configured model.
type Checker struct {
	scorer Scorer
	logger *zap.Logger
}

// NewChecker builds a checker. A nil scorer is valid; Check then returns
// ErrNoScorer.
func NewChecker(scorer Scorer, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{scorer: scorer, logger: logger}
}

// Available reports whether a scoring model is configured.
func (c *Checker) Available() bool {
	return c.scorer != nil
}

// Check extracts features from the UPI ID and scores them.
func (c *Checker) Check(ctx context.Context, upiID string) (*Report, error) {
	if upiID == "" {
		return nil, ErrEmptyUPIID
	}
	if c.scorer == nil {
		return nil, ErrNoScorer
	}

	features := ExtractFeatures(upiID, time.Now())
	p, err := c.scorer.Score(ctx, features.Vector())
	if err != nil {
		return nil, err
	}

	report := &Report{
		UPIID:            upiID,
		FraudProbability: p,
		SafetyScore:      safetyScore(p),
		RiskLevel:        riskLevel(p),
		Prediction:       "legitimate",
		Confidence:       1 - p,
		Features:         features,
		CreatedAt:        time.Now(),
	}
	if p > 0.5 {
		report.Prediction = "fraud"
		report.Confidence = p
	}

	c.logger.Debug("fraud check scored",
		zap.String("upi_id", upiID),
		zap.Float64("probability", p),
		zap.String("risk_level", report.RiskLevel))
	return report, nil
}

func riskLevel(p float64) string {
	switch {
	case p <= 0.3:
		return RiskSafe
	case p <= 0.7:
		return RiskModerate
	default:
		return RiskDanger
	}
}

// safetyScore is the inverse probability on a 0-100 scale, clamped.
func safetyScore(p float64) int {
	s := int(math.Round((1 - p) * 100))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
