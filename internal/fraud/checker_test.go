package fraud

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fixedScorer struct {
	p   float64
	err error
}

func (s fixedScorer) Score(_ context.Context, _ []float32) (float64, error) {
	return s.p, s.err
}

func TestExtractFeatures(t *testing.T) {
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	f := ExtractFeatures("ayush.k2@paytm", noon)
	if f.UPIIDLength != 14 {
		t.Errorf("upi id length: got %d, want 14", f.UPIIDLength)
	}
	if f.UsernameLength != 8 || f.DomainLength != 5 {
		t.Errorf("handle lengths: got %d/%d, want 8/5", f.UsernameLength, f.DomainLength)
	}
	if !f.IsLegitimateDomain {
		t.Error("paytm should count as a legitimate domain")
	}
	if !f.HasNumbersInUsername || !f.HasSpecialChars {
		t.Error("username contains a digit and a dot")
	}
	if f.TransactionHour != 12 || f.IsNightTime || !f.IsBusinessHours {
		t.Errorf("noon features wrong: %+v", f)
	}
}

func TestExtractFeaturesNoAtSign(t *testing.T) {
	f := ExtractFeatures("notaupiid", time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC))
	if f.UsernameLength != 0 || f.DomainLength != 0 || f.IsLegitimateDomain {
		t.Errorf("ids without @ must keep zeroed handle features: %+v", f)
	}
	if !f.IsNightTime || f.IsBusinessHours {
		t.Errorf("23:00 is night time: %+v", f)
	}
}

func TestExtractFeaturesDomainCaseInsensitive(t *testing.T) {
	f := ExtractFeatures("user@PhonePe", time.Now())
	if !f.IsLegitimateDomain {
		t.Error("domain comparison should ignore case")
	}
}

func TestVectorShape(t *testing.T) {
	v := ExtractFeatures("user@ybl", time.Now()).Vector()
	if len(v) != 9 {
		t.Fatalf("feature vector length: got %d, want 9", len(v))
	}
}

func TestCheckRiskLevels(t *testing.T) {
	cases := []struct {
		p          float64
		level      string
		prediction string
		safety     int
	}{
		{0.1, RiskSafe, "legitimate", 90},
		{0.3, RiskSafe, "legitimate", 70},
		{0.5, RiskModerate, "legitimate", 50},
		{0.7, RiskModerate, "fraud", 30},
		{0.9, RiskDanger, "fraud", 10},
	}
	for _, tc := range cases {
		c := NewChecker(fixedScorer{p: tc.p}, nil)
		report, err := c.Check(context.Background(), "user@paytm")
		if err != nil {
			t.Fatalf("p=%v: %v", tc.p, err)
		}
		if report.RiskLevel != tc.level {
			t.Errorf("p=%v: risk level %s, want %s", tc.p, report.RiskLevel, tc.level)
		}
		if report.Prediction != tc.prediction {
			t.Errorf("p=%v: prediction %s, want %s", tc.p, report.Prediction, tc.prediction)
		}
		if report.SafetyScore != tc.safety {
			t.Errorf("p=%v: safety score %d, want %d", tc.p, report.SafetyScore, tc.safety)
		}
	}
}

func TestCheckWithoutScorer(t *testing.T) {
	c := NewChecker(nil, nil)
	if c.Available() {
		t.Error("checker without a scorer must not report available")
	}
	if _, err := c.Check(context.Background(), "user@paytm"); !errors.Is(err, ErrNoScorer) {
		t.Errorf("expected ErrNoScorer, got %v", err)
	}
}

func TestCheckEmptyUPIID(t *testing.T) {
	c := NewChecker(fixedScorer{p: 0.1}, nil)
	if _, err := c.Check(context.Background(), ""); !errors.Is(err, ErrEmptyUPIID) {
		t.Errorf("expected ErrEmptyUPIID, got %v", err)
	}
}

func TestCheckScorerError(t *testing.T) {
	wantErr := errors.New("model offline")
	c := NewChecker(fixedScorer{err: wantErr}, nil)
	if _, err := c.Check(context.Background(), "user@paytm"); !errors.Is(err, wantErr) {
		t.Errorf("expected scorer error to surface, got %v", err)
	}
}
