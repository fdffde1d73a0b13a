package churn

import (
	"math"
	"strings"
	"testing"

	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
)

func TestRiskNilProfile(t *testing.T) {
	if got := Risk(nil); got != 0 {
		t.Fatalf("expected 0 for nil profile, got %f", got)
	}
}

func TestRiskWeights(t *testing.T) {
	// Fully saturated signals: recency risk 1, engagement risk 1,
	// lifecycle CHURNED risk 1. Frequency trend: expected = 2/(200/30) = 0.3
	// orders/month, actual = 0 (30/180 ≈ 0.17 → risk (0.3-0.17)/0.3).
	p := &domain.BehavioralProfile{
		DaysSinceLastOrder:  180,
		DaysSinceFirstOrder: 200,
		TotalOrders:         2,
		EngagementScore:     0,
		LifecycleStage:      domain.StageChurned,
	}
	expected := 2.0 / (200.0 / 30)
	actual := 30.0 / 180
	freqRisk := (expected - actual) / expected
	want := 1*0.4 + freqRisk*0.3 + 1*0.2 + 1*0.1

	got := Risk(p)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected risk %f, got %f", want, got)
	}
}

func TestRiskRange(t *testing.T) {
	profiles := []*domain.BehavioralProfile{
		{DaysSinceLastOrder: 0, DaysSinceFirstOrder: 0, TotalOrders: 1, EngagementScore: 100, LifecycleStage: domain.StageNew},
		{DaysSinceLastOrder: 365, DaysSinceFirstOrder: 400, TotalOrders: 30, EngagementScore: 0, LifecycleStage: domain.StageChurned},
		{DaysSinceLastOrder: 10, DaysSinceFirstOrder: 100, TotalOrders: 8, EngagementScore: 70, LifecycleStage: domain.StageEngaged},
	}
	for _, p := range profiles {
		got := Risk(p)
		if got < 0 || got > 1 {
			t.Fatalf("risk %f out of [0, 1] for %+v", got, p)
		}
	}
}

func TestFrequencyTrendRiskGuards(t *testing.T) {
	// Same-day first order: no cadence history, no trend signal.
	sameDay := &domain.BehavioralProfile{DaysSinceFirstOrder: 0, DaysSinceLastOrder: 0, TotalOrders: 1}
	if got := frequencyTrendRisk(sameDay); got != 0 {
		t.Fatalf("expected 0 for same-day first order, got %f", got)
	}

	// Current cadence above historical cadence clamps to zero.
	improving := &domain.BehavioralProfile{DaysSinceFirstOrder: 300, DaysSinceLastOrder: 3, TotalOrders: 5}
	if got := frequencyTrendRisk(improving); got != 0 {
		t.Fatalf("expected 0 for improving cadence, got %f", got)
	}

	// Last order today with established history: actual cadence treated as
	// zero by the divisor guard, risk capped at 1.
	today := &domain.BehavioralProfile{DaysSinceFirstOrder: 90, DaysSinceLastOrder: 0, TotalOrders: 9}
	if got := frequencyTrendRisk(today); got != 1 {
		t.Fatalf("expected 1, got %f", got)
	}
}

func TestLevelForBoundaries(t *testing.T) {
	cases := []struct {
		probability float64
		want        domain.RiskLevel
	}{
		{0, domain.RiskLow},
		{0.29999, domain.RiskLow},
		{0.3, domain.RiskMedium},
		{0.49999, domain.RiskMedium},
		{0.5, domain.RiskHigh},
		{0.69999, domain.RiskHigh},
		{0.7, domain.RiskCritical},
		{1, domain.RiskCritical},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.probability); got != tc.want {
			t.Fatalf("LevelFor(%f) = %s, want %s", tc.probability, got, tc.want)
		}
	}
}

func TestPredictNilProfile(t *testing.T) {
	if got := Predict(nil); got != nil {
		t.Fatalf("expected nil prediction, got %+v", got)
	}
}

func TestMaterialFactors(t *testing.T) {
	healthy := &domain.BehavioralProfile{
		DaysSinceLastOrder: 10,
		EngagementScore:    80,
		LifecycleStage:     domain.StageEngaged,
	}
	if factors := materialFactors(healthy); len(factors) != 0 {
		t.Fatalf("expected no factors for healthy profile, got %+v", factors)
	}

	atRisk := &domain.BehavioralProfile{
		DaysSinceLastOrder: 45,
		EngagementScore:    30,
		LifecycleStage:     domain.StageAtRisk,
	}
	factors := materialFactors(atRisk)
	if len(factors) != 3 {
		t.Fatalf("expected 3 factors, got %+v", factors)
	}
	if factors[0].Factor != domain.FactorInactivity || factors[0].Impact != 0.5 {
		t.Fatalf("unexpected inactivity factor: %+v", factors[0])
	}
	if factors[1].Factor != domain.FactorLowEngagement || factors[1].Impact != 0.7 {
		t.Fatalf("unexpected low-engagement factor: %+v", factors[1])
	}
	if factors[2].Factor != domain.FactorLifecycleStage || factors[2].Impact != 0.7 {
		t.Fatalf("unexpected lifecycle factor: %+v", factors[2])
	}
}

func TestMaterialFactorBoundaries(t *testing.T) {
	// Exactly 30 days and exactly 50 engagement are both below materiality.
	boundary := &domain.BehavioralProfile{
		DaysSinceLastOrder: 30,
		EngagementScore:    50,
		LifecycleStage:     domain.StageActive,
	}
	if factors := materialFactors(boundary); len(factors) != 0 {
		t.Fatalf("expected no factors at thresholds, got %+v", factors)
	}
}

func TestPredictRecommendations(t *testing.T) {
	p := &domain.BehavioralProfile{
		UserID:              "42",
		ChurnRisk:           0.75,
		DaysSinceLastOrder:  60,
		DaysSinceFirstOrder: 300,
		TotalOrders:         8,
		EngagementScore:     20,
		LifecycleStage:      domain.StageAtRisk,
		FavoriteCategories:  []string{"vegetables", "dairy", "bread"},
		Preferences:         domain.Preferences{Organic: 0.8, Local: 0.9},
	}
	pred := Predict(p)
	if pred.UserID != "42" || pred.ChurnProbability != 0.75 {
		t.Fatalf("unexpected prediction header: %+v", pred)
	}
	if pred.RiskLevel != domain.RiskCritical {
		t.Fatalf("expected CRITICAL, got %s", pred.RiskLevel)
	}

	joined := strings.Join(pred.Recommendations, "\n")
	for _, want := range []string{
		"win-back",
		"We miss you",
		"educational content",
		"favorite categories: vegetables, dairy",
		"organic arrivals",
		"local farm partnerships",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected recommendation containing %q, got:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "bread") {
		t.Fatalf("expected only first two favorite categories highlighted, got:\n%s", joined)
	}
}

func TestPredictLowRiskRecommendations(t *testing.T) {
	p := &domain.BehavioralProfile{
		UserID:             "7",
		ChurnRisk:          0.1,
		DaysSinceLastOrder: 5,
		EngagementScore:    90,
		LifecycleStage:     domain.StagePowerUser,
	}
	pred := Predict(p)
	if pred.RiskLevel != domain.RiskLow {
		t.Fatalf("expected LOW, got %s", pred.RiskLevel)
	}
	if len(pred.Factors) != 0 {
		t.Fatalf("expected no factors, got %+v", pred.Factors)
	}
	if len(pred.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", pred.Recommendations)
	}
}
