// Package churn estimates churn probability from a behavioral profile and
// produces the full prediction with explainability factors and retention
// recommendations.
package churn

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
)

// Factor weights. They sum to 1, so the weighted total is already in [0, 1].
const (
	recencyWeight   = 0.4
	frequencyWeight = 0.3
	engageWeight    = 0.2
	lifecycleWeight = 0.1
)

// Risk computes the weighted churn probability from an
// otherwise-complete profile (every field except ChurnRisk populated).
func Risk(p *domain.BehavioralProfile) float64 {
	if p == nil {
		return 0
	}

	recencyRisk := math.Min(float64(p.DaysSinceLastOrder)/90, 1)

	frequencyRisk := frequencyTrendRisk(p)

	engagementRisk := 1 - float64(p.EngagementScore)/100

	return recencyRisk*recencyWeight +
		frequencyRisk*frequencyWeight +
		engagementRisk*engageWeight +
		lifecycleRisk(p.LifecycleStage)*lifecycleWeight
}

// frequencyTrendRisk compares the user's historical order cadence against
// their current one. No trend signal (zero expected frequency, including the
// same-day-first-order case) contributes zero risk.
func frequencyTrendRisk(p *domain.BehavioralProfile) float64 {
	expected := 0.0
	if p.DaysSinceFirstOrder > 0 {
		expected = float64(p.TotalOrders) / (float64(p.DaysSinceFirstOrder) / 30)
	}
	if expected == 0 {
		return 0
	}

	actual := 0.0
	if p.DaysSinceLastOrder > 0 {
		actual = 30 / float64(p.DaysSinceLastOrder)
	}

	risk := (expected - actual) / expected
	if risk < 0 {
		return 0
	}
	return math.Min(risk, 1)
}

var lifecycleRisks = map[domain.LifecycleStage]float64{
	domain.StageProspect:  0.7,
	domain.StageNew:       0.5,
	domain.StageActive:    0.2,
	domain.StageEngaged:   0.1,
	domain.StagePowerUser: 0.05,
	domain.StageDeclining: 0.6,
	domain.StageAtRisk:    0.8,
	domain.StageChurned:   1.0,
}

func lifecycleRisk(stage domain.LifecycleStage) float64 {
	return lifecycleRisks[stage]
}

// LevelFor buckets a churn probability. The bounds are upper-exclusive, so
// exactly 0.3 is MEDIUM and exactly 0.7 is CRITICAL.
func LevelFor(probability float64) domain.RiskLevel {
	switch {
	case probability < 0.3:
		return domain.RiskLow
	case probability < 0.5:
		return domain.RiskMedium
	case probability < 0.7:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

// Predict builds the full churn prediction for a profile.
func Predict(p *domain.BehavioralProfile) *domain.ChurnPrediction {
	if p == nil {
		return nil
	}

	probability := p.ChurnRisk
	level := LevelFor(probability)
	factors := materialFactors(p)

	return &domain.ChurnPrediction{
		UserID:           p.UserID,
		ChurnProbability: probability,
		RiskLevel:        level,
		Factors:          factors,
		Recommendations:  recommendations(level, factors, p),
	}
}

// materialFactors includes only signals that cross their materiality
// thresholds.
func materialFactors(p *domain.BehavioralProfile) []domain.ChurnFactor {
	var factors []domain.ChurnFactor

	if p.DaysSinceLastOrder > 30 {
		factors = append(factors, domain.ChurnFactor{
			Factor:      domain.FactorInactivity,
			Impact:      math.Min(float64(p.DaysSinceLastOrder)/90, 1),
			Description: fmt.Sprintf("No purchase in %d days", p.DaysSinceLastOrder),
		})
	}

	if p.EngagementScore < 50 {
		factors = append(factors, domain.ChurnFactor{
			Factor:      domain.FactorLowEngagement,
			Impact:      float64(100-p.EngagementScore) / 100,
			Description: fmt.Sprintf("Engagement score is only %d%%", p.EngagementScore),
		})
	}

	if p.LifecycleStage == domain.StageDeclining || p.LifecycleStage == domain.StageAtRisk {
		factors = append(factors, domain.ChurnFactor{
			Factor:      domain.FactorLifecycleStage,
			Impact:      0.7,
			Description: fmt.Sprintf("User is in %s stage", p.LifecycleStage),
		})
	}

	return factors
}

func recommendations(level domain.RiskLevel, factors []domain.ChurnFactor, p *domain.BehavioralProfile) []string {
	var recs []string

	if level == domain.RiskCritical || level == domain.RiskHigh {
		recs = append(recs,
			"Send immediate personalized win-back offer",
			"Personal outreach from customer success team",
			"Offer significant discount or free shipping",
		)
	}

	if hasFactor(factors, domain.FactorInactivity) {
		recs = append(recs,
			"Send 'We miss you' campaign",
			"Highlight new products in favorite categories",
			"Offer limited-time comeback incentive",
		)
	}

	if hasFactor(factors, domain.FactorLowEngagement) {
		recs = append(recs,
			"Re-engage with educational content",
			"Send personalized product recommendations",
			"Invite to special events or farm tours",
		)
	}

	if len(p.FavoriteCategories) > 0 {
		highlight := p.FavoriteCategories
		if len(highlight) > 2 {
			highlight = highlight[:2]
		}
		recs = append(recs, fmt.Sprintf("Highlight products in favorite categories: %s", strings.Join(highlight, ", ")))
	}

	if p.Preferences.Organic > 0.7 {
		recs = append(recs, "Emphasize new organic arrivals")
	}
	if p.Preferences.Local > 0.7 {
		recs = append(recs, "Showcase local farm partnerships")
	}

	return recs
}

func hasFactor(factors []domain.ChurnFactor, name string) bool {
	for _, f := range factors {
		if f.Factor == name {
			return true
		}
	}
	return false
}
