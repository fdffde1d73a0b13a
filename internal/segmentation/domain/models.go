// Package domain defines the derived customer-segmentation records. Every
// type here is recomputed on demand from order facts; nothing is mutable
// persistent state.
package domain

import "time"

// Segment is one of the eleven RFM segments.
type Segment string

const (
	SegmentChampions          Segment = "CHAMPIONS"
	SegmentLoyalCustomers     Segment = "LOYAL_CUSTOMERS"
	SegmentPotentialLoyalists Segment = "POTENTIAL_LOYALISTS"
	SegmentNewCustomers       Segment = "NEW_CUSTOMERS"
	SegmentPromising          Segment = "PROMISING"
	SegmentNeedAttention      Segment = "NEED_ATTENTION"
	SegmentAboutToSleep       Segment = "ABOUT_TO_SLEEP"
	SegmentAtRisk             Segment = "AT_RISK"
	SegmentCantLose           Segment = "CANT_LOSE"
	SegmentHibernating        Segment = "HIBERNATING"
	SegmentLost               Segment = "LOST"
)

// AllSegments lists every segment in a stable order. Distribution results
// carry all eleven keys even when a count is zero.
func AllSegments() []Segment {
	return []Segment{
		SegmentChampions,
		SegmentLoyalCustomers,
		SegmentPotentialLoyalists,
		SegmentNewCustomers,
		SegmentPromising,
		SegmentNeedAttention,
		SegmentAboutToSleep,
		SegmentAtRisk,
		SegmentCantLose,
		SegmentHibernating,
		SegmentLost,
	}
}

// Valid reports whether s is a known segment.
func (s Segment) Valid() bool {
	for _, known := range AllSegments() {
		if s == known {
			return true
		}
	}
	return false
}

// LifecycleStage is a coarse behavioral phase, distinct from the RFM segment.
type LifecycleStage string

const (
	StageProspect  LifecycleStage = "PROSPECT"
	StageNew       LifecycleStage = "NEW"
	StageActive    LifecycleStage = "ACTIVE"
	StageEngaged   LifecycleStage = "ENGAGED"
	StagePowerUser LifecycleStage = "POWER_USER"
	StageDeclining LifecycleStage = "DECLINING"
	StageAtRisk    LifecycleStage = "AT_RISK"
	StageChurned   LifecycleStage = "CHURNED"
)

// RiskLevel buckets a churn probability.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RFMScore carries the raw recency/frequency/monetary values, their 1-5
// scores, and the assigned segment.
type RFMScore struct {
	UserID         string  `json:"user_id"`
	RecencyDays    int     `json:"recency_days"`
	Frequency      int     `json:"frequency"`
	Monetary       float64 `json:"monetary"`
	RecencyScore   int     `json:"recency_score"`
	FrequencyScore int     `json:"frequency_score"`
	MonetaryScore  int     `json:"monetary_score"`
	RFMCode        string  `json:"rfm_code"`
	Segment        Segment `json:"segment"`
}

// SegmentDefinition is the static catalog entry for a segment.
type SegmentDefinition struct {
	Name           Segment  `json:"name"`
	Description    string   `json:"description"`
	RecencyRange   [2]int   `json:"recency_range"`
	FrequencyRange [2]int   `json:"frequency_range"`
	MonetaryRange  [2]int   `json:"monetary_range"`
	ActionItems    []string `json:"action_items"`
}

// Preferences are the organic/local/biodynamic line-item ratios, each in
// [0, 1].
type Preferences struct {
	Organic    float64 `json:"organic"`
	Local      float64 `json:"local"`
	Biodynamic float64 `json:"biodynamic"`
}

// BehavioralProfile aggregates a user's full order history.
type BehavioralProfile struct {
	UserID              string         `json:"user_id"`
	Segment             Segment        `json:"segment"`
	EngagementScore     int            `json:"engagement_score"`
	ChurnRisk           float64        `json:"churn_risk"`
	LifetimeValue       float64        `json:"lifetime_value"`
	DaysSinceFirstOrder int            `json:"days_since_first_order"`
	DaysSinceLastOrder  int            `json:"days_since_last_order"`
	TotalOrders         int            `json:"total_orders"`
	AvgOrderValue       float64        `json:"avg_order_value"`
	FavoriteCategories  []string       `json:"favorite_categories"`
	FavoriteFarms       []string       `json:"favorite_farms"`
	Preferences         Preferences    `json:"preferences"`
	LifecycleStage      LifecycleStage `json:"lifecycle_stage"`
}

// ChurnFactor names one contributing signal for explainability. Impact is a
// presentation annotation, not the factor's weighted contribution.
type ChurnFactor struct {
	Factor      string  `json:"factor"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// Churn factor names.
const (
	FactorInactivity     = "INACTIVITY"
	FactorLowEngagement  = "LOW_ENGAGEMENT"
	FactorLifecycleStage = "LIFECYCLE_STAGE"
)

// ChurnPrediction is the full churn assessment for one user.
type ChurnPrediction struct {
	UserID           string        `json:"user_id"`
	ChurnProbability float64       `json:"churn_probability"`
	RiskLevel        RiskLevel     `json:"risk_level"`
	Factors          []ChurnFactor `json:"factors"`
	Recommendations  []string      `json:"recommendations"`
}

// CohortRecord tracks one signup-month cohort over month offsets 0..12.
type CohortRecord struct {
	CohortMonth          string          `json:"cohort_month"` // YYYY-MM
	TotalUsers           int             `json:"total_users"`
	ActiveUsers          map[int]int     `json:"active_users"`
	RetentionRate        map[int]float64 `json:"retention_rate"`
	AverageLifetimeValue float64         `json:"average_lifetime_value"`
}

// CohortMonthOffsets is the number of month offsets tracked per cohort,
// inclusive of offset zero.
const CohortMonthOffsets = 12

// CohortMonthKey formats a signup time as its cohort bucket.
func CohortMonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
