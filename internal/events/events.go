package events

// Marketing event types emitted by the segmentation workers and consumed by
// the notification/campaign layer.
const (
	EventChurnRiskHigh   = "churn_risk.high"
	EventSegmentAssigned = "segment.assigned"
)

// ChurnRiskPayload captures the minimal data a campaign trigger needs to act
// on a high-risk user.
type ChurnRiskPayload struct {
	UserID           string  `json:"user_id"`
	ChurnProbability float64 `json:"churn_probability"`
	RiskLevel        string  `json:"risk_level"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p ChurnRiskPayload) ToMap() map[string]any {
	return map[string]any{
		"user_id":           p.UserID,
		"churn_probability": p.ChurnProbability,
		"risk_level":        p.RiskLevel,
	}
}
