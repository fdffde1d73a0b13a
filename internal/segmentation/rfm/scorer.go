// Package rfm computes recency/frequency/monetary scores and assigns one of
// the eleven customer segments. Everything here is a pure function of the
// order snapshot and the reference time.
package rfm

import (
	"fmt"
	"time"

	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
)

// Score computes the RFM score for one user. Orders must be the user's
// completed orders sorted ascending by creation time. Returns nil when the
// user has no completed orders.
func Score(userID string, orders []orderdomain.OrderFact, now time.Time) *domain.RFMScore {
	if len(orders) == 0 {
		return nil
	}

	last := orders[len(orders)-1].CreatedAt
	recencyDays := daysBetween(last, now)

	frequency := len(orders)

	monetary := 0.0
	for _, o := range orders {
		monetary += o.Total
	}

	r := recencyScore(recencyDays)
	f := frequencyScore(frequency)
	m := monetaryScore(monetary)

	return &domain.RFMScore{
		UserID:         userID,
		RecencyDays:    recencyDays,
		Frequency:      frequency,
		Monetary:       monetary,
		RecencyScore:   r,
		FrequencyScore: f,
		MonetaryScore:  m,
		RFMCode:        fmt.Sprintf("%d%d%d", r, f, m),
		Segment:        assignSegment(r, f, m),
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// Fixed business-defined breakpoints, not computed percentiles.

func recencyScore(days int) int {
	switch {
	case days <= 7:
		return 5
	case days <= 14:
		return 4
	case days <= 30:
		return 3
	case days <= 60:
		return 2
	default:
		return 1
	}
}

func frequencyScore(orders int) int {
	switch {
	case orders >= 20:
		return 5
	case orders >= 10:
		return 4
	case orders >= 5:
		return 3
	case orders >= 2:
		return 2
	default:
		return 1
	}
}

func monetaryScore(total float64) int {
	switch {
	case total >= 1000:
		return 5
	case total >= 500:
		return 4
	case total >= 200:
		return 3
	case total >= 50:
		return 2
	default:
		return 1
	}
}

type segmentRule struct {
	matches func(r, f, m int) bool
	segment domain.Segment
}

// The ranges overlap, so the rules are an ordered decision list: the first
// match wins. Do not reorder.
var segmentRules = []segmentRule{
	{func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }, domain.SegmentChampions},
	{func(r, f, m int) bool { return r >= 3 && f >= 4 }, domain.SegmentLoyalCustomers},
	{func(r, f, m int) bool { return r >= 4 && f >= 2 && f <= 3 }, domain.SegmentPotentialLoyalists},
	{func(r, f, m int) bool { return r >= 4 && f == 1 }, domain.SegmentNewCustomers},
	{func(r, f, m int) bool { return r >= 3 && f >= 2 }, domain.SegmentPromising},
	{func(r, f, m int) bool { return r == 3 && f == 1 }, domain.SegmentNeedAttention},
	{func(r, f, m int) bool { return r == 2 && f >= 2 }, domain.SegmentAboutToSleep},
	{func(r, f, m int) bool { return r == 2 && f >= 4 }, domain.SegmentAtRisk},
	{func(r, f, m int) bool { return r == 1 && f >= 4 && m >= 4 }, domain.SegmentCantLose},
	{func(r, f, m int) bool { return r == 1 && f >= 2 }, domain.SegmentHibernating},
}

func assignSegment(r, f, m int) domain.Segment {
	for _, rule := range segmentRules {
		if rule.matches(r, f, m) {
			return rule.segment
		}
	}
	return domain.SegmentLost
}
