// Package profile aggregates a user's full order history into a behavioral
// profile: lifetime value, category/farm affinities, attribute preference
// ratios, engagement score, and lifecycle stage.
package profile

import (
	"math"
	"sort"
	"time"

	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/churn"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/rfm"
)

const favoriteLimit = 5

// Build computes the behavioral profile for one user. Orders must be the
// user's completed orders sorted ascending by creation time. Returns nil when
// the user has no completed orders.
func Build(userID string, orders []orderdomain.OrderFact, now time.Time) *domain.BehavioralProfile {
	if len(orders) == 0 {
		return nil
	}

	daysSinceFirst := daysBetween(orders[0].CreatedAt, now)
	daysSinceLast := daysBetween(orders[len(orders)-1].CreatedAt, now)

	totalOrders := len(orders)
	lifetimeValue := 0.0
	for _, o := range orders {
		lifetimeValue += o.Total
	}
	avgOrderValue := lifetimeValue / float64(totalOrders)

	categories := newAffinityCounter()
	farms := newAffinityCounter()
	var organicCount, localCount, biodynamicCount, totalLineItems int

	for _, o := range orders {
		for _, item := range o.Items {
			totalLineItems++
			categories.add(item.Category)
			farms.add(item.FarmID.String())
			if item.Organic {
				organicCount++
			}
			if item.Local {
				localCount++
			}
			if item.Biodynamic {
				biodynamicCount++
			}
		}
	}

	prefs := domain.Preferences{}
	if totalLineItems > 0 {
		prefs.Organic = float64(organicCount) / float64(totalLineItems)
		prefs.Local = float64(localCount) / float64(totalLineItems)
		prefs.Biodynamic = float64(biodynamicCount) / float64(totalLineItems)
	}

	score := rfm.Score(userID, orders, now)

	engagement := engagementScore(daysSinceLast, totalOrders, avgOrderValue, daysSinceFirst)
	stage := lifecycleStage(daysSinceFirst, daysSinceLast, totalOrders)

	p := &domain.BehavioralProfile{
		UserID:              userID,
		Segment:             score.Segment,
		EngagementScore:     engagement,
		LifetimeValue:       lifetimeValue,
		DaysSinceFirstOrder: daysSinceFirst,
		DaysSinceLastOrder:  daysSinceLast,
		TotalOrders:         totalOrders,
		AvgOrderValue:       avgOrderValue,
		FavoriteCategories:  categories.top(favoriteLimit),
		FavoriteFarms:       farms.top(favoriteLimit),
		Preferences:         prefs,
		LifecycleStage:      stage,
	}
	p.ChurnRisk = churn.Risk(p)
	return p
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// affinityCounter counts occurrences while remembering first-encounter order,
// which is the tie-break when counts are equal.
type affinityCounter struct {
	counts map[string]int
	keys   []string
}

func newAffinityCounter() *affinityCounter {
	return &affinityCounter{counts: make(map[string]int)}
}

func (c *affinityCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *affinityCounter) top(limit int) []string {
	ranked := make([]string, len(c.keys))
	copy(ranked, c.keys)
	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// engagementScore combines three independently capped components into a
// 0-100 score.
func engagementScore(daysSinceLast, totalOrders int, avgOrderValue float64, daysSinceFirst int) int {
	score := 0.0

	// Recency component (0-40).
	switch {
	case daysSinceLast <= 7:
		score += 40
	case daysSinceLast <= 14:
		score += 35
	case daysSinceLast <= 30:
		score += 25
	case daysSinceLast <= 60:
		score += 15
	case daysSinceLast <= 90:
		score += 5
	}

	// Frequency component (0-30): orders per 30-day window.
	frequency := 0.0
	if daysSinceFirst > 0 {
		frequency = float64(totalOrders) / (float64(daysSinceFirst) / 30)
	}
	score += math.Min(frequency*10, 30)

	// Order value component (0-30).
	switch {
	case avgOrderValue >= 100:
		score += 30
	case avgOrderValue >= 50:
		score += 20
	case avgOrderValue >= 25:
		score += 10
	default:
		score += 5
	}

	rounded := int(math.Round(score))
	if rounded > 100 {
		return 100
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}

// lifecycleStage is an ordered decision list; the stages overlap, so the
// first match wins.
func lifecycleStage(daysSinceFirst, daysSinceLast, totalOrders int) domain.LifecycleStage {
	switch {
	case daysSinceLast >= 90:
		return domain.StageChurned
	case daysSinceLast >= 60:
		return domain.StageAtRisk
	case daysSinceFirst <= 30:
		return domain.StageNew
	case totalOrders == 1:
		return domain.StageProspect
	case totalOrders >= 10 && daysSinceLast <= 14:
		return domain.StagePowerUser
	case totalOrders >= 5 && daysSinceLast <= 30:
		return domain.StageEngaged
	case daysSinceLast <= 45:
		return domain.StageActive
	default:
		return domain.StageDeclining
	}
}
