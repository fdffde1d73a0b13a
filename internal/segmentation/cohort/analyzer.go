// Package cohort groups users by signup calendar month and tracks activity
// and retention over the following twelve months.
package cohort

import (
	"sort"
	"time"

	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
)

// UserOrders pairs one user's signup time with their completed orders.
type UserOrders struct {
	UserID   string
	SignupAt time.Time
	Orders   []orderdomain.OrderFact
}

// Analyze buckets users by signup month and computes, per cohort, the count
// of distinct users with at least one completed order in each month offset
// 0..12, the retention percentage, and the average lifetime value. Cohorts
// are returned sorted ascending by month; empty cohorts are never emitted.
func Analyze(users []UserOrders) []domain.CohortRecord {
	groups := make(map[string][]UserOrders)
	for _, u := range users {
		month := domain.CohortMonthKey(u.SignupAt)
		groups[month] = append(groups[month], u)
	}

	months := make([]string, 0, len(groups))
	for month := range groups {
		months = append(months, month)
	}
	sort.Strings(months)

	records := make([]domain.CohortRecord, 0, len(months))
	for _, month := range months {
		members := groups[month]
		if len(members) == 0 {
			continue
		}
		records = append(records, analyzeCohort(month, members))
	}
	return records
}

func analyzeCohort(month string, members []UserOrders) domain.CohortRecord {
	cohortStart, _ := time.ParseInLocation("2006-01", month, time.UTC)

	active := make(map[int]int, domain.CohortMonthOffsets+1)
	retention := make(map[int]float64, domain.CohortMonthOffsets+1)
	size := len(members)

	for offset := 0; offset <= domain.CohortMonthOffsets; offset++ {
		windowStart := cohortStart.AddDate(0, offset, 0)
		windowEnd := cohortStart.AddDate(0, offset+1, 0)

		count := 0
		for _, member := range members {
			if orderedWithin(member.Orders, windowStart, windowEnd) {
				count++
			}
		}
		active[offset] = count
		retention[offset] = float64(count) / float64(size) * 100
	}

	lifetime := 0.0
	for _, member := range members {
		for _, o := range member.Orders {
			lifetime += o.Total
		}
	}

	return domain.CohortRecord{
		CohortMonth:          month,
		TotalUsers:           size,
		ActiveUsers:          active,
		RetentionRate:        retention,
		AverageLifetimeValue: lifetime / float64(size),
	}
}

// orderedWithin reports whether any order falls in [start, end).
func orderedWithin(orders []orderdomain.OrderFact, start, end time.Time) bool {
	for _, o := range orders {
		at := o.CreatedAt
		if !at.Before(start) && at.Before(end) {
			return true
		}
	}
	return false
}
