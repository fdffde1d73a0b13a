package profile

import (
	"reflect"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"

	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func order(total float64, daysAgo int, items ...orderdomain.OrderLineFact) orderdomain.OrderFact {
	return orderdomain.OrderFact{
		Total:     total,
		CreatedAt: testNow.AddDate(0, 0, -daysAgo),
		Items:     items,
	}
}

func TestBuildEmptyHistory(t *testing.T) {
	if p := Build("1", nil, testNow); p != nil {
		t.Fatalf("expected nil profile for empty history, got %+v", p)
	}
}

func TestBuildAggregates(t *testing.T) {
	orders := []orderdomain.OrderFact{
		order(120, 40, orderdomain.OrderLineFact{Category: "vegetables", FarmID: snowflake.ID(1), Organic: true, Local: true}),
		order(60, 20, orderdomain.OrderLineFact{Category: "dairy", FarmID: snowflake.ID(2), Local: true}),
		order(90, 5, orderdomain.OrderLineFact{Category: "vegetables", FarmID: snowflake.ID(1), Organic: true, Local: true, Biodynamic: true}),
	}
	p := Build("42", orders, testNow)
	if p == nil {
		t.Fatal("expected profile")
	}
	if p.TotalOrders != 3 || p.LifetimeValue != 270 {
		t.Fatalf("unexpected totals: %+v", p)
	}
	if p.AvgOrderValue != p.LifetimeValue/float64(p.TotalOrders) {
		t.Fatalf("avgOrderValue %f != lifetimeValue/totalOrders", p.AvgOrderValue)
	}
	if p.DaysSinceFirstOrder != 40 || p.DaysSinceLastOrder != 5 {
		t.Fatalf("unexpected recency: first=%d last=%d", p.DaysSinceFirstOrder, p.DaysSinceLastOrder)
	}
	if p.Segment == "" || !p.Segment.Valid() {
		t.Fatalf("expected valid segment, got %q", p.Segment)
	}
	if len(p.FavoriteCategories) == 0 || p.FavoriteCategories[0] != "vegetables" {
		t.Fatalf("expected vegetables as top category, got %v", p.FavoriteCategories)
	}
	if len(p.FavoriteFarms) == 0 || p.FavoriteFarms[0] != snowflake.ID(1).String() {
		t.Fatalf("expected farm 1 as top farm, got %v", p.FavoriteFarms)
	}
	// 2 of 3 line items organic, all 3 local, 1 biodynamic.
	if p.Preferences.Organic != 2.0/3.0 || p.Preferences.Local != 1 || p.Preferences.Biodynamic != 1.0/3.0 {
		t.Fatalf("unexpected preferences: %+v", p.Preferences)
	}
	if p.ChurnRisk < 0 || p.ChurnRisk > 1 {
		t.Fatalf("churn risk %f out of range", p.ChurnRisk)
	}
}

func TestBuildNoLineItems(t *testing.T) {
	p := Build("7", []orderdomain.OrderFact{order(40, 2)}, testNow)
	if p == nil {
		t.Fatal("expected profile")
	}
	if p.Preferences != (domain.Preferences{}) {
		t.Fatalf("expected zero preferences without line items, got %+v", p.Preferences)
	}
	if len(p.FavoriteCategories) != 0 || len(p.FavoriteFarms) != 0 {
		t.Fatalf("expected no favorites, got %v / %v", p.FavoriteCategories, p.FavoriteFarms)
	}
}

func TestFavoritesTieBreakByFirstEncounter(t *testing.T) {
	c := newAffinityCounter()
	for _, key := range []string{"dairy", "fruit", "dairy", "bread", "fruit", "bread"} {
		c.add(key)
	}
	got := c.top(5)
	want := []string{"dairy", "fruit", "bread"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected first-encounter order on ties, got %v", got)
	}
}

func TestFavoritesLimit(t *testing.T) {
	c := newAffinityCounter()
	keys := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, key := range keys {
		for n := 0; n <= len(keys)-i; n++ {
			c.add(key)
		}
	}
	got := c.top(favoriteLimit)
	if len(got) != favoriteLimit {
		t.Fatalf("expected %d favorites, got %v", favoriteLimit, got)
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("unexpected ranking: %v", got)
	}
}

func TestEngagementScoreComponents(t *testing.T) {
	// Last order today, 10 orders over 100 days (3/month), avg $100:
	// 40 + 30 (capped) + 30 = 100.
	if got := engagementScore(0, 10, 100, 100); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	// Stale, single cheap order long ago: 0 + ~0 + 5.
	if got := engagementScore(120, 1, 10, 365); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	// First order today: frequency component is zero, not NaN.
	if got := engagementScore(0, 1, 30, 0); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestEngagementScoreRange(t *testing.T) {
	cases := []struct {
		daysSinceLast, totalOrders int
		avgOrderValue              float64
		daysSinceFirst             int
	}{
		{0, 100, 500, 10},
		{7, 20, 120, 14},
		{200, 1, 5, 400},
		{0, 1, 0, 0},
	}
	for _, tc := range cases {
		got := engagementScore(tc.daysSinceLast, tc.totalOrders, tc.avgOrderValue, tc.daysSinceFirst)
		if got < 0 || got > 100 {
			t.Fatalf("engagementScore(%+v) = %d out of [0, 100]", tc, got)
		}
	}
}

func TestLifecycleStageOrder(t *testing.T) {
	cases := []struct {
		daysSinceFirst, daysSinceLast, totalOrders int
		want                                       domain.LifecycleStage
	}{
		// Churned wins over everything, even heavy lifetime volume.
		{400, 90, 50, domain.StageChurned},
		{400, 60, 50, domain.StageAtRisk},
		// New wins over Prospect for a single recent first order.
		{2, 2, 1, domain.StageNew},
		{30, 10, 12, domain.StageNew},
		{45, 45, 1, domain.StageProspect},
		{200, 10, 12, domain.StagePowerUser},
		{200, 25, 6, domain.StageEngaged},
		{200, 40, 3, domain.StageActive},
		{200, 50, 3, domain.StageDeclining},
	}
	for _, tc := range cases {
		got := lifecycleStage(tc.daysSinceFirst, tc.daysSinceLast, tc.totalOrders)
		if got != tc.want {
			t.Fatalf("lifecycleStage(%d, %d, %d) = %s, want %s",
				tc.daysSinceFirst, tc.daysSinceLast, tc.totalOrders, got, tc.want)
		}
	}
}

func TestBuildNewCustomerLifecycle(t *testing.T) {
	p := Build("7", []orderdomain.OrderFact{order(40, 2)}, testNow)
	if p == nil {
		t.Fatal("expected profile")
	}
	if p.LifecycleStage != domain.StageNew {
		t.Fatalf("expected NEW lifecycle stage, got %s", p.LifecycleStage)
	}
	if p.Segment != domain.SegmentNewCustomers {
		t.Fatalf("expected NEW_CUSTOMERS segment, got %s", p.Segment)
	}
}
