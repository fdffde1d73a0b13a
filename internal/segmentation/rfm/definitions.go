package rfm

import "github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"

// Definition returns the static catalog entry for a segment.
func Definition(segment domain.Segment) (domain.SegmentDefinition, bool) {
	def, ok := definitions[segment]
	return def, ok
}

var definitions = map[domain.Segment]domain.SegmentDefinition{
	domain.SegmentChampions: {
		Name:           domain.SegmentChampions,
		Description:    "Best customers who buy frequently and recently",
		RecencyRange:   [2]int{4, 5},
		FrequencyRange: [2]int{4, 5},
		MonetaryRange:  [2]int{4, 5},
		ActionItems: []string{
			"Reward with exclusive offers",
			"Make them brand ambassadors",
			"Ask for reviews and referrals",
			"Early access to new products",
		},
	},
	domain.SegmentLoyalCustomers: {
		Name:           domain.SegmentLoyalCustomers,
		Description:    "Regular customers with consistent purchases",
		RecencyRange:   [2]int{3, 5},
		FrequencyRange: [2]int{4, 5},
		MonetaryRange:  [2]int{2, 5},
		ActionItems: []string{
			"Upsell higher value products",
			"Loyalty program benefits",
			"Personalized recommendations",
			"Seasonal subscription offers",
		},
	},
	domain.SegmentPotentialLoyalists: {
		Name:           domain.SegmentPotentialLoyalists,
		Description:    "Recent customers showing promise",
		RecencyRange:   [2]int{4, 5},
		FrequencyRange: [2]int{2, 3},
		MonetaryRange:  [2]int{2, 5},
		ActionItems: []string{
			"Engage with educational content",
			"Offer membership programs",
			"Personalized product recommendations",
			"Cross-sell complementary products",
		},
	},
	domain.SegmentNewCustomers: {
		Name:           domain.SegmentNewCustomers,
		Description:    "First-time buyers - nurture them",
		RecencyRange:   [2]int{4, 5},
		FrequencyRange: [2]int{1, 1},
		MonetaryRange:  [2]int{1, 5},
		ActionItems: []string{
			"Welcome series",
			"Onboarding emails",
			"Second purchase incentive",
			"Farm stories and mission",
		},
	},
	domain.SegmentPromising: {
		Name:           domain.SegmentPromising,
		Description:    "Showing potential with moderate activity",
		RecencyRange:   [2]int{3, 4},
		FrequencyRange: [2]int{2, 3},
		MonetaryRange:  [2]int{2, 4},
		ActionItems: []string{
			"Special offers to increase frequency",
			"Product recommendations",
			"Seasonal bundles",
			"Category education",
		},
	},
	domain.SegmentNeedAttention: {
		Name:           domain.SegmentNeedAttention,
		Description:    "Recent but not engaged enough",
		RecencyRange:   [2]int{3, 3},
		FrequencyRange: [2]int{1, 1},
		MonetaryRange:  [2]int{1, 3},
		ActionItems: []string{
			"Limited time offers",
			"Reactivation campaign",
			"Survey for feedback",
			"Product variety showcase",
		},
	},
	domain.SegmentAboutToSleep: {
		Name:           domain.SegmentAboutToSleep,
		Description:    "Declining activity - act now",
		RecencyRange:   [2]int{2, 2},
		FrequencyRange: [2]int{2, 3},
		MonetaryRange:  [2]int{2, 4},
		ActionItems: []string{
			"Win-back campaign",
			"Personalized offers",
			"We miss you emails",
			"Survey to understand issues",
		},
	},
	domain.SegmentAtRisk: {
		Name:           domain.SegmentAtRisk,
		Description:    "Former good customers losing interest",
		RecencyRange:   [2]int{1, 2},
		FrequencyRange: [2]int{4, 5},
		MonetaryRange:  [2]int{4, 5},
		ActionItems: []string{
			"Aggressive win-back offers",
			"Personal outreach",
			"VIP treatment",
			"Address pain points",
		},
	},
	domain.SegmentCantLose: {
		Name:           domain.SegmentCantLose,
		Description:    "High-value customers at risk",
		RecencyRange:   [2]int{1, 1},
		FrequencyRange: [2]int{4, 5},
		MonetaryRange:  [2]int{4, 5},
		ActionItems: []string{
			"Immediate personal contact",
			"Major incentives",
			"VIP concierge service",
			"Understand and fix issues",
		},
	},
	domain.SegmentHibernating: {
		Name:           domain.SegmentHibernating,
		Description:    "Inactive but had some engagement",
		RecencyRange:   [2]int{1, 1},
		FrequencyRange: [2]int{2, 3},
		MonetaryRange:  [2]int{1, 4},
		ActionItems: []string{
			"Re-engagement campaign",
			"What's new updates",
			"Special comeback offers",
			"Low-cost entry products",
		},
	},
	domain.SegmentLost: {
		Name:           domain.SegmentLost,
		Description:    "Inactive with minimal engagement",
		RecencyRange:   [2]int{1, 1},
		FrequencyRange: [2]int{1, 1},
		MonetaryRange:  [2]int{1, 2},
		ActionItems: []string{
			"Last-ditch win-back",
			"Survey for closure",
			"Consider unsubscribe",
			"Seasonal reminders only",
		},
	},
}
