package wizard

// Tier identifies a subscription plan.
type Tier string

const (
	TierNone     Tier = ""
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Plan is the static presentation data of a tier.
type Plan struct {
	Tier       Tier
	Key        string // translation message id
	PriceCents int

	// WeeklyChart unlocks the week forecast of the journey step.
	WeeklyChart bool
}

// Plans lists the available tiers in display order.
var Plans = [...]Plan{
	{Tier: TierBasic, Key: "tier_basic", PriceCents: 0},
	{Tier: TierStandard, Key: "tier_standard", PriceCents: 499, WeeklyChart: true},
	{Tier: TierPremium, Key: "tier_premium", PriceCents: 999, WeeklyChart: true},
}

// LookupTier returns the plan of t.
func LookupTier(t Tier) (Plan, bool) {
	for _, p := range Plans {
		if p.Tier == t {
			return p, true
		}
	}
	return Plan{}, false
}
