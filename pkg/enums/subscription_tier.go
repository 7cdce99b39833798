package enums

import "fmt"

// SubscriptionTier is the plan a society is billed on.
type SubscriptionTier string

const (
	SubscriptionTierBasic      SubscriptionTier = "basic"
	SubscriptionTierStandard   SubscriptionTier = "standard"
	SubscriptionTierPremium    SubscriptionTier = "premium"
	SubscriptionTierEnterprise SubscriptionTier = "enterprise"
)

var validSubscriptionTiers = []SubscriptionTier{
	SubscriptionTierBasic,
	SubscriptionTierStandard,
	SubscriptionTierPremium,
	SubscriptionTierEnterprise,
}

func (s SubscriptionTier) String() string {
	return string(s)
}

func (s SubscriptionTier) IsValid() bool {
	for _, candidate := range validSubscriptionTiers {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseSubscriptionTier(value string) (SubscriptionTier, error) {
	for _, candidate := range validSubscriptionTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription tier %q", value)
}
