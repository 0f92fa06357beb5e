package models

// Role is the authorization level a user holds within a group.
type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleContributor Role = "CONTRIBUTOR"
	RoleViewer      Role = "VIEWER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleContributor, RoleViewer:
		return true
	}
	return false
}

// Subscription tiers assigned to users.
const (
	SubscriptionFree  = "FREE"
	SubscriptionTier1 = "TIER_1"
	SubscriptionTier2 = "TIER_2"
)
