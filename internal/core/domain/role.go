package domain

// Role identifies an actor class. The set is fixed at compile time.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleBusinessOwner Role = "businessOwner"
	RoleFreelancer    Role = "freelancer"
	RoleAdvertiser    Role = "advertiser"
	RolePublicUser    Role = "publicUser"
)

// AllRoles returns every known role in declaration order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleBusinessOwner, RoleFreelancer, RoleAdvertiser, RolePublicUser}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBusinessOwner, RoleFreelancer, RoleAdvertiser, RolePublicUser:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Module names a feature area gated per role. New modules need no code change.
type Module string

const (
	ModuleBusinessListing Module = "businessListing"
	ModuleJobPosting      Module = "jobPosting"
	ModuleServicePosting  Module = "servicePosting"
	ModuleServiceListing  Module = "serviceListing"
	ModuleEventListing    Module = "eventListing"
	ModuleInquiry         Module = "inquiry"
	ModulePromotion       Module = "promotion"
	ModuleSubscription    Module = "subscription"
	ModuleAds             Module = "ads"
	ModuleAnalytics       Module = "analytics"
	ModuleSEO             Module = "seo"
	ModuleStripePayment   Module = "stripePayment"
	ModuleDisclaimer      Module = "disclaimer"
	ModuleLogs            Module = "logs"
	ModuleBookmark        Module = "bookmark"
	ModuleProfile         Module = "profile"
	ModuleSitePromotion   Module = "sitePromotion"
)

func (m Module) String() string { return string(m) }

// RoleMatches reports whether role is a member of allowed.
func RoleMatches(role Role, allowed ...Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
