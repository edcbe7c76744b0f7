package domain

import "sort"

// Preset names.
const (
	PresetBusinessDirectory     = "businessDirectory"
	PresetEventDirectory        = "eventDirectory"
	PresetFreelancerMarketplace = "freelancerMarketplace"
	PresetAdsBoard              = "adsBoard"
)

var publicUserModules = []Module{ModuleBookmark, ModuleInquiry, ModuleProfile, ModuleSitePromotion}

// DefaultProjectConfig returns the configuration used when no preset is
// selected.
func DefaultProjectConfig() *ProjectConfig {
	return NewProjectConfig("Langkawi Directory", AllRoles(), map[Role][]Module{
		RoleAdmin: {
			ModuleBusinessListing, ModuleJobPosting, ModuleServicePosting, ModuleInquiry,
			ModulePromotion, ModuleSubscription, ModuleAds, ModuleAnalytics, ModuleSEO,
			ModuleStripePayment, ModuleDisclaimer, ModuleLogs,
		},
		RoleBusinessOwner: {ModuleBusinessListing, ModuleJobPosting, ModuleInquiry, ModulePromotion, ModuleSubscription},
		RoleFreelancer:    {ModuleServiceListing, ModuleInquiry, ModulePromotion, ModuleSubscription},
		RoleAdvertiser:    {ModuleAds, ModuleInquiry, ModulePromotion, ModuleSubscription},
		RolePublicUser:    publicUserModules,
	})
}

// presetFor builds a single-vertical preset: admin gets the listing module plus
// the back-office set, the owning role gets the listing module plus the
// commercial set, and public users get the visitor set.
func presetFor(name string, owner Role, listing Module) *ProjectConfig {
	roles := []Role{RoleAdmin}
	modules := map[Role][]Module{
		RoleAdmin:      {listing, ModuleInquiry, ModulePromotion, ModuleSubscription, ModuleAnalytics, ModuleSEO},
		RolePublicUser: publicUserModules,
	}
	if owner != "" {
		roles = append(roles, owner)
		modules[owner] = []Module{listing, ModuleInquiry, ModulePromotion, ModuleSubscription}
	}
	roles = append(roles, RolePublicUser)
	return NewProjectConfig(name, roles, modules)
}

var presets = map[string]func() *ProjectConfig{
	PresetBusinessDirectory: func() *ProjectConfig {
		return presetFor("Business Directory", RoleBusinessOwner, ModuleBusinessListing)
	},
	PresetEventDirectory: func() *ProjectConfig {
		return presetFor("Event Directory", "", ModuleEventListing)
	},
	PresetFreelancerMarketplace: func() *ProjectConfig {
		return presetFor("Freelancer Marketplace", RoleFreelancer, ModuleServiceListing)
	},
	PresetAdsBoard: func() *ProjectConfig {
		return presetFor("Ads Board", RoleAdvertiser, ModuleAds)
	},
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (*ProjectConfig, bool) {
	build, ok := presets[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// PresetNames lists the available presets in lexical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
