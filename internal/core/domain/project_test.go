package domain_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/langkawi/directory-access/internal/core/domain"
)

var _ = Describe("ProjectConfig", func() {
	var cfg *domain.ProjectConfig

	BeforeEach(func() {
		cfg = domain.DefaultProjectConfig()
	})

	Describe("default configuration", func() {
		It("enables every role", func() {
			Expect(cfg.ProjectName()).To(Equal("Langkawi Directory"))
			Expect(cfg.EnabledRoles()).To(Equal(domain.AllRoles()))
		})

		It("passes validation", func() {
			res := domain.ValidateConfiguration(cfg)
			Expect(res.Valid).To(BeTrue())
			Expect(res.Violations).To(BeEmpty())
		})

		It("gates modules per role", func() {
			Expect(cfg.IsModuleEnabled(domain.RoleBusinessOwner, domain.ModuleBusinessListing)).To(BeTrue())
			Expect(cfg.IsModuleEnabled(domain.RolePublicUser, domain.ModuleBusinessListing)).To(BeFalse())
			Expect(cfg.IsModuleEnabled(domain.Role("unknownRole"), domain.Module("anything"))).To(BeFalse())
		})

		It("reports role membership", func() {
			Expect(cfg.IsRoleEnabled(domain.RoleAdmin)).To(BeTrue())
			Expect(cfg.IsRoleEnabled(domain.Role("invalidRole"))).To(BeFalse())
		})
	})

	Describe("snapshots", func() {
		It("does not leak the module list", func() {
			mods := cfg.ModulesForRole(domain.RoleAdmin)
			Expect(mods).NotTo(BeEmpty())
			mods[0] = "tampered"
			Expect(cfg.ModulesForRole(domain.RoleAdmin)[0]).To(Equal(domain.ModuleBusinessListing))
		})

		It("does not leak the role list", func() {
			roles := cfg.EnabledRoles()
			roles[0] = "tampered"
			Expect(cfg.IsRoleEnabled(domain.RoleAdmin)).To(BeTrue())
		})

		It("returns an empty list for roles without an entry", func() {
			mods := cfg.ModulesForRole(domain.Role("ghost"))
			Expect(mods).NotTo(BeNil())
			Expect(mods).To(BeEmpty())
		})

		It("copies constructor inputs", func() {
			mods := map[domain.Role][]domain.Module{domain.RoleAdmin: {domain.ModuleLogs}}
			built := domain.NewProjectConfig("p", []domain.Role{domain.RoleAdmin}, mods)
			mods[domain.RoleAdmin][0] = domain.ModuleAds
			Expect(built.IsModuleEnabled(domain.RoleAdmin, domain.ModuleLogs)).To(BeTrue())
		})

		It("round-trips through its serialisable form", func() {
			rebuilt := cfg.Spec().Build()
			Expect(rebuilt.Spec()).To(Equal(cfg.Spec()))
		})
	})

	Describe("ValidateConfiguration", func() {
		It("collects every violation of an empty configuration", func() {
			empty := domain.ProjectConfigSpec{
				EnabledRoles:   []domain.Role{},
				EnabledModules: map[domain.Role][]domain.Module{},
			}.Build()
			res := domain.ValidateConfiguration(empty)
			Expect(res.Valid).To(BeFalse())
			Expect(len(res.Violations)).To(BeNumerically(">=", 2))
			Expect(res.Violations).To(ContainElements(
				"Project name is required",
				"At least one role must be enabled",
			))
		})

		It("requires the module map", func() {
			res := domain.ValidateConfiguration(domain.NewProjectConfig("p", []domain.Role{domain.RoleAdmin}, nil))
			Expect(res.Violations).To(Equal([]string{
				"Enabled modules configuration is required",
				"Role 'admin' is missing module configuration",
			}))
		})

		It("accepts an empty module list for an enabled role", func() {
			c := domain.NewProjectConfig("p", []domain.Role{domain.RoleAdmin}, map[domain.Role][]domain.Module{
				domain.RoleAdmin: {},
			})
			Expect(domain.ValidateConfiguration(c).Valid).To(BeTrue())
			Expect(c.HasModuleEntry(domain.RoleAdmin)).To(BeTrue())
		})

		It("reports a null module list as missing", func() {
			var spec domain.ProjectConfigSpec
			doc := `{"projectName":"P","enabledRoles":["admin"],"enabledModules":{"admin":null}}`
			Expect(json.Unmarshal([]byte(doc), &spec)).To(Succeed())

			c := spec.Build()
			res := domain.ValidateConfiguration(c)
			Expect(res.Valid).To(BeFalse())
			Expect(res.Violations).To(Equal([]string{"Role 'admin' is missing module configuration"}))
			Expect(c.HasModuleEntry(domain.RoleAdmin)).To(BeFalse())
			Expect(c.ModulesForRole(domain.RoleAdmin)).To(BeEmpty())
			Expect(c.ModulesForRole(domain.RoleAdmin)).NotTo(BeNil())
		})

		It("keeps an empty list distinct from null through JSON", func() {
			var spec domain.ProjectConfigSpec
			doc := `{"projectName":"P","enabledRoles":["admin"],"enabledModules":{"admin":[]}}`
			Expect(json.Unmarshal([]byte(doc), &spec)).To(Succeed())
			Expect(domain.ValidateConfiguration(spec.Build()).Valid).To(BeTrue())
		})

		It("accepts module entries for roles that are not enabled", func() {
			c := domain.NewProjectConfig("p", []domain.Role{domain.RoleAdmin}, map[domain.Role][]domain.Module{
				domain.RoleAdmin:      {domain.ModuleLogs},
				domain.RoleAdvertiser: {domain.ModuleAds},
			})
			Expect(domain.ValidateConfiguration(c).Valid).To(BeTrue())
			Expect(c.IsRoleEnabled(domain.RoleAdvertiser)).To(BeFalse())
			Expect(c.IsModuleEnabled(domain.RoleAdvertiser, domain.ModuleAds)).To(BeTrue())
		})

		It("treats nil as entirely invalid", func() {
			Expect(domain.ValidateConfiguration(nil).Violations).To(HaveLen(3))
		})
	})

	Describe("ModuleAccessAllowed", func() {
		It("denies when no configuration is given", func() {
			Expect(domain.ModuleAccessAllowed(domain.RoleAdmin, domain.ModuleLogs, nil)).To(BeFalse())
		})

		It("follows the module matrix", func() {
			Expect(domain.ModuleAccessAllowed(domain.RoleAdmin, domain.ModuleLogs, cfg)).To(BeTrue())
			Expect(domain.ModuleAccessAllowed(domain.RoleFreelancer, domain.ModuleLogs, cfg)).To(BeFalse())
		})
	})
})

var _ = Describe("Presets", func() {
	It("exposes the four named presets", func() {
		Expect(domain.PresetNames()).To(Equal([]string{
			domain.PresetAdsBoard,
			domain.PresetBusinessDirectory,
			domain.PresetEventDirectory,
			domain.PresetFreelancerMarketplace,
		}))
	})

	DescribeTable("every preset is valid",
		func(name string) {
			p, ok := domain.Preset(name)
			Expect(ok).To(BeTrue())
			Expect(domain.ValidateConfiguration(p).Valid).To(BeTrue())
		},
		Entry("business directory", domain.PresetBusinessDirectory),
		Entry("event directory", domain.PresetEventDirectory),
		Entry("freelancer marketplace", domain.PresetFreelancerMarketplace),
		Entry("ads board", domain.PresetAdsBoard),
	)

	It("shapes the event directory", func() {
		p, _ := domain.Preset(domain.PresetEventDirectory)
		Expect(p.ProjectName()).To(Equal("Event Directory"))
		Expect(p.EnabledRoles()).To(ConsistOf(domain.RoleAdmin, domain.RolePublicUser))
		Expect(p.ModulesForRole(domain.RoleAdmin)).To(ContainElement(domain.ModuleEventListing))
		Expect(p.ModulesForRole(domain.RoleAdmin)).NotTo(ContainElement(domain.ModuleBusinessListing))
	})

	It("shapes the business directory", func() {
		p, _ := domain.Preset(domain.PresetBusinessDirectory)
		Expect(p.EnabledRoles()).To(Equal([]domain.Role{domain.RoleAdmin, domain.RoleBusinessOwner, domain.RolePublicUser}))
		Expect(p.ModulesForRole(domain.RoleBusinessOwner)).To(Equal([]domain.Module{
			domain.ModuleBusinessListing, domain.ModuleInquiry, domain.ModulePromotion, domain.ModuleSubscription,
		}))
	})

	It("returns independent copies", func() {
		a, _ := domain.Preset(domain.PresetAdsBoard)
		b, _ := domain.Preset(domain.PresetAdsBoard)
		Expect(a).NotTo(BeIdenticalTo(b))
	})

	It("rejects unknown names", func() {
		_, ok := domain.Preset("nope")
		Expect(ok).To(BeFalse())
	})
})
