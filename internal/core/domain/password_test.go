package domain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/langkawi/directory-access/internal/core/domain"
)

var _ = Describe("ValidatePasswordStrength", func() {
	It("reports every failed rule of a weak password in order", func() {
		res := domain.ValidatePasswordStrength("weak")
		Expect(res.Valid).To(BeFalse())
		Expect(res.Violations).To(Equal([]domain.PasswordRule{
			domain.RuleLength, domain.RuleUppercase, domain.RuleDigit, domain.RuleSymbol,
		}))
	})

	It("accepts a strong password", func() {
		res := domain.ValidatePasswordStrength("MySecurePassword123!")
		Expect(res.Valid).To(BeTrue())
		Expect(res.Violations).To(BeEmpty())
	})

	It("flags the empty string on every rule", func() {
		Expect(domain.ValidatePasswordStrength("").Violations).To(HaveLen(5))
	})

	It("only counts symbols from the fixed set", func() {
		res := domain.ValidatePasswordStrength("Abcdefg1?")
		Expect(res.Violations).To(Equal([]domain.PasswordRule{domain.RuleSymbol}))
	})

	It("renders messages", func() {
		msgs := domain.ValidatePasswordStrength("ABCDEFGH1!").Messages()
		Expect(msgs).To(Equal([]string{"Password must contain at least one lowercase letter"}))
	})
})

var _ = Describe("Roles", func() {
	It("validates the fixed vocabulary", func() {
		for _, r := range domain.AllRoles() {
			Expect(r.Valid()).To(BeTrue())
		}
		Expect(domain.Role("guest").Valid()).To(BeFalse())
	})

	It("matches membership", func() {
		Expect(domain.RoleMatches(domain.RoleAdmin, domain.RoleAdmin, domain.RoleFreelancer)).To(BeTrue())
		Expect(domain.RoleMatches(domain.RolePublicUser, domain.RoleAdmin)).To(BeFalse())
		Expect(domain.RoleMatches(domain.RoleAdmin)).To(BeFalse())
	})
})
