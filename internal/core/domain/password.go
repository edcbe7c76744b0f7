package domain

import (
	"strings"
	"unicode/utf8"
)

// PasswordRule names one requirement of the password strength policy.
type PasswordRule string

const (
	RuleLength    PasswordRule = "length"
	RuleUppercase PasswordRule = "uppercase"
	RuleLowercase PasswordRule = "lowercase"
	RuleDigit     PasswordRule = "digit"
	RuleSymbol    PasswordRule = "symbol"
)

const (
	MinPasswordLength = 8
	PasswordSymbols   = "!@#$%^&*"

	// MaxPasswordBytes is the longest input bcrypt will hash.
	MaxPasswordBytes = 72
)

// MsgPasswordTooLong is the violation reported for passwords bcrypt cannot hash.
const MsgPasswordTooLong = "Password must be at most 72 bytes long"

var ruleMessages = map[PasswordRule]string{
	RuleLength:    "Password must be at least 8 characters long",
	RuleUppercase: "Password must contain at least one uppercase letter",
	RuleLowercase: "Password must contain at least one lowercase letter",
	RuleDigit:     "Password must contain at least one number",
	RuleSymbol:    "Password must contain at least one special character (!@#$%^&*)",
}

// Message returns the human-readable form of the rule.
func (r PasswordRule) Message() string { return ruleMessages[r] }

// PasswordStrength is the verdict of ValidatePasswordStrength.
type PasswordStrength struct {
	Valid      bool           `json:"valid"`
	Violations []PasswordRule `json:"violations"`
}

// Messages renders the violations in rule order.
func (s PasswordStrength) Messages() []string {
	out := make([]string, 0, len(s.Violations))
	for _, v := range s.Violations {
		out = append(out, v.Message())
	}
	return out
}

// ValidatePasswordStrength evaluates every rule and collects all violations.
// Length is counted in runes; letter classes are ASCII only.
func ValidatePasswordStrength(password string) PasswordStrength {
	var upper, lower, digit, symbol bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			upper = true
		case ch >= 'a' && ch <= 'z':
			lower = true
		case ch >= '0' && ch <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, ch):
			symbol = true
		}
	}

	violations := []PasswordRule{}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		violations = append(violations, RuleLength)
	}
	if !upper {
		violations = append(violations, RuleUppercase)
	}
	if !lower {
		violations = append(violations, RuleLowercase)
	}
	if !digit {
		violations = append(violations, RuleDigit)
	}
	if !symbol {
		violations = append(violations, RuleSymbol)
	}

	return PasswordStrength{Valid: len(violations) == 0, Violations: violations}
}
