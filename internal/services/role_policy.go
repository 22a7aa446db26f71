package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"kiosk/internal/models"
)

// RolePolicy decides who may register and which role a new account gets.
// It runs once, at registration; the result is stored on the user.
type RolePolicy struct {
	domain string
	email  *regexp.Regexp
	admins map[string]struct{}
}

func NewRolePolicy(domain string, adminEmails []string) *RolePolicy {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}
	return &RolePolicy{
		domain: domain,
		email:  regexp.MustCompile(`(?i)^[^@\s]+@` + regexp.QuoteMeta(domain) + `$`),
		admins: admins,
	}
}

// ValidateEmail accepts only addresses of the kiosk domain.
func (p *RolePolicy) ValidateEmail(email string) error {
	if !p.email.MatchString(email) {
		return validationError("email must be an address at %s", p.domain)
	}
	return nil
}

// AssignRole returns the role id stored for a newly registered email.
func (p *RolePolicy) AssignRole(email string) int {
	if _, ok := p.admins[normalizeEmail(email)]; ok {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 8

// IsStrongPassword reports whether pw has at least MinPasswordLength
// characters including an upper-case letter, a lower-case letter, a digit
// and a symbol.
func IsStrongPassword(pw string) bool {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func validatePassword(pw string) error {
	if !IsStrongPassword(pw) {
		return validationError("password must be at least %d characters and contain upper and lower case letters, a digit and a symbol", MinPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
