// Package validation holds the field rules for payment submissions. The
// handler short-circuits on the first failing field, so the rules are plain
// predicates rather than an error-collecting validator.
package validation

import (
	"html"
	"regexp"
	"strings"

	"vipmail/internal/models"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	localPartRegex = regexp.MustCompile(`^[a-z0-9._-]+$`)
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15

	minLocalPartLen = 3
	maxLocalPartLen = 64
)

// IsEmail reports whether the address passes syntax validation.
func IsEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizePhone strips everything except digits and a leading plus sign.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhone reports whether the normalized number has an acceptable length.
func IsPhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

// IsPaymentMethod reports whether the method is one the form offers.
func IsPaymentMethod(method string) bool {
	return method == models.PaymentMethodPayPal || method == models.PaymentMethodInstaPay
}

// IsLocalPart validates a desired mailbox address: 3-64 characters of
// lowercase letters, digits, dots, underscores and hyphens, no consecutive
// dots, and no dot or hyphen at either end.
func IsLocalPart(s string) bool {
	if len(s) < minLocalPartLen || len(s) > maxLocalPartLen {
		return false
	}
	if !localPartRegex.MatchString(s) {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	first, last := s[0], s[len(s)-1]
	if first == '.' || first == '-' || last == '.' || last == '-' {
		return false
	}
	return true
}

// Sanitize trims the value and escapes markup-significant characters so it is
// safe in log lines, captions and response echoes.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
