// Package sanitize cleans user-submitted text before it is stored or
// forwarded anywhere. The rules mirror what the contact form accepts:
// plain text only, no markup, no quoting characters.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Simplified RFC 5322 pattern; full validation belongs to the mail server.
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	tagRegex      = regexp.MustCompile(`<[^>]*>`)
	nonDigitRegex = regexp.MustCompile(`\D`)
	spaceRegex    = regexp.MustCompile(`\s+`)
)

// Text strips markup, control characters and quoting characters from free
// text, then collapses whitespace.
func Text(s string) string {
	if s == "" {
		return s
	}

	// Drop whole tags first, then any stray angle brackets.
	s = tagRegex.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '\'', '"', '`', ';':
			return -1
		}
		if unicode.IsControl(r) && r != '\n' {
			return -1
		}
		return r
	}, s)

	s = spaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Email lowercases and strips whitespace. Returns the empty string when the
// result is not a plausible address.
func Email(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	if len(s) > 254 || !emailRegex.MatchString(s) {
		return ""
	}
	return s
}

// Phone keeps digits only. Returns the empty string unless the result is a
// ten-digit mobile number (leading 3, the local convention).
func Phone(s string) string {
	digits := nonDigitRegex.ReplaceAllString(s, "")
	if len(digits) != 10 || !strings.HasPrefix(digits, "3") {
		return ""
	}
	return digits
}
