// Package validate holds the field checks shared by the domain services.
package validate

import (
	"html"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexColorRe   = regexp.MustCompile(`(?i)^#[0-9a-f]{6}$`)
	personNameRe = regexp.MustCompile(`^[a-zA-ZÀ-Úà-ú ]+$`)
	usernameRe   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	cardNameRe   = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
)

// NotBlank reports whether s has any non-whitespace content.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// HexColor reports whether s is a six-digit "#rrggbb" colour.
func HexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// OptionalHexColor accepts the empty string or a valid colour.
func OptionalHexColor(s string) bool {
	return s == "" || HexColor(s)
}

// Email reports whether s is a bare address such as "jane@example.com".
func Email(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".")
}

// PersonName accepts letters (including accented Latin) and spaces.
func PersonName(s string) bool {
	return personNameRe.MatchString(s)
}

// Username rejects a leading digit and anything outside [A-Za-z0-9_].
func Username(s string) bool {
	return usernameRe.MatchString(s)
}

// CardName accepts letters, digits and whitespace.
func CardName(s string) bool {
	return cardNameRe.MatchString(s)
}

// MinLength reports whether s has at least n bytes.
func MinLength(s string, n int) bool {
	return len(s) >= n
}

// SanitizeText escapes HTML special characters and encodes ASCII control
// characters as numeric entities, so "\n" becomes "&#10;".
func SanitizeText(s string) string {
	escaped := html.EscapeString(s)
	if strings.IndexFunc(escaped, isControl) < 0 {
		return escaped
	}
	var b strings.Builder
	b.Grow(len(escaped) + 8)
	for _, r := range escaped {
		if isControl(r) {
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool {
	return r < 0x20
}
