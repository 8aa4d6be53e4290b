package model

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	spaceRun      = regexp.MustCompile(` {2,}`)
)

// NormalizeText lowercases a string and collapses all whitespace runs to a
// single space. Keyword and label comparisons go through this so that
// hand-edited sheet cells and free-text messages compare stably.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(strings.ToLower(s), " "))
}

// CollapseSpaces reduces runs of two or more spaces to one. Sender names in
// the exports frequently carry doubled spaces.
func CollapseSpaces(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

// PhoneSuffix extracts the last four digits of any phone-like string.
// Strings with fewer than four digits yield the empty string.
func PhoneSuffix(s string) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return string(digits[len(digits)-4:])
}

// RearrangeName moves the last name first: "Jens Peter Hansen" becomes
// "Hansen, Jens Peter". Single-word names pass through unchanged. The ledger
// roster lists people by last name.
func RearrangeName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return fullName
	}
	last := parts[len(parts)-1]
	return last + ", " + strings.Join(parts[:len(parts)-1], " ")
}
