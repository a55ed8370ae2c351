// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug derives URL-safe post identifiers from titles.
//
// Normalize decomposes accented letters, drops everything outside ASCII,
// lowercases, maps spaces and path separators to hyphens and strips the
// rest. Runs of hyphens are kept as produced: "Part 1: Basics" becomes
// "part-1--basics".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// separators turns filesystem- and URL-hostile characters into hyphens or
// removes them before the final strip.
var separators = strings.NewReplacer(
	" ", "-",
	":", "-",
	"/", "-",
	`\`, "-",
	"?", "",
	"*", "",
	"<", "",
	">", "",
	"|", "",
	`"`, "",
	"'", "",
)

// Normalize returns the slug for title. The result contains only
// lowercase ASCII letters, digits and hyphens, and may be empty.
func Normalize(title string) string {
	ascii := strings.Map(keepASCII, norm.NFKD.String(title))
	s := separators.Replace(strings.ToLower(ascii))
	return strings.Map(keepSlugRune, s)
}

// IsValid reports whether s is already a normalized slug.
func IsValid(s string) bool {
	for _, r := range s {
		if keepSlugRune(r) < 0 || unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func keepASCII(r rune) rune {
	if r > unicode.MaxASCII {
		return -1
	}
	return r
}

func keepSlugRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		return r
	}
	return -1
}
