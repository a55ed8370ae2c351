// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document styles post bodies and joins them with their frontmatter.
package document

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/wp-jekyll/pkg/types"
)

const (
	dropcapOpen  = `<span class="dropcaps">`
	dropcapClose = `</span>`
)

// ApplyDropcap wraps the first non-whitespace character of body in the
// dropcaps span. Leading whitespace and the rest of body are kept as is.
// A blank body is returned unchanged.
func ApplyDropcap(body string) string {
	i := strings.IndexFunc(body, func(r rune) bool { return !unicode.IsSpace(r) })
	if i < 0 {
		return body
	}
	_, size := utf8.DecodeRuneInString(body[i:])
	var b strings.Builder
	b.Grow(len(body) + len(dropcapOpen) + len(dropcapClose))
	b.WriteString(body[:i])
	b.WriteString(dropcapOpen)
	b.WriteString(body[i : i+size])
	b.WriteString(dropcapClose)
	b.WriteString(body[i+size:])
	return b.String()
}

// CountDropcaps returns how many dropcaps spans s contains.
func CountDropcaps(s string) int {
	return strings.Count(s, dropcapOpen)
}

// Assemble joins header and body with one blank line between them and a
// single trailing newline, whatever newlines the inputs already end with.
func Assemble(header, body string) string {
	return types.Document{Header: header, Body: body}.String()
}
