// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]*$`)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "basic", title: "Hello World", want: "hello-world"},
		{name: "numbers", title: "Python 3 Tutorial", want: "python-3-tutorial"},
		{name: "punctuation removed", title: "What? Really! (No way)", want: "what-really-no-way"},
		{name: "colon and slash become hyphens", title: "Part 1: Getting Started/Basics", want: "part-1--getting-started-basics"},
		{name: "backslash", title: `C:\Temp`, want: "c--temp"},
		{name: "accent", title: "Café Menu", want: "cafe-menu"},
		{name: "multiple accents", title: "Naïveté Résumé", want: "naivete-resume"},
		{name: "repeated spaces kept", title: "Multiple   Spaces", want: "multiple---spaces"},
		{name: "uppercase", title: "UPPERCASE TITLE", want: "uppercase-title"},
		{name: "mixed case and symbols", title: "The BEST: Tips & Tricks!", want: "the-best--tips--tricks"},
		{name: "quotes removed", title: `Don't say "never"`, want: "dont-say-never"},
		{name: "empty", title: "", want: ""},
		{name: "all punctuation", title: "?!*<>|", want: ""},
		{name: "non-latin script dropped", title: "日本語", want: ""},
		{name: "emoji dropped", title: "Launch 🚀 Day", want: "launch--day"},
		{name: "invalid utf-8 dropped", title: "bad\xffbyte", want: "badbyte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.title)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, slugPattern, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	titles := []string{
		"Hello World",
		"Part 1: Getting Started/Basics",
		"Naïveté Résumé",
		"  leading and trailing  ",
		"Already-a-slug",
		"---",
	}
	for _, title := range titles {
		once := Normalize(title)
		assert.Equal(t, once, Normalize(once), "title %q", title)
		assert.True(t, IsValid(once), "slug %q should be valid", once)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(""))
	assert.True(t, IsValid("part-1--basics"))
	assert.False(t, IsValid("Hello"))
	assert.False(t, IsValid("hello world"))
	assert.False(t, IsValid("café"))
}
