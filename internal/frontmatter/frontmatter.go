// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter writes and reads the Jekyll YAML header of a
// migrated post.
package frontmatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/wp-jekyll/internal/postdate"
	"github.com/pdiddy/wp-jekyll/pkg/types"
)

const (
	// Delimiter opens and closes the header block.
	Delimiter = "---"

	defaultLayout         = "post"
	defaultCommentsWindow = 90
)

// Generator builds frontmatter blocks. The zero value is not usable; call New.
type Generator struct {
	// Layout is the Jekyll layout name.
	Layout string

	// CommentsWindowDays closes comments on posts older than this many whole days.
	CommentsWindowDays int

	// Now returns the reference time for the comments window.
	Now func() time.Time
}

// New returns a Generator with the "post" layout, a 90-day comments window
// and the wall clock.
func New() *Generator {
	return &Generator{
		Layout:             defaultLayout,
		CommentsWindowDays: defaultCommentsWindow,
		Now:                time.Now,
	}
}

// Build renders the header for post. Title and excerpt are quoted verbatim;
// embedded quotes are not escaped. It returns a *postdate.DateFormatError
// when post.PubDate is not YYYY-MM-DD.
func (g *Generator) Build(post types.PostData) (string, error) {
	now := g.Now()
	published, err := postdate.Parse(post.PubDate, now.Location())
	if err != nil {
		return "", fmt.Errorf("building frontmatter for %q: %w", post.Slug, err)
	}

	comments := "true"
	if postdate.DaysBetween(published, now) > g.CommentsWindowDays {
		comments = "false"
	}

	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	fmt.Fprintf(&b, "layout: %s\n", g.Layout)
	fmt.Fprintf(&b, "title: \"%s\"\n", post.Title)
	fmt.Fprintf(&b, "date: %s\n", post.PubDate)
	fmt.Fprintf(&b, "categories: %s\n", post.Category)
	fmt.Fprintf(&b, "image: %s\n", post.Image)
	fmt.Fprintf(&b, "permalink: %s\n", Permalink(post.Slug))
	fmt.Fprintf(&b, "custom_excerpt: \"%s\"\n", post.Excerpt)
	fmt.Fprintf(&b, "comments: %s\n", comments)
	b.WriteString(Delimiter + "\n")
	return b.String(), nil
}

// Permalink returns the site path for slug: /<slug>/.
func Permalink(slug string) string {
	return "/" + slug + "/"
}
