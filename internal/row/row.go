// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package row turns raw WordPress CSV rows into PostData. Every field has
// a default, so a missing column never fails; only a publish date outside
// YYYY-MM-DD does.
package row

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/wp-jekyll/internal/postdate"
	"github.com/pdiddy/wp-jekyll/internal/slug"
	"github.com/pdiddy/wp-jekyll/pkg/types"
)

// Defaults for columns absent from a row.
const (
	DefaultTitle    = "Untitled"
	DefaultBody     = "No content available."
	DefaultExcerpt  = "This is a default excerpt."
	DefaultImage    = "/assets/images/default.jpg"
	DefaultCategory = "Uncategorized"

	// timestampLayout renders the publish-date default for a row without a
	// Date column.
	timestampLayout = "2006-01-02 15:04:05"
)

// Normalizer converts RawRecords into PostData.
type Normalizer struct {
	// Rewrites apply to the "Image Path" column when present.
	Rewrites []types.ImageRewrite

	// Now supplies the publish-date default.
	Now func() time.Time
}

// New returns a Normalizer using rewrites and the wall clock. A nil
// rewrites slice selects types.DefaultImageRewrites; pass an empty,
// non-nil slice to disable rewriting.
func New(rewrites []types.ImageRewrite) *Normalizer {
	if rewrites == nil {
		rewrites = types.DefaultImageRewrites
	}
	return &Normalizer{Rewrites: rewrites, Now: time.Now}
}

// Normalize resolves every PostData field from raw, falling back to the
// package defaults for absent columns. It returns a
// *postdate.DateFormatError when the resolved publish date is not
// YYYY-MM-DD; the timestamp default always fails this check.
func (n *Normalizer) Normalize(raw types.RawRecord) (types.PostData, error) {
	title := valueOr(raw, types.ColumnTitle, DefaultTitle)
	post := types.PostData{
		Title:    title,
		PubDate:  valueOr(raw, types.ColumnDate, n.Now().Format(timestampLayout)),
		Body:     valueOr(raw, types.ColumnContent, DefaultBody),
		Excerpt:  valueOr(raw, types.ColumnExcerpt, DefaultExcerpt),
		Image:    DefaultImage,
		Slug:     valueOr(raw, types.ColumnSlug, slug.Normalize(title)),
		Category: valueOr(raw, types.ColumnCategories, DefaultCategory),
	}

	if image, ok := raw.Lookup(types.ColumnImagePath); ok {
		post.Image = n.rewriteImage(image)
	}

	published, err := postdate.Parse(post.PubDate, time.Local)
	if err != nil {
		return post, fmt.Errorf("normalizing %q: %w", title, err)
	}
	post.Date = postdate.Format(published)

	return post, nil
}

func (n *Normalizer) rewriteImage(path string) string {
	for _, rw := range n.Rewrites {
		if rw.From == "" {
			continue
		}
		path = strings.ReplaceAll(path, rw.From, rw.To)
	}
	return path
}

func valueOr(raw types.RawRecord, column, fallback string) string {
	if v, ok := raw.Lookup(column); ok {
		return v
	}
	return fallback
}
