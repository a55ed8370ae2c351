// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// Recognized column names in a WordPress CSV export.
const (
	ColumnTitle      = "Title"
	ColumnDate       = "Date"
	ColumnContent    = "Content"
	ColumnExcerpt    = "Excerpt"
	ColumnImagePath  = "Image Path"
	ColumnSlug       = "Slug"
	ColumnCategories = "Categories"
)

// RawRecord is one row of a WordPress CSV export keyed by column name.
// A column missing from the row is absent from the map.
type RawRecord map[string]string

// Lookup returns the value stored under column and whether the column is present.
func (r RawRecord) Lookup(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// PostData is the canonical form of one post, ready for frontmatter
// generation and document assembly.
type PostData struct {
	// Title is the post title as exported.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publish date as it appears in the export. It must be
	// in YYYY-MM-DD form for the post to migrate.
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// Date is the display date (YYYY-MM-DD) used in the output filename.
	Date string `json:"date" yaml:"date"`

	// Body is the post content.
	Body string `json:"body" yaml:"body"`

	// Excerpt is the custom excerpt shown in post listings.
	Excerpt string `json:"excerpt" yaml:"excerpt"`

	// Image is the site-relative path of the featured image.
	Image string `json:"image" yaml:"image"`

	// Slug is the URL-safe identifier used for the permalink and filename.
	Slug string `json:"slug" yaml:"slug"`

	// Category is the post category.
	Category string `json:"category" yaml:"category"`
}

// Document is a rendered post: a frontmatter header and a body.
type Document struct {
	Header string
	Body   string
}

// String joins header and body with exactly one blank line between them
// and a single trailing newline. Only newlines at the seams are adjusted;
// header and body text are otherwise emitted verbatim.
func (d Document) String() string {
	return strings.TrimRight(d.Header, "\n") + "\n\n" + strings.TrimRight(d.Body, "\n") + "\n"
}

// Filename returns the Jekyll post filename <date>-<slug><ext> for post.
func Filename(post PostData, ext string) string {
	return post.Date + "-" + post.Slug + ext
}

// Frontmatter holds the fields read back from a migrated post header.
type Frontmatter struct {
	Layout        string `json:"layout" yaml:"layout"`
	Title         string `json:"title" yaml:"title"`
	Date          string `json:"date" yaml:"date"`
	Categories    string `json:"categories" yaml:"categories"`
	Image         string `json:"image" yaml:"image"`
	Permalink     string `json:"permalink" yaml:"permalink"`
	CustomExcerpt string `json:"custom_excerpt" yaml:"custom_excerpt"`
	Comments      bool   `json:"comments" yaml:"comments"`
}

// MigrationStatus records the outcome of migrating one row.
type MigrationStatus string

const (
	MigrationDone   MigrationStatus = "migrated"
	MigrationFailed MigrationStatus = "failed"
)

// LedgerEntry is one row of the migration ledger.
type LedgerEntry struct {
	// Row is the 1-based data row number in the source CSV.
	Row int `json:"row" yaml:"row"`

	// Filename is the emitted post filename; empty for failed rows.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	Slug     string `json:"slug,omitempty" yaml:"slug,omitempty"`
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	Status MigrationStatus `json:"status" yaml:"status"`

	// Error holds the failure message for failed rows.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	MigratedAt time.Time `json:"migrated_at" yaml:"migrated_at"`
}
