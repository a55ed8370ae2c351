// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package migrate drives a WordPress-to-Jekyll run: it normalizes each
// exported row, renders the post and writes it to the output directory.
// Rows are processed one at a time and a failing row never affects the
// files written for other rows.
package migrate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/wp-jekyll/internal/document"
	"github.com/pdiddy/wp-jekyll/internal/frontmatter"
	"github.com/pdiddy/wp-jekyll/internal/row"
	"github.com/pdiddy/wp-jekyll/pkg/types"
)

// DefaultExtension is the post file extension used when none is configured.
const DefaultExtension = ".md"

// Recorder stores the outcome of each migrated row. *ledger.Ledger
// implements it.
type Recorder interface {
	Record(ctx context.Context, e types.LedgerEntry) error
}

// UnsafeFilenameError reports a post filename that would resolve outside
// the output directory, typically from a Slug cell containing a path.
type UnsafeFilenameError struct {
	Name string
}

func (e *UnsafeFilenameError) Error() string {
	return fmt.Sprintf("filename %q contains a path separator", e.Name)
}

// BatchResult holds the outcome of a migrate run.
type BatchResult struct {
	Migrated int
	Failed   int
}

// Total returns the number of rows processed.
func (r BatchResult) Total() int {
	return r.Migrated + r.Failed
}

// HasFailures reports whether any row failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Migrator renders rows into Jekyll posts under OutputDir.
type Migrator struct {
	Normalizer *row.Normalizer
	Generator  *frontmatter.Generator
	OutputDir  string
	Extension  string

	// Recorder is optional; when nil no ledger is kept.
	Recorder Recorder
}

// New builds a Migrator from cfg, filling defaults for the extension,
// layout, comments window and image rewrites.
func New(cfg types.MigrationConfig, rec Recorder) *Migrator {
	gen := frontmatter.New()
	if cfg.Layout != "" {
		gen.Layout = cfg.Layout
	}
	if cfg.CommentsWindowDays != nil {
		gen.CommentsWindowDays = *cfg.CommentsWindowDays
	}
	ext := cfg.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	return &Migrator{
		Normalizer: row.New(cfg.ImageRewrites),
		Generator:  gen,
		OutputDir:  cfg.OutputDir,
		Extension:  ext,
		Recorder:   rec,
	}
}

// Render runs one row through the pipeline: normalize, dropcap the body,
// build the frontmatter and assemble the document. The returned PostData
// is filled as far as normalization got, even on error.
func (m *Migrator) Render(raw types.RawRecord) (types.Document, types.PostData, error) {
	post, err := m.Normalizer.Normalize(raw)
	if err != nil {
		return types.Document{}, post, err
	}
	header, err := m.Generator.Build(post)
	if err != nil {
		return types.Document{}, post, err
	}
	return types.Document{Header: header, Body: document.ApplyDropcap(post.Body)}, post, nil
}

// Migrate renders and writes every record in order, printing a status line
// per row and a summary to w. It stops early only when ctx is cancelled.
func (m *Migrator) Migrate(ctx context.Context, records []types.RawRecord, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for i, raw := range records {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rowNum := i + 1
		filename, post, err := m.migrateOne(raw)
		entry := types.LedgerEntry{
			Row:        rowNum,
			Slug:       post.Slug,
			Title:      post.Title,
			Date:       post.Date,
			Category:   post.Category,
			MigratedAt: time.Now(),
		}
		if err != nil {
			fmt.Fprintf(w, "failed:   row %d (%v)\n", rowNum, err)
			result.Failed++
			entry.Status = types.MigrationFailed
			entry.Error = err.Error()
		} else {
			fmt.Fprintf(w, "migrated: %s\n", filename)
			result.Migrated++
			entry.Status = types.MigrationDone
			entry.Filename = filename
		}

		if m.Recorder != nil {
			if err := m.Recorder.Record(ctx, entry); err != nil {
				fmt.Fprintf(w, "warning: ledger: %v\n", err)
			}
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d migrated, %d failed (total: %d)\n",
		result.Migrated, result.Failed, result.Total())
	return result, nil
}

func (m *Migrator) migrateOne(raw types.RawRecord) (string, types.PostData, error) {
	doc, post, err := m.Render(raw)
	if err != nil {
		return "", post, err
	}
	filename := types.Filename(post, m.Extension)
	if filepath.Base(filename) != filename || strings.ContainsAny(filename, `/\`) {
		return "", post, fmt.Errorf("writing post: %w", &UnsafeFilenameError{Name: filename})
	}
	if err := WriteFile(filepath.Join(m.OutputDir, filename), []byte(doc.String())); err != nil {
		return "", post, err
	}
	return filename, post, nil
}

// PrepareOutput removes dir and everything in it, then recreates it empty.
func PrepareOutput(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing output directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// WriteFile writes data to path through a temporary file in the same
// directory and a rename, so a failed write never leaves a partial post.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wp-jekyll-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
