// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package migrate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wp-jekyll/pkg/types"
)

const sampleCSV = `Title,Date,Content,Excerpt,Image Path,Slug,Categories
Hello World,2025-02-18,Web development is fun,A guide,https://example.com/images/hello.jpg,,Tutorial
Café Menu,2025-02-19,Menu of the day,,,cafe-menu,Food
Broken Date,02/20/2025,Oops,,,,
`

// recordingLedger captures ledger entries in memory.
type recordingLedger struct {
	entries []types.LedgerEntry
	err     error
}

func (r *recordingLedger) Record(ctx context.Context, e types.LedgerEntry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func newTestMigrator(t *testing.T, rec Recorder) *Migrator {
	t.Helper()
	m := New(types.MigrationConfig{OutputDir: t.TempDir()}, rec)
	now := func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local) }
	m.Generator.Now = now
	m.Normalizer.Now = now
	return m
}

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Hello World", records[0]["Title"])
	assert.Equal(t, "https://example.com/images/hello.jpg", records[0]["Image Path"])

	// Empty cells are present keys.
	v, ok := records[0].Lookup("Slug")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestReadRecordsShortRowAndBOM(t *testing.T) {
	input := "\ufeffTitle,Date,Categories\nOnly Title,2025-01-01\n"
	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Only Title", records[0]["Title"])
	_, ok := records[0].Lookup("Categories")
	assert.False(t, ok, "missing trailing cell should leave the key absent")
}

func TestReadRecordsEmpty(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ReadRecords(strings.NewReader("Title,Date\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	m := newTestMigrator(t, nil)

	doc, post, err := m.Render(types.RawRecord{
		"Title":   "Getting Started",
		"Date":    "2025-02-18",
		"Content": "Web development is fun",
		"Excerpt": "A guide",
	})
	require.NoError(t, err)

	assert.Equal(t, "getting-started", post.Slug)
	out := doc.String()
	assert.True(t, strings.HasPrefix(out, "---\nlayout: post\n"))
	assert.Contains(t, out, "permalink: /getting-started/\n")
	assert.Contains(t, out, "comments: true\n---\n\n"+`<span class="dropcaps">W</span>eb development is fun`+"\n")
	assert.True(t, strings.HasSuffix(out, "fun\n"))
}

func TestRenderDefaultDateFails(t *testing.T) {
	m := newTestMigrator(t, nil)
	_, post, err := m.Render(types.RawRecord{"Title": "No Date"})
	require.Error(t, err)
	assert.Equal(t, "no-date", post.Slug)
}

func TestMigrate(t *testing.T) {
	rec := &recordingLedger{}
	m := newTestMigrator(t, rec)

	records, err := ReadRecords(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var log bytes.Buffer
	result, err := m.Migrate(context.Background(), records, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Migrated)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	output := log.String()
	assert.Contains(t, output, "migrated: 2025-02-18-.md")
	assert.Contains(t, output, "migrated: 2025-02-19-cafe-menu.md")
	assert.Contains(t, output, "failed:   row 3")
	assert.Contains(t, output, "Batch summary: 2 migrated, 1 failed (total: 3)")

	// The empty Slug cell is present, so it is used as is.
	data, err := os.ReadFile(filepath.Join(m.OutputDir, "2025-02-18-.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "image: /assets/images/hello.jpg\n")
	assert.Contains(t, string(data), `<span class="dropcaps">W</span>eb development is fun`)

	data, err = os.ReadFile(filepath.Join(m.OutputDir, "2025-02-19-cafe-menu.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `title: "Café Menu"`)
	assert.Contains(t, string(data), "image: \n")
	assert.Contains(t, string(data), `custom_excerpt: ""`)

	entries, err := os.ReadDir(m.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files or partial posts should remain")

	require.Len(t, rec.entries, 3)
	assert.Equal(t, types.MigrationDone, rec.entries[0].Status)
	assert.Equal(t, "2025-02-19-cafe-menu.md", rec.entries[1].Filename)
	assert.Equal(t, types.MigrationFailed, rec.entries[2].Status)
	assert.Equal(t, 3, rec.entries[2].Row)
	assert.Contains(t, rec.entries[2].Error, "02/20/2025")
}

func TestMigrateLedgerErrorIsWarning(t *testing.T) {
	m := newTestMigrator(t, &recordingLedger{err: errors.New("disk full")})

	var log bytes.Buffer
	result, err := m.Migrate(context.Background(), []types.RawRecord{
		{"Title": "One", "Date": "2025-02-18"},
	}, &log)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Migrated)
	assert.Contains(t, log.String(), "warning: ledger: disk full")
}

func TestMigrateWriteFailureIsolated(t *testing.T) {
	m := newTestMigrator(t, nil)
	good := m.OutputDir
	m.OutputDir = filepath.Join(good, "missing")

	var log bytes.Buffer
	result, err := m.Migrate(context.Background(), []types.RawRecord{
		{"Title": "One", "Date": "2025-02-18"},
		{"Title": "Two", "Date": "2025-02-18"},
	}, &log)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Failed)
	assert.Contains(t, log.String(), "failed:   row 1")
	assert.Contains(t, log.String(), "failed:   row 2")
}

func TestMigrateCancelled(t *testing.T) {
	m := newTestMigrator(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	result, err := m.Migrate(ctx, []types.RawRecord{{"Title": "One", "Date": "2025-02-18"}}, &log)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Total())
}

func TestPrepareOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "old"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.md"), []byte("x"), 0o644))

	require.NoError(t, PrepareOutput(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestMigrateRejectsPathInSlug(t *testing.T) {
	parent := t.TempDir()
	m := newTestMigrator(t, nil)
	m.OutputDir = filepath.Join(parent, "_posts")
	require.NoError(t, PrepareOutput(m.OutputDir))

	var log bytes.Buffer
	result, err := m.Migrate(context.Background(), []types.RawRecord{
		{"Date": "2025-02-18", "Slug": "x/../../escaped"},
		{"Date": "2025-02-18", "Slug": `win\..\escaped`},
		{"Date": "2025-02-18", "Slug": "fine"},
	}, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 1, result.Migrated)
	assert.Contains(t, log.String(), "failed:   row 1")
	assert.Contains(t, log.String(), "path separator")

	_, err = os.Stat(filepath.Join(parent, "escaped.md"))
	assert.True(t, os.IsNotExist(err), "no post may be written outside the output directory")

	entries, err := os.ReadDir(m.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-02-18-fine.md", entries[0].Name())
}

func TestRenderUnsafeSlugKeptVerbatim(t *testing.T) {
	m := newTestMigrator(t, nil)
	_, post, err := m.Render(types.RawRecord{"Date": "2025-02-18", "Slug": "a/b"})
	require.NoError(t, err)
	assert.Equal(t, "a/b", post.Slug)

	_, _, err = m.migrateOne(types.RawRecord{"Date": "2025-02-18", "Slug": "a/b"})
	var ufe *UnsafeFilenameError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "2025-02-18-a/b.md", ufe.Name)
}

func TestNewCommentsWindow(t *testing.T) {
	assert.Equal(t, 90, New(types.MigrationConfig{}, nil).Generator.CommentsWindowDays)

	zero := 0
	m := New(types.MigrationConfig{CommentsWindowDays: &zero}, nil)
	assert.Equal(t, 0, m.Generator.CommentsWindowDays)

	m.Generator.Now = func() time.Time { return time.Date(2025, 2, 19, 12, 0, 0, 0, time.Local) }
	doc, _, err := m.Render(types.RawRecord{"Date": "2025-02-18"})
	require.NoError(t, err)
	assert.Contains(t, doc.Header, "comments: false\n")
}
