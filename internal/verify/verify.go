// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks migrated posts on disk: the header must parse as
// YAML, the permalink must match the slug in the filename, the date must be
// YYYY-MM-DD and agree with the filename, and the rendered body must carry
// at most one dropcap.
package verify

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pdiddy/wp-jekyll/internal/document"
	"github.com/pdiddy/wp-jekyll/internal/frontmatter"
	"github.com/pdiddy/wp-jekyll/internal/postdate"
	"github.com/pdiddy/wp-jekyll/internal/slug"
)

// postFilePattern matches Jekyll post names: YYYY-MM-DD-slug.ext.
var postFilePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.*)(\.[^.]+)$`)

// Problem is one finding against a post file.
type Problem struct {
	File    string `json:"file" yaml:"file"`
	Message string `json:"message" yaml:"message"`
}

func (p Problem) String() string {
	return p.File + ": " + p.Message
}

// Report summarizes a verification run.
type Report struct {
	Checked  int
	Problems []Problem
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Verifier renders post bodies with goldmark. Raw HTML is kept so the
// dropcap span survives rendering.
type Verifier struct {
	md goldmark.Markdown
}

// New returns a Verifier.
func New() *Verifier {
	return &Verifier{
		md: goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe())),
	}
}

// Dir checks every file in dir whose name ends with ext, printing one line
// per problem and a summary to w.
func (v *Verifier) Dir(dir, ext string, w io.Writer) (Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Report{}, fmt.Errorf("reading posts directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var report Report
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			report.Problems = append(report.Problems, Problem{File: name, Message: err.Error()})
			report.Checked++
			continue
		}
		report.Problems = append(report.Problems, v.Post(name, data)...)
		report.Checked++
	}

	for _, p := range report.Problems {
		fmt.Fprintf(w, "problem: %s\n", p)
	}
	fmt.Fprintf(w, "\nVerified %d post(s), %d problem(s)\n", report.Checked, len(report.Problems))
	return report, nil
}

// Post checks a single post given its filename and contents.
func (v *Verifier) Post(name string, data []byte) []Problem {
	var problems []Problem
	add := func(format string, args ...any) {
		problems = append(problems, Problem{File: name, Message: fmt.Sprintf(format, args...)})
	}

	fm, body, err := frontmatter.Parse(data)
	if err != nil {
		add("%v", err)
		return problems
	}

	m := postFilePattern.FindStringSubmatch(name)
	if m == nil {
		add("filename does not match YYYY-MM-DD-slug.ext")
	} else {
		fileDate, fileSlug := m[1], m[2]
		if !slug.IsValid(fileSlug) {
			add("filename slug %q has characters outside [a-z0-9-]", fileSlug)
		}
		if want := frontmatter.Permalink(fileSlug); fm.Permalink != want {
			add("permalink %q does not match filename slug (want %q)", fm.Permalink, want)
		}
		if fm.Date != fileDate {
			add("date %q does not match filename date %q", fm.Date, fileDate)
		}
	}

	if _, err := postdate.Parse(fm.Date, nil); err != nil {
		add("%v", err)
	}

	var rendered bytes.Buffer
	if err := v.md.Convert(body, &rendered); err != nil {
		add("rendering body: %v", err)
		return problems
	}
	if n := document.CountDropcaps(rendered.String()); n > 1 {
		add("body has %d dropcaps, want at most 1", n)
	}

	return problems
}
