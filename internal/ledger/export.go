// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the ledger to <dir>/ledger.yaml and returns the path.
func (l *Ledger) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	entries, err := l.List(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(l.dir, "ledger.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the ledger to <dir>/ledger.json and returns the path.
func (l *Ledger) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	entries, err := l.List(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(l.dir, "ledger.json")
	return path, os.WriteFile(path, data, 0o644)
}
