// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package migrate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/wp-jekyll/pkg/types"
)

const utf8BOM = "\ufeff"

// ReadRecords reads a CSV export with a header row. Each data row becomes
// a RawRecord keyed by header name; a row shorter than the header leaves
// the trailing columns absent.
func ReadRecords(r io.Reader) ([]types.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var records []types.RawRecord
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(records)+1, err)
		}
		rec := make(types.RawRecord, len(header))
		for i, name := range header {
			if i < len(fields) {
				rec[name] = fields[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile reads the CSV export at path.
func ReadFile(path string) ([]types.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}
