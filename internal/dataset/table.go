package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/plausibility-eval/scorer/internal/models"
)

// Table is a parsed tab-separated file. The first line is the header.
type Table struct {
	// Source is the base name of the file the table was read from.
	Source  string
	Columns []string
	Rows    [][]string
}

// LoadTable reads a tab-separated file with a header row. Files ending in
// .gz are decompressed on the fly.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tsv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &models.FormatError{Source: filepath.Base(path), Message: fmt.Sprintf("not a gzip file: %v", err)}
		}
		defer gz.Close() //nolint:errcheck
		r = gz
	}

	return ReadTable(filepath.Base(path), r)
}

// ReadTable parses tab-separated content from r. source is only used in
// error messages.
func ReadTable(source string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &models.FormatError{Source: source, Line: parseErr.Line, Message: parseErr.Err.Error()}
		}
		return nil, fmt.Errorf("tsv: read %s: %w", source, err)
	}

	if len(records) == 0 {
		return nil, &models.FormatError{Source: source, Message: "file is empty (no header row)"}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		// tolerate a UTF-8 BOM written by spreadsheet exports
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	return &Table{
		Source:  source,
		Columns: header,
		Rows:    records[1:],
	}, nil
}

// ColumnIndex returns the position of name in the header, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// Records projects the table onto the id and value columns.
func (t *Table) Records(idColumn, valueColumn string) ([]models.SubmissionRecord, error) {
	idIdx := t.ColumnIndex(idColumn)
	valIdx := t.ColumnIndex(valueColumn)
	var missing []string
	if idIdx < 0 {
		missing = append(missing, idColumn)
	}
	if valIdx < 0 {
		missing = append(missing, valueColumn)
	}
	if len(missing) > 0 {
		return nil, &models.FormatError{
			Source:  t.Source,
			Message: fmt.Sprintf("missing required column(s) %v, found %v", missing, t.Columns),
		}
	}

	records := make([]models.SubmissionRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		records = append(records, models.SubmissionRecord{
			ID:    strings.TrimSpace(row[idIdx]),
			Value: strings.TrimSpace(row[valIdx]),
			// header is line 1
			Line: i + 2,
		})
	}
	return records, nil
}
