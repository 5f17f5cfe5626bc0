// Package csv decodes CSV files into row-oriented text.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"strings"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// delimiters tried in order when sniffing the separator.
var delimiters = []rune{',', ';', '\t', '|'}

// Decoder handles CSV documents.
type Decoder struct{}

// New creates a new CSV decoder.
func New() *Decoder {
	return &Decoder{}
}

// Extensions returns the file extensions this decoder handles.
func (d *Decoder) Extensions() []string {
	return []string{".csv", ".tsv"}
}

// Decode renders the CSV as labelled rows so column meaning survives
// chunking. The first record is treated as the header.
func (d *Decoder) Decode(content []byte) (string, error) {
	records := parse(content)
	if len(records) == 0 {
		return "", fmt.Errorf("%w: empty or unreadable CSV", domain.ErrNoTextExtracted)
	}

	header := records[0]
	var b strings.Builder
	b.WriteString("Columns: ")
	b.WriteString(strings.Join(header, " | "))
	b.WriteString("\n")

	for i, record := range records[1:] {
		fields := make([]string, 0, len(record))
		for j, value := range record {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			name := fmt.Sprintf("column %d", j+1)
			if j < len(header) {
				name = header[j]
			}
			fields = append(fields, name+": "+value)
		}
		if len(fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "Row %d: %s\n", i+1, strings.Join(fields, " | "))
	}

	return b.String(), nil
}

// parse reads the CSV trying each candidate delimiter, keeping the
// first parse that yields more than one column.
func parse(content []byte) [][]string {
	var fallback [][]string
	for _, delim := range delimiters {
		r := stdcsv.NewReader(bytes.NewReader(content))
		r.Comma = delim
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		records, err := r.ReadAll()
		if err != nil || len(records) == 0 {
			continue
		}
		if len(records[0]) > 1 {
			return records
		}
		if fallback == nil {
			fallback = records
		}
	}
	// Single-column files are still valid CSV.
	return fallback
}
