// Package plaintext decodes plain text files.
package plaintext

import (
	"unicode/utf8"

	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles plain text documents.
type Decoder struct{}

// New creates a new plain text decoder.
func New() *Decoder {
	return &Decoder{}
}

// Extensions returns the file extensions this decoder handles.
func (d *Decoder) Extensions() []string {
	return []string{".txt", ".text", ".log"}
}

// Decode converts raw bytes to text. Valid UTF-8 passes through
// unchanged; anything else is read as Latin-1 so legacy exports
// still produce usable text instead of failing.
func (d *Decoder) Decode(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}

	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
