package normalisers

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// Registry maps file extensions to decoders.
type Registry struct {
	byExt map[string]driven.Decoder
}

// NewRegistry creates a registry from the given decoders. Later
// decoders win when two claim the same extension.
func NewRegistry(decoders ...driven.Decoder) *Registry {
	r := &Registry{byExt: make(map[string]driven.Decoder)}
	for _, d := range decoders {
		for _, ext := range d.Extensions() {
			r.byExt[strings.ToLower(ext)] = d
		}
	}
	return r
}

// For returns the decoder for a filename's extension.
// Unknown extensions yield domain.ErrUnsupportedFormat.
func (r *Registry) For(filename string) (driven.Decoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	d, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	return d, nil
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
