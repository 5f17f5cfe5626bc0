// Package chunker splits normalised text into overlapping, size-bounded
// segments along natural boundaries: paragraph breaks first, then line
// breaks, sentence ends, spaces, and finally single characters.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 600

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 100

// separators in priority order. A piece still longer than the chunk
// size is re-split with the next separator; the empty string is the
// character-level fallback.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter produces boundary-aware chunks of bounded size.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter creates a splitter. size and overlap are in characters;
// overlap must be strictly smaller than size.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, domain.ErrInvalidChunking
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split divides text into chunks of at most the configured size, with
// adjacent chunks sharing the configured overlap. Each chunk is trimmed
// of surrounding whitespace; chunks empty after trimming are dropped.
// Blank input produces no chunks.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return s.split(text, separators)
}

// split recursively divides text, preferring the highest-priority
// separator present and subdividing oversized pieces with the rest.
func (s *Splitter) split(text string, seps []string) []string {
	separator := seps[len(seps)-1]
	var rest []string
	for i, sep := range seps {
		if sep == "" {
			separator = sep
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			rest = seps[i+1:]
			break
		}
	}

	pieces := splitKeepingSeparator(text, separator)

	var chunks []string
	var pending []string
	for _, piece := range pieces {
		if utf8.RuneCountInString(piece) < s.size {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			chunks = append(chunks, s.pack(pending)...)
			pending = nil
		}
		if len(rest) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.split(piece, rest)...)
		}
	}
	if len(pending) > 0 {
		chunks = append(chunks, s.pack(pending)...)
	}
	return chunks
}

// pack greedily merges adjacent pieces up to the chunk size. When a
// chunk is emitted, pieces are dropped from the front until the running
// total fits within the overlap, so the next chunk begins with the
// previous chunk's tail.
func (s *Splitter) pack(pieces []string) []string {
	var chunks []string
	var current []string
	total := 0

	for _, piece := range pieces {
		length := utf8.RuneCountInString(piece)
		if total+length > s.size && len(current) > 0 {
			if chunk := joinTrim(current); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > s.overlap || (total+length > s.size && total > 0) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += length
	}

	if chunk := joinTrim(current); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitKeepingSeparator splits text and keeps each separator attached
// to the piece that follows it, so no characters are lost. An empty
// separator splits into single characters.
func splitKeepingSeparator(text, sep string) []string {
	if sep == "" {
		out := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			out = append(out, string(r))
		}
		return out
	}

	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	if parts[0] != "" {
		out = append(out, parts[0])
	}
	for _, p := range parts[1:] {
		out = append(out, sep+p)
	}
	return out
}

func joinTrim(pieces []string) string {
	return strings.TrimSpace(strings.Join(pieces, ""))
}
