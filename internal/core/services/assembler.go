package services

import (
	"strings"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// Context assembly constants.
const (
	// ContextSeparator joins accepted parts in the assembled context.
	ContextSeparator = "\n\n"

	// TruncationMarker is appended when the budget dropped parts.
	TruncationMarker = "\n\n[... context truncated ...]"

	// DefaultMaxContextChars bounds the assembled context size.
	DefaultMaxContextChars = 32000
)

// AssembleContext flattens per-seed expansions in seed-rank order,
// deduplicates by exact text keeping the first occurrence, and joins
// parts with ContextSeparator under a character budget. Accepted parts
// are never evicted; once a part would exceed the budget, assembly
// stops and the truncation marker is appended. The result never
// exceeds maxChars plus the marker's own length, and is fully
// deterministic for identical inputs.
func AssembleContext(expansions [][]domain.Chunk, maxChars int) (string, int, bool) {
	if maxChars <= 0 {
		maxChars = DefaultMaxContextChars
	}

	seen := make(map[string]struct{})
	var parts []string
	total := 0
	truncated := false

	for _, expansion := range expansions {
		for _, chunk := range expansion {
			text := chunk.Text
			if text == "" {
				continue
			}
			if _, dup := seen[text]; dup {
				continue
			}

			need := len(text)
			if len(parts) > 0 {
				need += len(ContextSeparator)
			}
			if total+need > maxChars {
				truncated = true
				break
			}

			seen[text] = struct{}{}
			parts = append(parts, text)
			total += need
		}
		if truncated {
			break
		}
	}

	assembled := strings.Join(parts, ContextSeparator)
	if truncated {
		assembled += TruncationMarker
	}
	return assembled, len(parts), truncated
}
