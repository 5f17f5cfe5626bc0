// Package textrepair rebuilds coherent paragraphs from line-fragmented
// extracted text, most commonly PDF output where every visual line is a
// separate text line.
package textrepair

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// shortLineWords and shortLineChars classify a line as a fragment that
// should be merged into the one before it.
const (
	shortLineWords = 4
	shortLineChars = 40
)

var (
	sentenceEnd  = regexp.MustCompile(`[.!?]\s*$`)
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	newlineRuns  = regexp.MustCompile(`\n{3,}`)
)

// Normalize undoes PDF-style line fragmentation while preserving
// paragraph breaks. A line is merged into the current one unless the
// current line ends a sentence and the next starts with an uppercase
// letter, in which case a paragraph break is inserted. The heuristic can
// both under-merge and over-merge; downstream chunk quality depends on
// its exact behaviour, so treat the merge conditions as a tunable and
// change them deliberately.
//
// Normalize is idempotent: applying it to its own output returns the
// same string. Empty or whitespace-only input yields an empty string.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	merged := mergeLines(lines)

	// A paragraph break goes wherever a sentence ends and the next
	// merged line opens a new one.
	var out []string
	for i, line := range merged {
		out = append(out, line)
		if i+1 < len(merged) && sentenceEnd.MatchString(line) && startsUpper(merged[i+1]) {
			out = append(out, "")
		}
	}

	text := strings.Join(out, "\n")
	text = horizontalWS.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// mergeLines joins continuation lines. The scan stops extending the
// current line only when it ends a sentence and the next line starts
// with an uppercase letter.
func mergeLines(lines []string) []string {
	var merged []string
	i := 0
	for i < len(lines) {
		current := lines[i]
	scan:
		for i+1 < len(lines) {
			next := lines[i+1]
			endsSentence := sentenceEnd.MatchString(current)
			nextUpper := startsUpper(next)
			short := isShortLine(next)

			switch {
			case !endsSentence && (!nextUpper || short):
				current = strings.TrimSpace(current + " " + next)
				i++
			case endsSentence && nextUpper:
				break scan
			default:
				current = strings.TrimSpace(current + " " + next)
				i++
			}
		}
		merged = append(merged, current)
		i++
	}
	return merged
}

// isShortLine reports whether a line is short enough to be treated as a
// fragment regardless of capitalisation.
func isShortLine(line string) bool {
	return len(strings.Fields(line)) <= shortLineWords ||
		utf8.RuneCountInString(line) < shortLineChars
}

// startsUpper reports whether the first rune of s is an uppercase letter.
func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
