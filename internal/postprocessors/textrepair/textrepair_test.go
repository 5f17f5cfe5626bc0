package textrepair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "  \n\t \n ",
			want:  "",
		},
		{
			name:  "single line unchanged",
			input: "Hello world.",
			want:  "Hello world.",
		},
		{
			name:  "fragmented words rejoined",
			input: "the quick\nbrown fox\njumps over the lazy dog.",
			want:  "the quick brown fox jumps over the lazy dog.",
		},
		{
			name:  "paragraph break after sentence before capital",
			input: "First paragraph ends here.\nThe second paragraph starts with enough words to not look like a fragment of the first.",
			want:  "First paragraph ends here.\n\nThe second paragraph starts with enough words to not look like a fragment of the first.",
		},
		{
			name:  "short capitalised line still merged",
			input: "a heading that keeps\nGoing",
			want:  "a heading that keeps Going",
		},
		{
			name:  "windows line endings",
			input: "one line\r\ncontinues here.",
			want:  "one line continues here.",
		},
		{
			name:  "horizontal whitespace collapsed",
			input: "spaced\tout   words here.",
			want:  "spaced out words here.",
		},
		{
			name:  "blank lines dropped before merging",
			input: "start of a\n\n\n\nsentence that flows on.",
			want:  "start of a sentence that flows on.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello world.",
		"the quick\nbrown fox\njumps over the lazy dog.",
		"First paragraph ends here.\nThe second paragraph has plenty of words so it is not considered short at all.",
		"fragments\neverywhere\nwith no punctuation",
		strings.Repeat("A full sentence sits on this line alone and it is long enough.\n", 5),
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestNormalize_ParagraphStructure(t *testing.T) {
	in := "Alpha bravo charlie delta echo foxtrot golf hotel india ends now.\n" +
		"Second block also has a generous number of distinct words in it, truly.\n" +
		"Third block closes the document with yet more words than the limit."

	got := Normalize(in)
	paras := strings.Split(got, "\n\n")
	assert.Len(t, paras, 3)
	for _, p := range paras {
		assert.NotContains(t, p, "\n", "paragraphs contain no internal newlines")
	}
}
