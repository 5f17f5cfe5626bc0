package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

func TestNewSplitter(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{name: "valid", size: 100, overlap: 20},
		{name: "zero overlap", size: 100, overlap: 0},
		{name: "overlap equals size", size: 100, overlap: 100, wantErr: true},
		{name: "overlap exceeds size", size: 100, overlap: 150, wantErr: true},
		{name: "zero size", size: 0, overlap: 0, wantErr: true},
		{name: "negative overlap", size: 100, overlap: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSplitter(tt.size, tt.overlap)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidChunking)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
		})
	}
}

func TestSplit_BlankInput(t *testing.T) {
	s, err := NewSplitter(100, 20)
	require.NoError(t, err)

	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split("   \n\t  "))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s, err := NewSplitter(100, 20)
	require.NoError(t, err)

	chunks := s.Split("a short paragraph.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short paragraph.", chunks[0])
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	para1 := strings.Repeat("alpha ", 10)  // 60 chars
	para2 := strings.Repeat("bravo ", 10)  // 60 chars
	text := strings.TrimSpace(para1) + "\n\n" + strings.TrimSpace(para2)

	s, err := NewSplitter(80, 0)
	require.NoError(t, err)

	chunks := s.Split(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.TrimSpace(para1), chunks[0])
	assert.Equal(t, strings.TrimSpace(para2), chunks[1])
}

func TestSplit_SizeBound(t *testing.T) {
	text := strings.Repeat("some words in a long sentence that continues on and on. ", 40)

	s, err := NewSplitter(200, 40)
	require.NoError(t, err)

	for _, c := range s.Split(text) {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 200)
		assert.Equal(t, strings.TrimSpace(c), c, "chunks are trimmed")
		assert.NotEmpty(t, c)
	}
}

func TestSplit_CharacterFallbackCoverage(t *testing.T) {
	// No separators at all: the character fallback packs sliding
	// windows stepping size-overlap, ceil((L-o)/(s-o)) chunks.
	tests := []struct {
		length, size, overlap, wantChunks int
	}{
		{length: 250, size: 100, overlap: 20, wantChunks: 3},
		{length: 100, size: 100, overlap: 20, wantChunks: 1},
		{length: 101, size: 100, overlap: 0, wantChunks: 2},
		{length: 10, size: 4, overlap: 2, wantChunks: 4},
	}

	for _, tt := range tests {
		s, err := NewSplitter(tt.size, tt.overlap)
		require.NoError(t, err)

		text := strings.Repeat("x", tt.length)
		chunks := s.Split(text)
		assert.Len(t, chunks, tt.wantChunks, "L=%d s=%d o=%d", tt.length, tt.size, tt.overlap)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), tt.size)
		}
	}
}

func TestSplit_OverlapOffsets(t *testing.T) {
	// 250 characters, size 100, overlap 20: chunks start at offsets
	// 0, 80 and 160.
	text := strings.Repeat("x", 250)

	s, err := NewSplitter(100, 20)
	require.NoError(t, err)

	chunks := s.Split(text)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 90)
}

func TestSplit_AdjacentChunksShareOverlap(t *testing.T) {
	words := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		words = append(words, "word")
	}
	text := strings.Join(words, " ") // 249 chars of "word word ..."

	s, err := NewSplitter(100, 30)
	require.NoError(t, err)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-10:]
		assert.Contains(t, chunks[i], strings.TrimSpace(prevTail),
			"chunk %d should begin with the tail of chunk %d", i, i-1)
	}
}

func TestSplit_NoCharacterLoss(t *testing.T) {
	text := "One sentence here. Another sentence there.\nA new line follows.\n\nAnd a fresh paragraph closes it."

	s, err := NewSplitter(40, 0)
	require.NoError(t, err)

	chunks := s.Split(text)
	require.NotEmpty(t, chunks)

	// With zero overlap every non-whitespace character survives.
	squash := func(in string) string {
		return strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' {
				return -1
			}
			return r
		}, in)
	}
	assert.Equal(t, squash(text), squash(strings.Join(chunks, "")))
}
