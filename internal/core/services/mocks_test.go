package services

import (
	"context"
	"strings"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// stubEmbedder returns fixed vectors looked up by text, falling back
// to a default vector for unknown inputs.
type stubEmbedder struct {
	dim      int
	vectors  map[string][]float32
	fallback []float32
	err      error
}

func newStubEmbedder(dim int) *stubEmbedder {
	fallback := make([]float32, dim)
	fallback[0] = 1
	return &stubEmbedder{
		dim:      dim,
		vectors:  make(map[string][]float32),
		fallback: fallback,
	}
}

func (s *stubEmbedder) set(text string, vector []float32) {
	s.vectors[text] = vector
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return s.fallback, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int              { return s.dim }
func (s *stubEmbedder) ModelName() string            { return "stub-embedder" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error                 { return nil }

// stubGenerator records what it was asked and returns a canned answer.
type stubGenerator struct {
	answer      string
	err         error
	gotQuestion string
	gotContext  string
	gotHistory  []domain.ChatMessage
}

func (s *stubGenerator) Generate(_ context.Context, question, contextText string, history []domain.ChatMessage) (string, error) {
	s.gotQuestion = question
	s.gotContext = contextText
	s.gotHistory = history
	if s.err != nil {
		return "", s.err
	}
	if s.answer == "" {
		return "stub answer", nil
	}
	return s.answer, nil
}

func (s *stubGenerator) ModelName() string            { return "stub-generator" }
func (s *stubGenerator) Ping(_ context.Context) error { return nil }
func (s *stubGenerator) Close() error                 { return nil }

// stubDecoder decodes any input as UTF-8 text for one extension set.
type stubDecoder struct {
	exts []string
	err  error
}

func (s *stubDecoder) Extensions() []string { return s.exts }

func (s *stubDecoder) Decode(content []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return string(content), nil
}

// stubResolver maps extensions to decoders without the real registry.
type stubResolver struct {
	decoders map[string]driven.Decoder
}

func newStubResolver(exts ...string) *stubResolver {
	r := &stubResolver{decoders: make(map[string]driven.Decoder)}
	for _, ext := range exts {
		r.decoders[ext] = &stubDecoder{exts: []string{ext}}
	}
	return r
}

func (r *stubResolver) For(filename string) (driven.Decoder, error) {
	idx := strings.LastIndex(filename, ".")
	if idx >= 0 {
		if d, ok := r.decoders[filename[idx:]]; ok {
			return d, nil
		}
	}
	return nil, domain.ErrUnsupportedFormat
}
