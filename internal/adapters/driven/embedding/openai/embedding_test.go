package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *EmbeddingProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewEmbeddingProvider(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return provider
}

func embeddingData(entries ...map[string]any) map[string]any {
	return map[string]any{"data": entries}
}

func TestNewEmbeddingProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingProvider(Config{})
	assert.Error(t, err)
}

func TestEmbedBatch(t *testing.T) {
	var captured embeddingRequest
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		// Entries arrive out of order and must be slotted by index.
		json.NewEncoder(w).Encode(embeddingData(
			map[string]any{"index": 1, "embedding": []float64{0.3, 0.4}},
			map[string]any{"index": 0, "embedding": []float64{0.1, 0.2}},
		))
	})

	embeddings, err := provider.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, captured.Input)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{0.1, 0.2}, embeddings[0])
	assert.Equal(t, []float32{0.3, 0.4}, embeddings[1])
}

func TestEmbedBatch_IndexOutOfRange(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingData(
			map[string]any{"index": 5, "embedding": []float64{0.1}},
		))
	})

	_, err := provider.EmbedBatch(context.Background(), []string{"only"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestEmbedBatch_MissingEntry(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingData(
			map[string]any{"index": 0, "embedding": []float64{0.1}},
		))
	})

	_, err := provider.EmbedBatch(context.Background(), []string{"first", "second"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestEmbedBatch_APIError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key"},
		})
	})

	_, err := provider.EmbedBatch(context.Background(), []string{"text"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestEmbed(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingData(
			map[string]any{"index": 0, "embedding": []float64{0.5, 0.6}},
		))
	})

	embedding, err := provider.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.6}, embedding)
}

func TestEmbeddingPing(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, provider.Ping(context.Background()))
}
