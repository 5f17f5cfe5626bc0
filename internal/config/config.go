// Package config loads the service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// Defaults for every knob. An unset variable falls back here, so a
// bare environment still yields a runnable configuration.
const (
	DefaultListenAddr       = ":8080"
	DefaultChunkSize        = 600
	DefaultChunkOverlap     = 100
	DefaultNeighbourWindow  = 2
	DefaultMaxContextChars  = 32000
	DefaultMaxHistorySent   = 10
	DefaultMaxHistoryLoaded = 20
	DefaultTopK             = 5
	DefaultEmbedder         = "openai"
)

// Config is the resolved service configuration.
type Config struct {
	ListenAddr string
	DataDir    string
	Verbose    bool

	ChunkSize        int
	ChunkOverlap     int
	NeighbourWindow  int
	MaxContextChars  int
	MaxHistorySent   int
	MaxHistoryLoaded int
	TopK             int

	// Embedder selects the embedding adapter: "openai" or "ollama".
	Embedder      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string

	GroqAPIKey string
	GroqModel  string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr: envString("ARCHIVUS_LISTEN_ADDR", DefaultListenAddr),
		DataDir:    envString("ARCHIVUS_DATA_DIR", ""),
		Verbose:    envBool("ARCHIVUS_VERBOSE", false),

		ChunkSize:        envInt("ARCHIVUS_CHUNK_SIZE", DefaultChunkSize),
		ChunkOverlap:     envInt("ARCHIVUS_CHUNK_OVERLAP", DefaultChunkOverlap),
		NeighbourWindow:  envInt("ARCHIVUS_NEIGHBOUR_WINDOW", DefaultNeighbourWindow),
		MaxContextChars:  envInt("ARCHIVUS_MAX_CONTEXT_CHARS", DefaultMaxContextChars),
		MaxHistorySent:   envInt("ARCHIVUS_MAX_HISTORY_SENT", DefaultMaxHistorySent),
		MaxHistoryLoaded: envInt("ARCHIVUS_MAX_HISTORY_LOADED", DefaultMaxHistoryLoaded),
		TopK:             envInt("ARCHIVUS_TOP_K", DefaultTopK),

		Embedder:      envString("ARCHIVUS_EMBEDDER", DefaultEmbedder),
		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", ""),
		OpenAIModel:   envString("OPENAI_EMBEDDING_MODEL", ""),
		OllamaBaseURL: envString("OLLAMA_BASE_URL", ""),
		OllamaModel:   envString("OLLAMA_EMBEDDING_MODEL", ""),

		GroqAPIKey: envString("GROQ_API_KEY", ""),
		GroqModel:  envString("GROQ_MODEL", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects combinations the pipeline cannot run with. Invalid
// values fail loudly here instead of being silently corrected.
func (c *Config) validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidChunking, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", domain.ErrInvalidChunking, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", domain.ErrInvalidChunking, c.ChunkOverlap, c.ChunkSize)
	}
	switch c.Embedder {
	case "openai", "ollama":
	default:
		return fmt.Errorf("%w: unknown embedder %q", domain.ErrInvalidInput, c.Embedder)
	}
	return nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
