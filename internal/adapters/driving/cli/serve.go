package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/archivus-ai/archivus/internal/adapters/driven/embedding/ollama"
	"github.com/archivus-ai/archivus/internal/adapters/driven/embedding/openai"
	"github.com/archivus-ai/archivus/internal/adapters/driven/llm/groq"
	"github.com/archivus-ai/archivus/internal/adapters/driven/storage/sqlite"
	vectormem "github.com/archivus-ai/archivus/internal/adapters/driven/vector/memory"
	"github.com/archivus-ai/archivus/internal/adapters/driving/api"
	"github.com/archivus-ai/archivus/internal/config"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
	"github.com/archivus-ai/archivus/internal/core/services"
	"github.com/archivus-ai/archivus/internal/logger"
	"github.com/archivus-ai/archivus/internal/normalisers"
	"github.com/archivus-ai/archivus/internal/normalisers/csv"
	"github.com/archivus-ai/archivus/internal/normalisers/markdown"
	"github.com/archivus-ai/archivus/internal/normalisers/pdf"
	"github.com/archivus-ai/archivus/internal/normalisers/plaintext"
	"github.com/archivus-ai/archivus/internal/postprocessors/chunker"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides ARCHIVUS_LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.Verbose {
		logger.SetVerbose(true)
	}
	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	generator, err := groq.NewAnswerGenerator(groq.Config{
		APIKey: cfg.GroqAPIKey,
		Model:  cfg.GroqModel,
	})
	if err != nil {
		return fmt.Errorf("configuring generator: %w", err)
	}
	defer generator.Close()

	index, err := vectormem.New(embedder.Dimensions())
	if err != nil {
		return fmt.Errorf("creating vector index: %w", err)
	}
	defer index.Close()

	ctx := cmd.Context()
	if err := warmIndex(ctx, store, index); err != nil {
		return err
	}

	splitter, err := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}
	registry := normalisers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		csv.New(),
		pdf.New(),
	)

	docStore := store.DocumentStore()
	chatStore := store.ChatStore()
	collections := store.CollectionStore()

	expander := services.NewExpander(docStore, cfg.NeighbourWindow)
	history := services.NewHistoryService(chatStore, cfg.MaxHistoryLoaded, cfg.MaxHistorySent)
	ingest := services.NewIngestService(registry, docStore, collections, embedder, index, splitter)
	ask := services.NewAskService(docStore, collections, embedder, generator, index, expander, history, cfg.MaxContextChars)
	library := services.NewLibraryService(collections, docStore, chatStore, index)

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(ask, ingest, library, index),
		ReadHeaderTimeout: 10 * time.Second,
	}

	cmd.Printf("archivus listening on %s (db: %s)\n", addr, store.Path())
	return server.ListenAndServe()
}

// buildEmbedder constructs the embedding adapter selected in config.
func buildEmbedder(cfg *config.Config) (driven.EmbeddingProvider, error) {
	switch cfg.Embedder {
	case "ollama":
		return ollama.NewEmbeddingProvider(ollama.Config{
			BaseURL: cfg.OllamaBaseURL,
			Model:   cfg.OllamaModel,
		}), nil
	default:
		provider, err := openai.NewEmbeddingProvider(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring embedder: %w", err)
		}
		return provider, nil
	}
}

// warmIndex reloads every persisted chunk vector. The index lives in
// memory, so each process start rebuilds it from the store.
func warmIndex(ctx context.Context, store *sqlite.Store, index driven.VectorIndex) error {
	chunks, err := store.DocumentStore().AllChunks(ctx)
	if err != nil {
		return fmt.Errorf("loading chunks for warm-up: %w", err)
	}
	for _, chunk := range chunks {
		if err := index.Add(ctx, chunk.ID, chunk.CollectionID, chunk.Embedding); err != nil {
			return fmt.Errorf("re-indexing chunk %s: %w", chunk.ID, err)
		}
	}
	logger.Info("Index warmed with %d vector(s)", len(chunks))
	return nil
}
