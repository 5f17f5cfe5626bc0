package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
	"github.com/archivus-ai/archivus/internal/core/ports/driving"
	"github.com/archivus-ai/archivus/internal/logger"
	"github.com/archivus-ai/archivus/internal/postprocessors/chunker"
	"github.com/archivus-ai/archivus/internal/postprocessors/textrepair"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DecoderResolver picks the decoder for a filename. Satisfied by
// normalisers.Registry.
type DecoderResolver interface {
	For(filename string) (driven.Decoder, error)
}

// IngestService turns uploaded files into indexed chunks. Each file
// runs the full pipeline independently: decode, normalise, chunk,
// embed, persist, index.
type IngestService struct {
	decoders    DecoderResolver
	docStore    driven.DocumentStore
	collections driven.CollectionStore
	embedder    driven.EmbeddingProvider
	index       driven.VectorIndex
	splitter    *chunker.Splitter
}

// NewIngestService creates an ingest service.
func NewIngestService(
	decoders DecoderResolver,
	docStore driven.DocumentStore,
	collections driven.CollectionStore,
	embedder driven.EmbeddingProvider,
	index driven.VectorIndex,
	splitter *chunker.Splitter,
) *IngestService {
	return &IngestService{
		decoders:    decoders,
		docStore:    docStore,
		collections: collections,
		embedder:    embedder,
		index:       index,
		splitter:    splitter,
	}
}

// IngestFiles processes a batch of uploads into the given collection.
// One file's failure is recorded in the report and never aborts
// another file's success.
func (s *IngestService) IngestFiles(ctx context.Context, collectionID string, files []domain.UploadFile) (*domain.IngestReport, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files to ingest", domain.ErrInvalidInput)
	}

	if _, err := s.collections.Get(ctx, collectionID); err != nil {
		return nil, fmt.Errorf("looking up collection %s: %w", collectionID, err)
	}

	logger.Section("Ingestion")
	logger.Info("Ingesting %d file(s) into collection %s", len(files), collectionID)

	report := &domain.IngestReport{}
	for _, file := range files {
		doc, err := s.ingestOne(ctx, collectionID, file)
		if err != nil {
			logger.Warn("File %q failed: %v", file.Filename, err)
			report.Failed = append(report.Failed, domain.FileFailure{
				Filename: file.Filename,
				Reason:   err.Error(),
			})
			continue
		}
		logger.Debug("File %q ingested as document %s", file.Filename, doc.ID)
		report.Ingested = append(report.Ingested, *doc)
	}

	logger.Info("Ingestion finished: %d ingested, %d failed", len(report.Ingested), len(report.Failed))
	return report, nil
}

// ingestOne runs the pipeline for a single file. Storage writes are a
// single transaction; if vector indexing fails afterwards, the stored
// rows and any indexed vectors are rolled back so the file leaves no
// partial state.
func (s *IngestService) ingestOne(ctx context.Context, collectionID string, file domain.UploadFile) (*domain.Document, error) {
	decoder, err := s.decoders.For(file.Filename)
	if err != nil {
		return nil, err
	}

	raw, err := decoder.Decode(file.Content)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}

	text := textrepair.Normalize(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrEmptyDocument, file.Filename)
	}

	parts := s.splitter.Split(text)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q produced no chunks", domain.ErrEmptyDocument, file.Filename)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunk(s): %w", len(parts), err)
	}
	if len(vectors) != len(parts) {
		return nil, fmt.Errorf("%w: embedding returned %d vectors for %d chunks", domain.ErrUpstream, len(vectors), len(parts))
	}

	doc := &domain.Document{
		ID:           uuid.NewString(),
		CollectionID: collectionID,
		Filename:     file.Filename,
		Size:         int64(len(file.Content)),
		CreatedAt:    time.Now().UTC(),
	}

	chunks := make([]domain.Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = domain.Chunk{
			ID:           uuid.NewString(),
			DocumentID:   doc.ID,
			CollectionID: collectionID,
			Index:        i,
			Filename:     file.Filename,
			Text:         part,
			Embedding:    vectors[i],
		}
	}

	if err := s.docStore.SaveDocument(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("persisting document: %w", err)
	}

	for i, chunk := range chunks {
		if err := s.index.Add(ctx, chunk.ID, collectionID, chunk.Embedding); err != nil {
			s.rollback(ctx, doc.ID, chunks[:i])
			return nil, fmt.Errorf("indexing chunk %d: %w", i, err)
		}
	}

	return doc, nil
}

// rollback undoes a partially indexed file: stored rows and the
// vectors added so far.
func (s *IngestService) rollback(ctx context.Context, documentID string, indexed []domain.Chunk) {
	for _, chunk := range indexed {
		if err := s.index.Delete(ctx, chunk.ID); err != nil {
			logger.Warn("Rollback: removing vector %s failed: %v", chunk.ID, err)
		}
	}
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		logger.Warn("Rollback: deleting document %s failed: %v", documentID, err)
	}
}
