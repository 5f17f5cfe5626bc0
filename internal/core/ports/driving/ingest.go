package driving

import (
	"context"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// IngestService turns uploaded files into indexed, retrievable chunks.
type IngestService interface {
	// IngestFiles processes a batch of uploads into the given
	// collection. Each file is decoded, normalised, chunked, embedded
	// and persisted as an independent unit: one file's failure is
	// reported in the result and never aborts another's success.
	IngestFiles(ctx context.Context, collectionID string, files []domain.UploadFile) (*domain.IngestReport, error)
}
