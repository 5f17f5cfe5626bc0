package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// maxUploadBytes bounds one multipart upload request.
const maxUploadBytes = 64 << 20

type ingestedResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type failedFileResponse struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

type ingestResponse struct {
	Ingested []ingestedResponse   `json:"ingested"`
	Failed   []failedFileResponse `json:"failed"`
}

// handleUpload ingests the files of a multipart form, field "files".
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, fmt.Errorf("%w: parsing multipart form: %s", domain.ErrInvalidInput, err))
		return
	}

	var files []domain.UploadFile
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			writeError(w, fmt.Errorf("opening upload %q: %w", header.Filename, err))
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, fmt.Errorf("reading upload %q: %w", header.Filename, err))
			return
		}
		files = append(files, domain.UploadFile{
			Filename: header.Filename,
			Content:  content,
		})
	}

	report, err := s.ingest.IngestFiles(r.Context(), r.PathValue("id"), files)
	if err != nil {
		writeError(w, err)
		return
	}

	out := ingestResponse{
		Ingested: make([]ingestedResponse, len(report.Ingested)),
		Failed:   make([]failedFileResponse, len(report.Failed)),
	}
	for i, doc := range report.Ingested {
		out.Ingested[i] = ingestedResponse{
			ID:        doc.ID,
			Filename:  doc.Filename,
			Size:      doc.Size,
			CreatedAt: doc.CreatedAt,
		}
	}
	for i, failure := range report.Failed {
		out.Failed[i] = failedFileResponse{
			Filename: failure.Filename,
			Reason:   failure.Reason,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
