package api

import (
	"net/http"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driving"
)

type askRequest struct {
	CollectionID string `json:"collection_id" validate:"required"`
	SessionID    string `json:"session_id"`
	Question     string `json:"question" validate:"required"`
	K            int    `json:"k" validate:"omitempty,min=1,max=50"`
}

type sourceResponse struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	Position   int     `json:"position"`
	Score      float64 `json:"score"`
}

type askResponse struct {
	SessionID string           `json:"session_id"`
	Question  string           `json:"question"`
	Answer    string           `json:"answer"`
	Truncated bool             `json:"truncated"`
	Sources   []sourceResponse `json:"sources"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	answer, err := s.ask.Ask(r.Context(), driving.AskRequest{
		CollectionID: req.CollectionID,
		SessionID:    req.SessionID,
		Question:     req.Question,
		K:            req.K,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		SessionID: answer.SessionID,
		Question:  answer.Question,
		Answer:    answer.Text,
		Truncated: answer.Truncated,
		Sources:   toSources(answer.Seeds),
	})
}

func toSources(seeds []domain.Seed) []sourceResponse {
	out := make([]sourceResponse, len(seeds))
	for i, seed := range seeds {
		out[i] = sourceResponse{
			DocumentID: seed.Chunk.DocumentID,
			Filename:   seed.Chunk.Filename,
			Position:   seed.Chunk.Index,
			Score:      seed.Score,
		}
	}
	return out
}
