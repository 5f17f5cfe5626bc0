package api

import (
	"net/http"
	"strings"
	"unicode/utf8"
)

type healthResponse struct {
	Status  string `json:"status"`
	Vectors int    `json:"vectors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Vectors: s.index.Len(),
	})
}

type textStatsRequest struct {
	Text string `json:"text" validate:"required"`
}

type textStatsResponse struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

func (s *Server) handleTextStats(w http.ResponseWriter, r *http.Request) {
	var req textStatsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, textStatsResponse{
		Words: len(strings.Fields(req.Text)),
		Chars: utf8.RuneCountInString(req.Text),
	})
}
