package api

import (
	"net/http"
	"strings"
)

func (s *Server) decodePrompt(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req promptRequest
	if !s.decodeBody(w, r, &req) {
		return "", false
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		s.respondError(w, http.StatusBadRequest, "validation_error", "prompt is required")
		return "", false
	}
	return prompt, true
}

func (s *Server) handleAIParse(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}
	dec, err := s.svc.Decompose.Parse(r.Context(), prompt)
	if err != nil {
		s.respondServiceError(w, r, err, "decompose prompt")
		return
	}
	s.respondJSON(w, http.StatusOK, toDecompositionDTO(dec))
}

func (s *Server) handleAIMindmap(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}
	res, err := s.svc.Decompose.Mindmap(r.Context(), prompt)
	if err != nil {
		s.respondServiceError(w, r, err, "build mindmap")
		return
	}
	s.respondJSON(w, http.StatusOK, toMindmapResultDTO(res))
}
