package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/service"
)

func (s *Server) respondState(w http.ResponseWriter, r *http.Request, st *service.MindmapState, err error, action string) {
	if err != nil {
		s.respondServiceError(w, r, err, action)
		return
	}
	s.respondJSON(w, http.StatusOK, toMindmapStateDTO(st))
}

func (s *Server) handleMindmapState(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Mindmap.State(r.Context(), chi.URLParam(r, "projectID"))
	s.respondState(w, r, st, err, "load mindmap")
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	n := req.toDomain(chi.URLParam(r, "projectID"))
	if err := s.svc.Mindmap.AddNode(r.Context(), n); err != nil {
		s.respondServiceError(w, r, err, "add node")
		return
	}
	s.respondJSON(w, http.StatusCreated, toNodeDTO(*n))
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req noteDTO
	if !s.decodeBody(w, r, &req) {
		return
	}
	n := &domain.MindmapNote{
		ProjectID: chi.URLParam(r, "projectID"),
		Content:   req.Content,
		PositionX: req.PositionX,
		PositionY: req.PositionY,
	}
	if err := s.svc.Mindmap.AddNote(r.Context(), n); err != nil {
		s.respondServiceError(w, r, err, "add note")
		return
	}
	s.respondJSON(w, http.StatusCreated, toNoteDTO(*n))
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectionDTO
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.svc.Mindmap.Connect(r.Context(), chi.URLParam(r, "projectID"), req.FromNodeID, req.ToNodeID); err != nil {
		s.respondServiceError(w, r, err, "connect nodes")
		return
	}
	s.respondJSON(w, http.StatusCreated, req)
}

// handleApplySnapshot replaces the whole mindmap with the posted snapshot.
func (s *Server) handleApplySnapshot(w http.ResponseWriter, r *http.Request) {
	var snap domain.MindmapSnapshot
	if !s.decodeBody(w, r, &snap) {
		return
	}
	st, err := s.svc.Mindmap.ApplySnapshot(r.Context(), chi.URLParam(r, "projectID"), &snap)
	s.respondState(w, r, st, err, "apply snapshot")
}

// handleApplyGraph decomposes a prompt and replaces the mindmap with the
// resulting graph.
func (s *Server) handleApplyGraph(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}
	projectID := chi.URLParam(r, "projectID")
	if _, err := s.svc.Projects.GetByID(r.Context(), projectID); err != nil {
		s.respondServiceError(w, r, err, "apply graph")
		return
	}
	res, err := s.svc.Decompose.Mindmap(r.Context(), prompt)
	if err != nil {
		s.respondServiceError(w, r, err, "build mindmap")
		return
	}
	st, err := s.svc.Mindmap.ApplyGraph(r.Context(), projectID, res.Graph)
	s.respondState(w, r, st, err, "apply graph")
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.svc.Mindmap.ListVersions(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.respondServiceError(w, r, err, "list versions")
		return
	}
	out := make([]versionDTO, 0, len(versions))
	for _, v := range versions {
		out = append(out, toVersionDTO(v, false))
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleSaveVersion stores the posted snapshot, or the current mindmap
// when the body has none.
func (s *Server) handleSaveVersion(w http.ResponseWriter, r *http.Request) {
	var req versionRequest
	if r.ContentLength != 0 && !s.decodeBody(w, r, &req) {
		return
	}
	v, err := s.svc.Mindmap.SaveVersion(r.Context(), chi.URLParam(r, "projectID"), req.Title, req.Snapshot)
	if err != nil {
		s.respondServiceError(w, r, err, "save version")
		return
	}
	s.respondJSON(w, http.StatusCreated, toVersionDTO(*v, false))
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Mindmap.GetVersion(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "versionID"))
	if err != nil {
		s.respondServiceError(w, r, err, "get version")
		return
	}
	s.respondJSON(w, http.StatusOK, toVersionDTO(*v, true))
}

func (s *Server) handleApplyVersion(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Mindmap.ApplyVersion(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "versionID"))
	s.respondState(w, r, st, err, "apply version")
}
