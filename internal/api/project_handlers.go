package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/estimator/internal/domain"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list projects")
		return
	}
	out := make([]projectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectDTO(p))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	p := &domain.Project{
		Name:             req.Name,
		UncertaintyLevel: req.UncertaintyLevel,
		UIUXLevel:        req.UIUXLevel,
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.LegacyCode != nil {
		p.LegacyCode = *req.LegacyCode
	}
	if err := s.svc.Projects.Create(r.Context(), p); err != nil {
		s.respondServiceError(w, r, err, "create project")
		return
	}
	s.respondJSON(w, http.StatusCreated, toProjectDTO(p))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Projects.GetByID(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.respondServiceError(w, r, err, "get project")
		return
	}
	s.respondJSON(w, http.StatusOK, toProjectDTO(p))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Projects.GetByID(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.respondServiceError(w, r, err, "update project")
		return
	}
	var req projectRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	p.Name = domain.CoalesceStr(req.Name, p.Name)
	p.UncertaintyLevel = domain.CoalesceStr(req.UncertaintyLevel, p.UncertaintyLevel)
	p.UIUXLevel = domain.CoalesceStr(req.UIUXLevel, p.UIUXLevel)
	if req.Description != nil {
		p.Description = *req.Description
	}
	p.LegacyCode = domain.BoolFromPtrWithDefault(p.LegacyCode, req.LegacyCode)

	if err := s.svc.Projects.Update(r.Context(), p); err != nil {
		s.respondServiceError(w, r, err, "update project")
		return
	}
	s.respondJSON(w, http.StatusOK, toProjectDTO(p))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if err := s.svc.Projects.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, "delete project")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// Project modules

func (s *Server) handleListProjectModules(w http.ResponseWriter, r *http.Request) {
	pms, err := s.svc.ProjectModules.ListByProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.respondServiceError(w, r, err, "list project modules")
		return
	}
	out := make([]projectModuleDTO, 0, len(pms))
	for _, pm := range pms {
		out = append(out, toProjectModuleDTO(pm))
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleAttachModule attaches a catalog module by id or code.
func (s *Server) handleAttachModule(w http.ResponseWriter, r *http.Request) {
	var req attachModuleRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	projectID := chi.URLParam(r, "projectID")
	moduleID := req.ModuleID
	if moduleID == "" {
		if req.ModuleCode == "" {
			s.respondError(w, http.StatusBadRequest, "validation_error", "module_id or module_code is required")
			return
		}
		m, err := s.svc.Catalog.GetByCode(r.Context(), req.ModuleCode)
		if err != nil {
			s.respondServiceError(w, r, err, "attach module")
			return
		}
		moduleID = m.ID
	}

	pm := &domain.ProjectModule{ProjectID: projectID, ModuleID: moduleID}
	req.applyTo(pm)
	if err := s.svc.ProjectModules.Attach(r.Context(), pm); err != nil {
		s.respondServiceError(w, r, err, "attach module")
		return
	}
	s.respondJSON(w, http.StatusCreated, toProjectModuleDTO(*pm))
}

// handleUpdateProjectModule replaces the editable fields; omitted overrides
// are cleared.
func (s *Server) handleUpdateProjectModule(w http.ResponseWriter, r *http.Request) {
	pm, ok := s.loadProjectModule(w, r, "update project module")
	if !ok {
		return
	}
	var req projectModuleRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	req.applyTo(pm)
	if err := s.svc.ProjectModules.Update(r.Context(), pm); err != nil {
		s.respondServiceError(w, r, err, "update project module")
		return
	}
	updated, err := s.svc.ProjectModules.GetByID(r.Context(), pm.ID)
	if err != nil {
		s.respondServiceError(w, r, err, "update project module")
		return
	}
	s.respondJSON(w, http.StatusOK, toProjectModuleDTO(*updated))
}

func (s *Server) handleDetachModule(w http.ResponseWriter, r *http.Request) {
	pm, ok := s.loadProjectModule(w, r, "detach module")
	if !ok {
		return
	}
	if err := s.svc.ProjectModules.Detach(r.Context(), pm.ID); err != nil {
		s.respondServiceError(w, r, err, "detach module")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": pm.ID})
}

// loadProjectModule resolves {pmID} and checks it belongs to {projectID}.
func (s *Server) loadProjectModule(w http.ResponseWriter, r *http.Request, action string) (*domain.ProjectModule, bool) {
	pm, err := s.svc.ProjectModules.GetByID(r.Context(), chi.URLParam(r, "pmID"))
	if err != nil {
		s.respondServiceError(w, r, err, action)
		return nil, false
	}
	if pm.ProjectID != chi.URLParam(r, "projectID") {
		s.respondError(w, http.StatusNotFound, "not_found", "project module not found")
		return nil, false
	}
	return pm, true
}

// Assignments

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if _, err := s.svc.Projects.GetByID(r.Context(), projectID); err != nil {
		s.respondServiceError(w, r, err, "list assignments")
		return
	}
	assignments, err := s.svc.Assignments.ListByProject(r.Context(), projectID)
	if err != nil {
		s.respondServiceError(w, r, err, "list assignments")
		return
	}
	out := make([]assignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentDTO(a))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignmentDTO
	if !s.decodeBody(w, r, &req) {
		return
	}
	pm, err := s.svc.ProjectModules.GetByID(r.Context(), req.ProjectModuleID)
	if err != nil {
		s.respondServiceError(w, r, err, "assign")
		return
	}
	if pm.ProjectID != chi.URLParam(r, "projectID") {
		s.respondError(w, http.StatusNotFound, "not_found", "project module not found")
		return
	}
	a, err := s.svc.Assignments.Assign(r.Context(), pm.ID, domain.Role(req.Role), domain.Level(req.Level))
	if err != nil {
		s.respondServiceError(w, r, err, "assign")
		return
	}
	s.respondJSON(w, http.StatusOK, toAssignmentDTO(*a))
}

func (s *Server) handleUnassign(w http.ResponseWriter, r *http.Request) {
	pm, ok := s.loadProjectModule(w, r, "unassign")
	if !ok {
		return
	}
	role := domain.Role(chi.URLParam(r, "role"))
	if err := s.svc.Assignments.Unassign(r.Context(), pm.ID, role); err != nil {
		s.respondServiceError(w, r, err, "unassign")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"project_module_id": pm.ID, "role": string(role)})
}

// Infrastructure lines

func (s *Server) handleListInfraLines(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if _, err := s.svc.Projects.GetByID(r.Context(), projectID); err != nil {
		s.respondServiceError(w, r, err, "list infrastructure")
		return
	}
	lines, err := s.svc.Infrastructure.ListLines(r.Context(), projectID)
	if err != nil {
		s.respondServiceError(w, r, err, "list infrastructure")
		return
	}
	out := make([]infraLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, toInfraLineDTO(l))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddInfraLine(w http.ResponseWriter, r *http.Request) {
	var req infraLineRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	line, err := s.svc.Infrastructure.AddLine(r.Context(), chi.URLParam(r, "projectID"), req.ItemID, req.Quantity)
	if err != nil {
		s.respondServiceError(w, r, err, "add infrastructure")
		return
	}
	s.respondJSON(w, http.StatusCreated, toInfraLineDTO(*line))
}

func (s *Server) handleSetInfraQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	lineID := chi.URLParam(r, "lineID")
	if err := s.svc.Infrastructure.SetQuantity(r.Context(), lineID, req.Quantity); err != nil {
		s.respondServiceError(w, r, err, "update infrastructure")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"id": lineID, "quantity": req.Quantity})
}

func (s *Server) handleRemoveInfraLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")
	if err := s.svc.Infrastructure.RemoveLine(r.Context(), lineID); err != nil {
		s.respondServiceError(w, r, err, "remove infrastructure")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": lineID})
}
