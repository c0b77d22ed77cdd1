package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Module catalog

func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := s.svc.Catalog.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list modules")
		return
	}
	out := make([]moduleDTO, 0, len(modules))
	for _, m := range modules {
		out = append(out, toModuleDTO(m))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetModule(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Catalog.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.respondServiceError(w, r, err, "get module")
		return
	}
	s.respondJSON(w, http.StatusOK, toModuleDTO(*m))
}

func (s *Server) handleCreateModule(w http.ResponseWriter, r *http.Request) {
	var req moduleRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	m := req.toDomain()
	if err := s.svc.Catalog.Create(r.Context(), m); err != nil {
		s.respondServiceError(w, r, err, "create module")
		return
	}
	s.respondJSON(w, http.StatusCreated, toModuleDTO(*m))
}

func (s *Server) handleUpdateModule(w http.ResponseWriter, r *http.Request) {
	existing, err := s.svc.Catalog.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.respondServiceError(w, r, err, "update module")
		return
	}
	var req moduleRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	m := req.toDomain()
	m.ID = existing.ID
	if m.Code == "" {
		m.Code = existing.Code
	}
	if err := s.svc.Catalog.Update(r.Context(), m); err != nil {
		s.respondServiceError(w, r, err, "update module")
		return
	}
	s.respondJSON(w, http.StatusOK, toModuleDTO(*m))
}

func (s *Server) handleDeleteModule(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Catalog.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.respondServiceError(w, r, err, "delete module")
		return
	}
	if err := s.svc.Catalog.Delete(r.Context(), m.ID); err != nil {
		s.respondServiceError(w, r, err, "delete module")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": m.Code})
}

// Rates

func (s *Server) handleListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := s.svc.Rates.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list rates")
		return
	}
	out := make([]rateDTO, 0, len(rates))
	for _, rt := range rates {
		out = append(out, toRateDTO(rt))
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleSetRates upserts every posted rate and returns the full table.
func (s *Server) handleSetRates(w http.ResponseWriter, r *http.Request) {
	var req []rateDTO
	if !s.decodeBody(w, r, &req) {
		return
	}
	for _, rt := range req {
		if _, err := s.svc.Rates.Set(r.Context(), domain.Role(rt.Role), domain.Level(rt.Level), rt.HourlyRate); err != nil {
			s.respondServiceError(w, r, err, "set rates")
			return
		}
	}
	s.handleListRates(w, r)
}

func (s *Server) handleDeleteRate(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(chi.URLParam(r, "role"))
	level := domain.Level(chi.URLParam(r, "level"))
	if err := s.svc.Rates.Delete(r.Context(), role, level); err != nil {
		s.respondServiceError(w, r, err, "delete rate")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"role": string(role), "level": string(level)})
}

// Infrastructure items

func (s *Server) handleListInfraItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Infrastructure.ListItems(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list infrastructure")
		return
	}
	out := make([]infraItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toInfraItemDTO(it))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateInfraItem(w http.ResponseWriter, r *http.Request) {
	var req infraItemDTO
	if !s.decodeBody(w, r, &req) {
		return
	}
	item := &domain.InfrastructureItem{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		UnitCost:    req.UnitCost,
	}
	if err := s.svc.Infrastructure.CreateItem(r.Context(), item); err != nil {
		s.respondServiceError(w, r, err, "create infrastructure item")
		return
	}
	s.respondJSON(w, http.StatusCreated, toInfraItemDTO(*item))
}

func (s *Server) handleDeleteInfraItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.Infrastructure.DeleteItem(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, "delete infrastructure item")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
