package api

import (
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/estimate"
	"github.com/alexanderramin/estimator/internal/intelligence"
	"github.com/alexanderramin/estimator/internal/service"
)

// Wire types are mapped explicitly so storage and domain structs can change
// without breaking clients.

type roleHoursDTO struct {
	Role  string  `json:"role"`
	Hours float64 `json:"hours"`
}

type moduleDTO struct {
	ID            string         `json:"id"`
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	HoursFrontend float64        `json:"hours_frontend"`
	HoursBackend  float64        `json:"hours_backend"`
	HoursQA       float64        `json:"hours_qa"`
	RoleHours     []roleHoursDTO `json:"role_hours"`
}

type moduleRequest struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	HoursFrontend float64        `json:"hours_frontend"`
	HoursBackend  float64        `json:"hours_backend"`
	HoursQA       float64        `json:"hours_qa"`
	RoleHours     []roleHoursDTO `json:"role_hours"`
}

func (req moduleRequest) toDomain() *domain.CatalogEntry {
	return &domain.CatalogEntry{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Hours:       domain.ModuleHours{Frontend: req.HoursFrontend, Backend: req.HoursBackend, QA: req.HoursQA},
		RoleHours:   roleHoursFromDTO(req.RoleHours),
	}
}

type projectDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	UncertaintyLevel string    `json:"uncertainty_level"`
	UIUXLevel        string    `json:"uiux_level"`
	LegacyCode       bool      `json:"legacy_code"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// projectRequest serves both create and update; on update, empty strings
// and a nil legacy flag keep the stored value.
type projectRequest struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	UncertaintyLevel string  `json:"uncertainty_level"`
	UIUXLevel        string  `json:"uiux_level"`
	LegacyCode       *bool   `json:"legacy_code"`
}

type projectModuleDTO struct {
	ID               string   `json:"id"`
	ProjectID        string   `json:"project_id"`
	ModuleID         string   `json:"module_id"`
	ModuleCode       string   `json:"module_code"`
	Name             string   `json:"name"`
	CustomName       string   `json:"custom_name"`
	BaseHours        hoursDTO `json:"base_hours"`
	OverrideFrontend *float64 `json:"override_frontend"`
	OverrideBackend  *float64 `json:"override_backend"`
	OverrideQA       *float64 `json:"override_qa"`
	UncertaintyLevel *string  `json:"uncertainty_level"`
	UIUXLevel        *string  `json:"uiux_level"`
	LegacyCode       *bool    `json:"legacy_code"`
}

type hoursDTO struct {
	Frontend float64 `json:"frontend"`
	Backend  float64 `json:"backend"`
	QA       float64 `json:"qa"`
}

type attachModuleRequest struct {
	ModuleID   string `json:"module_id"`
	ModuleCode string `json:"module_code"`
	projectModuleRequest
}

// projectModuleRequest carries the editable fields of a project module.
// A null override clears it.
type projectModuleRequest struct {
	CustomName       string   `json:"custom_name"`
	OverrideFrontend *float64 `json:"override_frontend"`
	OverrideBackend  *float64 `json:"override_backend"`
	OverrideQA       *float64 `json:"override_qa"`
	UncertaintyLevel *string  `json:"uncertainty_level"`
	UIUXLevel        *string  `json:"uiux_level"`
	LegacyCode       *bool    `json:"legacy_code"`
}

func (req projectModuleRequest) applyTo(pm *domain.ProjectModule) {
	pm.CustomName = req.CustomName
	pm.OverrideFrontend = req.OverrideFrontend
	pm.OverrideBackend = req.OverrideBackend
	pm.OverrideQA = req.OverrideQA
	pm.UncertaintyLevel = req.UncertaintyLevel
	pm.UIUXLevel = req.UIUXLevel
	pm.LegacyCode = req.LegacyCode
}

type rateDTO struct {
	ID         string  `json:"id,omitempty"`
	Role       string  `json:"role"`
	Level      string  `json:"level"`
	HourlyRate float64 `json:"hourly_rate"`
}

type assignmentDTO struct {
	ID              string `json:"id,omitempty"`
	ProjectModuleID string `json:"project_module_id"`
	Role            string `json:"role"`
	Level           string `json:"level"`
}

type infraItemDTO struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitCost    float64 `json:"unit_cost"`
}

type infraLineDTO struct {
	ID       string        `json:"id"`
	ItemID   string        `json:"infrastructure_item_id"`
	Quantity int           `json:"quantity"`
	Item     *infraItemDTO `json:"item"`
}

type infraLineRequest struct {
	ItemID   string `json:"infrastructure_item_id"`
	Quantity int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type scenarioDTO struct {
	Kind       string  `json:"kind"`
	Label      string  `json:"label"`
	TotalHours float64 `json:"total_hours"`
	TotalCost  float64 `json:"total_cost"`
}

type summaryDTO struct {
	ProjectID     string        `json:"project_id"`
	HoursFrontend float64       `json:"hours_frontend"`
	HoursBackend  float64       `json:"hours_backend"`
	HoursQA       float64       `json:"hours_qa"`
	HoursTotal    float64       `json:"hours_total"`
	InfraCost     float64       `json:"infra_cost"`
	CostTotal     float64       `json:"cost_total"`
	Scenarios     []scenarioDTO `json:"scenarios"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type taskDTO struct {
	Title      string  `json:"title"`
	Details    string  `json:"details"`
	ModuleCode string  `json:"module_code"`
	Confidence float64 `json:"confidence"`
}

type suggestionDTO struct {
	ModuleCode string  `json:"module_code"`
	Confidence float64 `json:"confidence"`
	Notes      string  `json:"notes"`
}

type decompositionDTO struct {
	Tasks       []taskDTO       `json:"tasks"`
	Suggestions []suggestionDTO `json:"suggestions"`
	Rationale   string          `json:"rationale"`
	Source      string          `json:"source"`
}

type graphNodeDTO struct {
	Key        string         `json:"key"`
	Title      string         `json:"title"`
	Details    string         `json:"details"`
	ModuleCode string         `json:"module_code"`
	Hours      hoursDTO       `json:"hours"`
	RoleHours  []roleHoursDTO `json:"role_hours"`
}

type graphConnectionDTO struct {
	FromKey string `json:"from_key"`
	ToKey   string `json:"to_key"`
}

type graphDTO struct {
	Nodes       []graphNodeDTO       `json:"nodes"`
	Connections []graphConnectionDTO `json:"connections"`
}

type mindmapResultDTO struct {
	decompositionDTO
	Mindmap graphDTO `json:"mindmap"`
}

type nodeDTO struct {
	ID               string         `json:"id"`
	ModuleID         *string        `json:"module_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	IsAI             bool           `json:"is_ai"`
	HoursFrontend    float64        `json:"hours_frontend"`
	HoursBackend     float64        `json:"hours_backend"`
	HoursQA          float64        `json:"hours_qa"`
	UncertaintyLevel *string        `json:"uncertainty_level"`
	UIUXLevel        *string        `json:"uiux_level"`
	LegacyCode       *bool          `json:"legacy_code"`
	PositionX        float64        `json:"position_x"`
	PositionY        float64        `json:"position_y"`
	RoleHours        []roleHoursDTO `json:"role_hours"`
}

type nodeRequest struct {
	ModuleID         *string        `json:"module_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	IsAI             bool           `json:"is_ai"`
	HoursFrontend    float64        `json:"hours_frontend"`
	HoursBackend     float64        `json:"hours_backend"`
	HoursQA          float64        `json:"hours_qa"`
	UncertaintyLevel *string        `json:"uncertainty_level"`
	UIUXLevel        *string        `json:"uiux_level"`
	LegacyCode       *bool          `json:"legacy_code"`
	PositionX        float64        `json:"position_x"`
	PositionY        float64        `json:"position_y"`
	RoleHours        []roleHoursDTO `json:"role_hours"`
}

func (req nodeRequest) toDomain(projectID string) *domain.MindmapNode {
	return &domain.MindmapNode{
		ProjectID:        projectID,
		ModuleID:         req.ModuleID,
		Title:            req.Title,
		Description:      req.Description,
		IsAI:             req.IsAI,
		Hours:            domain.ModuleHours{Frontend: req.HoursFrontend, Backend: req.HoursBackend, QA: req.HoursQA},
		UncertaintyLevel: req.UncertaintyLevel,
		UIUXLevel:        req.UIUXLevel,
		LegacyCode:       req.LegacyCode,
		PositionX:        req.PositionX,
		PositionY:        req.PositionY,
		RoleHours:        roleHoursFromDTO(req.RoleHours),
	}
}

type noteDTO struct {
	ID        string  `json:"id,omitempty"`
	Content   string  `json:"content"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

type connectionDTO struct {
	FromNodeID string `json:"from_node_id"`
	ToNodeID   string `json:"to_node_id"`
}

type mindmapStateDTO struct {
	Nodes       []nodeDTO       `json:"nodes"`
	Connections []connectionDTO `json:"connections"`
	Notes       []noteDTO       `json:"notes"`
}

type versionDTO struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	CreatedAt time.Time               `json:"created_at"`
	Snapshot  *domain.MindmapSnapshot `json:"snapshot,omitempty"`
}

type versionRequest struct {
	Title    string                  `json:"title"`
	Snapshot *domain.MindmapSnapshot `json:"snapshot"`
}

func roleHoursToDTO(in []domain.RoleHours) []roleHoursDTO {
	out := make([]roleHoursDTO, 0, len(in))
	for _, rh := range in {
		out = append(out, roleHoursDTO{Role: string(rh.Role), Hours: rh.Hours})
	}
	return out
}

func roleHoursFromDTO(in []roleHoursDTO) []domain.RoleHours {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.RoleHours, 0, len(in))
	for _, rh := range in {
		out = append(out, domain.RoleHours{Role: domain.Role(rh.Role), Hours: rh.Hours})
	}
	return out
}

func toHoursDTO(h domain.ModuleHours) hoursDTO {
	return hoursDTO{Frontend: h.Frontend, Backend: h.Backend, QA: h.QA}
}

func toModuleDTO(m domain.CatalogEntry) moduleDTO {
	return moduleDTO{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		HoursFrontend: m.Hours.Frontend,
		HoursBackend:  m.Hours.Backend,
		HoursQA:       m.Hours.QA,
		RoleHours:     roleHoursToDTO(m.RoleHours),
	}
}

func toProjectDTO(p *domain.Project) projectDTO {
	return projectDTO{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		UncertaintyLevel: p.UncertaintyLevel,
		UIUXLevel:        p.UIUXLevel,
		LegacyCode:       p.LegacyCode,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProjectModuleDTO(pm domain.ProjectModule) projectModuleDTO {
	out := projectModuleDTO{
		ID:               pm.ID,
		ProjectID:        pm.ProjectID,
		ModuleID:         pm.ModuleID,
		Name:             pm.DisplayName(),
		CustomName:       pm.CustomName,
		OverrideFrontend: pm.OverrideFrontend,
		OverrideBackend:  pm.OverrideBackend,
		OverrideQA:       pm.OverrideQA,
		UncertaintyLevel: pm.UncertaintyLevel,
		UIUXLevel:        pm.UIUXLevel,
		LegacyCode:       pm.LegacyCode,
	}
	if pm.Module != nil {
		out.ModuleCode = pm.Module.Code
		out.BaseHours = toHoursDTO(pm.Module.Hours)
	}
	return out
}

func toRateDTO(r domain.Rate) rateDTO {
	return rateDTO{ID: r.ID, Role: string(r.Role), Level: string(r.Level), HourlyRate: r.HourlyRate}
}

func toAssignmentDTO(a domain.Assignment) assignmentDTO {
	return assignmentDTO{ID: a.ID, ProjectModuleID: a.ProjectModuleID, Role: string(a.Role), Level: string(a.Level)}
}

func toInfraItemDTO(it domain.InfrastructureItem) infraItemDTO {
	return infraItemDTO{ID: it.ID, Code: it.Code, Name: it.Name, Description: it.Description, UnitCost: it.UnitCost}
}

func toInfraLineDTO(l domain.InfrastructureLine) infraLineDTO {
	out := infraLineDTO{ID: l.ID, ItemID: l.InfrastructureItemID, Quantity: l.Quantity}
	if l.Item != nil {
		item := toInfraItemDTO(*l.Item)
		out.Item = &item
	}
	return out
}

func toSummaryDTO(s *service.ProjectSummary) summaryDTO {
	out := summaryDTO{
		ProjectID:     s.Project.ID,
		HoursFrontend: s.Totals.HoursFrontend,
		HoursBackend:  s.Totals.HoursBackend,
		HoursQA:       s.Totals.HoursQA,
		HoursTotal:    s.Totals.HoursTotal,
		InfraCost:     s.Totals.InfraCost,
		CostTotal:     s.Totals.CostTotal,
		Scenarios:     make([]scenarioDTO, 0, len(s.Scenarios)),
	}
	for _, sc := range s.Scenarios {
		out.Scenarios = append(out.Scenarios, toScenarioDTO(sc))
	}
	return out
}

func toScenarioDTO(sc estimate.ScenarioResult) scenarioDTO {
	return scenarioDTO{Kind: string(sc.Kind), Label: sc.Label, TotalHours: sc.TotalHours, TotalCost: sc.TotalCost}
}

func toDecompositionDTO(d domain.Decomposition) decompositionDTO {
	out := decompositionDTO{
		Tasks:       make([]taskDTO, 0, len(d.Tasks)),
		Suggestions: make([]suggestionDTO, 0, len(d.Suggestions)),
		Rationale:   d.Rationale,
		Source:      string(d.Source),
	}
	for _, t := range d.Tasks {
		out.Tasks = append(out.Tasks, taskDTO{Title: t.Title, Details: t.Details, ModuleCode: t.ModuleCode, Confidence: t.Confidence})
	}
	for _, sg := range d.Suggestions {
		out.Suggestions = append(out.Suggestions, suggestionDTO{ModuleCode: sg.ModuleCode, Confidence: sg.Confidence, Notes: sg.Notes})
	}
	return out
}

func toGraphDTO(g domain.MindmapGraph) graphDTO {
	out := graphDTO{
		Nodes:       make([]graphNodeDTO, 0, len(g.Nodes)),
		Connections: make([]graphConnectionDTO, 0, len(g.Connections)),
	}
	for _, n := range g.Nodes {
		out.Nodes = append(out.Nodes, graphNodeDTO{
			Key:        n.Key,
			Title:      n.Title,
			Details:    n.Details,
			ModuleCode: n.ModuleCode,
			Hours:      toHoursDTO(n.Hours),
			RoleHours:  roleHoursToDTO(n.RoleHours),
		})
	}
	for _, c := range g.Connections {
		out.Connections = append(out.Connections, graphConnectionDTO{FromKey: c.FromKey, ToKey: c.ToKey})
	}
	return out
}

func toMindmapResultDTO(res *intelligence.MindmapResult) mindmapResultDTO {
	return mindmapResultDTO{
		decompositionDTO: toDecompositionDTO(res.Decomposition),
		Mindmap:          toGraphDTO(res.Graph),
	}
}

func toNodeDTO(n domain.MindmapNode) nodeDTO {
	return nodeDTO{
		ID:               n.ID,
		ModuleID:         n.ModuleID,
		Title:            n.Title,
		Description:      n.Description,
		IsAI:             n.IsAI,
		HoursFrontend:    n.Hours.Frontend,
		HoursBackend:     n.Hours.Backend,
		HoursQA:          n.Hours.QA,
		UncertaintyLevel: n.UncertaintyLevel,
		UIUXLevel:        n.UIUXLevel,
		LegacyCode:       n.LegacyCode,
		PositionX:        n.PositionX,
		PositionY:        n.PositionY,
		RoleHours:        roleHoursToDTO(n.RoleHours),
	}
}

func toNoteDTO(n domain.MindmapNote) noteDTO {
	return noteDTO{ID: n.ID, Content: n.Content, PositionX: n.PositionX, PositionY: n.PositionY}
}

func toMindmapStateDTO(st *service.MindmapState) mindmapStateDTO {
	out := mindmapStateDTO{
		Nodes:       make([]nodeDTO, 0, len(st.Nodes)),
		Connections: make([]connectionDTO, 0, len(st.Connections)),
		Notes:       make([]noteDTO, 0, len(st.Notes)),
	}
	for _, n := range st.Nodes {
		out.Nodes = append(out.Nodes, toNodeDTO(n))
	}
	for _, c := range st.Connections {
		out.Connections = append(out.Connections, connectionDTO{FromNodeID: c.FromNodeID, ToNodeID: c.ToNodeID})
	}
	for _, n := range st.Notes {
		out.Notes = append(out.Notes, toNoteDTO(n))
	}
	return out
}

func toVersionDTO(v domain.MindmapVersion, withSnapshot bool) versionDTO {
	out := versionDTO{ID: v.ID, Title: v.Title, CreatedAt: v.CreatedAt}
	if withSnapshot {
		out.Snapshot = v.Snapshot
	}
	return out
}
