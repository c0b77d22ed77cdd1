package domain

// Role identifies who performs a slice of module work. The three fixed roles
// drive cost aggregation; other roles (pm, ux, ...) only appear as extra
// role hours.
type Role string

const (
	RoleFrontend Role = "frontend"
	RoleBackend  Role = "backend"
	RoleQA       Role = "qa"
	RolePM       Role = "pm"
	RoleUX       Role = "ux"
)

// FixedRoles lists the roles carried by ModuleHours, in aggregation order.
var FixedRoles = []Role{RoleFrontend, RoleBackend, RoleQA}

// Level is a seniority tier. The estimation engine treats it as an opaque
// lookup key into the rate table.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMiddle Level = "middle"
	LevelSenior Level = "senior"
)

// ScenarioKind is the stable identifier of a projection scenario.
type ScenarioKind string

const (
	ScenarioOptimistic  ScenarioKind = "optimistic"
	ScenarioRealistic   ScenarioKind = "realistic"
	ScenarioPessimistic ScenarioKind = "pessimistic"
)

// Default project coefficient levels.
const (
	DefaultUncertaintyLevel = "known"
	DefaultUIUXLevel        = "mvp"
)
