package estimate

import "github.com/alexanderramin/estimator/internal/domain"

// WorkRow is one priced (module, role) line of an export.
type WorkRow struct {
	ModuleName string
	Role       domain.Role
	Level      domain.Level
	Hours      float64
	Rate       float64
	Cost       float64
}

// InfraRow is one priced infrastructure line of an export.
type InfraRow struct {
	Name      string
	Quantity  int
	UnitCost  float64
	TotalCost float64
}

const unnamedInfrastructure = "Infrastructure"

// BuildWorkRows breaks every project module into per-role rows. Fixed roles
// carry coefficient-adjusted hours; extra catalog role hours follow as-is.
func BuildWorkRows(cfg Config, in Input) []WorkRow {
	var rows []WorkRow
	for _, pm := range in.Modules {
		adjusted := AdjustedHours(cfg, in.Project, pm)
		name := pm.DisplayName()

		for _, role := range domain.FixedRoles {
			rows = append(rows, priceRow(cfg, in, pm.ID, name, role, adjusted.ForRole(role)))
		}

		if pm.Module == nil {
			continue
		}
		for _, rh := range pm.Module.RoleHours {
			if rh.Hours <= 0 {
				continue
			}
			rows = append(rows, priceRow(cfg, in, pm.ID, name, rh.Role, rh.Hours))
		}
	}
	return rows
}

// BuildInfraRows prices every infrastructure line.
func BuildInfraRows(lines []domain.InfrastructureLine) []InfraRow {
	rows := make([]InfraRow, 0, len(lines))
	for _, line := range lines {
		name := unnamedInfrastructure
		if line.Item != nil {
			name = line.Item.Name
		}
		unit := lineUnitCost(line)
		rows = append(rows, InfraRow{
			Name:      name,
			Quantity:  line.Quantity,
			UnitCost:  unit,
			TotalCost: unit * float64(line.Quantity),
		})
	}
	return rows
}

func priceRow(cfg Config, in Input, projectModuleID, name string, role domain.Role, hours float64) WorkRow {
	level := ResolveLevel(cfg, in.Assignments, projectModuleID, role)
	rate := in.Rates.Lookup(role, level)
	return WorkRow{
		ModuleName: name,
		Role:       role,
		Level:      level,
		Hours:      hours,
		Rate:       rate,
		Cost:       hours * rate,
	}
}
