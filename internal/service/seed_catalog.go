package service

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/estimator/internal/domain"
)

//go:embed seeddata/catalog.yaml
var defaultSeedYAML []byte

// SeedData is the catalog and rate table a seed run inserts.
type SeedData struct {
	Modules []domain.CatalogEntry
	Rates   []domain.Rate
}

type seedFile struct {
	Modules []seedModule `yaml:"modules"`
	Rates   []seedRate   `yaml:"rates"`
}

type seedModule struct {
	Code        string             `yaml:"code"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Hours       seedHours          `yaml:"hours"`
	RoleHours   map[string]float64 `yaml:"role_hours"`
}

type seedHours struct {
	Frontend float64 `yaml:"frontend"`
	Backend  float64 `yaml:"backend"`
	QA       float64 `yaml:"qa"`
}

type seedRate struct {
	Role       string  `yaml:"role"`
	Level      string  `yaml:"level"`
	HourlyRate float64 `yaml:"hourly_rate"`
}

// DefaultSeedData returns the built-in fifteen-module catalog and rates.
func DefaultSeedData() *SeedData {
	data, err := ParseSeedData(defaultSeedYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded seed catalog is invalid: %v", err))
	}
	return data
}

// LoadSeedData reads a seed file from path.
func LoadSeedData(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	return ParseSeedData(raw)
}

// ParseSeedData decodes and validates seed YAML. Role hours come back
// sorted by role name.
func ParseSeedData(raw []byte) (*SeedData, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	out := &SeedData{}
	seen := make(map[string]bool, len(f.Modules))
	for i, m := range f.Modules {
		entry := domain.CatalogEntry{
			Code:        normalizeCode(m.Code),
			Name:        strings.TrimSpace(m.Name),
			Description: strings.TrimSpace(m.Description),
			Hours:       domain.ModuleHours{Frontend: m.Hours.Frontend, Backend: m.Hours.Backend, QA: m.Hours.QA},
			RoleHours:   sortedRoleHours(m.RoleHours),
		}
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("modules[%d]: %w", i, err)
		}
		if seen[entry.Code] {
			return nil, fmt.Errorf("modules[%d]: duplicate code %q", i, entry.Code)
		}
		seen[entry.Code] = true
		out.Modules = append(out.Modules, entry)
	}

	for i, r := range f.Rates {
		if r.Role == "" || r.Level == "" || r.HourlyRate < 0 {
			return nil, fmt.Errorf("rates[%d]: role, level and a non-negative rate are required", i)
		}
		out.Rates = append(out.Rates, domain.Rate{
			Role:       domain.Role(r.Role),
			Level:      domain.Level(r.Level),
			HourlyRate: r.HourlyRate,
		})
	}
	return out, nil
}

func sortedRoleHours(m map[string]float64) []domain.RoleHours {
	if len(m) == 0 {
		return nil
	}
	roles := make([]string, 0, len(m))
	for role := range m {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	out := make([]domain.RoleHours, 0, len(roles))
	for _, role := range roles {
		out = append(out, domain.RoleHours{Role: domain.Role(role), Hours: m[role]})
	}
	return out
}
