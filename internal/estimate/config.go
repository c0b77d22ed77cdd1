package estimate

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Config carries every tunable the estimation engine reads. It is passed in
// at call time; the package holds no global settings.
type Config struct {
	UncertaintyCoefficients map[string]float64
	UIUXCoefficients        map[string]float64
	LegacyMultiplier        float64
	OptimisticMultiplier    float64
	PessimisticMultiplier   float64
	// DefaultLevels staffs a fixed role when a project module has no assignment.
	DefaultLevels map[domain.Role]domain.Level
}

// DefaultConfig returns the stock coefficient tables and multipliers.
func DefaultConfig() Config {
	return Config{
		UncertaintyCoefficients: map[string]float64{
			"known":    1.0,
			"new_tech": 1.5,
		},
		UIUXCoefficients: map[string]float64{
			"mvp":   1.0,
			"award": 2.5,
		},
		LegacyMultiplier:      1.3,
		OptimisticMultiplier:  0.85,
		PessimisticMultiplier: 1.25,
		DefaultLevels: map[domain.Role]domain.Level{
			domain.RoleFrontend: domain.LevelMiddle,
			domain.RoleBackend:  domain.LevelSenior,
			domain.RoleQA:       domain.LevelMiddle,
		},
	}
}

// DefaultLevel returns the fallback level for role, "middle" when the role
// is not in the table.
func (c Config) DefaultLevel(role domain.Role) domain.Level {
	if lvl, ok := c.DefaultLevels[role]; ok && lvl != "" {
		return lvl
	}
	return domain.LevelMiddle
}

// Validate rejects multipliers that would invert or zero out estimates.
func (c Config) Validate() error {
	if c.LegacyMultiplier <= 0 {
		return fmt.Errorf("legacy multiplier must be positive, got %v", c.LegacyMultiplier)
	}
	if c.OptimisticMultiplier <= 0 || c.OptimisticMultiplier > 1 {
		return fmt.Errorf("optimistic multiplier must be in (0, 1], got %v", c.OptimisticMultiplier)
	}
	if c.PessimisticMultiplier < 1 {
		return fmt.Errorf("pessimistic multiplier must be >= 1, got %v", c.PessimisticMultiplier)
	}
	for name, v := range c.UncertaintyCoefficients {
		if v <= 0 {
			return fmt.Errorf("uncertainty coefficient %q must be positive, got %v", name, v)
		}
	}
	for name, v := range c.UIUXCoefficients {
		if v <= 0 {
			return fmt.Errorf("uiux coefficient %q must be positive, got %v", name, v)
		}
	}
	return nil
}
