package estimate

import "github.com/alexanderramin/estimator/internal/domain"

// MergeOverrides replaces each base component whose override is non-nil.
func MergeOverrides(base domain.ModuleHours, overrideFrontend, overrideBackend, overrideQA *float64) domain.ModuleHours {
	return domain.ModuleHours{
		Frontend: domain.Float64FromPtrWithDefault(base.Frontend, overrideFrontend),
		Backend:  domain.Float64FromPtrWithDefault(base.Backend, overrideBackend),
		QA:       domain.Float64FromPtrWithDefault(base.QA, overrideQA),
	}
}

// ResolveEffectiveLevel returns the module level when present and non-empty,
// otherwise the project level.
func ResolveEffectiveLevel(projectLevel string, moduleLevel *string) string {
	return domain.StrFromPtrWithDefault(projectLevel, moduleLevel)
}

// ApplyProjectCoefficients scales hours by the uncertainty, UI/UX and legacy
// factors. Unknown level names act as factor 1.0. The UI/UX factor applies
// to frontend only.
func ApplyProjectCoefficients(cfg Config, hours domain.ModuleHours, uncertaintyLevel, uiuxLevel string, legacyCode bool) domain.ModuleHours {
	uncertainty := lookupFactor(cfg.UncertaintyCoefficients, uncertaintyLevel)
	uiux := lookupFactor(cfg.UIUXCoefficients, uiuxLevel)
	legacy := 1.0
	if legacyCode {
		legacy = cfg.LegacyMultiplier
	}

	return domain.ModuleHours{
		Frontend: hours.Frontend * uncertainty * uiux * legacy,
		Backend:  hours.Backend * uncertainty * legacy,
		QA:       hours.QA * uncertainty * legacy,
	}
}

// ApplyExtraMultiplier scales all three components. A multiplier of exactly
// 1.0 returns hours untouched.
func ApplyExtraMultiplier(hours domain.ModuleHours, multiplier float64) domain.ModuleHours {
	if multiplier == 1.0 {
		return hours
	}
	return domain.ModuleHours{
		Frontend: hours.Frontend * multiplier,
		Backend:  hours.Backend * multiplier,
		QA:       hours.QA * multiplier,
	}
}

// AdjustedHours runs the full coefficient pipeline for one project module:
// catalog hours, overrides, per-module level resolution, coefficients.
func AdjustedHours(cfg Config, project domain.Project, pm domain.ProjectModule) domain.ModuleHours {
	var base domain.ModuleHours
	if pm.Module != nil {
		base = pm.Module.Hours
	}
	merged := MergeOverrides(base, pm.OverrideFrontend, pm.OverrideBackend, pm.OverrideQA)

	uncertaintyLevel := ResolveEffectiveLevel(project.UncertaintyLevel, pm.UncertaintyLevel)
	uiuxLevel := ResolveEffectiveLevel(project.UIUXLevel, pm.UIUXLevel)
	legacyCode := domain.BoolFromPtrWithDefault(project.LegacyCode, pm.LegacyCode)

	return ApplyProjectCoefficients(cfg, merged, uncertaintyLevel, uiuxLevel, legacyCode)
}

func lookupFactor(table map[string]float64, level string) float64 {
	if f, ok := table[level]; ok {
		return f
	}
	return 1.0
}
