package estimate

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func randomHours(rng *rand.Rand) domain.ModuleHours {
	return domain.ModuleHours{
		Frontend: rng.Float64() * 100,
		Backend:  rng.Float64() * 100,
		QA:       rng.Float64() * 40,
	}
}

func TestApplyExtraMultiplier_IdentityAtOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		h := randomHours(rng)
		assert.Equal(t, h, ApplyExtraMultiplier(h, 1.0))
	}
}

func TestApplyExtraMultiplier_ScalesAllComponents(t *testing.T) {
	got := ApplyExtraMultiplier(domain.ModuleHours{Frontend: 2, Backend: 4, QA: 1}, 1.5)
	assert.InDelta(t, 3.0, got.Frontend, 1e-9)
	assert.InDelta(t, 6.0, got.Backend, 1e-9)
	assert.InDelta(t, 1.5, got.QA, 1e-9)
}

func TestApplyProjectCoefficients_NeutralLevelsAreIdentity(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		h := randomHours(rng)
		assert.Equal(t, h, ApplyProjectCoefficients(cfg, h, "known", "mvp", false))
	}
}

func TestApplyProjectCoefficients_LegacyMultiplier(t *testing.T) {
	cfg := DefaultConfig()
	h := domain.ModuleHours{Frontend: 6, Backend: 10, QA: 3}

	for _, level := range []string{"known", "new_tech"} {
		factor := cfg.UncertaintyCoefficients[level]
		got := ApplyProjectCoefficients(cfg, h, level, "mvp", true)
		assert.InDelta(t, 10*factor*1.3, got.Backend, 1e-9, level)
		assert.InDelta(t, 3*factor*1.3, got.QA, 1e-9, level)
		assert.InDelta(t, 6*factor*1.3, got.Frontend, 1e-9, level)
	}
}

func TestApplyProjectCoefficients_UIUXOnlyAffectsFrontend(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		h := randomHours(rng)
		for _, u := range []string{"known", "new_tech", "unheard_of"} {
			award := ApplyProjectCoefficients(cfg, h, u, "award", false)
			mvp := ApplyProjectCoefficients(cfg, h, u, "mvp", false)
			assert.Equal(t, mvp.Backend, award.Backend)
			assert.Equal(t, mvp.QA, award.QA)
			assert.InDelta(t, mvp.Frontend*2.5, award.Frontend, 1e-9)
		}
	}
}

func TestApplyProjectCoefficients_UnknownLevelsAreNoOps(t *testing.T) {
	cfg := DefaultConfig()
	h := domain.ModuleHours{Frontend: 5, Backend: 7, QA: 2}
	assert.Equal(t, h, ApplyProjectCoefficients(cfg, h, "mystery", "baroque", false))
}

func TestApplyProjectCoefficients_UsesSuppliedConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UncertaintyCoefficients = map[string]float64{"risky": 2}
	cfg.LegacyMultiplier = 1.1

	got := ApplyProjectCoefficients(cfg, domain.ModuleHours{Frontend: 1, Backend: 1, QA: 1}, "risky", "mvp", true)
	assert.InDelta(t, 2.2, got.Backend, 1e-9)
}

func TestMergeOverrides(t *testing.T) {
	base := domain.ModuleHours{Frontend: 6, Backend: 10, QA: 3}

	assert.Equal(t, base, MergeOverrides(base, nil, nil, nil))

	got := MergeOverrides(base, nil, ptr(0.0), nil)
	assert.Equal(t, domain.ModuleHours{Frontend: 6, Backend: 0, QA: 3}, got)

	got = MergeOverrides(base, ptr(1.0), ptr(2.0), ptr(3.0))
	assert.Equal(t, domain.ModuleHours{Frontend: 1, Backend: 2, QA: 3}, got)
}

func TestResolveEffectiveLevel(t *testing.T) {
	assert.Equal(t, "known", ResolveEffectiveLevel("known", nil))
	assert.Equal(t, "known", ResolveEffectiveLevel("known", ptr("")))
	assert.Equal(t, "new_tech", ResolveEffectiveLevel("known", ptr("new_tech")))
}

func TestAdjustedHours_ModuleOverridesProjectDefaults(t *testing.T) {
	cfg := DefaultConfig()
	project := domain.Project{UncertaintyLevel: "known", UIUXLevel: "mvp", LegacyCode: true}
	pm := domain.ProjectModule{
		ID:               "pm-1",
		Module:           &domain.CatalogEntry{Hours: domain.ModuleHours{Frontend: 4, Backend: 8, QA: 2}},
		OverrideBackend:  ptr(10.0),
		UncertaintyLevel: ptr("new_tech"),
		UIUXLevel:        ptr("award"),
		LegacyCode:       ptr(false),
	}

	got := AdjustedHours(cfg, project, pm)
	assert.InDelta(t, 4*1.5*2.5, got.Frontend, 1e-9)
	assert.InDelta(t, 10*1.5, got.Backend, 1e-9)
	assert.InDelta(t, 2*1.5, got.QA, 1e-9)
}

func TestAdjustedHours_MissingModuleIsZero(t *testing.T) {
	got := AdjustedHours(DefaultConfig(), domain.Project{}, domain.ProjectModule{ID: "x"})
	assert.Equal(t, domain.ModuleHours{}, got)
}
