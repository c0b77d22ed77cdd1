package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/domain"
)

func TestExportService_Breakdown(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := pricedProject(t, r)
	require.NoError(t, r.rates.Upsert(ctx, &domain.Rate{ID: "r-pm", Role: domain.RolePM, Level: domain.LevelMiddle, HourlyRate: 50}))

	b, err := r.exportService().Breakdown(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, b.Work, 4)

	assert.Equal(t, domain.RoleFrontend, b.Work[0].Role)
	assert.Equal(t, domain.LevelSenior, b.Work[0].Level)
	assert.Equal(t, 600.0, b.Work[0].Cost)

	assert.Equal(t, domain.RoleBackend, b.Work[1].Role)
	assert.Equal(t, domain.LevelSenior, b.Work[1].Level, "backend defaults to senior")
	assert.Zero(t, b.Work[1].Rate)

	assert.Equal(t, domain.RolePM, b.Work[3].Role)
	assert.Equal(t, domain.LevelMiddle, b.Work[3].Level)
	assert.Equal(t, 200.0, b.Work[3].Cost)

	require.Len(t, b.Infra, 1)
	assert.Equal(t, 200.0, b.Infra[0].TotalCost)
}

func TestExportService_WriteCSV(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := pricedProject(t, r)

	var buf bytes.Buffer
	require.NoError(t, r.exportService().WriteCSV(ctx, proj.ID, &buf))

	want := "Work\n" +
		"Module;Role;Level;Hours;Rate;Cost\n" +
		"Catalog;frontend;senior;10.00;60.00;600.00\n" +
		"Catalog;backend;senior;20.00;0.00;0.00\n" +
		"Catalog;qa;middle;5.00;0.00;0.00\n" +
		"Catalog;pm;middle;4.00;0.00;0.00\n" +
		"\n" +
		"Infrastructure\n" +
		"Item;Quantity;Unit cost;Total\n" +
		"vps item;2;100.00;200.00\n"
	assert.Equal(t, want, buf.String())
}

func TestExportService_MissingProject(t *testing.T) {
	r := setupRepos(t)
	var buf bytes.Buffer
	err := r.exportService().WriteCSV(context.Background(), "missing", &buf)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, buf.String())
}
