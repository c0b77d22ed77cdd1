package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
)

type catalogService struct {
	modules repository.CatalogRepo
	uow     db.UnitOfWork
}

// NewCatalogService reads through modules and writes each entry with its
// role hours in one uow transaction.
func NewCatalogService(modules repository.CatalogRepo, uow db.UnitOfWork) CatalogService {
	return &catalogService{modules: modules, uow: uow}
}

func (s *catalogService) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	return s.modules.List(ctx)
}

func (s *catalogService) GetByCode(ctx context.Context, code string) (*domain.CatalogEntry, error) {
	return s.modules.GetByCode(ctx, normalizeCode(code))
}

func (s *catalogService) Create(ctx context.Context, m *domain.CatalogEntry) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := prepareEntry(m); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCatalogRepo(tx).Create(ctx, m)
	})
}

func (s *catalogService) Update(ctx context.Context, m *domain.CatalogEntry) error {
	if err := prepareEntry(m); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCatalogRepo(tx).Update(ctx, m)
	})
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.modules.Delete(ctx, id)
}

func prepareEntry(m *domain.CatalogEntry) error {
	m.Code = normalizeCode(m.Code)
	m.Name = strings.TrimSpace(m.Name)
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
