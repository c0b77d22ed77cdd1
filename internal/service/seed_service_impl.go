package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/repository"
)

type seedService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSeedService(uow db.UnitOfWork, observers ...UseCaseObserver) SeedService {
	return &seedService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Seed inserts catalog modules whose code is not stored yet, and the rate
// table only when no rate exists. Running it twice changes nothing.
func (s *seedService) Seed(ctx context.Context, data *SeedData) (result *SeedResult, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "seed", fields)
	defer func() { done(err) }()

	if data == nil {
		data = DefaultSeedData()
	}
	result = &SeedResult{}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txModules := repository.NewSQLiteCatalogRepo(tx)
		txRates := repository.NewSQLiteRateRepo(tx)

		existing, err := txModules.List(ctx)
		if err != nil {
			return err
		}
		codes := make(map[string]bool, len(existing))
		for _, m := range existing {
			codes[m.Code] = true
		}

		for _, m := range data.Modules {
			if codes[m.Code] {
				result.ModulesSkipped++
				continue
			}
			entry := m
			entry.ID = uuid.New().String()
			if err := txModules.Create(ctx, &entry); err != nil {
				return fmt.Errorf("seeding module %q: %w", m.Code, err)
			}
			codes[m.Code] = true
			result.ModulesCreated++
		}

		rates, err := txRates.List(ctx)
		if err != nil {
			return err
		}
		if len(rates) > 0 {
			return nil
		}
		for _, r := range data.Rates {
			rate := r
			rate.ID = uuid.New().String()
			if err := txRates.Upsert(ctx, &rate); err != nil {
				return fmt.Errorf("seeding rate %s/%s: %w", r.Role, r.Level, err)
			}
			result.RatesCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["modules_created"] = result.ModulesCreated
	fields["rates_created"] = result.RatesCreated
	return result, nil
}
