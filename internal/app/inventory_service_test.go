package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/winston1234564757/Smartfix-sub000/internal/clock"
	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type fakeInventoryRepo struct {
	units map[string]domain.Unit
}

func newFakeInventoryRepo(units ...domain.Unit) *fakeInventoryRepo {
	repo := &fakeInventoryRepo{units: make(map[string]domain.Unit)}
	for _, u := range units {
		repo.units[u.ID] = u
	}
	return repo
}

func (r *fakeInventoryRepo) GetUnits(ctx context.Context, ids []string) ([]domain.Unit, error) {
	units := make([]domain.Unit, 0, len(ids))
	for _, id := range ids {
		u, ok := r.units[id]
		if !ok {
			return nil, domain.ErrUnitNotFound
		}
		units = append(units, u)
	}
	return units, nil
}

func (r *fakeInventoryRepo) TransitionUnits(ctx context.Context, ids []string, from []domain.UnitStatus, to domain.UnitStatus) ([]string, error) {
	var moved []string
	for _, id := range ids {
		u, ok := r.units[id]
		if !ok {
			continue
		}
		for _, s := range from {
			if u.Status == s {
				u.Status = to
				r.units[id] = u
				moved = append(moved, id)
				break
			}
		}
	}
	return moved, nil
}

func (r *fakeInventoryRepo) CreateUnit(ctx context.Context, unit domain.Unit) error {
	r.units[unit.ID] = unit
	return nil
}

func (r *fakeInventoryRepo) UpdateUnit(ctx context.Context, unit domain.Unit) error {
	if _, ok := r.units[unit.ID]; !ok {
		return domain.ErrUnitNotFound
	}
	r.units[unit.ID] = unit
	return nil
}

func (r *fakeInventoryRepo) GetUnit(ctx context.Context, id string) (domain.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return domain.Unit{}, domain.ErrUnitNotFound
	}
	return u, nil
}

func (r *fakeInventoryRepo) ListUnits(ctx context.Context, filter domain.UnitFilter) ([]domain.Unit, error) {
	var units []domain.Unit
	for _, u := range r.units {
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if filter.Category != "" && u.Category != filter.Category {
			continue
		}
		units = append(units, u)
	}
	return units, nil
}

func TestInventoryService_UnitStatuses(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("reports statuses for every id", func(t *testing.T) {
		sold := availableUnit("unit-2", "Galaxy S21", 20000)
		sold.Status = domain.UnitStatusSold
		repo := newFakeInventoryRepo(availableUnit("unit-1", "iPhone 12", 10000), sold)
		svc := NewInventoryService(repo, clock.NewFixed(now))

		statuses, err := svc.UnitStatuses(context.Background(), []string{"unit-1", "unit-2"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if statuses["unit-1"] != domain.UnitStatusAvailable || statuses["unit-2"] != domain.UnitStatusSold {
			t.Fatalf("unexpected statuses: %+v", statuses)
		}
	})

	t.Run("missing id fails the whole read", func(t *testing.T) {
		repo := newFakeInventoryRepo(availableUnit("unit-1", "iPhone 12", 10000))
		svc := NewInventoryService(repo, clock.NewFixed(now))

		_, err := svc.UnitStatuses(context.Background(), []string{"unit-1", "ghost"})
		if !errors.Is(err, domain.ErrUnitNotFound) {
			t.Fatalf("expected ErrUnitNotFound, got %v", err)
		}
	})

	t.Run("empty id set is invalid", func(t *testing.T) {
		svc := NewInventoryService(newFakeInventoryRepo(), clock.NewFixed(now))
		_, err := svc.UnitStatuses(context.Background(), nil)
		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestInventoryService_CreateUnit(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("new units start available", func(t *testing.T) {
		repo := newFakeInventoryRepo()
		svc := NewInventoryService(repo, clock.NewFixed(now))

		unit, err := svc.CreateUnit(context.Background(), UnitInput{
			Title:      "ThinkPad X1",
			PriceCents: 55000,
			Category:   "laptops",
			Condition:  "grade A",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if unit.Status != domain.UnitStatusAvailable {
			t.Fatalf("expected AVAILABLE, got %s", unit.Status)
		}
		if unit.ID == "" {
			t.Fatalf("expected id to be set")
		}
		if _, ok := repo.units[unit.ID]; !ok {
			t.Fatalf("expected unit persisted")
		}
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		svc := NewInventoryService(newFakeInventoryRepo(), clock.NewFixed(now))
		_, err := svc.CreateUnit(context.Background(), UnitInput{Title: "X", PriceCents: -1})
		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestInventoryService_SetUnitStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("moves unit to under repair and back", func(t *testing.T) {
		repo := newFakeInventoryRepo(availableUnit("unit-1", "iPhone 12", 10000))
		svc := NewInventoryService(repo, clock.NewFixed(now))

		if err := svc.SetUnitStatus(context.Background(), "unit-1", "UNDER_REPAIR"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := repo.units["unit-1"].Status; got != domain.UnitStatusUnderRepair {
			t.Fatalf("expected UNDER_REPAIR, got %s", got)
		}

		if err := svc.SetUnitStatus(context.Background(), "unit-1", "AVAILABLE"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := repo.units["unit-1"].Status; got != domain.UnitStatusAvailable {
			t.Fatalf("expected AVAILABLE, got %s", got)
		}
	})

	t.Run("out-of-enum status is rejected", func(t *testing.T) {
		repo := newFakeInventoryRepo(availableUnit("unit-1", "iPhone 12", 10000))
		svc := NewInventoryService(repo, clock.NewFixed(now))

		err := svc.SetUnitStatus(context.Background(), "unit-1", "BROKEN")
		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown unit", func(t *testing.T) {
		svc := NewInventoryService(newFakeInventoryRepo(), clock.NewFixed(now))
		if err := svc.SetUnitStatus(context.Background(), "ghost", "SOLD"); !errors.Is(err, domain.ErrUnitNotFound) {
			t.Fatalf("expected ErrUnitNotFound, got %v", err)
		}
	})
}
