package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/winston1234564757/Smartfix-sub000/internal/clock"
	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type InventoryRepository interface {
	GetUnits(ctx context.Context, ids []string) ([]domain.Unit, error)
	TransitionUnits(ctx context.Context, ids []string, from []domain.UnitStatus, to domain.UnitStatus) ([]string, error)
	CreateUnit(ctx context.Context, unit domain.Unit) error
	UpdateUnit(ctx context.Context, unit domain.Unit) error
	GetUnit(ctx context.Context, id string) (domain.Unit, error)
	ListUnits(ctx context.Context, filter domain.UnitFilter) ([]domain.Unit, error)
}

// InventoryService is the ledger surface: unit reads for the storefront and
// the sanctioned mutation paths for back-office inventory management.
type InventoryService struct {
	repo  InventoryRepository
	clock clock.Clock
}

func NewInventoryService(repo InventoryRepository, clk clock.Clock) *InventoryService {
	return &InventoryService{
		repo:  repo,
		clock: clk,
	}
}

// UnitStatuses reports the current status of every requested unit. A missing
// id fails the whole read; callers must treat unknown ids as invalid input,
// never as available.
func (s *InventoryService) UnitStatuses(ctx context.Context, ids []string) (map[string]domain.UnitStatus, error) {
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "at least one unit id is required")
	}
	units, err := s.repo.GetUnits(ctx, ids)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]domain.UnitStatus, len(units))
	for _, u := range units {
		statuses[u.ID] = u.Status
	}
	return statuses, nil
}

func (s *InventoryService) GetUnit(ctx context.Context, id string) (domain.Unit, error) {
	if id == "" {
		return domain.Unit{}, domain.ErrInvalidID
	}
	return s.repo.GetUnit(ctx, id)
}

func (s *InventoryService) ListUnits(ctx context.Context, filter domain.UnitFilter) ([]domain.Unit, error) {
	if filter.Status != "" {
		if _, err := domain.ParseUnitStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}
	return s.repo.ListUnits(ctx, filter)
}

type UnitInput struct {
	Title      string
	PriceCents int64
	Category   string
	Condition  string
	Specs      string
	ImageURL   string
}

func (in UnitInput) validate() error {
	if in.Title == "" {
		return domain.NewValidationError("title", "required")
	}
	if in.PriceCents < 0 {
		return domain.NewValidationError("price_cents", "must be non-negative")
	}
	return nil
}

func (s *InventoryService) CreateUnit(ctx context.Context, in UnitInput) (domain.Unit, error) {
	if err := in.validate(); err != nil {
		return domain.Unit{}, err
	}
	now := s.clock.Now()
	unit := domain.Unit{
		ID:         uuid.NewString(),
		Title:      in.Title,
		PriceCents: in.PriceCents,
		Status:     domain.UnitStatusAvailable,
		Category:   in.Category,
		Condition:  in.Condition,
		Specs:      in.Specs,
		ImageURL:   in.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateUnit(ctx, unit); err != nil {
		return domain.Unit{}, err
	}
	return unit, nil
}

// UpdateUnit edits descriptive fields and the listed price. Status is not
// touched here: all status changes go through SetUnitStatus.
func (s *InventoryService) UpdateUnit(ctx context.Context, id string, in UnitInput) (domain.Unit, error) {
	if id == "" {
		return domain.Unit{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.Unit{}, err
	}
	unit, err := s.repo.GetUnit(ctx, id)
	if err != nil {
		return domain.Unit{}, err
	}
	unit.Title = in.Title
	unit.PriceCents = in.PriceCents
	unit.Category = in.Category
	unit.Condition = in.Condition
	unit.Specs = in.Specs
	unit.ImageURL = in.ImageURL
	unit.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdateUnit(ctx, unit); err != nil {
		return domain.Unit{}, err
	}
	return unit, nil
}

// SetUnitStatus is the admin override for a unit's lifecycle status, e.g.
// sending a unit to UNDER_REPAIR or back to AVAILABLE. The value must be in
// the closed unit-status enumeration.
func (s *InventoryService) SetUnitStatus(ctx context.Context, id string, raw string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	status, err := domain.ParseUnitStatus(raw)
	if err != nil {
		return err
	}
	moved, err := s.repo.TransitionUnits(ctx, []string{id}, domain.UnitStatuses, status)
	if err != nil {
		return err
	}
	if len(moved) == 0 {
		return domain.ErrUnitNotFound
	}
	return nil
}
