package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/winston1234564757/Smartfix-sub000/internal/clock"
	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type CheckoutRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUnitsForUpdate(ctx context.Context, ids []string) ([]domain.Unit, error)
	TransitionUnits(ctx context.Context, ids []string, from []domain.UnitStatus, to domain.UnitStatus) ([]string, error)
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	GetOrderForUpdate(ctx context.Context, id string) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
	DeleteOrder(ctx context.Context, id string) error
}

type CheckoutService struct {
	repo          CheckoutRepository
	clock         clock.Clock
	warrantyCents int64
}

const defaultWarrantyCents = 4500

func NewCheckoutService(repo CheckoutRepository, clk clock.Clock, opts ...CheckoutServiceOption) *CheckoutService {
	svc := &CheckoutService{
		repo:          repo,
		clock:         clk,
		warrantyCents: defaultWarrantyCents,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CheckoutServiceOption func(*CheckoutService)

// WithWarrantyPrice overrides the flat price of the extended-warranty add-on.
func WithWarrantyPrice(cents int64) CheckoutServiceOption {
	return func(s *CheckoutService) {
		if cents >= 0 {
			s.warrantyCents = cents
		}
	}
}

// CartLine is one unit in the customer's cart with its selected add-ons.
type CartLine struct {
	UnitID  string
	Options []domain.LineOption
}

type PlaceOrderInput struct {
	Lines           []CartLine
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
	Comment         string
	Warranty        bool
	// UserID is the opaque identifier supplied by the session provider,
	// empty for guest checkout.
	UserID string
}

// PlaceOrder creates an order for the cart and reserves every referenced
// unit, or fails with no partial effect. Prices and statuses are taken from
// a fresh locked read inside the transaction, never from the client.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (domain.Order, error) {
	if err := validatePlaceOrder(in); err != nil {
		return domain.Order{}, err
	}

	ids := make([]string, 0, len(in.Lines))
	optionsByUnit := make(map[string][]domain.LineOption, len(in.Lines))
	for _, line := range in.Lines {
		if _, dup := optionsByUnit[line.UnitID]; dup {
			return domain.Order{}, domain.NewValidationError("cart", "duplicate unit in cart")
		}
		ids = append(ids, line.UnitID)
		optionsByUnit[line.UnitID] = line.Options
	}

	now := s.clock.Now()
	var result domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		units, err := s.repo.GetUnitsForUpdate(txCtx, ids)
		if err != nil {
			return err
		}

		var conflicts []domain.UnitConflict
		for _, u := range units {
			if !u.Status.Buyable() {
				conflicts = append(conflicts, domain.UnitConflict{
					UnitID: u.ID,
					Title:  u.Title,
					Status: u.Status,
				})
			}
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Units: conflicts}
		}

		order := domain.Order{
			ID:              uuid.NewString(),
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			CustomerEmail:   in.CustomerEmail,
			DeliveryAddress: in.DeliveryAddress,
			Comment:         in.Comment,
			UserID:          in.UserID,
			Status:          domain.OrderStatusPending,
			CreatedAt:       now,
		}
		if in.Warranty {
			order.WarrantyCents = s.warrantyCents
		}

		for _, u := range units {
			options := optionsByUnit[u.ID]
			locked := u.PriceCents
			for _, opt := range options {
				locked += opt.PriceCents
			}
			order.Lines = append(order.Lines, domain.OrderLine{
				ID:         uuid.NewString(),
				OrderID:    order.ID,
				UnitID:     u.ID,
				Title:      u.Title,
				PriceCents: locked,
				Options:    options,
			})
			order.TotalCents += locked
		}
		order.TotalCents += order.WarrantyCents

		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			return err
		}

		reserved, err := s.repo.TransitionUnits(txCtx, ids, domain.BuyableUnitStatuses, domain.UnitStatusReserved)
		if err != nil {
			return err
		}
		// A shortfall means a concurrent placement claimed at least one unit
		// after our read; abort so the order insert rolls back with it.
		if len(reserved) != len(ids) {
			return conflictForLosers(units, reserved)
		}

		result = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return result, nil
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if len(in.Lines) == 0 {
		return domain.NewValidationError("cart", "cart is empty")
	}
	if in.CustomerName == "" {
		return domain.NewValidationError("customer_name", "required")
	}
	if in.CustomerPhone == "" {
		return domain.NewValidationError("customer_phone", "required")
	}
	for _, line := range in.Lines {
		if line.UnitID == "" {
			return domain.NewValidationError("cart", "unit id is required")
		}
		for _, opt := range line.Options {
			if opt.Label == "" {
				return domain.NewValidationError("options", "option label is required")
			}
			if opt.PriceCents < 0 {
				return domain.NewValidationError("options", "option price must be non-negative")
			}
		}
	}
	return nil
}

func conflictForLosers(units []domain.Unit, reserved []string) error {
	won := make(map[string]struct{}, len(reserved))
	for _, id := range reserved {
		won[id] = struct{}{}
	}
	conflict := &domain.ConflictError{}
	for _, u := range units {
		if _, ok := won[u.ID]; !ok {
			conflict.Units = append(conflict.Units, domain.UnitConflict{
				UnitID: u.ID,
				Title:  u.Title,
				Status: u.Status,
			})
		}
	}
	return conflict
}

func (s *CheckoutService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ErrInvalidID
	}
	return s.repo.GetOrder(ctx, id)
}

func (s *CheckoutService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

// CancelOrder cancels a pending or confirmed order and returns its reserved
// units to AVAILABLE in the same transaction.
func (s *CheckoutService) CancelOrder(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if !order.Cancellable() {
			return domain.ErrOrderNotCancellable
		}
		if err := s.releaseUnits(txCtx, order, []domain.UnitStatus{domain.UnitStatusReserved}); err != nil {
			return err
		}
		return s.repo.UpdateOrderStatus(txCtx, id, domain.OrderStatusCancelled)
	})
}

// DeleteOrder removes an order entirely. Deletion must reverse the order's
// inventory side effects, so reserved and sold units go back to AVAILABLE
// before the row (and its lines, by cascade) is removed.
func (s *CheckoutService) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderStatusCancelled {
			from := []domain.UnitStatus{domain.UnitStatusReserved, domain.UnitStatusSold}
			if err := s.releaseUnits(txCtx, order, from); err != nil {
				return err
			}
		}
		return s.repo.DeleteOrder(txCtx, id)
	})
}

// UpdateStatus applies an admin status change. CANCELLED and COMPLETED carry
// inventory side effects and run atomically with them; once an order reaches
// either, its status is frozen.
func (s *CheckoutService) UpdateStatus(ctx context.Context, id string, raw string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	status, err := domain.ParseOrderStatus(raw)
	if err != nil {
		return err
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if order.Status == status {
			return nil
		}
		if order.Status.Terminal() {
			return domain.NewValidationError("status", "order is "+string(order.Status)+" and cannot change status")
		}

		switch status {
		case domain.OrderStatusCancelled:
			if !order.Cancellable() {
				return domain.ErrOrderNotCancellable
			}
			if err := s.releaseUnits(txCtx, order, []domain.UnitStatus{domain.UnitStatusReserved}); err != nil {
				return err
			}
		case domain.OrderStatusCompleted:
			ids := order.UnitIDs()
			moved, err := s.repo.TransitionUnits(txCtx, ids, []domain.UnitStatus{domain.UnitStatusReserved}, domain.UnitStatusSold)
			if err != nil {
				return err
			}
			if len(moved) != len(ids) {
				return &domain.StorageError{Op: "mark units sold", Err: errShortTransition}
			}
		}
		return s.repo.UpdateOrderStatus(txCtx, id, status)
	})
}

var errShortTransition = errors.New("fewer units transitioned than expected")

func (s *CheckoutService) releaseUnits(ctx context.Context, order domain.Order, from []domain.UnitStatus) error {
	ids := order.UnitIDs()
	if len(ids) == 0 {
		return nil
	}
	moved, err := s.repo.TransitionUnits(ctx, ids, from, domain.UnitStatusAvailable)
	if err != nil {
		return err
	}
	if len(moved) != len(ids) {
		return &domain.StorageError{Op: "release units", Err: errShortTransition}
	}
	return nil
}
