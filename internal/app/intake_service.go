package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/winston1234564757/Smartfix-sub000/internal/clock"
	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type IntakeRepository interface {
	CreateRepair(ctx context.Context, ticket domain.RepairTicket) error
	ListRepairs(ctx context.Context) ([]domain.RepairTicket, error)
	CreateTradeIn(ctx context.Context, tradeIn domain.TradeIn) error
	ListTradeIns(ctx context.Context) ([]domain.TradeIn, error)
	CreateRequest(ctx context.Context, request domain.SearchRequest) error
	ListRequests(ctx context.Context) ([]domain.SearchRequest, error)
	UpdateStatus(ctx context.Context, kind domain.EntityKind, id string, status string) error
}

// IntakeService handles the three customer intake flows (repair booking,
// trade-in submission, product search requests) and their shared status
// administration.
type IntakeService struct {
	repo  IntakeRepository
	clock clock.Clock
}

func NewIntakeService(repo IntakeRepository, clk clock.Clock) *IntakeService {
	return &IntakeService{
		repo:  repo,
		clock: clk,
	}
}

type BookRepairInput struct {
	CustomerName  string
	CustomerPhone string
	Device        string
	Issue         string
	PreferredAt   *time.Time
}

func (s *IntakeService) BookRepair(ctx context.Context, in BookRepairInput) (domain.RepairTicket, error) {
	if err := requireContact(in.CustomerName, in.CustomerPhone); err != nil {
		return domain.RepairTicket{}, err
	}
	if in.Device == "" {
		return domain.RepairTicket{}, domain.NewValidationError("device", "required")
	}
	ticket := domain.RepairTicket{
		ID:            uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Device:        in.Device,
		Issue:         in.Issue,
		PreferredAt:   in.PreferredAt,
		Status:        domain.RepairStatusNew,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.CreateRepair(ctx, ticket); err != nil {
		return domain.RepairTicket{}, err
	}
	return ticket, nil
}

type SubmitTradeInInput struct {
	CustomerName  string
	CustomerPhone string
	Device        string
	Condition     string
	ExpectedCents int64
}

func (s *IntakeService) SubmitTradeIn(ctx context.Context, in SubmitTradeInInput) (domain.TradeIn, error) {
	if err := requireContact(in.CustomerName, in.CustomerPhone); err != nil {
		return domain.TradeIn{}, err
	}
	if in.Device == "" {
		return domain.TradeIn{}, domain.NewValidationError("device", "required")
	}
	if in.ExpectedCents < 0 {
		return domain.TradeIn{}, domain.NewValidationError("expected_cents", "must be non-negative")
	}
	tradeIn := domain.TradeIn{
		ID:            uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Device:        in.Device,
		Condition:     in.Condition,
		ExpectedCents: in.ExpectedCents,
		Status:        domain.TradeInStatusNew,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.CreateTradeIn(ctx, tradeIn); err != nil {
		return domain.TradeIn{}, err
	}
	return tradeIn, nil
}

type SubmitRequestInput struct {
	CustomerName  string
	CustomerPhone string
	Description   string
	BudgetCents   int64
}

func (s *IntakeService) SubmitRequest(ctx context.Context, in SubmitRequestInput) (domain.SearchRequest, error) {
	if err := requireContact(in.CustomerName, in.CustomerPhone); err != nil {
		return domain.SearchRequest{}, err
	}
	if in.Description == "" {
		return domain.SearchRequest{}, domain.NewValidationError("description", "required")
	}
	if in.BudgetCents < 0 {
		return domain.SearchRequest{}, domain.NewValidationError("budget_cents", "must be non-negative")
	}
	request := domain.SearchRequest{
		ID:            uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Description:   in.Description,
		BudgetCents:   in.BudgetCents,
		Status:        domain.RequestStatusNew,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return domain.SearchRequest{}, err
	}
	return request, nil
}

func (s *IntakeService) ListRepairs(ctx context.Context) ([]domain.RepairTicket, error) {
	return s.repo.ListRepairs(ctx)
}

func (s *IntakeService) ListTradeIns(ctx context.Context) ([]domain.TradeIn, error) {
	return s.repo.ListTradeIns(ctx)
}

func (s *IntakeService) ListRequests(ctx context.Context) ([]domain.SearchRequest, error) {
	return s.repo.ListRequests(ctx)
}

// UpdateStatus is the consolidated transition path for repair, trade-in and
// search-request statuses. The raw value is checked against the entity
// kind's closed enumeration before anything is written.
func (s *IntakeService) UpdateStatus(ctx context.Context, kind domain.EntityKind, id string, raw string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	status, err := domain.ParseStatus(kind, raw)
	if err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, kind, id, status)
}

func requireContact(name, phone string) error {
	if name == "" {
		return domain.NewValidationError("customer_name", "required")
	}
	if phone == "" {
		return domain.NewValidationError("customer_phone", "required")
	}
	return nil
}
