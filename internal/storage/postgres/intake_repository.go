package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type IntakeRepository struct {
	pool *pgxpool.Pool
}

func NewIntakeRepository(pool *pgxpool.Pool) *IntakeRepository {
	return &IntakeRepository{pool: pool}
}

func (r *IntakeRepository) CreateRepair(ctx context.Context, ticket domain.RepairTicket) error {
	const stmt = `
INSERT INTO repair_tickets (id, customer_name, customer_phone, device, issue, preferred_at, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := db(ctx, r.pool).Exec(ctx, stmt,
		ticket.ID,
		ticket.CustomerName,
		ticket.CustomerPhone,
		ticket.Device,
		ticket.Issue,
		ticket.PreferredAt,
		ticket.Status,
		ticket.CreatedAt,
	)
	if err != nil {
		return &domain.StorageError{Op: "create repair ticket", Err: err}
	}
	return nil
}

func (r *IntakeRepository) ListRepairs(ctx context.Context) ([]domain.RepairTicket, error) {
	const query = `
SELECT id, customer_name, customer_phone, device, issue, preferred_at, status, created_at
FROM repair_tickets
ORDER BY created_at DESC`

	rows, err := db(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Op: "list repair tickets", Err: err}
	}
	defer rows.Close()

	var tickets []domain.RepairTicket
	for rows.Next() {
		var t domain.RepairTicket
		if err := rows.Scan(&t.ID, &t.CustomerName, &t.CustomerPhone, &t.Device, &t.Issue, &t.PreferredAt, &t.Status, &t.CreatedAt); err != nil {
			return nil, &domain.StorageError{Op: "scan repair ticket", Err: err}
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list repair tickets", Err: err}
	}
	return tickets, nil
}

func (r *IntakeRepository) CreateTradeIn(ctx context.Context, tradeIn domain.TradeIn) error {
	const stmt = `
INSERT INTO trade_ins (id, customer_name, customer_phone, device, condition, expected_cents, offer_cents, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := db(ctx, r.pool).Exec(ctx, stmt,
		tradeIn.ID,
		tradeIn.CustomerName,
		tradeIn.CustomerPhone,
		tradeIn.Device,
		tradeIn.Condition,
		tradeIn.ExpectedCents,
		tradeIn.OfferCents,
		tradeIn.Status,
		tradeIn.CreatedAt,
	)
	if err != nil {
		return &domain.StorageError{Op: "create trade-in", Err: err}
	}
	return nil
}

func (r *IntakeRepository) ListTradeIns(ctx context.Context) ([]domain.TradeIn, error) {
	const query = `
SELECT id, customer_name, customer_phone, device, condition, expected_cents, offer_cents, status, created_at
FROM trade_ins
ORDER BY created_at DESC`

	rows, err := db(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Op: "list trade-ins", Err: err}
	}
	defer rows.Close()

	var tradeIns []domain.TradeIn
	for rows.Next() {
		var t domain.TradeIn
		if err := rows.Scan(&t.ID, &t.CustomerName, &t.CustomerPhone, &t.Device, &t.Condition, &t.ExpectedCents, &t.OfferCents, &t.Status, &t.CreatedAt); err != nil {
			return nil, &domain.StorageError{Op: "scan trade-in", Err: err}
		}
		tradeIns = append(tradeIns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list trade-ins", Err: err}
	}
	return tradeIns, nil
}

func (r *IntakeRepository) CreateRequest(ctx context.Context, request domain.SearchRequest) error {
	const stmt = `
INSERT INTO search_requests (id, customer_name, customer_phone, description, budget_cents, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := db(ctx, r.pool).Exec(ctx, stmt,
		request.ID,
		request.CustomerName,
		request.CustomerPhone,
		request.Description,
		request.BudgetCents,
		request.Status,
		request.CreatedAt,
	)
	if err != nil {
		return &domain.StorageError{Op: "create search request", Err: err}
	}
	return nil
}

func (r *IntakeRepository) ListRequests(ctx context.Context) ([]domain.SearchRequest, error) {
	const query = `
SELECT id, customer_name, customer_phone, description, budget_cents, status, created_at
FROM search_requests
ORDER BY created_at DESC`

	rows, err := db(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Op: "list search requests", Err: err}
	}
	defer rows.Close()

	var requests []domain.SearchRequest
	for rows.Next() {
		var req domain.SearchRequest
		if err := rows.Scan(&req.ID, &req.CustomerName, &req.CustomerPhone, &req.Description, &req.BudgetCents, &req.Status, &req.CreatedAt); err != nil {
			return nil, &domain.StorageError{Op: "scan search request", Err: err}
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list search requests", Err: err}
	}
	return requests, nil
}

// intakeTables maps entity kinds to their tables. The closed map doubles as
// an identifier whitelist; only these names are ever interpolated.
var intakeTables = map[domain.EntityKind]struct {
	table       string
	notFoundErr error
}{
	domain.KindRepair:  {table: "repair_tickets", notFoundErr: domain.ErrRepairNotFound},
	domain.KindTradeIn: {table: "trade_ins", notFoundErr: domain.ErrTradeInNotFound},
	domain.KindRequest: {table: "search_requests", notFoundErr: domain.ErrRequestNotFound},
}

// UpdateStatus writes an already-validated status for any intake entity.
func (r *IntakeRepository) UpdateStatus(ctx context.Context, kind domain.EntityKind, id string, status string) error {
	target, ok := intakeTables[kind]
	if !ok {
		return domain.NewValidationError("kind", "unknown entity kind")
	}

	tag, err := db(ctx, r.pool).Exec(ctx, `UPDATE `+target.table+` SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return &domain.StorageError{Op: "update " + string(kind) + " status", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return target.notFoundErr
	}
	return nil
}
