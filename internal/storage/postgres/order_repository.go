package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

// OrderRepository persists orders and their lines. Unit reads and status
// transitions are delegated to the unit repository; the transaction travels
// on the context, so delegated calls join the same transaction.
type OrderRepository struct {
	pool  *pgxpool.Pool
	units *UnitRepository
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		pool:  pool,
		units: NewUnitRepository(pool),
	}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *OrderRepository) GetUnitsForUpdate(ctx context.Context, ids []string) ([]domain.Unit, error) {
	return r.units.GetUnitsForUpdate(ctx, ids)
}

func (r *OrderRepository) TransitionUnits(ctx context.Context, ids []string, from []domain.UnitStatus, to domain.UnitStatus) ([]string, error) {
	return r.units.TransitionUnits(ctx, ids, from, to)
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const orderStmt = `
INSERT INTO orders (id, customer_name, customer_phone, customer_email, delivery_address, comment, user_id, status, warranty_cents, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11)`

	_, err := db(ctx, r.pool).Exec(ctx, orderStmt,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerEmail,
		order.DeliveryAddress,
		order.Comment,
		order.UserID,
		order.Status,
		order.WarrantyCents,
		order.TotalCents,
		order.CreatedAt,
	)
	if err != nil {
		return &domain.StorageError{Op: "create order", Err: err}
	}

	const lineStmt = `
INSERT INTO order_lines (id, order_id, unit_id, title, price_cents, options)
VALUES ($1, $2, $3, $4, $5, $6)`

	for _, line := range order.Lines {
		options, err := json.Marshal(line.Options)
		if err != nil {
			return &domain.StorageError{Op: "encode line options", Err: err}
		}
		if _, err := db(ctx, r.pool).Exec(ctx, lineStmt,
			line.ID,
			order.ID,
			line.UnitID,
			line.Title,
			line.PriceCents,
			options,
		); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUnitNotFound
			}
			return &domain.StorageError{Op: "create order line", Err: err}
		}
	}
	return nil
}

const orderColumns = `id, customer_name, customer_phone, customer_email, delivery_address, comment, COALESCE(user_id, ''), status, warranty_cents, total_cents, created_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.DeliveryAddress,
		&o.Comment,
		&o.UserID,
		&o.Status,
		&o.WarrantyCents,
		&o.TotalCents,
		&o.CreatedAt,
	)
	return o, err
}

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return r.getOrder(ctx, id, false)
}

// GetOrderForUpdate locks the order row for the duration of the enclosing
// transaction so concurrent cancels/status changes serialize.
func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, id string) (domain.Order, error) {
	return r.getOrder(ctx, id, true)
}

func (r *OrderRepository) getOrder(ctx context.Context, id string, forUpdate bool) (domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	order, err := scanOrder(db(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, &domain.StorageError{Op: "get order", Err: err}
	}

	lines, err := r.getLines(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Lines = lines
	return order, nil
}

func (r *OrderRepository) getLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const query = `
SELECT id, order_id, unit_id, title, price_cents, options
FROM order_lines
WHERE order_id = $1
ORDER BY id`

	rows, err := db(ctx, r.pool).Query(ctx, query, orderID)
	if err != nil {
		return nil, &domain.StorageError{Op: "get order lines", Err: err}
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		var options []byte
		if err := rows.Scan(&line.ID, &line.OrderID, &line.UnitID, &line.Title, &line.PriceCents, &options); err != nil {
			return nil, &domain.StorageError{Op: "scan order line", Err: err}
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &line.Options); err != nil {
				return nil, &domain.StorageError{Op: "decode line options", Err: err}
			}
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "get order lines", Err: err}
	}
	return lines, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := db(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Op: "list orders", Err: err}
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "scan order", Err: err}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list orders", Err: err}
	}

	for i := range orders {
		lines, err := r.getLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const stmt = `UPDATE orders SET status = $2 WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return &domain.StorageError{Op: "update order status", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	const stmt = `DELETE FROM orders WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return &domain.StorageError{Op: "delete order", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
