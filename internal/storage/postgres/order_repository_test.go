package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
	"github.com/winston1234564757/Smartfix-sub000/internal/testutil"
)

func TestOrderRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewOrderRepository(pool)

	newOrder := func(unitID string) domain.Order {
		orderID := uuid.NewString()
		return domain.Order{
			ID:            orderID,
			CustomerName:  "Ana",
			CustomerPhone: "+34600000000",
			Status:        domain.OrderStatusPending,
			WarrantyCents: 4500,
			TotalCents:    49500,
			CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
			Lines: []domain.OrderLine{
				{
					ID:         uuid.NewString(),
					OrderID:    orderID,
					UnitID:     unitID,
					Title:      "iPhone 12",
					PriceCents: 49500,
					Options:    []domain.LineOption{{Label: "charger", PriceCents: 2000}},
				},
			},
		}
	}

	t.Run("CreateOrder round-trips lines and options", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		unitID := testutil.InsertUnit(t, ctx, pool, "iPhone 12", 45000, domain.UnitStatusAvailable)
		order := newOrder(unitID)

		if err := repo.CreateOrder(ctx, order); err != nil {
			t.Fatalf("create order: %v", err)
		}

		got, err := repo.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("get order: %v", err)
		}
		if got.Status != domain.OrderStatusPending || got.TotalCents != 49500 || got.WarrantyCents != 4500 {
			t.Fatalf("unexpected order: %+v", got)
		}
		if len(got.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(got.Lines))
		}
		line := got.Lines[0]
		if line.UnitID != unitID || line.PriceCents != 49500 {
			t.Fatalf("unexpected line: %+v", line)
		}
		if len(line.Options) != 1 || line.Options[0].Label != "charger" || line.Options[0].PriceCents != 2000 {
			t.Fatalf("unexpected options: %+v", line.Options)
		}
	})

	t.Run("CreateOrder rejects lines for unknown units", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		order := newOrder("00000000-0000-0000-0000-000000000001")
		err := repo.CreateOrder(ctx, order)
		if !errors.Is(err, domain.ErrUnitNotFound) {
			t.Fatalf("expected ErrUnitNotFound, got %v", err)
		}
	})

	t.Run("failed transaction leaves no partial state", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		unitID := testutil.InsertUnit(t, ctx, pool, "iPhone 12", 45000, domain.UnitStatusAvailable)
		order := newOrder(unitID)
		boom := errors.New("boom")

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			if err := repo.CreateOrder(txCtx, order); err != nil {
				return err
			}
			if _, err := repo.TransitionUnits(txCtx, []string{unitID}, domain.BuyableUnitStatuses, domain.UnitStatusReserved); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		if n := testutil.CountOrders(t, ctx, pool); n != 0 {
			t.Fatalf("expected 0 orders after rollback, got %d", n)
		}
		if got := testutil.UnitStatus(t, ctx, pool, unitID); got != domain.UnitStatusAvailable {
			t.Fatalf("expected unit back to AVAILABLE, got %s", got)
		}
	})

	t.Run("DeleteOrder cascades to lines", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		unitID := testutil.InsertUnit(t, ctx, pool, "iPhone 12", 45000, domain.UnitStatusAvailable)
		order := newOrder(unitID)
		if err := repo.CreateOrder(ctx, order); err != nil {
			t.Fatalf("create order: %v", err)
		}

		if err := repo.DeleteOrder(ctx, order.ID); err != nil {
			t.Fatalf("delete order: %v", err)
		}

		var lines int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_lines`).Scan(&lines); err != nil {
			t.Fatalf("count lines: %v", err)
		}
		if lines != 0 {
			t.Fatalf("expected 0 lines, got %d", lines)
		}

		if err := repo.DeleteOrder(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("UpdateOrderStatus reports missing rows", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		err := repo.UpdateOrderStatus(ctx, "00000000-0000-0000-0000-000000000001", domain.OrderStatusConfirmed)
		if !errors.Is(err, domain.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("ListOrders hydrates lines", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		unitID := testutil.InsertUnit(t, ctx, pool, "iPhone 12", 45000, domain.UnitStatusAvailable)
		if err := repo.CreateOrder(ctx, newOrder(unitID)); err != nil {
			t.Fatalf("create order: %v", err)
		}

		orders, err := repo.ListOrders(ctx)
		if err != nil {
			t.Fatalf("list orders: %v", err)
		}
		if len(orders) != 1 || len(orders[0].Lines) != 1 {
			t.Fatalf("unexpected orders: %+v", orders)
		}
	})
}
