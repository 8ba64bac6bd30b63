package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// LineOption is one selected add-on on an order line (label + flat price).
type LineOption struct {
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

// OrderLine snapshots one unit at placement time. PriceCents is the locked
// price (unit price plus option prices as of the placement read) and never
// follows later edits to the unit.
type OrderLine struct {
	ID         string
	OrderID    string
	UnitID     string
	Title      string
	PriceCents int64
	Options    []LineOption
}

// Order is a customer purchase of one or more units. Lines are created
// atomically with the order and cascade-deleted with it.
type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
	Comment         string
	UserID          string
	Status          OrderStatus
	WarrantyCents   int64
	TotalCents      int64
	CreatedAt       time.Time
	Lines           []OrderLine
}

// Terminal reports whether the status admits no further transitions. A
// terminated order has already settled its inventory side effects, so
// reopening it would detach the order from the units it once held.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Cancellable reports whether the order may still be cancelled by the
// customer or an admin status change.
func (o Order) Cancellable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// UnitIDs returns the ids of every unit referenced by the order's lines.
func (o Order) UnitIDs() []string {
	ids := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		ids = append(ids, l.UnitID)
	}
	return ids
}
