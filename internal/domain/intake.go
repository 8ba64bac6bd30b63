package domain

import "time"

type RepairStatus string

const (
	RepairStatusNew        RepairStatus = "NEW"
	RepairStatusConfirmed  RepairStatus = "CONFIRMED"
	RepairStatusInProgress RepairStatus = "IN_PROGRESS"
	RepairStatusReady      RepairStatus = "READY"
	RepairStatusCompleted  RepairStatus = "COMPLETED"
	RepairStatusCancelled  RepairStatus = "CANCELLED"
)

var RepairStatuses = []RepairStatus{
	RepairStatusNew,
	RepairStatusConfirmed,
	RepairStatusInProgress,
	RepairStatusReady,
	RepairStatusCompleted,
	RepairStatusCancelled,
}

type TradeInStatus string

const (
	TradeInStatusNew       TradeInStatus = "NEW"
	TradeInStatusReviewed  TradeInStatus = "REVIEWED"
	TradeInStatusOfferMade TradeInStatus = "OFFER_MADE"
	TradeInStatusAccepted  TradeInStatus = "ACCEPTED"
	TradeInStatusRejected  TradeInStatus = "REJECTED"
)

var TradeInStatuses = []TradeInStatus{
	TradeInStatusNew,
	TradeInStatusReviewed,
	TradeInStatusOfferMade,
	TradeInStatusAccepted,
	TradeInStatusRejected,
}

type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "NEW"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusFound      RequestStatus = "FOUND"
	RequestStatusClosed     RequestStatus = "CLOSED"
)

var RequestStatuses = []RequestStatus{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusFound,
	RequestStatusClosed,
}

// RepairTicket is a customer booking for a device repair.
type RepairTicket struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	Device        string
	Issue         string
	PreferredAt   *time.Time
	Status        RepairStatus
	CreatedAt     time.Time
}

// TradeIn is a customer offer to sell a device to the store.
type TradeIn struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	Device        string
	Condition     string
	ExpectedCents int64
	OfferCents    int64
	Status        TradeInStatus
	CreatedAt     time.Time
}

// SearchRequest asks staff to source a product that is not in stock.
type SearchRequest struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	Description   string
	BudgetCents   int64
	Status        RequestStatus
	CreatedAt     time.Time
}
