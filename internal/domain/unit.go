package domain

import "time"

type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "AVAILABLE"
	UnitStatusReserved    UnitStatus = "RESERVED"
	UnitStatusSold        UnitStatus = "SOLD"
	UnitStatusOnRequest   UnitStatus = "ON_REQUEST"
	UnitStatusPreOrder    UnitStatus = "PRE_ORDER"
	UnitStatusUnderRepair UnitStatus = "UNDER_REPAIR"
)

// UnitStatuses lists every legal unit status.
var UnitStatuses = []UnitStatus{
	UnitStatusAvailable,
	UnitStatusReserved,
	UnitStatusSold,
	UnitStatusOnRequest,
	UnitStatusPreOrder,
	UnitStatusUnderRepair,
}

// BuyableUnitStatuses are the only source statuses from which a unit may be
// placed into an order. RESERVED and SOLD are never directly buyable.
var BuyableUnitStatuses = []UnitStatus{
	UnitStatusAvailable,
	UnitStatusPreOrder,
	UnitStatusOnRequest,
}

func (s UnitStatus) Buyable() bool {
	for _, b := range BuyableUnitStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// UnitFilter narrows catalog listings. Zero values mean "any".
type UnitFilter struct {
	Status   UnitStatus
	Category string
}

// Unit is one physical, uniquely tracked item offered for sale. Units are
// non-fungible: each is reserved and sold individually, there is no
// SKU-with-quantity anywhere in the model.
type Unit struct {
	ID         string
	Title      string
	PriceCents int64
	Status     UnitStatus
	Category   string
	Condition  string
	Specs      string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
