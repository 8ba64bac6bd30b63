package domain

// EntityKind names an entity type that carries an administered status.
type EntityKind string

const (
	KindOrder   EntityKind = "order"
	KindRepair  EntityKind = "repair"
	KindTradeIn EntityKind = "trade_in"
	KindRequest EntityKind = "request"
)

// legalStatuses is the closed enumeration per entity kind. Transitions to a
// value outside the kind's set are rejected at the boundary instead of being
// written through as free strings.
var legalStatuses = map[EntityKind][]string{
	KindOrder:   statusStrings(OrderStatuses),
	KindRepair:  statusStrings(RepairStatuses),
	KindTradeIn: statusStrings(TradeInStatuses),
	KindRequest: statusStrings(RequestStatuses),
}

func statusStrings[T ~string](statuses []T) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// ParseStatus validates raw against the closed status set of kind.
func ParseStatus(kind EntityKind, raw string) (string, error) {
	legal, ok := legalStatuses[kind]
	if !ok {
		return "", NewValidationError("kind", "unknown entity kind")
	}
	for _, s := range legal {
		if s == raw {
			return s, nil
		}
	}
	return "", NewValidationError("status", "not a legal "+string(kind)+" status: "+raw)
}

// ParseUnitStatus validates raw against the unit status enumeration.
func ParseUnitStatus(raw string) (UnitStatus, error) {
	for _, s := range UnitStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", NewValidationError("status", "not a legal unit status: "+raw)
}

// ParseOrderStatus validates raw against the order status enumeration.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s, err := ParseStatus(KindOrder, raw)
	if err != nil {
		return "", err
	}
	return OrderStatus(s), nil
}
