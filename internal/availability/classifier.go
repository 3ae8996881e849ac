package availability

import "time"

// PreOrderLeadDays is how far out the restock estimate is set when an item
// is sold on pre-order. Matches the store's standing 1C export cadence.
const PreOrderLeadDays = 10

type Kind int

const (
	OutOfStock Kind = iota
	AvailableNow
	AvailableNextDay
	PreOrder
)

func (k Kind) String() string {
	switch k {
	case AvailableNow:
		return "available_now"
	case AvailableNextDay:
		return "available_next_day"
	case PreOrder:
		return "pre_order"
	default:
		return "out_of_stock"
	}
}

// State is the classified availability of a single SKU. Quantity is set for
// AvailableNow (primary location) and AvailableNextDay (secondary location);
// AvailableFrom is set only for PreOrder.
type State struct {
	Kind          Kind
	Quantity      int
	AvailableFrom time.Time
}

// Classify maps raw warehouse quantities and the pre-order flag to an
// availability state. Priority: primary stock wins, then secondary stock,
// then pre-order, then out of stock. Negative quantities are clamped to
// zero rather than rejected; feed validation happens upstream.
func Classify(quantityPrimary, quantitySecondary int, preOrder bool, now time.Time) State {
	if quantityPrimary < 0 {
		quantityPrimary = 0
	}
	if quantitySecondary < 0 {
		quantitySecondary = 0
	}

	switch {
	case quantityPrimary > 0:
		return State{Kind: AvailableNow, Quantity: quantityPrimary}
	case quantitySecondary > 0:
		return State{Kind: AvailableNextDay, Quantity: quantitySecondary}
	case preOrder:
		// The restock estimate is a store-local calendar date: a late UTC
		// evening is already the next morning in Yekaterinburg.
		return State{Kind: PreOrder, AvailableFrom: now.In(storeZone).AddDate(0, 0, PreOrderLeadDays)}
	default:
		return State{Kind: OutOfStock}
	}
}
