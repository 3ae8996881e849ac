package availability

import (
	"time"
	_ "time/tzdata"
)

// All day/hour boundaries below are the store's real operating hours and
// must not be "cleaned up": the courier leaves at 18:00, the last online
// order that still ships same-day closes at 20:00, Saturday pay-on-delivery
// dispatch closes at 14:00, and Monday routes are planned at 12:00.
const (
	pickupAfterHour          = 15 // secondary stock reaches the shop floor
	secondaryPickupReadyHour = 16 // same, for warehouse self-pickup
	onlinePrimaryCutoffHour  = 20
	onlineSecondaryCutoff    = 18
	saturdayDispatchCutoff   = 14
	mondayRoutePlanningHour  = 12
	courierSlotStartHour     = 18
	deliveryUntilHour        = 22
)

// storeZone is the one timezone all windows are evaluated in. The store is
// in Yekaterinburg; feed timestamps and request clocks may be anything.
var storeZone = mustLoadZone("Asia/Yekaterinburg")

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("availability: load timezone " + name + ": " + err.Error())
	}
	return loc
}

// WindowDay tags which day a pickup/delivery window lands on. WindowNone
// means no message should be shown at all.
type WindowDay int

const (
	WindowNone WindowDay = iota
	WindowToday
	WindowTomorrow
	WindowNextMonday
)

// Window is the resolved pickup or delivery slot for the current moment.
type Window struct {
	Day WindowDay
}

// ResolvePickupWindow returns when stock held at the secondary warehouse can
// be collected from the shop: Monday after a Saturday order, otherwise the
// next day, always after 15:00.
func ResolvePickupWindow(now time.Time) Window {
	if now.In(storeZone).Weekday() == time.Saturday {
		return Window{Day: WindowNextMonday}
	}
	return Window{Day: WindowTomorrow}
}

// ResolveDeliveryWindow returns the courier slot for the current moment.
// payOnDelivery orders ride the cash-courier schedule regardless of which
// warehouse holds the stock; online-paid orders cut off at 20:00 when the
// shop itself has stock and at 18:00 when only the warehouse does.
func ResolveDeliveryWindow(now time.Time, payOnDelivery, hasPrimaryStock bool) Window {
	local := now.In(storeZone)
	day := local.Weekday()
	hour := local.Hour()

	if payOnDelivery {
		switch {
		case day == time.Saturday && hour < saturdayDispatchCutoff:
			return Window{Day: WindowNextMonday}
		case day == time.Saturday || day == time.Sunday,
			day == time.Monday && hour < mondayRoutePlanningHour:
			return Window{Day: WindowNextMonday}
		case day >= time.Monday && day <= time.Friday:
			return Window{Day: WindowTomorrow}
		default:
			return Window{Day: WindowNone}
		}
	}

	if hasPrimaryStock {
		if hour <= onlinePrimaryCutoffHour {
			return Window{Day: WindowToday}
		}
		return Window{Day: WindowTomorrow}
	}

	// Only secondary stock: the warehouse run leaves at 18:00 and does not
	// go out on Sunday evenings.
	switch {
	case hour <= onlineSecondaryCutoff:
		return Window{Day: WindowToday}
	case day == time.Sunday:
		return Window{Day: WindowNextMonday}
	default:
		return Window{Day: WindowTomorrow}
	}
}
