package availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PageContext selects the rendering strategy: the product page shows the
// full block columns, the category page additionally gets a one-line
// summary plus a detail payload for the stock popup.
type PageContext int

const (
	PageProduct PageContext = iota
	PageCategory
)

// ParsePageContext maps the ?context= query value to a PageContext.
// Unknown values fall back to the product page strategy.
func ParsePageContext(s string) PageContext {
	if s == "category" {
		return PageCategory
	}
	return PageProduct
}

// MessageBlock is one labeled availability message. QuantityLabel is the
// already-blurred quantity ("много" above the blur threshold) and is empty
// when the block carries no count.
type MessageBlock struct {
	Title         string `json:"title"`
	Body          string `json:"body"`
	QuantityLabel string `json:"quantity_label,omitempty"`
}

// Detail is the category-page popup payload. Key is an opaque per-render
// identifier the storefront uses to pair the trigger link with the hidden
// content node; it deliberately is not the SKU.
type Detail struct {
	Key      string         `json:"key"`
	Pickup   []MessageBlock `json:"pickup"`
	Delivery []MessageBlock `json:"delivery"`
	PreOrder []MessageBlock `json:"pre_order"`
}

// Rendering is the full availability answer for one SKU.
type Rendering struct {
	State       string         `json:"state"`
	Pickup      []MessageBlock `json:"pickup"`
	Delivery    []MessageBlock `json:"delivery"`
	PreOrder    []MessageBlock `json:"pre_order"`
	SummaryLine string         `json:"summary_line,omitempty"`
	Detail      *Detail        `json:"detail,omitempty"`
}

// Input is the raw stock tuple the composer works from, as stored per SKU.
type Input struct {
	QuantityPrimary   int
	QuantitySecondary int
	PreOrder          bool
}

const (
	titlePrimary        = "Магазин Горького 35"
	titleSecondary      = "Склад Екатеринбург"
	titleOnlineDelivery = "Доставка при оплате онлайн"
	titleCODDelivery    = "Доставка с оплатой при получении"
	titlePreOrder       = "Предзаказ"
)

// blurThreshold: quantities above it render as "много" so the storefront
// never advertises exact stock of fast movers.
const blurThreshold = 5

// DisplayQuantity returns the blurred quantity label.
func DisplayQuantity(quantity int) string {
	if quantity > blurThreshold {
		return "много"
	}
	return strconv.Itoa(quantity)
}

// Render classifies the stock tuple, resolves the pickup and delivery
// windows for now and composes the message columns for the requested page.
// Pure given now; every call re-derives everything, nothing is cached.
func Render(in Input, now time.Time, page PageContext) Rendering {
	state := Classify(in.QuantityPrimary, in.QuantitySecondary, in.PreOrder, now)

	r := Rendering{State: state.Kind.String()}
	r.Pickup, r.Delivery, r.PreOrder = composeBlocks(state, in, now)

	if page == PageCategory {
		r.SummaryLine = summaryLine(state, in, now)
		r.Detail = &Detail{
			Key:      uuid.NewString(),
			Pickup:   r.Pickup,
			Delivery: r.Delivery,
			PreOrder: r.PreOrder,
		}
	}

	return r
}

func composeBlocks(state State, in Input, now time.Time) (pickup, delivery, preOrder []MessageBlock) {
	switch state.Kind {
	case PreOrder:
		// Pre-order suppresses pickup and delivery entirely.
		preOrder = append(preOrder, MessageBlock{
			Title: titlePreOrder,
			Body:  fmt.Sprintf("будет в наличии с %s", state.AvailableFrom.Format("02.01.2006")),
		})
		return pickup, delivery, preOrder

	case OutOfStock:
		pickup = append(pickup, MessageBlock{Title: titlePrimary, Body: "Нет в наличии"})
		return pickup, delivery, preOrder

	case AvailableNow:
		pickup = append(pickup, MessageBlock{
			Title:         titlePrimary,
			Body:          "можно забрать сейчас",
			QuantityLabel: DisplayQuantity(state.Quantity),
		})
		if in.QuantitySecondary > 0 {
			pickup = append(pickup, secondaryPickupBlock(in.QuantitySecondary))
		}

	case AvailableNextDay:
		// Primary shelf is empty: the shop block shows when warehouse stock
		// can be collected there instead of a count.
		pickup = append(pickup, MessageBlock{Title: titlePrimary, Body: pickupWindowText(now)})
		pickup = append(pickup, secondaryPickupBlock(state.Quantity))
	}

	// Courier delivery is fulfilled from the secondary warehouse only.
	if in.QuantitySecondary > 0 {
		hasPrimary := in.QuantityPrimary > 0
		if w := ResolveDeliveryWindow(now, false, hasPrimary); w.Day != WindowNone {
			delivery = append(delivery, MessageBlock{Title: titleOnlineDelivery, Body: onlineDeliveryText(w)})
		}
		if w := ResolveDeliveryWindow(now, true, hasPrimary); w.Day != WindowNone {
			delivery = append(delivery, MessageBlock{Title: titleCODDelivery, Body: codDeliveryText(w)})
		}
	}

	return pickup, delivery, preOrder
}

func secondaryPickupBlock(quantity int) MessageBlock {
	return MessageBlock{
		Title:         titleSecondary,
		Body:          fmt.Sprintf("самовывоз на следующий день после %d:00 (кроме воскресенья)", secondaryPickupReadyHour),
		QuantityLabel: DisplayQuantity(quantity),
	}
}

func pickupWindowText(now time.Time) string {
	if ResolvePickupWindow(now).Day == WindowNextMonday {
		return fmt.Sprintf("можно забрать в пн после %d:00", pickupAfterHour)
	}
	return fmt.Sprintf("можно забрать завтра после %d:00", pickupAfterHour)
}

func onlineDeliveryText(w Window) string {
	switch w.Day {
	case WindowToday:
		return fmt.Sprintf("доставим сегодня, до %d:00", deliveryUntilHour)
	case WindowTomorrow:
		return fmt.Sprintf("доставим завтра, до %d:00", deliveryUntilHour)
	default:
		return fmt.Sprintf("доставим в пн, до %d:00", deliveryUntilHour)
	}
}

func codDeliveryText(w Window) string {
	if w.Day == WindowNextMonday {
		return fmt.Sprintf("доставим в пн с %d:00 до %d:00", courierSlotStartHour, deliveryUntilHour)
	}
	return fmt.Sprintf("доставим завтра с %d:00 до %d:00", courierSlotStartHour, deliveryUntilHour)
}

// summaryLine builds the category-page one-liner: how many locations hold
// stock, with the store word inflected for the count, plus the online
// delivery clause when the warehouse can ship.
func summaryLine(state State, in Input, now time.Time) string {
	if state.Kind == PreOrder {
		return fmt.Sprintf("предзаказ, будет в наличии с %s", state.AvailableFrom.Format("02.01.2006"))
	}

	count := 0
	if in.QuantityPrimary > 0 {
		count++
	}
	if in.QuantitySecondary > 0 {
		count++
	}
	if count == 0 {
		return "Нет в наличии"
	}

	line := fmt.Sprintf("В наличии в %d %s", count, pluralRu(count, "магазине", "магазинах"))
	if in.QuantitySecondary > 0 {
		if w := ResolveDeliveryWindow(now, false, in.QuantityPrimary > 0); w.Day != WindowNone {
			line += ", " + onlineDeliveryText(w)
		}
	}
	return line
}
