// Package billing implements the bill computation engine: pure integer
// paise arithmetic over a set of line selections, with discount clamping
// and submission payload shaping. It holds no state; callers recompute
// from scratch after every mutation to selections or the discount.
package billing

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/cafebill-api/pkg/money"
)

// Quantity bounds for a single bill line. Out-of-range input is clamped,
// never rejected.
const (
	MinQuantity = 1
	MaxQuantity = 30
)

// DiscountMode selects how the raw discount input is interpreted.
type DiscountMode string

const (
	DiscountPercentage DiscountMode = "percentage"
	DiscountAmount     DiscountMode = "amount"
)

// ErrUnresolvedSelection is returned by BuildPayload when a line has no
// item chosen. Submission must be refused before any network call.
var ErrUnresolvedSelection = errors.New("billing: selection references no resolvable item")

// LineSelection is one row of a bill in progress.
type LineSelection struct {
	CategoryID uuid.UUID
	ItemID     uuid.UUID
	Quantity   int
}

// CatalogEntry carries the authoritative name and unit price of an item.
type CatalogEntry struct {
	Name       string
	UnitPaise  int64
	CategoryID uuid.UUID
}

// Catalog is the resolved subset of catalog items visible to the engine,
// keyed by item ID. Selections that do not resolve against it contribute
// zero to the totals.
type Catalog map[uuid.UUID]CatalogEntry

// DiscountSpec is the user's chosen discount mode plus the raw typed
// magnitude. Switching mode never rewrites Raw; the same text is simply
// reinterpreted.
type DiscountSpec struct {
	Mode DiscountMode `json:"mode"`
	Raw  string       `json:"raw"`
}

// LineTotal is the resolved per-line total for one selection.
type LineTotal struct {
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	UnitPaise  int64     `json:"-"`
	Quantity   int       `json:"quantity"`
	TotalPaise int64     `json:"-"`
}

// Computation is the derived bill summary, all amounts in paise.
type Computation struct {
	SubtotalPaise   int64
	DiscountPaise   int64
	GrandTotalPaise int64
	Lines           []LineTotal
}

// ClampQuantity bounds a quantity to [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// Amount computes the clamped discount in paise for the given subtotal.
// The result is always within [0, subtotal].
func (s DiscountSpec) Amount(subtotalPaise int64) int64 {
	var discount int64
	switch s.Mode {
	case DiscountAmount:
		discount = money.ParsePaise(s.Raw)
	default: // percentage
		pct, err := decimal.NewFromString(strings.TrimSpace(s.Raw))
		if err != nil || pct.IsNegative() {
			pct = decimal.Zero
		}
		if pct.GreaterThan(decimal.NewFromInt(100)) {
			pct = decimal.NewFromInt(100)
		}
		discount = decimal.NewFromInt(subtotalPaise).
			Mul(pct).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	}
	if discount < 0 {
		discount = 0
	}
	if discount > subtotalPaise {
		discount = subtotalPaise
	}
	return discount
}

// Compute derives the bill summary for the given selections. It is pure:
// identical inputs always yield identical outputs. Selections whose item
// does not resolve against the catalog are excluded silently so a partially
// loaded catalog never fails the whole computation.
func Compute(selections []LineSelection, catalog Catalog, spec DiscountSpec) Computation {
	comp := Computation{Lines: make([]LineTotal, 0, len(selections))}

	for _, sel := range selections {
		entry, ok := catalog[sel.ItemID]
		if !ok {
			continue
		}
		qty := ClampQuantity(sel.Quantity)
		lineTotal := entry.UnitPaise * int64(qty)
		comp.Lines = append(comp.Lines, LineTotal{
			ItemID:     sel.ItemID,
			Name:       entry.Name,
			UnitPaise:  entry.UnitPaise,
			Quantity:   qty,
			TotalPaise: lineTotal,
		})
		comp.SubtotalPaise += lineTotal
	}

	comp.DiscountPaise = spec.Amount(comp.SubtotalPaise)

	// The discount is already clamped to the subtotal; the max guard stays
	// in case that invariant is ever relaxed.
	comp.GrandTotalPaise = comp.SubtotalPaise - comp.DiscountPaise
	if comp.GrandTotalPaise < 0 {
		comp.GrandTotalPaise = 0
	}
	return comp
}

// PayloadItem is one (item, quantity) pair of a submission payload.
// Prices are never sent; the server re-resolves them authoritatively.
type PayloadItem struct {
	ItemID   uuid.UUID `json:"item"`
	Quantity int       `json:"quantity"`
}

// Payload is the bill creation request shape expected by the billing
// service: discount travels as a decimal amount, not paise.
type Payload struct {
	Phone         string          `json:"phone"`
	Items         []PayloadItem   `json:"items"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"paymentMethod"`
}

// BuildPayload shapes the submission payload from the current composition.
// It refuses when any line has no item chosen.
func BuildPayload(phone string, selections []LineSelection, catalog Catalog, spec DiscountSpec, paymentMethod string) (*Payload, error) {
	items := make([]PayloadItem, 0, len(selections))
	for _, sel := range selections {
		if sel.ItemID == uuid.Nil {
			return nil, ErrUnresolvedSelection
		}
		items = append(items, PayloadItem{
			ItemID:   sel.ItemID,
			Quantity: ClampQuantity(sel.Quantity),
		})
	}

	comp := Compute(selections, catalog, spec)
	return &Payload{
		Phone:         phone,
		Items:         items,
		Discount:      money.FromPaise(comp.DiscountPaise),
		PaymentMethod: paymentMethod,
	}, nil
}
