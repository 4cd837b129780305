package billing

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/cafebill-api/pkg/money"
)

func fixtureCatalog() (Catalog, []LineSelection) {
	catID := uuid.New()
	cappuccino := uuid.New()
	mocha := uuid.New()

	catalog := Catalog{
		cappuccino: {Name: "Cappuccino", UnitPaise: 7000, CategoryID: catID},
		mocha:      {Name: "Café Mocha", UnitPaise: 12000, CategoryID: catID},
	}
	selections := []LineSelection{
		{CategoryID: catID, ItemID: cappuccino, Quantity: 2},
		{CategoryID: catID, ItemID: mocha, Quantity: 1},
	}
	return catalog, selections
}

func TestComputeNoDiscount(t *testing.T) {
	catalog, selections := fixtureCatalog()

	comp := Compute(selections, catalog, DiscountSpec{Mode: DiscountPercentage, Raw: ""})

	assert.Equal(t, int64(26000), comp.SubtotalPaise)
	assert.Equal(t, int64(0), comp.DiscountPaise)
	assert.Equal(t, int64(26000), comp.GrandTotalPaise)
	require.Len(t, comp.Lines, 2)
	assert.Equal(t, int64(14000), comp.Lines[0].TotalPaise)
	assert.Equal(t, int64(12000), comp.Lines[1].TotalPaise)
}

func TestComputePercentageDiscount(t *testing.T) {
	catalog, selections := fixtureCatalog()

	comp := Compute(selections, catalog, DiscountSpec{Mode: DiscountPercentage, Raw: "10"})

	assert.Equal(t, int64(26000), comp.SubtotalPaise)
	assert.Equal(t, int64(2600), comp.DiscountPaise)
	assert.Equal(t, int64(23400), comp.GrandTotalPaise)
}

func TestComputeAmountDiscountClampsToSubtotal(t *testing.T) {
	catalog, selections := fixtureCatalog()

	comp := Compute(selections, catalog, DiscountSpec{Mode: DiscountAmount, Raw: "500"})

	assert.Equal(t, int64(26000), comp.SubtotalPaise)
	assert.Equal(t, int64(26000), comp.DiscountPaise, "discount caps at subtotal")
	assert.Equal(t, int64(0), comp.GrandTotalPaise)
}

func TestComputePercentageAbove100Caps(t *testing.T) {
	catalog, selections := fixtureCatalog()

	comp := Compute(selections, catalog, DiscountSpec{Mode: DiscountPercentage, Raw: "250"})

	assert.Equal(t, comp.SubtotalPaise, comp.DiscountPaise)
	assert.Equal(t, int64(0), comp.GrandTotalPaise)
}

func TestComputeNegativeAndGarbageDiscountIsZero(t *testing.T) {
	catalog, selections := fixtureCatalog()

	for _, raw := range []string{"-10", "abc", "  ", ""} {
		for _, mode := range []DiscountMode{DiscountPercentage, DiscountAmount} {
			comp := Compute(selections, catalog, DiscountSpec{Mode: mode, Raw: raw})
			assert.Equal(t, int64(0), comp.DiscountPaise, "mode=%s raw=%q", mode, raw)
		}
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(0))
	assert.Equal(t, 1, ClampQuantity(-3))
	assert.Equal(t, 30, ClampQuantity(45))
	assert.Equal(t, 7, ClampQuantity(7))
}

func TestComputeClampsLineQuantities(t *testing.T) {
	catalog, selections := fixtureCatalog()
	selections[0].Quantity = 0  // clamped to 1
	selections[1].Quantity = 45 // clamped to 30

	comp := Compute(selections, catalog, DiscountSpec{})

	require.Len(t, comp.Lines, 2)
	assert.Equal(t, 1, comp.Lines[0].Quantity)
	assert.Equal(t, 30, comp.Lines[1].Quantity)
	assert.Equal(t, int64(7000+30*12000), comp.SubtotalPaise)
}

func TestComputeExcludesUnresolvedLines(t *testing.T) {
	catalog, selections := fixtureCatalog()
	selections = append(selections, LineSelection{ItemID: uuid.New(), Quantity: 3})

	comp := Compute(selections, catalog, DiscountSpec{})

	assert.Len(t, comp.Lines, 2, "unresolved line excluded from per-line totals")
	assert.Equal(t, int64(26000), comp.SubtotalPaise, "unresolved line contributes zero")
}

func TestComputeIsIdempotent(t *testing.T) {
	catalog, selections := fixtureCatalog()
	spec := DiscountSpec{Mode: DiscountPercentage, Raw: "12.5"}

	first := Compute(selections, catalog, spec)
	second := Compute(selections, catalog, spec)

	assert.Equal(t, first, second)
}

func TestModeSwitchPreservesRawInput(t *testing.T) {
	catalog, selections := fixtureCatalog()

	spec := DiscountSpec{Mode: DiscountPercentage, Raw: "10"}
	asPercent := Compute(selections, catalog, spec)

	spec.Mode = DiscountAmount
	asAmount := Compute(selections, catalog, spec)

	assert.Equal(t, "10", spec.Raw, "raw input survives the mode switch")
	assert.Equal(t, int64(2600), asPercent.DiscountPaise, "10% of 260.00")
	assert.Equal(t, int64(1000), asAmount.DiscountPaise, "₹10 flat")
}

// Subtotal must equal the exact big-integer sum of price×quantity for
// random price/quantity vectors; integer paise arithmetic never drifts.
func TestComputeSubtotalMatchesBigIntReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		catalog := Catalog{}
		var selections []LineSelection
		want := new(big.Int)

		n := 1 + rng.Intn(20)
		for i := 0; i < n; i++ {
			id := uuid.New()
			price := int64(rng.Intn(5_000_00)) // up to ₹5000 in paise
			qty := 1 + rng.Intn(30)
			catalog[id] = CatalogEntry{Name: "item", UnitPaise: price}
			selections = append(selections, LineSelection{ItemID: id, Quantity: qty})
			want.Add(want, new(big.Int).Mul(big.NewInt(price), big.NewInt(int64(qty))))
		}

		comp := Compute(selections, catalog, DiscountSpec{})
		require.True(t, want.IsInt64())
		assert.Equal(t, want.Int64(), comp.SubtotalPaise, "trial %d", trial)

		// Invariants hold for arbitrary discounts too.
		for _, spec := range []DiscountSpec{
			{Mode: DiscountPercentage, Raw: "37"},
			{Mode: DiscountAmount, Raw: "99999999"},
			{Mode: DiscountPercentage, Raw: "101"},
		} {
			c := Compute(selections, catalog, spec)
			assert.GreaterOrEqual(t, c.DiscountPaise, int64(0))
			assert.LessOrEqual(t, c.DiscountPaise, c.SubtotalPaise)
			assert.Equal(t, c.SubtotalPaise-c.DiscountPaise, c.GrandTotalPaise)
			assert.GreaterOrEqual(t, c.GrandTotalPaise, int64(0))
		}
	}
}

func TestBuildPayload(t *testing.T) {
	catalog, selections := fixtureCatalog()

	payload, err := BuildPayload("9876543210", selections, catalog,
		DiscountSpec{Mode: DiscountPercentage, Raw: "10"}, "cash")
	require.NoError(t, err)

	assert.Equal(t, "9876543210", payload.Phone)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, selections[0].ItemID, payload.Items[0].ItemID)
	assert.Equal(t, 2, payload.Items[0].Quantity)
	assert.Equal(t, "26.00", payload.Discount.StringFixed(2), "discount travels as decimal currency")
	assert.Equal(t, "cash", payload.PaymentMethod)
}

func TestBuildPayloadRefusesUnresolvedLine(t *testing.T) {
	catalog, selections := fixtureCatalog()
	selections = append(selections, LineSelection{Quantity: 1}) // no item chosen

	_, err := BuildPayload("9876543210", selections, catalog, DiscountSpec{}, "cash")
	assert.ErrorIs(t, err, ErrUnresolvedSelection)
}

func TestPayloadDiscountRoundTrip(t *testing.T) {
	assert.Equal(t, int64(2600), money.ToPaise(money.FromPaise(2600)))
}
