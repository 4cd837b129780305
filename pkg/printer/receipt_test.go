package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleReceipt() *Receipt {
	return &Receipt{
		Header:        Header{CafeName: "The Corner Cafe", Phone: "9000000000"},
		BillNo:        "BILL-1A2B3C4D",
		Date:          "28 Aug 2026 14:30",
		Phone:         "9876543210",
		PaymentMethod: "upi",
		Lines: []Line{
			{Name: "Cappuccino", Quantity: 2, UnitPrice: "70.00", Total: "140.00"},
			{Name: "Cafe Latte", Quantity: 1, UnitPrice: "80.00", Total: "80.00"},
		},
		Subtotal:   "220.00",
		Discount:   "22.00",
		GrandTotal: "198.00",
	}
}

func TestReceiptRender(t *testing.T) {
	out := string(sampleReceipt().Render())

	assert.Contains(t, out, "The Corner Cafe")
	assert.Contains(t, out, "BILL-1A2B3C4D")
	assert.Contains(t, out, "2x Cappuccino")
	assert.Contains(t, out, "140.00")
	assert.Contains(t, out, "@ 70.00 each")
	assert.Contains(t, out, "-22.00")
	assert.Contains(t, out, "198.00")

	// Single-quantity lines skip the unit price breakdown
	assert.NotContains(t, out, "@ 80.00 each")
}

func TestReceiptRenderNoDiscount(t *testing.T) {
	r := sampleReceipt()
	r.Discount = "0.00"
	out := string(r.Render())

	assert.NotContains(t, out, "Discount:")
}

func TestKOTRenderOmitsPrices(t *testing.T) {
	kot := &KOT{
		BillNo: "BILL-1A2B3C4D",
		Date:   "14:30",
		Lines: []Line{
			{Name: "Cappuccino", Quantity: 2},
			{Name: "Butter Maggi", Quantity: 1},
		},
	}
	out := string(kot.Render())

	assert.Contains(t, out, "KITCHEN ORDER")
	assert.Contains(t, out, "Cappuccino")
	assert.Contains(t, out, "Butter Maggi")
	assert.NotContains(t, out, "70.00")
	assert.NotContains(t, out, "TOTAL")
}

func TestKeyValueAlignment(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Subtotal:", "220.00")
	out := string(doc.Bytes())

	// key + padding + value fills exactly one 32-char line
	assert.Contains(t, out, "Subtotal:"+spaces(32-len("Subtotal:")-len("220.00"))+"220.00")
}

func spaces(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = ' '
	}
	return string(s)
}
