package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/cafebill-api/internal/config"
	infraRepo "github.com/sangkips/cafebill-api/internal/infrastructure/repository"
)

// capturePrinter records everything sent to the device
type capturePrinter struct {
	jobs [][]byte
}

func (p *capturePrinter) Print(data []byte) error {
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return true }

func TestPrintReceiptAndKOT(t *testing.T) {
	f := newTestFixtures(t)
	device := &capturePrinter{}
	printers := NewPrinterService(
		infraRepo.NewBillRepository(f.db),
		device,
		config.CafeConfig{Name: "The Corner Cafe"},
	)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.cappuccino.ID, Quantity: 2}},
		Discount:      decimal.NewFromInt(10),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	receipt, err := printers.BuildReceipt(ctxBg(), bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.BillNo, receipt.BillNo)
	assert.Equal(t, "140.00", receipt.Subtotal)
	assert.Equal(t, "10.00", receipt.Discount)
	assert.Equal(t, "130.00", receipt.GrandTotal)
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, "70.00", receipt.Lines[0].UnitPrice)

	require.NoError(t, printers.PrintReceipt(ctxBg(), bill.ID))
	require.NoError(t, printers.PrintKOT(ctxBg(), bill.ID))
	require.Len(t, device.jobs, 2)

	assert.True(t, strings.Contains(string(device.jobs[0]), "The Corner Cafe"))
	assert.True(t, strings.Contains(string(device.jobs[1]), "KITCHEN ORDER"))
	assert.False(t, strings.Contains(string(device.jobs[1]), "130.00"), "kitchen tickets carry no prices")

	assert.True(t, printers.Connected())

	_, err = printers.BuildReceipt(ctxBg(), uuid.New())
	require.Error(t, err)
}
