package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/cafebill-api/internal/domain/enum"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/pagination"
)

func TestCreateBill(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:        "98765 43210",
		CustomerName: "Asha",
		Items: []BillLineInput{
			{ItemID: f.cappuccino.ID, Quantity: 2},
			{ItemID: f.latte.ID, Quantity: 1},
		},
		Discount:      decimal.NewFromInt(10),
		PaymentMethod: "upi",
	})
	require.NoError(t, err)

	// 2x70.00 + 80.00 = 220.00, minus flat 10.00
	assert.Equal(t, int64(22000), bill.SubtotalPaise)
	assert.Equal(t, int64(1000), bill.DiscountPaise)
	assert.Equal(t, int64(21000), bill.TotalPaise)
	assert.Equal(t, "9876543210", bill.Phone)
	assert.Equal(t, enum.BillStatusPending, bill.Status)
	assert.NotEmpty(t, bill.BillNo)
	require.Len(t, bill.Items, 2)

	// Line prices are captured at billing time
	assert.Equal(t, "Cappuccino", bill.Items[0].Name)
	assert.Equal(t, int64(7000), bill.Items[0].UnitPaise)
	assert.Equal(t, int64(14000), bill.Items[0].TotalPaise)

	// The customer account is created from the phone
	user, err := f.users.GetByPhone(ctxBg(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
}

func TestCreateBillQuantityClamping(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone: "9876543210",
		Items: []BillLineInput{
			{ItemID: f.cappuccino.ID, Quantity: 0},  // clamps to 1
			{ItemID: f.latte.ID, Quantity: 45},      // clamps to 30
		},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.Len(t, bill.Items, 2)
	assert.Equal(t, 1, bill.Items[0].Quantity)
	assert.Equal(t, 30, bill.Items[1].Quantity)
	assert.Equal(t, int64(7000+30*8000), bill.SubtotalPaise)
}

func TestCreateBillDiscountClampedToSubtotal(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.cappuccino.ID, Quantity: 1}},
		Discount:      decimal.NewFromInt(500),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7000), bill.SubtotalPaise)
	assert.Equal(t, int64(7000), bill.DiscountPaise)
	assert.Equal(t, int64(0), bill.TotalPaise)
}

func TestCreateBillUnresolvedItem(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone: "9876543210",
		Items: []BillLineInput{
			{ItemID: f.cappuccino.ID, Quantity: 1},
			{ItemID: uuid.New(), Quantity: 1}, // not on the menu
		},
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	_, err = f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: uuid.Nil, Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCreateBillInactiveItem(t *testing.T) {
	f := newTestFixtures(t)

	f.mocha.IsActive = false
	require.NoError(t, f.db.Save(&f.mocha).Error)

	_, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.mocha.ID, Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateBillValidation(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{},
		PaymentMethod: "cash",
	})
	require.Error(t, err)

	_, err = f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.latte.ID, Quantity: 1}},
		PaymentMethod: "cheque",
	})
	require.Error(t, err)
}

func TestUpdateBillReplacesLinesAndRecomputes(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.cappuccino.ID, Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	updated, err := f.bills.UpdateBill(ctxBg(), bill.ID, &UpdateBillInput{
		Items: []BillLineInput{
			{ItemID: f.latte.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(16000), updated.SubtotalPaise)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Cafe Latte", updated.Items[0].Name)
}

func TestUpdateBillDiscountOnly(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.mocha.ID, Quantity: 2}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), bill.TotalPaise)

	discount := decimal.NewFromInt(50)
	updated, err := f.bills.UpdateBill(ctxBg(), bill.ID, &UpdateBillInput{Discount: &discount})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), updated.SubtotalPaise)
	assert.Equal(t, int64(5000), updated.DiscountPaise)
	assert.Equal(t, int64(15000), updated.TotalPaise)
}

func TestUpdateBillStatusLifecycle(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.latte.ID, Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	paid, err := f.bills.UpdateStatus(ctxBg(), bill.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusPaid, paid.Status)

	_, err = f.bills.UpdateStatus(ctxBg(), bill.ID, "settled")
	require.Error(t, err)

	cancelled, err := f.bills.UpdateStatus(ctxBg(), bill.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusCancelled, cancelled.Status)

	_, err = f.bills.UpdateBill(ctxBg(), bill.ID, &UpdateBillInput{})
	require.Error(t, err, "cancelled bills cannot be edited")
}

func TestDeleteBill(t *testing.T) {
	f := newTestFixtures(t)

	bill, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9876543210",
		Items:         []BillLineInput{{ItemID: f.latte.ID, Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.NoError(t, f.bills.DeleteBill(ctxBg(), bill.ID))

	_, err = f.bills.GetBill(ctxBg(), bill.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	err = f.bills.DeleteBill(ctxBg(), uuid.New())
	require.Error(t, err)
}

func TestListBillsFilters(t *testing.T) {
	f := newTestFixtures(t)

	for _, phone := range []string{"9876543210", "9876543210", "9123456789"} {
		_, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
			Phone:         phone,
			Items:         []BillLineInput{{ItemID: f.cappuccino.ID, Quantity: 1}},
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
	}

	params := &repository.BillFilterParams{
		Pagination: pagination.DefaultPagination(),
		Phone:      "98765",
	}
	bills, total, err := f.bills.ListBills(ctxBg(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bills, 2)

	status := enum.BillStatusPaid
	params = &repository.BillFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &status,
	}
	_, total, err = f.bills.ListBills(ctxBg(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestQuoteExcludesUnresolvedLines(t *testing.T) {
	f := newTestFixtures(t)

	result, err := f.bills.Quote(ctxBg(), &QuoteInput{
		Items: []BillLineInput{
			{ItemID: f.cappuccino.ID, Quantity: 2},
			{ItemID: uuid.Nil, Quantity: 3}, // still being composed
			{ItemID: f.latte.ID, Quantity: 1},
		},
		DiscountMode: "percentage",
		DiscountRaw:  "10",
	})
	require.NoError(t, err)

	// Only the two resolved lines count: 140.00 + 80.00 = 220.00
	require.Len(t, result.Lines, 2)
	assert.Equal(t, 220.00, result.Subtotal)
	assert.Equal(t, 22.00, result.Discount)
	assert.Equal(t, 198.00, result.GrandTotal)
}

func TestQuoteDiscountModes(t *testing.T) {
	f := newTestFixtures(t)

	lines := []BillLineInput{{ItemID: f.mocha.ID, Quantity: 2}} // 200.00

	pct, err := f.bills.Quote(ctxBg(), &QuoteInput{
		Items: lines, DiscountMode: "percentage", DiscountRaw: "150",
	})
	require.NoError(t, err)
	assert.Equal(t, 200.00, pct.Discount, "percentage clamps to 100")

	amt, err := f.bills.Quote(ctxBg(), &QuoteInput{
		Items: lines, DiscountMode: "amount", DiscountRaw: "garbage",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, amt.Discount, "unparseable input is zero")
	assert.Equal(t, 200.00, amt.GrandTotal)
}
