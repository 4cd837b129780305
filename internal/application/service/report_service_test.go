package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepo "github.com/sangkips/cafebill-api/internal/infrastructure/repository"
)

func TestResolveWindow(t *testing.T) {
	start, end, err := ResolveWindow("week", "", "")
	require.NoError(t, err)
	assert.True(t, end.After(start))
	assert.WithinDuration(t, end.AddDate(0, 0, -6), start, 24*time.Hour)

	start, end, err = ResolveWindow("", "2026-08-01", "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.August, end.Month())

	_, _, err = ResolveWindow("", "2026-08-28", "2026-08-01")
	require.Error(t, err, "inverted range")

	_, _, err = ResolveWindow("", "2026-08-01", "")
	require.Error(t, err, "half-open range")

	_, _, err = ResolveWindow("fortnight", "", "")
	require.Error(t, err, "unknown period")
}

func TestResolveWindowPeriodAliases(t *testing.T) {
	for alias, canonical := range map[string]string{
		"daily":   "today",
		"weekly":  "week",
		"monthly": "month",
		"yearly":  "year",
	} {
		aliasStart, _, err := ResolveWindow(alias, "", "")
		require.NoError(t, err, alias)
		canonicalStart, _, err := ResolveWindow(canonical, "", "")
		require.NoError(t, err, canonical)
		assert.WithinDuration(t, canonicalStart, aliasStart, time.Second, alias)
	}
}

func TestDashboard(t *testing.T) {
	f := newTestFixtures(t)
	reports := NewReportService(infraRepo.NewReportRepository(f.db))

	// Two bills for a recurring customer, one for a new one
	for _, in := range []*CreateBillInput{
		{Phone: "9876543210", Items: []BillLineInput{{ItemID: f.cappuccino.ID, Quantity: 2}}, PaymentMethod: "upi"},
		{Phone: "9876543210", Items: []BillLineInput{{ItemID: f.latte.ID, Quantity: 1}}, Discount: decimal.NewFromInt(8), PaymentMethod: "upi"},
		{Phone: "9123456789", Items: []BillLineInput{{ItemID: f.mocha.ID, Quantity: 1}}, PaymentMethod: "cash"},
	} {
		_, err := f.bills.CreateBill(ctxBg(), in)
		require.NoError(t, err)
	}

	// Cancelled bills are excluded from the aggregates
	cancelled, err := f.bills.CreateBill(ctxBg(), &CreateBillInput{
		Phone:         "9123456789",
		Items:         []BillLineInput{{ItemID: f.mocha.ID, Quantity: 5}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	_, err = f.bills.UpdateStatus(ctxBg(), cancelled.ID, "cancelled")
	require.NoError(t, err)

	report, err := reports.Dashboard(ctxBg(), "today", "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.TotalBills)
	// 140.00 + (80.00 - 8.00) + 100.00
	assert.Equal(t, 312.00, report.TotalAmount)
	assert.Equal(t, "upi", report.MostActiveSegment)
	assert.Equal(t, int64(1), report.RecurringCustomers)
	assert.Equal(t, int64(2), report.NewCustomers)
	assert.NotEmpty(t, report.AvgDiscount)

	require.NotEmpty(t, report.TopItems)
	assert.Equal(t, "Cappuccino", report.TopItems[0].Name)
	assert.Equal(t, int64(2), report.TopItems[0].Quantity)
}

func TestDashboardEmptyWindow(t *testing.T) {
	f := newTestFixtures(t)
	reports := NewReportService(infraRepo.NewReportRepository(f.db))

	report, err := reports.Dashboard(ctxBg(), "", "2020-01-01", "2020-01-31")
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.TotalBills)
	assert.Equal(t, 0.00, report.TotalAmount)
	assert.Empty(t, report.TopItems)
}
