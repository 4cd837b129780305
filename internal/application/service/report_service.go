package service

import (
	"context"
	"time"

	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/money"
)

// ReportService handles dashboard reporting
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// DashboardReport is the dashboard payload with amounts in rupees
type DashboardReport struct {
	TotalBills         int64           `json:"totalBills"`
	TotalAmount        float64         `json:"totalAmount"`
	AvgDiscount        string          `json:"avgDiscount"`
	MostActiveSegment  string          `json:"mostActiveSegment"`
	RecurringCustomers int64           `json:"recurringCustomers"`
	NewCustomers       int64           `json:"newCustomers"`
	TopItems           []DashboardItem `json:"topItems"`
	Window             DashboardWindow `json:"window"`
}

// DashboardItem ranks a menu item by quantity sold
type DashboardItem struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DashboardWindow echoes the resolved reporting window
type DashboardWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveWindow turns a named period or explicit date range into
// concrete bounds. Explicit dates win over the period name.
func ResolveWindow(period, startDate, endDate string) (time.Time, time.Time, error) {
	now := time.Now()

	if startDate != "" || endDate != "" {
		if startDate == "" || endDate == "" {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("Both startDate and endDate are required")
		}
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("startDate must be YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("endDate must be YYYY-MM-DD")
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		if end.Before(start) {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("endDate must not precede startDate")
		}
		return start, end, nil
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "", "today", "daily":
		return startOfDay, now, nil
	case "week", "weekly":
		return startOfDay.AddDate(0, 0, -6), now, nil
	case "month", "monthly":
		return startOfDay.AddDate(0, -1, 0), now, nil
	case "year", "yearly":
		return startOfDay.AddDate(-1, 0, 0), now, nil
	default:
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("Unknown period")
	}
}

// Dashboard aggregates billing activity over the requested window
func (s *ReportService) Dashboard(ctx context.Context, period, startDate, endDate string) (*DashboardReport, error) {
	start, end, err := ResolveWindow(period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	stats, err := s.reportRepo.GetDashboardStats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	topItems, err := s.reportRepo.GetTopItems(ctx, start, end, 5)
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		TotalBills:         stats.TotalBills,
		TotalAmount:        money.Float(stats.TotalAmountPaise),
		AvgDiscount:        stats.AvgDiscountPct,
		MostActiveSegment:  stats.MostActiveSegment,
		RecurringCustomers: stats.RecurringCustomers,
		NewCustomers:       stats.NewCustomers,
		TopItems:           make([]DashboardItem, 0, len(topItems)),
		Window:             DashboardWindow{Start: start, End: end},
	}
	for _, item := range topItems {
		report.TopItems = append(report.TopItems, DashboardItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Revenue:  money.Float(item.Revenue),
		})
	}
	return report, nil
}
