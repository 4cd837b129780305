package repository

import (
	"context"
	"time"
)

// DashboardStats aggregates billing activity over a reporting window
type DashboardStats struct {
	TotalBills         int64  `json:"totalBills"`
	TotalAmountPaise   int64  `json:"-"`
	AvgDiscountPct     string `json:"avgDiscount"`
	MostActiveSegment  string `json:"mostActiveSegment"`
	RecurringCustomers int64  `json:"recurringCustomers"`
	NewCustomers       int64  `json:"newCustomers"`
}

// TopItemStat ranks a menu item by quantity sold over a window
type TopItemStat struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Revenue  int64  `json:"-"`
}

// ReportRepository defines the interface for reporting aggregations
type ReportRepository interface {
	GetDashboardStats(ctx context.Context, start, end time.Time) (*DashboardStats, error)
	GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]TopItemStat, error)
}
