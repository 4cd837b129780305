package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domainRepo "github.com/sangkips/cafebill-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new reporting repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetDashboardStats(ctx context.Context, start, end time.Time) (*domainRepo.DashboardStats, error) {
	stats := &domainRepo.DashboardStats{}

	var row struct {
		TotalBills  int64
		TotalAmount sql.NullInt64
		AvgDiscount sql.NullFloat64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as total_bills,
			COALESCE(SUM(total_paise), 0) as total_amount,
			AVG(discount_paise * 100.0 / NULLIF(subtotal_paise, 0)) as avg_discount
		FROM bills
		WHERE status != 'cancelled'
		AND deleted_at IS NULL
		AND created_at >= ? AND created_at <= ?
	`, start, end).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats.TotalBills = row.TotalBills
	if row.TotalAmount.Valid {
		stats.TotalAmountPaise = row.TotalAmount.Int64
	}
	avg := 0.0
	if row.AvgDiscount.Valid {
		avg = row.AvgDiscount.Float64
	}
	stats.AvgDiscountPct = fmt.Sprintf("%.2f%%", avg)

	// Payment method carrying the most bills in the window
	var segment sql.NullString
	err = r.db.WithContext(ctx).Raw(`
		SELECT payment_method
		FROM bills
		WHERE status != 'cancelled'
		AND deleted_at IS NULL
		AND created_at >= ? AND created_at <= ?
		GROUP BY payment_method
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`, start, end).Scan(&segment).Error
	if err != nil {
		return nil, err
	}
	if segment.Valid {
		stats.MostActiveSegment = segment.String
	}

	// Customers with more than one bill inside the window
	err = r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM (
			SELECT user_id
			FROM bills
			WHERE status != 'cancelled'
			AND deleted_at IS NULL
			AND created_at >= ? AND created_at <= ?
			GROUP BY user_id
			HAVING COUNT(*) > 1
		) recurring
	`, start, end).Scan(&stats.RecurringCustomers).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM users
		WHERE deleted_at IS NULL
		AND created_at >= ? AND created_at <= ?
	`, start, end).Scan(&stats.NewCustomers).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *reportRepository) GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopItemStat, error) {
	var results []domainRepo.TopItemStat

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			bi.name as name,
			COALESCE(SUM(bi.quantity), 0) as quantity,
			COALESCE(SUM(bi.total_paise), 0) as revenue
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.status != 'cancelled'
		AND b.deleted_at IS NULL
		AND b.created_at >= ? AND b.created_at <= ?
		GROUP BY bi.name
		ORDER BY quantity DESC
		LIMIT ?
	`, start, end, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
