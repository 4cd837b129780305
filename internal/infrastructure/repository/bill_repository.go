package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cafebill-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&bill, "bill_no = ?", billNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.BillItem{}, "bill_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Bill{}, "id = ?", id).Error
	})
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Phone != "" {
		query = query.Where("phone LIKE ?", params.Phone+"%")
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "bill_no", "total_paise", "created_at", "status":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ReplaceItems swaps the full line set of a bill inside a transaction,
// used when an existing bill is edited and recomputed.
func (r *billRepository) ReplaceItems(ctx context.Context, billID uuid.UUID, items []entity.BillItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entity.BillItem{}, "bill_id = ?", billID).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BillID = billID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}
