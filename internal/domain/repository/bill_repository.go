package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/enum"
	"github.com/sangkips/cafebill-api/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error
	ReplaceItems(ctx context.Context, billID uuid.UUID, items []entity.BillItem) error
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.BillStatus
	Phone      string
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
