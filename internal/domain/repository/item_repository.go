package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/pkg/pagination"
)

// ItemRepository defines the interface for menu item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.Category, error)
	ListWithItems(ctx context.Context, activeOnly bool) ([]entity.Category, error)
}
