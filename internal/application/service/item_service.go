package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/money"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

// ItemService handles menu item operations
type ItemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo, categoryRepo: categoryRepo}
}

// CreateItemInput represents the create item input. Price is in rupees.
type CreateItemInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Price       decimal.Decimal
	SKU         *string
	Images      []string
	Tags        []string
	IsActive    *bool
}

// CreateItem creates a new menu item
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item with this name already exists")
	}

	item := &entity.Item{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		PricePaise:  money.ToPaise(input.Price),
		SKU:         input.SKU,
		Images:      input.Images,
		Tags:        input.Tags,
		IsActive:    true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, item.ID)
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
	SKU         *string
	Images      []string
	Tags        []string
	IsActive    *bool
}

// UpdateItem updates an existing menu item. Bills already created keep
// their captured prices.
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		item.CategoryID = *input.CategoryID
	}

	if input.Name != nil && *input.Name != item.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.itemRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("Item with this name already exists")
		}
		item.Name = *input.Name
		item.Slug = slug
	}

	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		item.PricePaise = money.ToPaise(*input.Price)
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.SKU != nil {
		item.SKU = input.SKU
	}
	if input.Images != nil {
		item.Images = input.Images
	}
	if input.Tags != nil {
		item.Tags = input.Tags
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, id)
}

// DeleteItem soft-deletes a menu item
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}

// GetItem returns a single menu item
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems returns items matching the filter
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	return s.itemRepo.List(ctx, params)
}
