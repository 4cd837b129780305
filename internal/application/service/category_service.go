package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

// CategoryService handles menu category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name             string
	Description      *string
	ParentCategoryID *uuid.UUID
	IsActive         *bool
}

// CreateCategory creates a new menu category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	slug := utils.Slugify(input.Name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	if input.ParentCategoryID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *input.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent category")
		}
	}

	category := &entity.Category{
		Name:             input.Name,
		Slug:             slug,
		Description:      input.Description,
		ParentCategoryID: input.ParentCategoryID,
		IsActive:         true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != nil && *input.Name != category.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.categoryRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		category.Name = *input.Name
		category.Slug = slug
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// GetCategory returns a single category
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories returns all categories
func (s *CategoryService) ListCategories(ctx context.Context, activeOnly bool) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}

// Menu returns active categories with their active items, the public
// menu shape.
func (s *CategoryService) Menu(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.ListWithItems(ctx, true)
}
