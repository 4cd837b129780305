package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name             string     `json:"name" binding:"required,min=2,max=255"`
	Description      *string    `json:"description"`
	ParentCategoryID *uuid.UUID `json:"parent_category"`
	IsActive         *bool      `json:"is_active"`
}

// UpdateCategoryRequest represents a category update; omitted fields are kept
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CreateItemRequest represents a menu item creation request. Price is
// in rupees.
type CreateItemRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required,min=2,max=255"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	SKU         *string         `json:"sku"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateItemRequest represents a menu item update; omitted fields are kept
type UpdateItemRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id"`
	Name        *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	SKU         *string          `json:"sku"`
	Images      []string         `json:"images"`
	Tags        []string         `json:"tags"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}
