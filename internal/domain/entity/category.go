package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a menu category (e.g. Signature Coffees, Pasta)
type Category struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Slug             string         `gorm:"size:255;unique;not null" json:"slug"`
	Description      *string        `gorm:"type:text" json:"description,omitempty"`
	ParentCategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"parent_category,omitempty"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent *Category `gorm:"foreignKey:ParentCategoryID" json:"-"`
	Items  []Item    `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
