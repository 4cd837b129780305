package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/pkg/money"
	"gorm.io/gorm"
)

// Item represents a sellable menu item. Prices are stored in paise to
// keep arithmetic exact; the JSON boundary renders decimal rupees.
type Item struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Slug        string         `gorm:"size:255;unique;not null" json:"slug"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	PricePaise  int64          `gorm:"not null" json:"-"`
	SKU         *string        `gorm:"size:100;uniqueIndex" json:"sku,omitempty"`
	Images      []string       `gorm:"serializer:json" json:"images,omitempty"`
	Tags        []string       `gorm:"serializer:json" json:"tags,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// MarshalJSON renders the stored paise amount as a decimal price
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		Price          float64 `json:"price"`
		FormattedPrice string  `json:"formatted_price"`
	}{
		Alias:          Alias(i),
		Price:          money.Float(i.PricePaise),
		FormattedPrice: money.Format(i.PricePaise),
	})
}
