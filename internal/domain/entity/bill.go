package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/enum"
	"github.com/sangkips/cafebill-api/pkg/money"
	"gorm.io/gorm"
)

// Bill represents a settled or pending café bill. Monetary amounts are
// stored in paise and surfaced as decimal rupees in JSON.
type Bill struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BillNo        string             `gorm:"size:50;uniqueIndex;not null" json:"bill_no"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Phone         string             `gorm:"size:20;index;not null" json:"phone"`
	SubtotalPaise int64              `gorm:"not null" json:"-"`
	DiscountPaise int64              `gorm:"not null;default:0" json:"-"`
	TotalPaise    int64              `gorm:"not null" json:"-"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Status        enum.BillStatus    `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User  *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// MarshalJSON renders the stored paise amounts as decimal totals
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Subtotal   float64 `json:"subtotal"`
		Discount   float64 `json:"discount"`
		GrandTotal float64 `json:"grand_total"`
	}{
		Alias:      Alias(b),
		Subtotal:   money.Float(b.SubtotalPaise),
		Discount:   money.Float(b.DiscountPaise),
		GrandTotal: money.Float(b.TotalPaise),
	})
}

// BillItem is a line on a bill. Name and unit price are captured at
// billing time so later menu edits never rewrite history.
type BillItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID     uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null" json:"item_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	UnitPaise  int64     `gorm:"not null" json:"-"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	TotalPaise int64     `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// MarshalJSON renders the stored paise amounts as decimal prices
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(bi),
		UnitPrice: money.Float(bi.UnitPaise),
		Total:     money.Float(bi.TotalPaise),
	})
}
