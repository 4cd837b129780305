package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillLineRequest is one (item, quantity) pair of a bill request
type BillLineRequest struct {
	Item     uuid.UUID `json:"item" binding:"required"`
	Quantity int       `json:"quantity" binding:"required"`
}

// CreateBillRequest represents a bill creation request. Discount is a
// flat rupee amount; the server recomputes every total.
type CreateBillRequest struct {
	Phone         string            `json:"phone" binding:"required,min=7,max=20"`
	Name          string            `json:"name"`
	Items         []BillLineRequest `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	Status        string            `json:"status"`
}

// UpdateBillRequest represents a bill edit; omitted fields are kept
type UpdateBillRequest struct {
	Items         []BillLineRequest `json:"items" binding:"omitempty,min=1,dive"`
	Discount      *decimal.Decimal  `json:"discount"`
	PaymentMethod *string           `json:"paymentMethod"`
	Status        *string           `json:"status"`
}

// UpdateBillStatusRequest moves a bill through its lifecycle
type UpdateBillStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuoteLineRequest is a quote line; the item may still be unresolved
// while the bill is being composed.
type QuoteLineRequest struct {
	Item     uuid.UUID `json:"item"`
	Quantity int       `json:"quantity"`
}

// QuoteBillRequest previews totals without persisting anything
type QuoteBillRequest struct {
	Items        []QuoteLineRequest `json:"items" binding:"required"`
	DiscountMode string             `json:"discountMode"`
	Discount     string             `json:"discount"`
}
