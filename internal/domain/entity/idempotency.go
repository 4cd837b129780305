package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the response for a mutating request so retries
// with the same key replay the original outcome.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key          string    `gorm:"size:255;uniqueIndex;not null" json:"key"`
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Endpoint     string    `gorm:"size:255;not null" json:"endpoint"`
	RequestHash  string    `gorm:"size:64;not null" json:"request_hash"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (ik *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if ik.ID == uuid.Nil {
		ik.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks whether the stored response has passed its TTL
func (ik *IdempotencyKey) IsExpired() bool {
	return time.Now().After(ik.ExpiresAt)
}
