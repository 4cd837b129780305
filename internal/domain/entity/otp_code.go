package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTPCode stores a hashed one-time login code issued to a phone number.
// The plaintext code only ever travels through the SMS gateway.
type OTPCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Phone     string    `gorm:"size:20;index;not null" json:"phone"`
	CodeHash  string    `gorm:"size:255;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new OTP code
func (o *OTPCode) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OTPCode model
func (OTPCode) TableName() string {
	return "otp_codes"
}

// Expired checks whether the code is past its expiry
func (o *OTPCode) Expired() bool {
	return time.Now().After(o.ExpiresAt)
}

// Usable reports whether the code can still be verified against
func (o *OTPCode) Usable() bool {
	return !o.Consumed && !o.Expired() && o.Attempts < 5
}
