package repository

import (
	"context"
	"time"

	"github.com/sangkips/cafebill-api/internal/domain/entity"
)

// OTPRepository defines the interface for one-time code data operations
type OTPRepository interface {
	Create(ctx context.Context, code *entity.OTPCode) error
	GetLatestByPhone(ctx context.Context, phone string) (*entity.OTPCode, error)
	Update(ctx context.Context, code *entity.OTPCode) error
	CountSince(ctx context.Context, phone string, since time.Time) (int64, error)
	DeleteExpired(ctx context.Context) error
}
