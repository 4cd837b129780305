package repository

import (
	"context"

	"github.com/sangkips/cafebill-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, record *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
