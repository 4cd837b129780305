package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/pkg/pagination"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SearchByPhonePrefix(ctx context.Context, prefix string, limit int) ([]entity.User, error)
	GetRoleByName(ctx context.Context, name string) (*entity.Role, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
}
