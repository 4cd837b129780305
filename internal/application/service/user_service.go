package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/pagination"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

// UserService handles customer lookup operations
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SearchByPhone returns customers whose phone starts with the given
// digits, for the bill composer typeahead.
func (s *UserService) SearchByPhone(ctx context.Context, prefix string, limit int) ([]entity.User, error) {
	prefix = utils.NormalizePhone(prefix)
	if len(prefix) < 3 {
		return []entity.User{}, nil
	}
	return s.userRepo.SearchByPhonePrefix(ctx, prefix, limit)
}

// GetByPhone returns the customer registered under the exact phone
func (s *UserService) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, utils.NormalizePhone(phone))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers returns registered customers and staff for the back office
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetByID returns a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfileInput represents the profile update input
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// UpdateProfile updates a user's own profile details
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
