package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/pagination"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		First(&user, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	params.Validate()

	query := r.db.WithContext(ctx).Model(&entity.User{})
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("phone LIKE ? OR LOWER(name) LIKE LOWER(?)", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := query.
		Preload("Roles").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SearchByPhonePrefix(ctx context.Context, prefix string, limit int) ([]entity.User, error) {
	var users []entity.User
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	err := r.db.WithContext(ctx).
		Where("phone LIKE ?", prefix+"%").
		Order("phone ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) GetRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &role, err
}

func (r *userRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	user := entity.User{ID: userID}
	return r.db.WithContext(ctx).
		Model(&user).
		Association("Roles").
		Append(&entity.Role{ID: roleID})
}
