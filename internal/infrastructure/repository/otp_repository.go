package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/cafebill-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cafebill-api/internal/domain/repository"
	"gorm.io/gorm"
)

type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP code repository
func NewOTPRepository(db *gorm.DB) domainRepo.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, code *entity.OTPCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *otpRepository) GetLatestByPhone(ctx context.Context, phone string) (*entity.OTPCode, error) {
	var code entity.OTPCode
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC").
		First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &code, err
}

func (r *otpRepository) Update(ctx context.Context, code *entity.OTPCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}

func (r *otpRepository) CountSince(ctx context.Context, phone string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.OTPCode{}).
		Where("phone = ? AND created_at >= ?", phone, since).
		Count(&count).Error
	return count, err
}

func (r *otpRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.OTPCode{}).Error
}
