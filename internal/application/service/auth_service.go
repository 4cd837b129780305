package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/sangkips/cafebill-api/internal/config"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/sms"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

// AuthService handles phone OTP login for customers and password
// sign-in for staff accounts
type AuthService struct {
	userRepo   repository.UserRepository
	otpRepo    repository.OTPRepository
	smsSender  sms.Sender
	jwtManager *utils.JWTManager
	otpConfig  config.OTPConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	smsSender sms.Sender,
	jwtManager *utils.JWTManager,
	otpConfig config.OTPConfig,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		otpRepo:    otpRepo,
		smsSender:  smsSender,
		jwtManager: jwtManager,
		otpConfig:  otpConfig,
	}
}

// TokenPair carries the issued access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is the outcome of a successful login
type AuthResult struct {
	User   *entity.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// SendOTP generates a login code for the phone, stores only its hash
// and hands the plaintext to the SMS gateway.
func (s *AuthService) SendOTP(ctx context.Context, rawPhone string) error {
	phone := utils.NormalizePhone(rawPhone)
	if len(phone) < 7 {
		return apperror.NewBadRequestError("A valid phone number is required")
	}

	count, err := s.otpRepo.CountSince(ctx, phone, time.Now().Add(-time.Hour))
	if err != nil {
		return err
	}
	if int(count) >= s.otpConfig.MaxPerHour {
		return apperror.ErrOTPThrottled
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(code)
	if err != nil {
		return err
	}

	record := &entity.OTPCode{
		Phone:     phone,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(s.otpConfig.Expiry),
	}
	if err := s.otpRepo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.smsSender.SendOTP(ctx, phone, code); err != nil {
		log.Printf("Warning: OTP delivery to %s failed: %v", phone, err)
		return apperror.NewAppError(502, "Could not deliver verification code")
	}
	return nil
}

// VerifyOTP checks the submitted code, consumes it and signs the
// customer in, creating the account on first login.
func (s *AuthService) VerifyOTP(ctx context.Context, rawPhone, code string) (*AuthResult, error) {
	phone := utils.NormalizePhone(rawPhone)

	record, err := s.otpRepo.GetLatestByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.Usable() {
		return nil, apperror.ErrInvalidOTP
	}

	if !utils.CheckPasswordHash(code, record.CodeHash) {
		record.Attempts++
		if err := s.otpRepo.Update(ctx, record); err != nil {
			return nil, err
		}
		return nil, apperror.ErrInvalidOTP
	}

	record.Consumed = true
	if err := s.otpRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{Phone: phone}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		if role, err := s.userRepo.GetRoleByName(ctx, "customer"); err == nil && role != nil {
			if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
				return nil, err
			}
		}
		user, err = s.userRepo.GetByID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

// SignIn authenticates a staff or admin account with email and password
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthResult, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Phone, user.RoleNames())
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:   user,
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

// generateOTPCode returns a 4-digit code with a crypto-grade source
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
