package request

// SendOTPRequest starts a phone login by requesting a one-time code
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=7,max=20"`
}

// VerifyOTPRequest completes a phone login
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=7,max=20"`
	Code  string `json:"code" binding:"required,len=4,numeric"`
}

// SignInRequest represents a staff email/password login
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
