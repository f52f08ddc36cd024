package service

import (
	"context"

	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/internal/dto"
)

// AuthService defines the account lifecycle and session operations
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignupRequest, ip string) (*dto.SignupResponse, error)
	SignIn(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	SignOut(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*domain.SessionClaims, error)

	ResendVerification(ctx context.Context, email, ip string) (*dto.MessageResponse, error)
	VerifyEmail(ctx context.Context, token string) (*dto.VerifyEmailResponse, error)
	ForgotPassword(ctx context.Context, email, ip string) (*dto.MessageResponse, error)
	ResetPassword(ctx context.Context, token, password, ip string) (*dto.ResetPasswordResponse, error)

	GetProfile(ctx context.Context, userID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.Account, error)
}
