package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hefica/hefica-backend/internal/config"
	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/internal/dto"
	"github.com/hefica/hefica-backend/internal/mailer"
	"github.com/hefica/hefica-backend/internal/repository"
	"github.com/hefica/hefica-backend/internal/utils"
	"github.com/hefica/hefica-backend/pkg/observability"
)

const (
	verificationTokenHours = 24
	resetTokenHours        = 1
)

type authService struct {
	accounts repository.AccountRepository
	mailer   mailer.Mailer
	limiter  *RateLimiter
	sessions *utils.SessionManager
	denylist *SessionDenylist
	security config.SecurityConfig
	rates    config.RateLimitConfig
	metrics  *observability.AuthMetrics
	logger   *zap.Logger
}

// NewAuthService creates the account lifecycle service.
func NewAuthService(
	accounts repository.AccountRepository,
	m mailer.Mailer,
	limiter *RateLimiter,
	sessions *utils.SessionManager,
	denylist *SessionDenylist,
	security config.SecurityConfig,
	rates config.RateLimitConfig,
	metrics *observability.AuthMetrics,
	logger *zap.Logger,
) AuthService {
	return &authService{
		accounts: accounts,
		mailer:   m,
		limiter:  limiter,
		sessions: sessions,
		denylist: denylist,
		security: security,
		rates:    rates,
		metrics:  metrics,
		logger:   logger,
	}
}

// refuse records the refusal before handing it back to the caller.
func (s *authService) refuse(ctx context.Context, e *SignInError) *SignInError {
	s.metrics.RecordSignInFailure(ctx, e.Kind.String())
	if e.FreshLock {
		s.metrics.RecordLockout(ctx)
	}
	return e
}

// SignUp registers a new account and dispatches the verification
// email. A failed email send does not fail the signup; the account can
// request a resend.
func (s *authService) SignUp(ctx context.Context, req *dto.SignupRequest, ip string) (*dto.SignupResponse, error) {
	limit := s.limiter.Check("signup:"+ip, s.rates.SignupMax, s.rates.SignupWindow.Duration)
	if !limit.Allowed {
		return nil, NewSignupRateLimitError(limit.RetryAfterMinutes(time.Now()))
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if len(firstName) < 2 || len(lastName) < 2 {
		return nil, newValidationError("First name and last name must be at least 2 characters")
	}

	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, newValidationError("Invalid email format")
	}

	validation := utils.ValidatePassword(req.Password)
	if !validation.IsValid {
		return nil, &ValidationError{Message: validation.Errors[0]}
	}

	if utils.IsCommonPassword(req.Password) {
		return nil, ErrCommonPassword
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.security.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := utils.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	tokenExpiry := utils.TokenExpiry(verificationTokenHours)

	account := &domain.Account{
		Email:                   email,
		PasswordHash:            passwordHash,
		FirstName:               firstName,
		LastName:                lastName,
		EmailVerified:           false,
		VerificationToken:       &token,
		VerificationTokenExpiry: &tokenExpiry,
		Status:                  domain.AccountActive,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.metrics.RecordSignup(ctx)

	if err := s.mailer.SendVerificationEmail(ctx, account.Email, token, account.FirstName); err != nil {
		s.logger.Warn("failed to send verification email",
			zap.String("email", account.Email),
			zap.Error(err))
	} else {
		s.metrics.RecordEmailSent(ctx, "verification")
	}

	return &dto.SignupResponse{
		Message: "Account created successfully! Please check your email to verify your account.",
		User: dto.AccountSummary{
			ID:        account.ID,
			Email:     account.Email,
			FirstName: account.FirstName,
			LastName:  account.LastName,
		},
		RequiresVerification: true,
	}, nil
}

// SignIn verifies credentials and issues a session token. Every
// refusal is a *SignInError; checks run in a fixed order so an
// attacker cannot learn more from a locked or suspended account than
// its owner would.
func (s *authService) SignIn(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := utils.SanitizeEmail(req.Email)

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.refuse(ctx, &SignInError{Kind: SignInInvalidCredentials})
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	switch account.Status {
	case domain.AccountSuspended:
		return nil, s.refuse(ctx, &SignInError{Kind: SignInAccountSuspended})
	case domain.AccountDeleted:
		return nil, s.refuse(ctx, &SignInError{Kind: SignInAccountGone})
	}

	now := time.Now()
	if account.IsLockedOut(now) {
		minutesLeft := int(math.Ceil(account.LockoutUntil.Sub(now).Minutes()))
		return nil, s.refuse(ctx, &SignInError{Kind: SignInAccountLocked, MinutesLeft: minutesLeft})
	}

	if !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		attempts := account.FailedLoginAttempts + 1

		var lockoutUntil *time.Time
		if attempts >= s.security.MaxLoginAttempts {
			until := now.Add(s.security.LockoutDuration.Duration)
			lockoutUntil = &until
		}

		if err := s.accounts.RecordLoginFailure(ctx, account.ID, attempts, lockoutUntil); err != nil {
			return nil, fmt.Errorf("failed to record login failure: %w", err)
		}

		if lockoutUntil != nil {
			s.logger.Info("account locked after repeated failures",
				zap.String("account_id", account.ID),
				zap.Int("attempts", attempts))
			minutes := int(s.security.LockoutDuration.Duration.Minutes())
			return nil, s.refuse(ctx, &SignInError{Kind: SignInAccountLocked, MinutesLeft: minutes, FreshLock: true})
		}

		return nil, s.refuse(ctx, &SignInError{Kind: SignInInvalidCredentials})
	}

	if !account.EmailVerified {
		return nil, s.refuse(ctx, &SignInError{Kind: SignInEmailNotVerified})
	}

	if err := s.accounts.RecordLoginSuccess(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	accessToken, err := s.sessions.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.sessions.Expiry().Seconds()),
		User: dto.AccountSummary{
			ID:        account.ID,
			Email:     account.Email,
			FirstName: account.FirstName,
			LastName:  account.LastName,
		},
	}, nil
}

// SignOut revokes the session token for the remainder of its lifetime.
func (s *authService) SignOut(ctx context.Context, token string) error {
	if _, err := s.sessions.Validate(token); err != nil {
		return ErrInvalidSession
	}
	return s.denylist.Revoke(ctx, token, s.sessions.Expiry())
}

// ValidateSession parses the token and rejects revoked sessions.
func (s *authService) ValidateSession(ctx context.Context, token string) (*domain.SessionClaims, error) {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	revoked, err := s.denylist.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if revoked {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// ResendVerification issues a fresh verification token. Unknown emails
// get the same 200 response as known ones; an already verified email
// is reported outright since signing in would reveal it anyway.
func (s *authService) ResendVerification(ctx context.Context, email, ip string) (*dto.MessageResponse, error) {
	email = utils.SanitizeEmail(email)

	limit := s.limiter.Check(fmt.Sprintf("resend:%s:%s", ip, email), s.rates.ResendMax, s.rates.ResendWindow.Duration)
	if !limit.Allowed {
		return nil, NewRateLimitError(limit.RetryAfterMinutes(time.Now()))
	}

	neutral := &dto.MessageResponse{Message: "If an account exists with this email, a verification link has been sent."}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return neutral, nil
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if account.EmailVerified {
		return nil, ErrAlreadyVerified
	}

	token, err := utils.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	if err := s.accounts.SetVerificationToken(ctx, account.ID, token, utils.TokenExpiry(verificationTokenHours)); err != nil {
		return nil, fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, account.Email, token, account.FirstName); err != nil {
		s.logger.Error("failed to send verification email",
			zap.String("email", account.Email),
			zap.Error(err))
		return nil, ErrVerificationEmailFailed
	}
	s.metrics.RecordEmailSent(ctx, "verification")

	return &dto.MessageResponse{Message: "Verification email sent successfully. Please check your inbox."}, nil
}

// VerifyEmail consumes a verification token and marks the email
// verified. The welcome email is best effort.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*dto.VerifyEmailResponse, error) {
	account, err := s.accounts.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidVerificationToken
		}
		return nil, fmt.Errorf("failed to look up verification token: %w", err)
	}

	if account.EmailVerified {
		return &dto.VerifyEmailResponse{
			Message:         "Email is already verified. You can sign in now.",
			AlreadyVerified: true,
		}, nil
	}

	if utils.IsTokenExpired(account.VerificationTokenExpiry) {
		return nil, ErrVerificationTokenExpired
	}

	if err := s.accounts.MarkEmailVerified(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	if err := s.mailer.SendWelcomeEmail(ctx, account.Email, account.FirstName); err != nil {
		s.logger.Warn("failed to send welcome email",
			zap.String("email", account.Email),
			zap.Error(err))
	} else {
		s.metrics.RecordEmailSent(ctx, "welcome")
	}

	return &dto.VerifyEmailResponse{
		Message: "Email verified successfully! You can now sign in.",
		Success: true,
	}, nil
}

// ForgotPassword issues a reset token. The response is byte-identical
// whether the email exists, is suspended, deleted or active, except
// when the reset email itself fails to send.
func (s *authService) ForgotPassword(ctx context.Context, email, ip string) (*dto.MessageResponse, error) {
	email = utils.SanitizeEmail(email)

	limit := s.limiter.Check(fmt.Sprintf("forgot-password:%s:%s", ip, email), s.rates.ForgotMax, s.rates.ForgotWindow.Duration)
	if !limit.Allowed {
		return nil, NewRateLimitError(limit.RetryAfterMinutes(time.Now()))
	}

	neutral := &dto.MessageResponse{Message: "If an account exists with this email, a password reset link has been sent."}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return neutral, nil
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if account.Status != domain.AccountActive {
		return neutral, nil
	}

	token, err := utils.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	// A repeat request overwrites the previous token, invalidating it.
	if err := s.accounts.SetResetToken(ctx, account.ID, token, utils.TokenExpiry(resetTokenHours)); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, account.Email, token, account.FirstName); err != nil {
		s.logger.Error("failed to send password reset email",
			zap.String("email", account.Email),
			zap.Error(err))
		return nil, ErrResetEmailFailed
	}
	s.metrics.RecordEmailSent(ctx, "password_reset")

	return neutral, nil
}

// ResetPassword consumes a reset token and replaces the password. The
// new password passes the same policy as signup. A successful reset
// also clears any lockout so the owner can sign in immediately.
func (s *authService) ResetPassword(ctx context.Context, token, password, ip string) (*dto.ResetPasswordResponse, error) {
	limit := s.limiter.Check("reset-password:"+ip, s.rates.ResetMax, s.rates.ResetWindow.Duration)
	if !limit.Allowed {
		return nil, NewRateLimitError(limit.RetryAfterMinutes(time.Now()))
	}

	validation := utils.ValidatePassword(password)
	if !validation.IsValid {
		return nil, &ValidationError{Message: validation.Errors[0]}
	}

	if utils.IsCommonPassword(password) {
		return nil, ErrCommonPassword
	}

	account, err := s.accounts.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	if utils.IsTokenExpired(account.ResetTokenExpiry) {
		return nil, ErrResetTokenExpired
	}

	passwordHash, err := utils.HashPassword(password, s.security.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accounts.ResetPassword(ctx, account.ID, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	return &dto.ResetPasswordResponse{
		Message: "Password reset successfully! You can now sign in with your new password.",
		Success: true,
	}, nil
}

// GetProfile returns the full account record for the session owner.
func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

// UpdateProfile applies the provided profile fields after range checks.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.Account, error) {
	if req.Age != nil && (*req.Age < 13 || *req.Age > 120) {
		return nil, newValidationError("Age must be between 13 and 120")
	}
	if req.Height != nil && (*req.Height < 50 || *req.Height > 300) {
		return nil, newValidationError("Height must be between 50 and 300 cm")
	}
	if req.Weight != nil && (*req.Weight < 20 || *req.Weight > 500) {
		return nil, newValidationError("Weight must be between 20 and 500 kg")
	}

	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		trimmed := strings.TrimSpace(*req.FirstName)
		if len(trimmed) < 2 {
			return nil, newValidationError("First name and last name must be at least 2 characters")
		}
		account.FirstName = trimmed
	}
	if req.LastName != nil {
		trimmed := strings.TrimSpace(*req.LastName)
		if len(trimmed) < 2 {
			return nil, newValidationError("First name and last name must be at least 2 characters")
		}
		account.LastName = trimmed
	}
	if req.Age != nil {
		account.Age = req.Age
	}
	if req.Height != nil {
		account.Height = req.Height
	}
	if req.Weight != nil {
		account.Weight = req.Weight
	}
	if req.Gender != nil {
		account.Gender = req.Gender
	}
	if req.ActivityLevel != nil {
		account.ActivityLevel = req.ActivityLevel
	}
	if req.FitnessGoal != nil {
		account.FitnessGoal = req.FitnessGoal
	}

	if err := s.accounts.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	account.PasswordHash = ""
	return account, nil
}
