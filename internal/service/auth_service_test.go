package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hefica/hefica-backend/internal/config"
	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/internal/dto"
	"github.com/hefica/hefica-backend/internal/repository"
	"github.com/hefica/hefica-backend/internal/utils"
	"github.com/hefica/hefica-backend/pkg/database"
)

// fakeAccountRepo is an in-memory AccountRepository for flow tests.
type fakeAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	if account.ID == "" {
		account.ID = fmt.Sprintf("acct-%d", r.nextID)
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAccountRepo) GetByResetToken(_ context.Context, token string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ResetToken != nil && *a.ResetToken == token {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) GetByVerificationToken(_ context.Context, token string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.VerificationToken != nil && *a.VerificationToken == token {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) RecordLoginFailure(_ context.Context, id string, attempts int, lockoutUntil *time.Time) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.FailedLoginAttempts = attempts
	if lockoutUntil != nil {
		a.LockoutUntil = lockoutUntil
	}
	return nil
}

func (r *fakeAccountRepo) RecordLoginSuccess(_ context.Context, id string) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	a.FailedLoginAttempts = 0
	a.LockoutUntil = nil
	a.LastLoginAt = &now
	return nil
}

func (r *fakeAccountRepo) SetVerificationToken(_ context.Context, id, token string, expiry time.Time) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.VerificationToken = &token
	a.VerificationTokenExpiry = &expiry
	return nil
}

func (r *fakeAccountRepo) MarkEmailVerified(_ context.Context, id string) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.EmailVerified = true
	a.VerificationToken = nil
	a.VerificationTokenExpiry = nil
	return nil
}

func (r *fakeAccountRepo) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.ResetToken = &token
	a.ResetTokenExpiry = &expiry
	return nil
}

func (r *fakeAccountRepo) ResetPassword(_ context.Context, id, passwordHash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
	a.FailedLoginAttempts = 0
	a.LockoutUntil = nil
	return nil
}

func (r *fakeAccountRepo) UpdateProfile(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

// mustGet returns the stored record, bypassing the copy semantics.
func (r *fakeAccountRepo) mustGet(t *testing.T, email string) *domain.Account {
	t.Helper()
	for _, a := range r.accounts {
		if a.Email == email {
			return a
		}
	}
	t.Fatalf("no account for %s", email)
	return nil
}

// recordingMailer captures outgoing mail and can simulate failures.
type recordingMailer struct {
	verificationTokens []string
	resetTokens        []string
	welcomeTo          []string
	failVerification   bool
	failReset          bool
}

func (m *recordingMailer) SendVerificationEmail(_ context.Context, _, token, _ string) error {
	if m.failVerification {
		return errors.New("smtp unavailable")
	}
	m.verificationTokens = append(m.verificationTokens, token)
	return nil
}

func (m *recordingMailer) SendPasswordResetEmail(_ context.Context, _, token, _ string) error {
	if m.failReset {
		return errors.New("smtp unavailable")
	}
	m.resetTokens = append(m.resetTokens, token)
	return nil
}

func (m *recordingMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	m.welcomeTo = append(m.welcomeTo, to)
	return nil
}

type authFixture struct {
	service  AuthService
	repo     *fakeAccountRepo
	mail     *recordingMailer
	limiter  *RateLimiter
	sessions *utils.SessionManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newFakeAccountRepo()
	mail := &recordingMailer{}
	limiter := NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)
	sessions := utils.NewSessionManager("test-session-secret-at-least-32-chars!", 30*24*time.Hour)
	denylist := NewSessionDenylist(&database.Redis{Client: client})

	security := config.SecurityConfig{
		BCryptCost:       4,
		MaxLoginAttempts: 5,
		LockoutDuration:  config.Duration{Duration: 15 * time.Minute},
	}
	rates := config.RateLimitConfig{
		SignupMax: 5, SignupWindow: config.Duration{Duration: time.Hour},
		ResendMax: 3, ResendWindow: config.Duration{Duration: time.Hour},
		ForgotMax: 3, ForgotWindow: config.Duration{Duration: time.Hour},
		ResetMax: 5, ResetWindow: config.Duration{Duration: time.Hour},
	}

	svc := NewAuthService(repo, mail, limiter, sessions, denylist, security, rates, nil, zap.NewNop())

	return &authFixture{service: svc, repo: repo, mail: mail, limiter: limiter, sessions: sessions}
}

func (f *authFixture) signUp(t *testing.T, email string) *domain.Account {
	t.Helper()
	_, err := f.service.SignUp(context.Background(), &dto.SignupRequest{
		Email:     email,
		Password:  "Password1",
		FirstName: "Jane",
		LastName:  "Doe",
	}, "10.0.0.1")
	require.NoError(t, err)
	return f.repo.mustGet(t, email)
}

func (f *authFixture) signUpVerified(t *testing.T, email string) *domain.Account {
	t.Helper()
	account := f.signUp(t, email)
	account.EmailVerified = true
	return account
}

func TestSignUp_Success(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.SignUp(context.Background(), &dto.SignupRequest{
		Email:     "Jane@Example.com",
		Password:  "Password1",
		FirstName: " Jane ",
		LastName:  "Doe",
	}, "10.0.0.1")
	require.NoError(t, err)

	require.Equal(t, "Account created successfully! Please check your email to verify your account.", resp.Message)
	require.True(t, resp.RequiresVerification)
	require.Equal(t, "jane@example.com", resp.User.Email)
	require.Equal(t, "Jane", resp.User.FirstName)

	stored := f.repo.mustGet(t, "jane@example.com")
	require.False(t, stored.EmailVerified)
	require.NotNil(t, stored.VerificationToken)
	require.NotEqual(t, "Password1", stored.PasswordHash)
	require.True(t, utils.CheckPasswordHash("Password1", stored.PasswordHash))

	require.Len(t, f.mail.verificationTokens, 1)
	require.Equal(t, *stored.VerificationToken, f.mail.verificationTokens[0])
}

func TestSignUp_PolicyViolations(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      dto.SignupRequest
		wantMsg  string
	}{
		{
			"short names",
			dto.SignupRequest{Email: "a@x.io", Password: "Password1", FirstName: "J", LastName: "D"},
			"First name and last name must be at least 2 characters",
		},
		{
			"bad email",
			dto.SignupRequest{Email: "not-an-email", Password: "Password1", FirstName: "Jane", LastName: "Doe"},
			"Invalid email format",
		},
		{
			"no uppercase",
			dto.SignupRequest{Email: "a@x.io", Password: "weakpass1", FirstName: "Jane", LastName: "Doe"},
			"Password must contain at least one uppercase letter",
		},
		{
			"too short reported first",
			dto.SignupRequest{Email: "a@x.io", Password: "Aa1", FirstName: "Jane", LastName: "Doe"},
			"Password must be at least 8 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.SignUp(ctx, &tt.req, "10.0.0.1")
			require.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestSignUp_CommonPassword(t *testing.T) {
	f := newAuthFixture(t)

	// Passes every character-class rule but sits on the deny-list.
	_, err := f.service.SignUp(context.Background(), &dto.SignupRequest{
		Email:     "a@x.io",
		Password:  "Password123",
		FirstName: "Jane",
		LastName:  "Doe",
	}, "10.0.0.1")
	require.ErrorIs(t, err, ErrCommonPassword)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t, "jane@example.com")

	_, err := f.service.SignUp(context.Background(), &dto.SignupRequest{
		Email:     "jane@example.com",
		Password:  "Password1",
		FirstName: "Jane",
		LastName:  "Doe",
	}, "10.0.0.2")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignUp_RateLimited(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := &dto.SignupRequest{
			Email:     fmt.Sprintf("user%d@example.com", i),
			Password:  "Password1",
			FirstName: "Jane",
			LastName:  "Doe",
		}
		_, err := f.service.SignUp(ctx, req, "10.0.0.9")
		require.NoError(t, err)
	}

	_, err := f.service.SignUp(ctx, &dto.SignupRequest{
		Email:     "user6@example.com",
		Password:  "Password1",
		FirstName: "Jane",
		LastName:  "Doe",
	}, "10.0.0.9")

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	require.Equal(t, 60, rateErr.RetryAfterMinutes)
	require.EqualError(t, err, "Too many signup attempts. Please try again in 60 minutes.")

	// A different address still signs up.
	_, err = f.service.SignUp(ctx, &dto.SignupRequest{
		Email:     "user7@example.com",
		Password:  "Password1",
		FirstName: "Jane",
		LastName:  "Doe",
	}, "10.0.0.10")
	require.NoError(t, err)
}

func TestSignUp_EmailFailureDoesNotFailSignup(t *testing.T) {
	f := newAuthFixture(t)
	f.mail.failVerification = true

	resp, err := f.service.SignUp(context.Background(), &dto.SignupRequest{
		Email:     "jane@example.com",
		Password:  "Password1",
		FirstName: "Jane",
		LastName:  "Doe",
	}, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, resp.RequiresVerification)

	f.repo.mustGet(t, "jane@example.com")
}

func TestSignIn_Success(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUpVerified(t, "jane@example.com")
	account.FailedLoginAttempts = 3

	resp, err := f.service.SignIn(context.Background(), &dto.LoginRequest{
		Email:    "Jane@Example.COM",
		Password: "Password1",
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, int((30 * 24 * time.Hour).Seconds()), resp.ExpiresIn)
	require.Equal(t, "jane@example.com", resp.User.Email)

	require.Zero(t, account.FailedLoginAttempts, "success must reset the failure counter")
	require.NotNil(t, account.LastLoginAt)

	claims, err := f.service.ValidateSession(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.UserID)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.signUpVerified(t, "jane@example.com")
	ctx := context.Background()

	_, errUnknown := f.service.SignIn(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "Password1"})
	_, errWrong := f.service.SignIn(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Wrong1234"})

	// Unknown email and wrong password are indistinguishable.
	require.EqualError(t, errUnknown, "Invalid email or password")
	require.EqualError(t, errWrong, "Invalid email or password")

	var signInErr *SignInError
	require.ErrorAs(t, errWrong, &signInErr)
	require.Equal(t, SignInInvalidCredentials, signInErr.Kind)
}

func TestSignIn_AccountStates(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	suspended := f.signUpVerified(t, "suspended@example.com")
	suspended.Status = domain.AccountSuspended

	deleted := f.signUpVerified(t, "deleted@example.com")
	deleted.Status = domain.AccountDeleted

	f.signUp(t, "unverified@example.com")

	tests := []struct {
		email   string
		kind    SignInFailure
		wantMsg string
	}{
		{"suspended@example.com", SignInAccountSuspended, "Your account has been suspended. Please contact support."},
		{"deleted@example.com", SignInAccountGone, "This account no longer exists"},
		{"unverified@example.com", SignInEmailNotVerified, "Please verify your email before signing in. Check your inbox for the verification link."},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			_, err := f.service.SignIn(ctx, &dto.LoginRequest{Email: tt.email, Password: "Password1"})
			require.EqualError(t, err, tt.wantMsg)

			var signInErr *SignInError
			require.ErrorAs(t, err, &signInErr)
			require.Equal(t, tt.kind, signInErr.Kind)
		})
	}
}

func TestSignIn_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUpVerified(t, "jane@example.com")
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := f.service.SignIn(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Wrong1234"})
		require.EqualError(t, err, "Invalid email or password")
	}

	_, err := f.service.SignIn(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Wrong1234"})
	require.EqualError(t, err, "Too many failed attempts. Account locked for 15 minutes.")

	var signInErr *SignInError
	require.ErrorAs(t, err, &signInErr)
	require.True(t, signInErr.FreshLock)
	require.NotNil(t, account.LockoutUntil)

	// The right password does not open a locked account.
	_, err = f.service.SignIn(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Password1"})
	require.EqualError(t, err, "Account is locked. Try again in 15 minutes.")

	// After the lockout passes, the correct password works again.
	expired := time.Now().Add(-time.Second)
	account.LockoutUntil = &expired

	_, err = f.service.SignIn(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Password1"})
	require.NoError(t, err)
	require.Zero(t, account.FailedLoginAttempts)
	require.Nil(t, account.LockoutUntil)
}

func TestSignOut_RevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.signUpVerified(t, "jane@example.com")
	ctx := context.Background()

	resp, err := f.service.SignIn(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Password1"})
	require.NoError(t, err)

	_, err = f.service.ValidateSession(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.SignOut(ctx, resp.AccessToken))

	_, err = f.service.ValidateSession(ctx, resp.AccessToken)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSignOut_RejectsGarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.SignOut(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestResendVerification(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUp(t, "jane@example.com")
	ctx := context.Background()

	firstToken := *account.VerificationToken

	resp, err := f.service.ResendVerification(ctx, "jane@example.com", "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, "Verification email sent successfully. Please check your inbox.", resp.Message)

	require.NotEqual(t, firstToken, *account.VerificationToken, "resend must rotate the token")
	require.Len(t, f.mail.verificationTokens, 2)
	require.Equal(t, *account.VerificationToken, f.mail.verificationTokens[1])
}

func TestResendVerification_UnknownEmailIsNeutral(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.ResendVerification(context.Background(), "nobody@example.com", "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, "If an account exists with this email, a verification link has been sent.", resp.Message)
	require.Empty(t, f.mail.verificationTokens)
}

func TestResendVerification_AlreadyVerified(t *testing.T) {
	f := newAuthFixture(t)
	f.signUpVerified(t, "jane@example.com")

	_, err := f.service.ResendVerification(context.Background(), "jane@example.com", "10.0.0.1")
	require.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestResendVerification_RateLimitedPerEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t, "jane@example.com")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.service.ResendVerification(ctx, "jane@example.com", "10.0.0.1")
		require.NoError(t, err)
	}

	_, err := f.service.ResendVerification(ctx, "jane@example.com", "10.0.0.1")
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	require.EqualError(t, err, "Too many requests. Please try again in 60 minutes.")

	// Same address, different email: separate window.
	f.signUp(t, "john@example.com")
	_, err = f.service.ResendVerification(ctx, "john@example.com", "10.0.0.1")
	require.NoError(t, err)
}

func TestResendVerification_EmailFailureSurfaces(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t, "jane@example.com")
	f.mail.failVerification = true

	_, err := f.service.ResendVerification(context.Background(), "jane@example.com", "10.0.0.1")
	require.ErrorIs(t, err, ErrVerificationEmailFailed)
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUp(t, "jane@example.com")
	ctx := context.Background()

	token := *account.VerificationToken

	resp, err := f.service.VerifyEmail(ctx, token)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "Email verified successfully! You can now sign in.", resp.Message)

	require.True(t, account.EmailVerified)
	require.Nil(t, account.VerificationToken, "token must be consumed")
	require.Equal(t, []string{"jane@example.com"}, f.mail.welcomeTo)

	// The consumed token cannot be replayed.
	_, err = f.service.VerifyEmail(ctx, token)
	require.ErrorIs(t, err, ErrInvalidVerificationToken)
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.VerifyEmail(context.Background(), "bogus")
	require.ErrorIs(t, err, ErrInvalidVerificationToken)
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUp(t, "jane@example.com")

	expired := time.Now().Add(-time.Minute)
	account.VerificationTokenExpiry = &expired

	_, err := f.service.VerifyEmail(context.Background(), *account.VerificationToken)
	require.ErrorIs(t, err, ErrVerificationTokenExpired)
	require.False(t, account.EmailVerified)
}

func TestForgotPassword_NeutralResponses(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	suspended := f.signUpVerified(t, "suspended@example.com")
	suspended.Status = domain.AccountSuspended
	f.signUpVerified(t, "jane@example.com")

	const neutral = "If an account exists with this email, a password reset link has been sent."

	for _, email := range []string{"nobody@example.com", "suspended@example.com", "jane@example.com"} {
		resp, err := f.service.ForgotPassword(ctx, email, "10.0.0.1")
		require.NoError(t, err)
		require.Equal(t, neutral, resp.Message, "response must not reveal account state for %s", email)
	}

	// Only the active account actually got a reset email.
	require.Len(t, f.mail.resetTokens, 1)
	require.Nil(t, suspended.ResetToken)

	account := f.repo.mustGet(t, "jane@example.com")
	require.NotNil(t, account.ResetToken)
	require.Equal(t, *account.ResetToken, f.mail.resetTokens[0])
}

func TestForgotPassword_RepeatInvalidatesPreviousToken(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUpVerified(t, "jane@example.com")
	ctx := context.Background()

	_, err := f.service.ForgotPassword(ctx, "jane@example.com", "10.0.0.1")
	require.NoError(t, err)
	firstToken := *account.ResetToken

	_, err = f.service.ForgotPassword(ctx, "jane@example.com", "10.0.0.1")
	require.NoError(t, err)
	require.NotEqual(t, firstToken, *account.ResetToken)

	// The superseded token no longer resolves.
	_, err = f.service.ResetPassword(ctx, firstToken, "NewPassword1", "10.0.0.2")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestForgotPassword_EmailFailureSurfaces(t *testing.T) {
	f := newAuthFixture(t)
	f.signUpVerified(t, "jane@example.com")
	f.mail.failReset = true

	_, err := f.service.ForgotPassword(context.Background(), "jane@example.com", "10.0.0.1")
	require.ErrorIs(t, err, ErrResetEmailFailed)
}

func TestResetPassword_Success(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUpVerified(t, "jane@example.com")
	ctx := context.Background()

	locked := time.Now().Add(10 * time.Minute)
	account.FailedLoginAttempts = 5
	account.LockoutUntil = &locked

	_, err := f.service.ForgotPassword(ctx, "jane@example.com", "10.0.0.1")
	require.NoError(t, err)

	resp, err := f.service.ResetPassword(ctx, *account.ResetToken, "NewPassword1", "10.0.0.1")
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "Password reset successfully! You can now sign in with your new password.", resp.Message)

	require.Nil(t, account.ResetToken)
	require.Zero(t, account.FailedLoginAttempts)
	require.Nil(t, account.LockoutUntil, "reset must clear the lockout")
	require.True(t, utils.CheckPasswordHash("NewPassword1", account.PasswordHash))

	_, err = f.service.SignIn(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "NewPassword1"})
	require.NoError(t, err)
}

func TestResetPassword_ExpiredTokenLeavesPasswordUnchanged(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUpVerified(t, "jane@example.com")
	ctx := context.Background()

	_, err := f.service.ForgotPassword(ctx, "jane@example.com", "10.0.0.1")
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	account.ResetTokenExpiry = &expired
	oldHash := account.PasswordHash

	_, err = f.service.ResetPassword(ctx, *account.ResetToken, "NewPassword1", "10.0.0.1")
	require.ErrorIs(t, err, ErrResetTokenExpired)
	require.Equal(t, oldHash, account.PasswordHash)
}

func TestResetPassword_PolicyAppliesBeforeTokenLookup(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.ResetPassword(context.Background(), "whatever", "weakpass1", "10.0.0.1")
	require.EqualError(t, err, "Password must contain at least one uppercase letter")

	_, err = f.service.ResetPassword(context.Background(), "whatever", "Password123", "10.0.0.1")
	require.ErrorIs(t, err, ErrCommonPassword)
}

func TestResetPassword_RateLimitedPerIP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.service.ResetPassword(ctx, "bogus", "NewPassword1", "10.0.0.3")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	}

	_, err := f.service.ResetPassword(ctx, "bogus", "NewPassword1", "10.0.0.3")
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	account := f.signUpVerified(t, "jane@example.com")
	ctx := context.Background()

	age := 30
	height := 170.0
	weight := 65.5
	updated, err := f.service.UpdateProfile(ctx, account.ID, &dto.UpdateProfileRequest{
		Age:    &age,
		Height: &height,
		Weight: &weight,
	})
	require.NoError(t, err)
	require.Equal(t, 30, *updated.Age)
	require.Equal(t, 65.5, *updated.Weight)
	require.Empty(t, updated.PasswordHash, "profile responses must not carry the hash")

	badAge := 12
	_, err = f.service.UpdateProfile(ctx, account.ID, &dto.UpdateProfileRequest{Age: &badAge})
	require.EqualError(t, err, "Age must be between 13 and 120")

	badHeight := 20.0
	_, err = f.service.UpdateProfile(ctx, account.ID, &dto.UpdateProfileRequest{Height: &badHeight})
	require.EqualError(t, err, "Height must be between 50 and 300 cm")

	badWeight := 1000.0
	_, err = f.service.UpdateProfile(ctx, account.ID, &dto.UpdateProfileRequest{Weight: &badWeight})
	require.EqualError(t, err, "Weight must be between 20 and 500 kg")
}
