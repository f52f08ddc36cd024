package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/pkg/database"
)

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db *database.Postgres
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.Postgres) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `
	id, email, password_hash, first_name, last_name, avatar,
	email_verified, verification_token, verification_token_expiry,
	reset_token, reset_token_expiry,
	failed_login_attempts, lockout_until, account_status, last_login_at,
	age, height, weight, gender, activity_level, fitness_goal,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	account := &domain.Account{}
	var (
		avatar                  sql.NullString
		verificationToken       sql.NullString
		verificationTokenExpiry sql.NullTime
		resetToken              sql.NullString
		resetTokenExpiry        sql.NullTime
		lockoutUntil            sql.NullTime
		lastLoginAt             sql.NullTime
		age                     sql.NullInt64
		height                  sql.NullFloat64
		weight                  sql.NullFloat64
		gender                  sql.NullString
		activityLevel           sql.NullString
		fitnessGoal             sql.NullString
	)

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&avatar,
		&account.EmailVerified,
		&verificationToken,
		&verificationTokenExpiry,
		&resetToken,
		&resetTokenExpiry,
		&account.FailedLoginAttempts,
		&lockoutUntil,
		&account.Status,
		&lastLoginAt,
		&age,
		&height,
		&weight,
		&gender,
		&activityLevel,
		&fitnessGoal,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatar.Valid {
		account.Avatar = &avatar.String
	}
	if verificationToken.Valid {
		account.VerificationToken = &verificationToken.String
	}
	if verificationTokenExpiry.Valid {
		account.VerificationTokenExpiry = &verificationTokenExpiry.Time
	}
	if resetToken.Valid {
		account.ResetToken = &resetToken.String
	}
	if resetTokenExpiry.Valid {
		account.ResetTokenExpiry = &resetTokenExpiry.Time
	}
	if lockoutUntil.Valid {
		account.LockoutUntil = &lockoutUntil.Time
	}
	if lastLoginAt.Valid {
		account.LastLoginAt = &lastLoginAt.Time
	}
	if age.Valid {
		v := int(age.Int64)
		account.Age = &v
	}
	if height.Valid {
		account.Height = &height.Float64
	}
	if weight.Valid {
		account.Weight = &weight.Float64
	}
	if gender.Valid {
		account.Gender = &gender.String
	}
	if activityLevel.Valid {
		account.ActivityLevel = &activityLevel.String
	}
	if fitnessGoal.Valid {
		account.FitnessGoal = &fitnessGoal.String
	}

	return account, nil
}

// Create creates a new account in the database
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (
			id, email, password_hash, first_name, last_name,
			email_verified, verification_token, verification_token_expiry,
			account_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.Status == "" {
		account.Status = domain.AccountActive
	}

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.EmailVerified,
		account.VerificationToken,
		account.VerificationTokenExpiry,
		account.Status,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("account with email %s already exists: %w", account.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *accountRepository) getBy(ctx context.Context, column, value string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s = $1`, accountColumns, column)

	account, err := scanAccount(r.db.DB.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account not found by %s: %w", column, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by %s: %w", column, err)
	}

	return account, nil
}

// GetByEmail retrieves an account by its normalized email
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getBy(ctx, "email", email)
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getBy(ctx, "id", id)
}

// GetByResetToken retrieves an account by its pending reset token
func (r *accountRepository) GetByResetToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.getBy(ctx, "reset_token", token)
}

// GetByVerificationToken retrieves an account by its pending verification token
func (r *accountRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.getBy(ctx, "verification_token", token)
}

// RecordLoginFailure persists the failure counter and optional lockout deadline
func (r *accountRepository) RecordLoginFailure(ctx context.Context, id string, attempts int, lockoutUntil *time.Time) error {
	query := `
		UPDATE accounts
		SET failed_login_attempts = $2, lockout_until = $3, updated_at = $4
		WHERE id = $1
	`

	return r.exec(ctx, query, id, attempts, lockoutUntil, time.Now())
}

// RecordLoginSuccess resets failure tracking and stamps the login time
func (r *accountRepository) RecordLoginSuccess(ctx context.Context, id string) error {
	query := `
		UPDATE accounts
		SET failed_login_attempts = 0, lockout_until = NULL, last_login_at = $2, updated_at = $2
		WHERE id = $1
	`

	return r.exec(ctx, query, id, time.Now())
}

// SetVerificationToken stores a fresh verification token and expiry
func (r *accountRepository) SetVerificationToken(ctx context.Context, id, token string, expiry time.Time) error {
	query := `
		UPDATE accounts
		SET verification_token = $2, verification_token_expiry = $3, updated_at = $4
		WHERE id = $1
	`

	return r.exec(ctx, query, id, token, expiry, time.Now())
}

// MarkEmailVerified flags the email as verified and consumes the token
func (r *accountRepository) MarkEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE accounts
		SET email_verified = TRUE, verification_token = NULL, verification_token_expiry = NULL, updated_at = $2
		WHERE id = $1
	`

	return r.exec(ctx, query, id, time.Now())
}

// SetResetToken stores a fresh password-reset token and expiry
func (r *accountRepository) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	query := `
		UPDATE accounts
		SET reset_token = $2, reset_token_expiry = $3, updated_at = $4
		WHERE id = $1
	`

	return r.exec(ctx, query, id, token, expiry, time.Now())
}

// ResetPassword stores the new hash, consumes the reset token and
// clears failure tracking, all in one statement.
func (r *accountRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE accounts
		SET password_hash = $2,
		    reset_token = NULL, reset_token_expiry = NULL,
		    failed_login_attempts = 0, lockout_until = NULL,
		    updated_at = $3
		WHERE id = $1
	`

	return r.exec(ctx, query, id, passwordHash, time.Now())
}

// UpdateProfile persists the mutable profile attributes
func (r *accountRepository) UpdateProfile(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET first_name = $2, last_name = $3, age = $4, height = $5, weight = $6,
		    gender = $7, activity_level = $8, fitness_goal = $9, updated_at = $10
		WHERE id = $1
	`

	return r.exec(ctx, query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Age,
		account.Height,
		account.Weight,
		account.Gender,
		account.ActivityLevel,
		account.FitnessGoal,
		time.Now(),
	)
}

func (r *accountRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account not found: %w", ErrNotFound)
	}

	return nil
}
