package repository

import (
	"context"
	"time"

	"github.com/hefica/hefica-backend/internal/domain"
)

// AccountRepository defines persistence operations on accounts. Token
// consumption methods clear the token and its expiry in the same
// mutation that applies the token's effect.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByResetToken(ctx context.Context, token string) (*domain.Account, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.Account, error)

	// RecordLoginFailure persists the updated failure counter and, when
	// the threshold was reached, the lockout deadline.
	RecordLoginFailure(ctx context.Context, id string, attempts int, lockoutUntil *time.Time) error
	// RecordLoginSuccess resets the failure counter, clears any lockout
	// and stamps last_login_at.
	RecordLoginSuccess(ctx context.Context, id string) error

	SetVerificationToken(ctx context.Context, id, token string, expiry time.Time) error
	MarkEmailVerified(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	// ResetPassword stores the new hash and clears the reset token, the
	// failure counter and any lockout in one mutation.
	ResetPassword(ctx context.Context, id, passwordHash string) error

	UpdateProfile(ctx context.Context, account *domain.Account) error
}

// WorkoutFilter narrows workout listings
type WorkoutFilter struct {
	WorkoutType string
	Active      *bool
}

// WorkoutRepository defines persistence operations on workouts
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	GetByID(ctx context.Context, userID, id string) (*domain.Workout, error)
	ListByUser(ctx context.Context, userID string, filter WorkoutFilter) ([]*domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, userID, id string) error
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
}

// ExerciseFilter narrows exercise catalog listings
type ExerciseFilter struct {
	Category  string
	Equipment string
	Search    string
}

// ExerciseRepository defines persistence operations on the shared exercise catalog
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]*domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id string) error
}

// MealPlanRepository defines persistence operations on meal plans
type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) error
	GetByID(ctx context.Context, userID, id string) (*domain.MealPlan, error)
	ListByUser(ctx context.Context, userID string, active *bool) ([]*domain.MealPlan, error)
	Update(ctx context.Context, plan *domain.MealPlan) error
	Delete(ctx context.Context, userID, id string) error
	// DeactivateAll clears the active flag on every plan of the user;
	// used so that at most one plan stays active.
	DeactivateAll(ctx context.Context, userID string) error
}

// MealFilter narrows meal listings; ownership is always enforced
// through the owning meal plan.
type MealFilter struct {
	MealPlanID string
	MealType   string
	From       *time.Time
	To         *time.Time
}

// MealRepository defines persistence operations on meals
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	GetByID(ctx context.Context, userID, id string) (*domain.Meal, error)
	ListByUser(ctx context.Context, userID string, filter MealFilter) ([]*domain.Meal, error)
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, userID, id string) error
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
	// ListScheduledBetween returns meals of the user's active plans in
	// the given window, ordered by schedule time.
	ListScheduledBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meal, error)
}

// ProgressLogFilter narrows progress log listings
type ProgressLogFilter struct {
	LogType string
	From    *time.Time
	To      *time.Time
}

// ProgressLogRepository defines persistence operations on progress logs
type ProgressLogRepository interface {
	Create(ctx context.Context, log *domain.ProgressLog) error
	GetByID(ctx context.Context, userID, id string) (*domain.ProgressLog, error)
	ListByUser(ctx context.Context, userID string, filter ProgressLogFilter) ([]*domain.ProgressLog, error)
	Update(ctx context.Context, log *domain.ProgressLog) error
	Delete(ctx context.Context, userID, id string) error
	// LatestByType returns the most recent log of a type, or ErrNotFound.
	LatestByType(ctx context.Context, userID, logType string) (*domain.ProgressLog, error)
}
