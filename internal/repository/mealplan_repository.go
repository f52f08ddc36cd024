package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/pkg/database"
)

// mealPlanRepository implements MealPlanRepository interface
type mealPlanRepository struct {
	db *database.Postgres
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *database.Postgres) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

const mealPlanColumns = `id, user_id, name, description, is_active, start_date, end_date, created_at, updated_at`

func scanMealPlan(row rowScanner) (*domain.MealPlan, error) {
	plan := &domain.MealPlan{}
	var (
		description sql.NullString
		endDate     sql.NullTime
	)

	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Name,
		&description,
		&plan.IsActive,
		&plan.StartDate,
		&endDate,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		plan.Description = &description.String
	}
	if endDate.Valid {
		plan.EndDate = &endDate.Time
	}

	return plan, nil
}

// Create inserts a meal plan
func (r *mealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.StartDate.IsZero() {
		plan.StartDate = now
	}

	query := `
		INSERT INTO meal_plans (id, user_id, name, description, is_active, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Name,
		plan.Description,
		plan.IsActive,
		plan.StartDate,
		plan.EndDate,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create meal plan: %w", err)
	}

	return nil
}

// GetByID retrieves one meal plan of the user
func (r *mealPlanRepository) GetByID(ctx context.Context, userID, id string) (*domain.MealPlan, error) {
	query := fmt.Sprintf(`SELECT %s FROM meal_plans WHERE id = $1 AND user_id = $2`, mealPlanColumns)

	plan, err := scanMealPlan(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal plan %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}

	return plan, nil
}

// ListByUser returns the user's meal plans, newest first.
func (r *mealPlanRepository) ListByUser(ctx context.Context, userID string, active *bool) ([]*domain.MealPlan, error) {
	query := fmt.Sprintf(`SELECT %s FROM meal_plans WHERE user_id = $1`, mealPlanColumns)
	args := []any{userID}

	if active != nil {
		args = append(args, *active)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.MealPlan
	for rows.Next() {
		plan, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// Update persists meal plan changes; ownership enforced in the WHERE clause.
func (r *mealPlanRepository) Update(ctx context.Context, plan *domain.MealPlan) error {
	query := `
		UPDATE meal_plans
		SET name = $3, description = $4, is_active = $5, start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Name,
		plan.Description,
		plan.IsActive,
		plan.StartDate,
		plan.EndDate,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update meal plan: %w", err)
	}

	return checkAffected(result, "meal plan")
}

// Delete removes a meal plan owned by the user; its meals cascade.
func (r *mealPlanRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	return checkAffected(result, "meal plan")
}

// DeactivateAll clears the active flag on all of the user's plans.
func (r *mealPlanRepository) DeactivateAll(ctx context.Context, userID string) error {
	_, err := r.db.DB.ExecContext(ctx,
		`UPDATE meal_plans SET is_active = FALSE, updated_at = $2 WHERE user_id = $1 AND is_active = TRUE`,
		userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate meal plans: %w", err)
	}
	return nil
}
