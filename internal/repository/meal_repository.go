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

// mealRepository implements MealRepository interface. Ownership is
// always joined through the owning meal plan.
type mealRepository struct {
	db *database.Postgres
}

// NewMealRepository creates a new meal repository
func NewMealRepository(db *database.Postgres) MealRepository {
	return &mealRepository{db: db}
}

const mealColumns = `m.id, m.meal_plan_id, m.name, m.meal_type, m.calories, m.protein, m.carbs, m.fat, m.scheduled_at, m.completed, m.created_at, m.updated_at`

func scanMeal(row rowScanner) (*domain.Meal, error) {
	meal := &domain.Meal{}
	var (
		calories sql.NullInt64
		protein  sql.NullFloat64
		carbs    sql.NullFloat64
		fat      sql.NullFloat64
	)

	err := row.Scan(
		&meal.ID,
		&meal.MealPlanID,
		&meal.Name,
		&meal.MealType,
		&calories,
		&protein,
		&carbs,
		&fat,
		&meal.ScheduledAt,
		&meal.Completed,
		&meal.CreatedAt,
		&meal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if calories.Valid {
		v := int(calories.Int64)
		meal.Calories = &v
	}
	if protein.Valid {
		meal.Protein = &protein.Float64
	}
	if carbs.Valid {
		meal.Carbs = &carbs.Float64
	}
	if fat.Valid {
		meal.Fat = &fat.Float64
	}

	return meal, nil
}

// Create inserts a meal
func (r *mealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	now := time.Now()
	meal.CreatedAt = now
	meal.UpdatedAt = now
	if meal.ScheduledAt.IsZero() {
		meal.ScheduledAt = now
	}

	query := `
		INSERT INTO meals (id, meal_plan_id, name, meal_type, calories, protein, carbs, fat, scheduled_at, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		meal.ID,
		meal.MealPlanID,
		meal.Name,
		meal.MealType,
		meal.Calories,
		meal.Protein,
		meal.Carbs,
		meal.Fat,
		meal.ScheduledAt,
		meal.Completed,
		meal.CreatedAt,
		meal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}

	return nil
}

// GetByID retrieves one meal owned by the user through its plan
func (r *mealRepository) GetByID(ctx context.Context, userID, id string) (*domain.Meal, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM meals m
		JOIN meal_plans p ON p.id = m.meal_plan_id
		WHERE m.id = $1 AND p.user_id = $2
	`, mealColumns)

	meal, err := scanMeal(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return meal, nil
}

// ListByUser returns the user's meals matching the filter, ordered by schedule time.
func (r *mealRepository) ListByUser(ctx context.Context, userID string, filter MealFilter) ([]*domain.Meal, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM meals m
		JOIN meal_plans p ON p.id = m.meal_plan_id
		WHERE p.user_id = $1
	`, mealColumns)
	args := []any{userID}

	if filter.MealPlanID != "" {
		args = append(args, filter.MealPlanID)
		query += fmt.Sprintf(" AND m.meal_plan_id = $%d", len(args))
	}
	if filter.MealType != "" {
		args = append(args, filter.MealType)
		query += fmt.Sprintf(" AND m.meal_type = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND m.scheduled_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND m.scheduled_at <= $%d", len(args))
	}
	query += " ORDER BY m.scheduled_at ASC"

	return r.queryMeals(ctx, query, args...)
}

// ListScheduledBetween returns meals of the user's active plans in the window.
func (r *mealRepository) ListScheduledBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meal, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM meals m
		JOIN meal_plans p ON p.id = m.meal_plan_id
		WHERE p.user_id = $1 AND p.is_active = TRUE
		  AND m.scheduled_at >= $2 AND m.scheduled_at <= $3
		ORDER BY m.scheduled_at ASC
	`, mealColumns)

	return r.queryMeals(ctx, query, userID, from, to)
}

func (r *mealRepository) queryMeals(ctx context.Context, query string, args ...any) ([]*domain.Meal, error) {
	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var meals []*domain.Meal
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}

	return meals, rows.Err()
}

// Update persists meal changes. Callers verify ownership via GetByID
// before mutating.
func (r *mealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	query := `
		UPDATE meals
		SET name = $2, meal_type = $3, calories = $4, protein = $5, carbs = $6, fat = $7,
		    scheduled_at = $8, completed = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		meal.ID,
		meal.Name,
		meal.MealType,
		meal.Calories,
		meal.Protein,
		meal.Carbs,
		meal.Fat,
		meal.ScheduledAt,
		meal.Completed,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update meal: %w", err)
	}

	return checkAffected(result, "meal")
}

// Delete removes a meal owned by the user
func (r *mealRepository) Delete(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM meals m
		USING meal_plans p
		WHERE m.id = $1 AND p.id = m.meal_plan_id AND p.user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	return checkAffected(result, "meal")
}

// CountSince counts the user's meals scheduled at or after the given time.
func (r *mealRepository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM meals m
		JOIN meal_plans p ON p.id = m.meal_plan_id
		WHERE p.user_id = $1 AND m.scheduled_at >= $2
	`, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count meals: %w", err)
	}
	return count, nil
}
