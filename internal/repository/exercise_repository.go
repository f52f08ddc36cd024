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

// exerciseRepository implements ExerciseRepository interface
type exerciseRepository struct {
	db *database.Postgres
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db *database.Postgres) ExerciseRepository {
	return &exerciseRepository{db: db}
}

const exerciseColumns = `id, name, description, category, muscle_group, equipment, instructions, created_at`

func scanExercise(row rowScanner) (*domain.Exercise, error) {
	exercise := &domain.Exercise{}
	var (
		description  sql.NullString
		muscleGroup  sql.NullString
		equipment    sql.NullString
		instructions sql.NullString
	)

	err := row.Scan(
		&exercise.ID,
		&exercise.Name,
		&description,
		&exercise.Category,
		&muscleGroup,
		&equipment,
		&instructions,
		&exercise.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		exercise.Description = &description.String
	}
	if muscleGroup.Valid {
		exercise.MuscleGroup = &muscleGroup.String
	}
	if equipment.Valid {
		exercise.Equipment = &equipment.String
	}
	if instructions.Valid {
		exercise.Instructions = &instructions.String
	}

	return exercise, nil
}

// Create inserts a catalog exercise; names are unique.
func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = uuid.New().String()
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO exercises (id, name, description, category, muscle_group, equipment, instructions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		exercise.ID,
		exercise.Name,
		exercise.Description,
		exercise.Category,
		exercise.MuscleGroup,
		exercise.Equipment,
		exercise.Instructions,
		exercise.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("exercise %s already exists: %w", exercise.Name, ErrDuplicateName)
			}
		}
		return fmt.Errorf("failed to create exercise: %w", err)
	}

	return nil
}

// GetByID retrieves one catalog exercise
func (r *exerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	query := fmt.Sprintf(`SELECT %s FROM exercises WHERE id = $1`, exerciseColumns)

	exercise, err := scanExercise(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exercise %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}

	return exercise, nil
}

// List returns catalog exercises matching the filter, ordered by name.
func (r *exerciseRepository) List(ctx context.Context, filter ExerciseFilter) ([]*domain.Exercise, error) {
	query := fmt.Sprintf(`SELECT %s FROM exercises WHERE 1=1`, exerciseColumns)
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Equipment != "" {
		args = append(args, filter.Equipment)
		query += fmt.Sprintf(" AND equipment = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*domain.Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}

	return exercises, rows.Err()
}

// Update persists catalog exercise changes
func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	query := `
		UPDATE exercises
		SET name = $2, description = $3, category = $4, muscle_group = $5, equipment = $6, instructions = $7
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		exercise.ID,
		exercise.Name,
		exercise.Description,
		exercise.Category,
		exercise.MuscleGroup,
		exercise.Equipment,
		exercise.Instructions,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("exercise %s already exists: %w", exercise.Name, ErrDuplicateName)
			}
		}
		return fmt.Errorf("failed to update exercise: %w", err)
	}

	return checkAffected(result, "exercise")
}

// Delete removes a catalog exercise
func (r *exerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}

	return checkAffected(result, "exercise")
}
