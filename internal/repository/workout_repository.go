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

// workoutRepository implements WorkoutRepository interface
type workoutRepository struct {
	db *database.Postgres
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *database.Postgres) WorkoutRepository {
	return &workoutRepository{db: db}
}

// Create inserts a workout with its nested exercise prescriptions.
func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if workout.ID == "" {
		workout.ID = uuid.New().String()
	}
	now := time.Now()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	if workout.StartDate.IsZero() {
		workout.StartDate = now
	}

	query := `
		INSERT INTO workouts (id, user_id, name, description, workout_type, duration, is_active, start_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.ExecContext(ctx, query,
		workout.ID,
		workout.UserID,
		workout.Name,
		workout.Description,
		workout.WorkoutType,
		workout.Duration,
		workout.IsActive,
		workout.StartDate,
		workout.CreatedAt,
		workout.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}

	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		if we.ID == "" {
			we.ID = uuid.New().String()
		}
		we.WorkoutID = workout.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO workout_exercises (id, workout_id, exercise_id, sets, reps, weight, duration, distance, rest_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, we.ID, we.WorkoutID, we.ExerciseID, we.Sets, we.Reps, we.Weight, we.Duration, we.Distance, we.RestTime)
		if err != nil {
			return fmt.Errorf("failed to add workout exercise: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit workout: %w", err)
	}

	return nil
}

func scanWorkout(row rowScanner) (*domain.Workout, error) {
	workout := &domain.Workout{}
	var (
		description sql.NullString
		duration    sql.NullInt64
		endDate     sql.NullTime
	)

	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&description,
		&workout.WorkoutType,
		&duration,
		&workout.IsActive,
		&workout.StartDate,
		&endDate,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		workout.Description = &description.String
	}
	if duration.Valid {
		v := int(duration.Int64)
		workout.Duration = &v
	}
	if endDate.Valid {
		workout.EndDate = &endDate.Time
	}

	return workout, nil
}

const workoutColumns = `id, user_id, name, description, workout_type, duration, is_active, start_date, end_date, created_at, updated_at`

// GetByID retrieves one workout of the user, with exercises attached.
func (r *workoutRepository) GetByID(ctx context.Context, userID, id string) (*domain.Workout, error) {
	query := fmt.Sprintf(`SELECT %s FROM workouts WHERE id = $1 AND user_id = $2`, workoutColumns)

	workout, err := scanWorkout(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workout %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}

	if err := r.attachExercises(ctx, workout); err != nil {
		return nil, err
	}

	return workout, nil
}

// ListByUser returns the user's workouts, newest first.
func (r *workoutRepository) ListByUser(ctx context.Context, userID string, filter WorkoutFilter) ([]*domain.Workout, error) {
	query := fmt.Sprintf(`SELECT %s FROM workouts WHERE user_id = $1`, workoutColumns)
	args := []any{userID}

	if filter.WorkoutType != "" {
		args = append(args, filter.WorkoutType)
		query += fmt.Sprintf(" AND workout_type = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*domain.Workout
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workouts: %w", err)
	}

	for _, workout := range workouts {
		if err := r.attachExercises(ctx, workout); err != nil {
			return nil, err
		}
	}

	return workouts, nil
}

func (r *workoutRepository) attachExercises(ctx context.Context, workout *domain.Workout) error {
	query := `
		SELECT we.id, we.workout_id, we.exercise_id, we.sets, we.reps, we.weight, we.duration, we.distance, we.rest_time,
		       e.id, e.name, e.description, e.category, e.muscle_group, e.equipment, e.instructions, e.created_at
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = $1
	`

	rows, err := r.db.DB.QueryContext(ctx, query, workout.ID)
	if err != nil {
		return fmt.Errorf("failed to list workout exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			we          domain.WorkoutExercise
			ex          domain.Exercise
			sets        sql.NullInt64
			reps        sql.NullInt64
			weight      sql.NullFloat64
			duration    sql.NullInt64
			distance    sql.NullFloat64
			restTime    sql.NullInt64
			exDesc      sql.NullString
			muscleGroup sql.NullString
			equipment   sql.NullString
			instr       sql.NullString
		)

		err := rows.Scan(
			&we.ID, &we.WorkoutID, &we.ExerciseID,
			&sets, &reps, &weight, &duration, &distance, &restTime,
			&ex.ID, &ex.Name, &exDesc, &ex.Category, &muscleGroup, &equipment, &instr, &ex.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan workout exercise: %w", err)
		}

		if sets.Valid {
			v := int(sets.Int64)
			we.Sets = &v
		}
		if reps.Valid {
			v := int(reps.Int64)
			we.Reps = &v
		}
		if weight.Valid {
			we.Weight = &weight.Float64
		}
		if duration.Valid {
			v := int(duration.Int64)
			we.Duration = &v
		}
		if distance.Valid {
			we.Distance = &distance.Float64
		}
		if restTime.Valid {
			v := int(restTime.Int64)
			we.RestTime = &v
		}
		if exDesc.Valid {
			ex.Description = &exDesc.String
		}
		if muscleGroup.Valid {
			ex.MuscleGroup = &muscleGroup.String
		}
		if equipment.Valid {
			ex.Equipment = &equipment.String
		}
		if instr.Valid {
			ex.Instructions = &instr.String
		}

		we.Exercise = &ex
		workout.Exercises = append(workout.Exercises, we)
	}

	return rows.Err()
}

// Update persists workout changes; ownership is enforced in the WHERE clause.
func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	query := `
		UPDATE workouts
		SET name = $3, description = $4, workout_type = $5, duration = $6,
		    is_active = $7, end_date = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		workout.ID,
		workout.UserID,
		workout.Name,
		workout.Description,
		workout.WorkoutType,
		workout.Duration,
		workout.IsActive,
		workout.EndDate,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}

	return checkAffected(result, "workout")
}

// Delete removes a workout owned by the user; nested prescriptions
// cascade at the schema level.
func (r *workoutRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}

	return checkAffected(result, "workout")
}

// CountSince counts the user's workouts starting at or after the given time.
func (r *workoutRepository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1 AND start_date >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workouts: %w", err)
	}
	return count, nil
}

func checkAffected(result sql.Result, entity string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s not found: %w", entity, ErrNotFound)
	}
	return nil
}
