package domain

import "time"

// Workout is a user-owned training plan entry.
type Workout struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	WorkoutType string     `json:"workout_type" db:"workout_type"`
	Duration    *int       `json:"duration" db:"duration"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date" db:"end_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Exercises []WorkoutExercise `json:"exercises,omitempty"`
}

// Exercise is a catalog entry shared across users; names are unique.
type Exercise struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description" db:"description"`
	Category     string    `json:"category" db:"category"`
	MuscleGroup  *string   `json:"muscle_group" db:"muscle_group"`
	Equipment    *string   `json:"equipment" db:"equipment"`
	Instructions *string   `json:"instructions" db:"instructions"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// WorkoutExercise links an exercise into a workout with its prescription.
type WorkoutExercise struct {
	ID         string   `json:"id" db:"id"`
	WorkoutID  string   `json:"workout_id" db:"workout_id"`
	ExerciseID string   `json:"exercise_id" db:"exercise_id"`
	Sets       *int     `json:"sets" db:"sets"`
	Reps       *int     `json:"reps" db:"reps"`
	Weight     *float64 `json:"weight" db:"weight"`
	Duration   *int     `json:"duration" db:"duration"`
	Distance   *float64 `json:"distance" db:"distance"`
	RestTime   *int     `json:"rest_time" db:"rest_time"`

	Exercise *Exercise `json:"exercise,omitempty"`
}

// MealPlan groups meals; at most one plan per user is active.
type MealPlan struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date" db:"end_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Meal belongs to a meal plan; ownership is derived through the plan.
type Meal struct {
	ID          string    `json:"id" db:"id"`
	MealPlanID  string    `json:"meal_plan_id" db:"meal_plan_id"`
	Name        string    `json:"name" db:"name"`
	MealType    string    `json:"meal_type" db:"meal_type"`
	Calories    *int      `json:"calories" db:"calories"`
	Protein     *float64  `json:"protein" db:"protein"`
	Carbs       *float64  `json:"carbs" db:"carbs"`
	Fat         *float64  `json:"fat" db:"fat"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProgressLog is a dated measurement (weight, body fat, etc.).
type ProgressLog struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	LogType   string    `json:"log_type" db:"log_type"`
	Value     float64   `json:"value" db:"value"`
	Unit      string    `json:"unit" db:"unit"`
	Notes     *string   `json:"notes" db:"notes"`
	LogDate   time.Time `json:"log_date" db:"log_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
