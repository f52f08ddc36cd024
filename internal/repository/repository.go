package repository

import (
	"github.com/hefica/hefica-backend/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	Account     AccountRepository
	Workout     WorkoutRepository
	Exercise    ExerciseRepository
	MealPlan    MealPlanRepository
	Meal        MealRepository
	ProgressLog ProgressLogRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		Account:     NewAccountRepository(db),
		Workout:     NewWorkoutRepository(db),
		Exercise:    NewExerciseRepository(db),
		MealPlan:    NewMealPlanRepository(db),
		Meal:        NewMealRepository(db),
		ProgressLog: NewProgressLogRepository(db),
	}
}
