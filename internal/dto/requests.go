package dto

import "time"

// SignupRequest represents an account registration request
type SignupRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// LoginRequest represents a credential sign-in request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResendVerificationRequest asks for a fresh verification email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyEmailRequest consumes a verification token
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordRequest starts the password-reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest consumes a reset token with the new password
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile mutations; absent
// fields are left untouched.
type UpdateProfileRequest struct {
	FirstName     *string  `json:"firstName"`
	LastName      *string  `json:"lastName"`
	Age           *int     `json:"age"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activityLevel"`
	FitnessGoal   *string  `json:"fitnessGoal"`
}

// WorkoutExerciseInput is a nested exercise prescription on a workout
type WorkoutExerciseInput struct {
	ExerciseID string   `json:"exerciseId" binding:"required"`
	Sets       *int     `json:"sets"`
	Reps       *int     `json:"reps"`
	Weight     *float64 `json:"weight"`
	Duration   *int     `json:"duration"`
	Distance   *float64 `json:"distance"`
	RestTime   *int     `json:"restTime"`
}

// CreateWorkoutRequest represents a workout creation request
type CreateWorkoutRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description *string                `json:"description"`
	WorkoutType string                 `json:"workoutType" binding:"required"`
	Duration    *int                   `json:"duration"`
	IsActive    *bool                  `json:"isActive"`
	StartDate   *time.Time             `json:"startDate"`
	Exercises   []WorkoutExerciseInput `json:"exercises"`
}

// UpdateWorkoutRequest represents a workout update request
type UpdateWorkoutRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	WorkoutType *string    `json:"workoutType"`
	Duration    *int       `json:"duration"`
	IsActive    *bool      `json:"isActive"`
	EndDate     *time.Time `json:"endDate"`
}

// CreateExerciseRequest represents an exercise catalog entry
type CreateExerciseRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	Category     string  `json:"category" binding:"required"`
	MuscleGroup  *string `json:"muscleGroup"`
	Equipment    *string `json:"equipment"`
	Instructions *string `json:"instructions"`
}

// UpdateExerciseRequest represents an exercise update
type UpdateExerciseRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	MuscleGroup  *string `json:"muscleGroup"`
	Equipment    *string `json:"equipment"`
	Instructions *string `json:"instructions"`
}

// CreateMealPlanRequest represents a meal plan creation request
type CreateMealPlanRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"isActive"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// UpdateMealPlanRequest represents a meal plan update
type UpdateMealPlanRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"isActive"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// CreateMealRequest represents a meal creation request
type CreateMealRequest struct {
	MealPlanID  string     `json:"mealPlanId" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	MealType    string     `json:"mealType" binding:"required"`
	Calories    *int       `json:"calories"`
	Protein     *float64   `json:"protein"`
	Carbs       *float64   `json:"carbs"`
	Fat         *float64   `json:"fat"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// UpdateMealRequest represents a meal update
type UpdateMealRequest struct {
	Name        *string    `json:"name"`
	MealType    *string    `json:"mealType"`
	Calories    *int       `json:"calories"`
	Protein     *float64   `json:"protein"`
	Carbs       *float64   `json:"carbs"`
	Fat         *float64   `json:"fat"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Completed   *bool      `json:"completed"`
}

// CreateProgressLogRequest represents a progress log entry
type CreateProgressLogRequest struct {
	LogType string     `json:"logType" binding:"required"`
	Value   *float64   `json:"value" binding:"required"`
	Unit    string     `json:"unit" binding:"required"`
	Notes   *string    `json:"notes"`
	LogDate *time.Time `json:"logDate"`
}

// UpdateProgressLogRequest represents a progress log update
type UpdateProgressLogRequest struct {
	LogType *string    `json:"logType"`
	Value   *float64   `json:"value"`
	Unit    *string    `json:"unit"`
	Notes   *string    `json:"notes"`
	LogDate *time.Time `json:"logDate"`
}
