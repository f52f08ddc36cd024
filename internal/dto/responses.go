package dto

import "github.com/hefica/hefica-backend/internal/domain"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain informational response
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountSummary is the public identity slice returned at signup
type AccountSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SignupResponse represents a successful registration
type SignupResponse struct {
	Message              string         `json:"message"`
	User                 AccountSummary `json:"user"`
	RequiresVerification bool           `json:"requiresVerification"`
}

// VerifyEmailResponse represents a verification outcome
type VerifyEmailResponse struct {
	Message         string `json:"message"`
	Success         bool   `json:"success,omitempty"`
	AlreadyVerified bool   `json:"alreadyVerified,omitempty"`
}

// ResetPasswordResponse represents a completed password reset
type ResetPasswordResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// LoginResponse represents a successful sign-in
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int            `json:"expires_in"`
	User        AccountSummary `json:"user"`
}

// ProfileResponse wraps the account's profile view
type ProfileResponse struct {
	User *domain.Account `json:"user"`
}

// DashboardMeal is the dashboard projection of a meal
type DashboardMeal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Calories    *int     `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fat         *float64 `json:"fat"`
	ScheduledAt string   `json:"scheduledAt"`
	Completed   bool     `json:"completed"`
}

// DashboardStats aggregates the dashboard page numbers
type DashboardStats struct {
	TotalWorkouts int             `json:"totalWorkouts"`
	TotalMeals    int             `json:"totalMeals"`
	CurrentWeight float64         `json:"currentWeight"`
	TodayCalories int             `json:"todayCalories"`
	CalorieGoal   int             `json:"calorieGoal"`
	TodaysMeals   []DashboardMeal `json:"todaysMeals"`
}
