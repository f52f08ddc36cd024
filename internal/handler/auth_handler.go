package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hefica/hefica-backend/internal/dto"
	"github.com/hefica/hefica-backend/internal/service"
)

// AuthHandler handles account lifecycle and session requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles account registration
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup request"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "All fields are required"})
		return
	}

	response, err := h.authService.SignUp(c.Request.Context(), &req, clientIP(c))
	if err != nil {
		respondAuthError(c, err, "An error occurred while creating your account. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles credential sign-in
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 410 {object} dto.ErrorResponse
// @Failure 423 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Email and password are required"})
		return
	}

	response, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		respondAuthError(c, err, "An error occurred during sign in. Please try again.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout revokes the current session token
// @Summary Sign out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authorization header is required"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An error occurred. Please try again."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Signed out successfully"})
}

// ResendVerification sends a fresh verification email
// @Summary Resend the verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendVerificationRequest true "Resend request"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Email is required"})
		return
	}

	response, err := h.authService.ResendVerification(c.Request.Context(), req.Email, clientIP(c))
	if err != nil {
		respondAuthError(c, err, "An error occurred. Please try again.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// VerifyEmail consumes a verification token
// @Summary Verify an email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "Verification token"
// @Success 200 {object} dto.VerifyEmailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Verification token is required"})
		return
	}

	response, err := h.authService.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		respondAuthError(c, err, "An error occurred during verification. Please try again.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ForgotPassword starts the password-reset flow
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} dto.MessageResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Email is required"})
		return
	}

	response, err := h.authService.ForgotPassword(c.Request.Context(), req.Email, clientIP(c))
	if err != nil {
		respondAuthError(c, err, "An error occurred. Please try again.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ResetPassword consumes a reset token with the new password
// @Summary Reset the password with a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset request"
// @Success 200 {object} dto.ResetPasswordResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Token and password are required"})
		return
	}

	response, err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password, clientIP(c))
	if err != nil {
		respondAuthError(c, err, "An error occurred while resetting your password. Please try again.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondAuthError maps service errors from the account flows onto
// HTTP responses. Unrecognized errors collapse into the flow's generic
// message so internals never leak to clients.
func respondAuthError(c *gin.Context, err error, fallback string) {
	var rateErr *service.RateLimitError
	var valErr *service.ValidationError
	var signInErr *service.SignInError

	switch {
	case errors.As(err, &rateErr):
		c.Header("Retry-After", strconv.Itoa(rateErr.RetryAfterMinutes*60))
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: rateErr.Error()})
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: valErr.Message})
	case errors.As(err, &signInErr):
		c.JSON(signInStatus(signInErr.Kind), dto.ErrorResponse{Error: signInErr.Error()})
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrCommonPassword),
		errors.Is(err, service.ErrAlreadyVerified),
		errors.Is(err, service.ErrInvalidVerificationToken),
		errors.Is(err, service.ErrVerificationTokenExpired),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrResetTokenExpired):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrVerificationEmailFailed),
		errors.Is(err, service.ErrResetEmailFailed):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

func signInStatus(kind service.SignInFailure) int {
	switch kind {
	case service.SignInAccountSuspended, service.SignInEmailNotVerified:
		return http.StatusForbidden
	case service.SignInAccountGone:
		return http.StatusGone
	case service.SignInAccountLocked:
		return http.StatusLocked
	default:
		return http.StatusUnauthorized
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
