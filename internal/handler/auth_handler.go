package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest represents the registration request body.
// Either name or fullName may carry the display name.
type RegisterRequest struct {
	Name           string  `json:"name"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Age            *int32  `json:"age,omitempty"`
	College        *string `json:"college,omitempty"`
	Year           *string `json:"year,omitempty"`
	Course         *string `json:"course,omitempty"`
	ExpectedIncome *string `json:"expectedIncome,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// RegisteredUser is the user echoed back after registration
type RegisteredUser struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Message   string          `json:"message"`
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expiresAt"`
	User      ProfileResponse `json:"user"`
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	name := req.Name
	if name == "" {
		name = req.FullName
	}

	input := service.RegisterInput{
		Name:     name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		College:  req.College,
		Year:     req.Year,
		Course:   req.Course,
	}
	if req.ExpectedIncome != nil && *req.ExpectedIncome != "" {
		income, err := decimal.NewFromString(*req.ExpectedIncome)
		if err != nil {
			return NewFieldError(c, "expectedIncome", "Must be a valid decimal number")
		}
		input.ExpectedIncome = &income
	}

	user, err := h.authService.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailInvalid):
			return NewFieldError(c, "email", "Must be a valid email address")
		case errors.Is(err, domain.ErrPasswordTooShort):
			return NewFieldError(c, "password", "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrNameTooLong):
			return NewFieldError(c, "name", "Name must be 200 characters or less")
		case errors.Is(err, domain.ErrEmailTaken):
			return NewConflictError(c, "Email already registered")
		}
		return NewInternalError(c, "Failed to register user")
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User: RegisteredUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Email and password are required", []ValidationError{
				{Field: "email", Message: "Email is required"},
				{Field: "password", Message: "Password is required"},
			})
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid credentials")
		}
		log.Error().Err(err).Msg("Login failed")
		return NewInternalError(c, "Login failed")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		User:      toProfileResponse(result.Profile),
	})
}

// ChangePassword handles PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return NewFieldError(c, "currentPassword", "Current password is incorrect")
		case errors.Is(err, domain.ErrPasswordTooShort):
			return NewFieldError(c, "newPassword", "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrUserNotFound):
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to change password")
		return NewInternalError(c, "Failed to change password")
	}

	log.Info().Int32("user_id", userID).Msg("Password changed")
	return c.NoContent(http.StatusNoContent)
}
