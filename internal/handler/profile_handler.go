package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	userService   *service.UserService
	avatarService *service.AvatarService
}

// NewProfileHandler creates a new ProfileHandler. avatarService may be nil.
func NewProfileHandler(userService *service.UserService, avatarService *service.AvatarService) *ProfileHandler {
	return &ProfileHandler{userService: userService, avatarService: avatarService}
}

// ProfileResponse represents the profile response
type ProfileResponse struct {
	ID        int32   `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

// UpdateProfileRequest represents the update profile request
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
}

// GetProfile handles GET /api/v1/profile/:id
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid user ID")
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrProfileNotFound) {
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Int32("user_id", id).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile handles PUT /api/v1/profile/:id
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	actorID := middleware.GetUserID(c)
	if actorID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid user ID")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	profile, err := h.userService.UpdateProfile(c.Request().Context(), actorID, id, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "You can only update your own profile")
		case errors.Is(err, domain.ErrNameRequired):
			return NewFieldError(c, "fullName", "Full name is required")
		case errors.Is(err, domain.ErrNameTooLong):
			return NewFieldError(c, "fullName", "Full name must be 200 characters or less")
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrProfileNotFound):
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Int32("user_id", id).Msg("Failed to update profile")
		return NewInternalError(c, "Failed to update profile")
	}

	log.Info().Int32("user_id", id).Msg("Profile updated")
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UploadAvatar handles POST /api/v1/profile/:id/avatar
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	actorID := middleware.GetUserID(c)
	if actorID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid user ID")
	}

	// If storage isn't configured, don't attempt to process/upload
	if h.avatarService == nil || !h.avatarService.IsEnabled() {
		return NewServiceUnavailableError(c, "Avatar uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxImageSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	if _, err := h.avatarService.UploadAvatar(c.Request().Context(), actorID, id, data, file.Filename); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "You can only update your own avatar")
		case errors.Is(err, service.ErrImageTooLarge):
			return NewFieldError(c, "file", "File too large. Maximum size is 5MB")
		case errors.Is(err, service.ErrInvalidFormat):
			return NewFieldError(c, "file", "Invalid format. Supported: JPEG, PNG, GIF")
		case errors.Is(err, service.ErrImageTooSmall):
			return NewFieldError(c, "file", "Image too small. Minimum 50x50 pixels")
		case errors.Is(err, service.ErrInvalidImageData):
			return NewFieldError(c, "file", "Invalid image data")
		case errors.Is(err, domain.ErrProfileNotFound):
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Int32("user_id", id).Msg("Failed to upload avatar")
		return NewInternalError(c, "Failed to upload avatar")
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		log.Error().Err(err).Int32("user_id", id).Msg("Failed to reload profile")
		return NewInternalError(c, "Failed to get profile")
	}

	log.Info().Int32("user_id", id).Int64("size", file.Size).Msg("Avatar uploaded")
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(p *service.ProfileView) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
	}
}
