package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ReminderHandler handles reminder-related HTTP requests
type ReminderHandler struct {
	reminderService *service.ReminderService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// ReminderRequest represents the create/update reminder request body
type ReminderRequest struct {
	BillID     int32  `json:"billId"`
	Email      string `json:"email"`
	ReminderAt string `json:"reminderAt"` // RFC 3339
	Message    string `json:"message"`
	SendEmail  bool   `json:"sendEmail"`
}

// ReminderResponse represents a reminder in API responses
type ReminderResponse struct {
	ID         int32  `json:"id"`
	BillID     int32  `json:"billId"`
	Email      string `json:"email"`
	ReminderAt string `json:"reminderAt"`
	Message    string `json:"message"`
	SendEmail  bool   `json:"sendEmail"`
}

// CreateReminder handles POST /api/v1/reminders
func (h *ReminderHandler) CreateReminder(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ReminderRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, fieldErr := req.toInput()
	if fieldErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*fieldErr})
	}

	reminder, err := h.reminderService.CreateReminder(userID, input)
	if err != nil {
		if resp := reminderValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create reminder")
		return NewInternalError(c, "Failed to create reminder")
	}
	return c.JSON(http.StatusCreated, toReminderResponse(reminder))
}

// GetReminders handles GET /api/v1/reminders with an optional billId filter
func (h *ReminderHandler) GetReminders(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var billID *int32
	if raw := c.QueryParam("billId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || id <= 0 {
			return NewFieldError(c, "billId", "Must be a valid bill ID")
		}
		v := int32(id)
		billID = &v
	}

	reminders, err := h.reminderService.GetReminders(userID, billID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get reminders")
		return NewInternalError(c, "Failed to get reminders")
	}

	response := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		response[i] = toReminderResponse(r)
	}
	return c.JSON(http.StatusOK, response)
}

// GetReminder handles GET /api/v1/reminders/:id
func (h *ReminderHandler) GetReminder(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid reminder ID")
	}

	reminder, err := h.reminderService.GetReminder(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return NewNotFoundError(c, "Reminder not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("reminder_id", id).Msg("Failed to get reminder")
		return NewInternalError(c, "Failed to get reminder")
	}
	return c.JSON(http.StatusOK, toReminderResponse(reminder))
}

// UpdateReminder handles PUT /api/v1/reminders/:id
func (h *ReminderHandler) UpdateReminder(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid reminder ID")
	}

	var req ReminderRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, fieldErr := req.toInput()
	if fieldErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*fieldErr})
	}

	reminder, err := h.reminderService.UpdateReminder(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return NewNotFoundError(c, "Reminder not found")
		}
		if resp := reminderValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("reminder_id", id).Msg("Failed to update reminder")
		return NewInternalError(c, "Failed to update reminder")
	}
	return c.JSON(http.StatusOK, toReminderResponse(reminder))
}

// DeleteReminder handles DELETE /api/v1/reminders/:id
func (h *ReminderHandler) DeleteReminder(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid reminder ID")
	}

	if err := h.reminderService.DeleteReminder(userID, id); err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return NewNotFoundError(c, "Reminder not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("reminder_id", id).Msg("Failed to delete reminder")
		return NewInternalError(c, "Failed to delete reminder")
	}
	return c.NoContent(http.StatusNoContent)
}

func (req ReminderRequest) toInput() (service.ReminderInput, *ValidationError) {
	input := service.ReminderInput{
		BillID:    req.BillID,
		Email:     req.Email,
		Message:   req.Message,
		SendEmail: req.SendEmail,
	}
	if req.ReminderAt != "" {
		at, err := time.Parse(time.RFC3339, req.ReminderAt)
		if err != nil {
			return input, &ValidationError{Field: "reminderAt", Message: "Must be an RFC 3339 timestamp"}
		}
		input.ReminderAt = at
	}
	return input, nil
}

func reminderValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrReminderBillInvalid):
		return NewFieldError(c, "billId", "Bill does not exist")
	case errors.Is(err, domain.ErrReminderEmailInvalid):
		return NewFieldError(c, "email", "Must be a valid email address")
	case errors.Is(err, domain.ErrReminderTimeRequired):
		return NewFieldError(c, "reminderAt", "Reminder time is required")
	}
	return nil
}

func toReminderResponse(r *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:         r.ID,
		BillID:     r.BillID,
		Email:      r.Email,
		ReminderAt: r.ReminderAt.Format(time.RFC3339),
		Message:    r.Message,
		SendEmail:  r.SendEmail,
	}
}
