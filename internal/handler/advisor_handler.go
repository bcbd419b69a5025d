package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// AdvisorHandler handles financial advisor chat requests
type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// ChatRequest represents the advisor chat request body
type ChatRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// ChatResponse represents the advisor reply
type ChatResponse struct {
	Response string `json:"response"`
}

// Chat godoc
// @Summary Ask the financial advisor
// @Tags advisor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Question"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /advisor/chat [post]
func (h *AdvisorHandler) Chat(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	reply, err := h.advisorService.Chat(c.Request().Context(), userID, req.Message, req.Category)
	if err != nil {
		if errors.Is(err, domain.ErrAdvisorMessageEmpty) {
			return NewFieldError(c, "message", "Message is required")
		}
		if errors.Is(err, domain.ErrAdvisorUnavailable) {
			return NewServiceUnavailableError(c, "Advisor is not configured")
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Advisor chat failed")
		return NewInternalError(c, "Advisor chat failed")
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: reply})
}
