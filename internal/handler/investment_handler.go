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

// InvestmentHandler handles investment-related HTTP requests
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// InvestmentRequest represents the create/update investment request body
type InvestmentRequest struct {
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ProfitLossRequest represents the add profit/loss request body
type ProfitLossRequest struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// InvestmentResponse represents an investment in API responses
type InvestmentResponse struct {
	ID           int32  `json:"id"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	DateInvested string `json:"dateInvested"`
}

// ProfitLossResponse represents a profit/loss entry in API responses
type ProfitLossResponse struct {
	ID           int32  `json:"id"`
	InvestmentID int32  `json:"investmentId"`
	Date         string `json:"date"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
}

// OverviewResponse represents the investment overview
type OverviewResponse struct {
	TotalInvestment string `json:"totalInvestment"`
	TotalProfit     string `json:"totalProfit"`
	TotalLoss       string `json:"totalLoss"`
	NetBalance      string `json:"netBalance"`
}

// CreateInvestment handles POST /api/v1/investments
func (h *InvestmentHandler) CreateInvestment(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewFieldError(c, "amount", "Must be a valid decimal number")
	}

	inv, err := h.investmentService.CreateInvestment(userID, req.toInput(amount))
	if err != nil {
		if resp := investmentValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create investment")
		return NewInternalError(c, "Failed to create investment")
	}
	return c.JSON(http.StatusCreated, toInvestmentResponse(inv))
}

// GetInvestments handles GET /api/v1/investments
func (h *InvestmentHandler) GetInvestments(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	investments, err := h.investmentService.GetInvestments(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get investments")
		return NewInternalError(c, "Failed to get investments")
	}

	response := make([]InvestmentResponse, len(investments))
	for i, inv := range investments {
		response[i] = toInvestmentResponse(inv)
	}
	return c.JSON(http.StatusOK, response)
}

// GetInvestment handles GET /api/v1/investments/:id
func (h *InvestmentHandler) GetInvestment(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid investment ID")
	}

	inv, err := h.investmentService.GetInvestment(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvestmentNotFound) {
			return NewNotFoundError(c, "Investment not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("investment_id", id).Msg("Failed to get investment")
		return NewInternalError(c, "Failed to get investment")
	}
	return c.JSON(http.StatusOK, toInvestmentResponse(inv))
}

// UpdateInvestment handles PUT /api/v1/investments/:id
func (h *InvestmentHandler) UpdateInvestment(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid investment ID")
	}

	var req InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewFieldError(c, "amount", "Must be a valid decimal number")
	}

	inv, err := h.investmentService.UpdateInvestment(userID, id, req.toInput(amount))
	if err != nil {
		if errors.Is(err, domain.ErrInvestmentNotFound) {
			return NewNotFoundError(c, "Investment not found")
		}
		if resp := investmentValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("investment_id", id).Msg("Failed to update investment")
		return NewInternalError(c, "Failed to update investment")
	}
	return c.JSON(http.StatusOK, toInvestmentResponse(inv))
}

// DeleteInvestment handles DELETE /api/v1/investments/:id
func (h *InvestmentHandler) DeleteInvestment(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid investment ID")
	}

	if err := h.investmentService.DeleteInvestment(userID, id); err != nil {
		if errors.Is(err, domain.ErrInvestmentNotFound) {
			return NewNotFoundError(c, "Investment not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("investment_id", id).Msg("Failed to delete investment")
		return NewInternalError(c, "Failed to delete investment")
	}
	return c.NoContent(http.StatusNoContent)
}

// AddProfitLoss handles POST /api/v1/investments/:id/profit-loss
func (h *InvestmentHandler) AddProfitLoss(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid investment ID")
	}

	var req ProfitLossRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewFieldError(c, "amount", "Must be a valid decimal number")
	}

	entry, err := h.investmentService.AddProfitLoss(userID, id, service.ProfitLossInput{
		Amount: amount,
		Type:   domain.ProfitLossType(req.Type),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvestmentNotFound):
			return NewNotFoundError(c, "Investment not found")
		case errors.Is(err, domain.ErrProfitLossAmountInvalid):
			return NewFieldError(c, "amount", "Amount must be positive")
		case errors.Is(err, domain.ErrProfitLossTypeInvalid):
			return NewFieldError(c, "type", "Type must be PROFIT or LOSS")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("investment_id", id).Msg("Failed to add profit/loss")
		return NewInternalError(c, "Failed to add profit/loss")
	}
	return c.JSON(http.StatusCreated, toProfitLossResponse(entry))
}

// GetProfitLoss handles GET /api/v1/investments/:id/profit-loss
func (h *InvestmentHandler) GetProfitLoss(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid investment ID")
	}

	entries, err := h.investmentService.GetProfitLoss(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvestmentNotFound) {
			return NewNotFoundError(c, "Investment not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("investment_id", id).Msg("Failed to get profit/loss")
		return NewInternalError(c, "Failed to get profit/loss")
	}

	response := make([]ProfitLossResponse, len(entries))
	for i, e := range entries {
		response[i] = toProfitLossResponse(e)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOverview godoc
// @Summary Investment totals
// @Tags investments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} OverviewResponse
// @Router /investments/overview [get]
func (h *InvestmentHandler) GetOverview(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	overview, err := h.investmentService.GetOverview(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get investment overview")
		return NewInternalError(c, "Failed to get investment overview")
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalInvestment: overview.TotalInvestment.StringFixed(2),
		TotalProfit:     overview.TotalProfit.StringFixed(2),
		TotalLoss:       overview.TotalLoss.StringFixed(2),
		NetBalance:      overview.NetBalance.StringFixed(2),
	})
}

func (req InvestmentRequest) toInput(amount decimal.Decimal) service.InvestmentInput {
	return service.InvestmentInput{
		Amount:      amount,
		Type:        domain.InvestmentType(req.Type),
		Description: req.Description,
		Status:      domain.InvestmentStatus(req.Status),
	}
}

func investmentValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvestmentAmountInvalid):
		return NewFieldError(c, "amount", "Amount must not be negative")
	case errors.Is(err, domain.ErrInvestmentTypeInvalid):
		return NewFieldError(c, "type", "Type must be one of STOCK, BOND, REAL_ESTATE, CRYPTO, OTHER")
	case errors.Is(err, domain.ErrInvestmentStatusInvalid):
		return NewFieldError(c, "status", "Status must be one of ACTIVE, SOLD, MATURED")
	}
	return nil
}

func toInvestmentResponse(inv *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:           inv.ID,
		Amount:       inv.Amount.StringFixed(2),
		Type:         string(inv.Type),
		Description:  inv.Description,
		Status:       string(inv.Status),
		DateInvested: inv.DateInvested.Format(time.RFC3339),
	}
}

func toProfitLossResponse(e *domain.ProfitLoss) ProfitLossResponse {
	return ProfitLossResponse{
		ID:           e.ID,
		InvestmentID: e.InvestmentID,
		Date:         e.Date.Format(time.RFC3339),
		Amount:       e.Amount.StringFixed(2),
		Type:         string(e.Type),
	}
}
