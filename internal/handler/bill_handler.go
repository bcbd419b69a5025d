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

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// BillRequest represents the create/update bill request body
type BillRequest struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	DueDate     string `json:"dueDate"` // YYYY-MM-DD
	Category    string `json:"category"`
	Notes       string `json:"notes"`
	IsRecurring bool   `json:"isRecurring"`
	IsPaid      bool   `json:"isPaid"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	DueDate     string `json:"dueDate"`
	Category    string `json:"category"`
	Notes       string `json:"notes"`
	IsRecurring bool   `json:"isRecurring"`
	IsPaid      bool   `json:"isPaid"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateBill handles POST /api/v1/bills
func (h *BillHandler) CreateBill(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req BillRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, fieldErr := req.toInput()
	if fieldErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*fieldErr})
	}

	bill, err := h.billService.CreateBill(userID, input)
	if err != nil {
		if resp := billValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create bill")
		return NewInternalError(c, "Failed to create bill")
	}

	log.Info().Int32("user_id", userID).Int32("bill_id", bill.ID).Msg("Bill created")
	return c.JSON(http.StatusCreated, toBillResponse(bill))
}

// GetBills handles GET /api/v1/bills
func (h *BillHandler) GetBills(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	bills, err := h.billService.GetBills(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get bills")
		return NewInternalError(c, "Failed to get bills")
	}

	response := make([]BillResponse, len(bills))
	for i, b := range bills {
		response[i] = toBillResponse(b)
	}
	return c.JSON(http.StatusOK, response)
}

// GetBill handles GET /api/v1/bills/:id
func (h *BillHandler) GetBill(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid bill ID")
	}

	bill, err := h.billService.GetBill(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return NewNotFoundError(c, "Bill not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("bill_id", id).Msg("Failed to get bill")
		return NewInternalError(c, "Failed to get bill")
	}
	return c.JSON(http.StatusOK, toBillResponse(bill))
}

// UpdateBill handles PUT /api/v1/bills/:id
func (h *BillHandler) UpdateBill(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid bill ID")
	}

	var req BillRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, fieldErr := req.toInput()
	if fieldErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*fieldErr})
	}

	bill, err := h.billService.UpdateBill(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return NewNotFoundError(c, "Bill not found")
		}
		if resp := billValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("bill_id", id).Msg("Failed to update bill")
		return NewInternalError(c, "Failed to update bill")
	}
	return c.JSON(http.StatusOK, toBillResponse(bill))
}

// TogglePaid handles PATCH /api/v1/bills/:id/toggle-paid
func (h *BillHandler) TogglePaid(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid bill ID")
	}

	bill, err := h.billService.TogglePaid(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return NewNotFoundError(c, "Bill not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("bill_id", id).Msg("Failed to toggle bill")
		return NewInternalError(c, "Failed to toggle bill")
	}
	return c.JSON(http.StatusOK, toBillResponse(bill))
}

// DeleteBill handles DELETE /api/v1/bills/:id
func (h *BillHandler) DeleteBill(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid bill ID")
	}

	if err := h.billService.DeleteBill(userID, id); err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return NewNotFoundError(c, "Bill not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("bill_id", id).Msg("Failed to delete bill")
		return NewInternalError(c, "Failed to delete bill")
	}
	return c.NoContent(http.StatusNoContent)
}

func (req BillRequest) toInput() (service.BillInput, *ValidationError) {
	input := service.BillInput{
		Name:        req.Name,
		Category:    req.Category,
		Notes:       req.Notes,
		IsRecurring: req.IsRecurring,
		IsPaid:      req.IsPaid,
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return input, &ValidationError{Field: "amount", Message: "Must be a valid decimal number"}
	}
	input.Amount = amount

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return input, &ValidationError{Field: "dueDate", Message: "Must be a date in YYYY-MM-DD format"}
		}
		input.DueDate = due
	}
	return input, nil
}

func billValidationError(c echo.Context, err error) error {
	var field, message string
	switch {
	case errors.Is(err, domain.ErrBillNameEmpty):
		field, message = "name", "Name is required"
	case errors.Is(err, domain.ErrBillNameTooLong):
		field, message = "name", "Name must be 255 characters or less"
	case errors.Is(err, domain.ErrBillAmountInvalid):
		field, message = "amount", "Amount must not be negative"
	case errors.Is(err, domain.ErrBillCategoryEmpty):
		field, message = "category", "Category is required"
	case errors.Is(err, domain.ErrBillCategoryTooLong):
		field, message = "category", "Category must be 100 characters or less"
	case errors.Is(err, domain.ErrBillDueDateRequired):
		field, message = "dueDate", "Due date is required"
	default:
		return nil
	}
	return NewFieldError(c, field, message)
}

func toBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		ID:          b.ID,
		Name:        b.Name,
		Amount:      b.Amount.StringFixed(2),
		DueDate:     b.DueDate.Format("2006-01-02"),
		Category:    b.Category,
		Notes:       b.Notes,
		IsRecurring: b.IsRecurring,
		IsPaid:      b.IsPaid,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}
