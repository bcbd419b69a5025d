package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/amortization"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/pennyhq/penny/penny-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DebtHandler handles debt-related HTTP requests
type DebtHandler struct {
	debtService *service.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(debtService *service.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// DebtRequest represents the create/update debt request body
type DebtRequest struct {
	Name             string  `json:"name"`
	Principal        string  `json:"principal"`
	InterestRate     string  `json:"interestRate"`
	TermMonths       int32   `json:"termMonths"`
	RemainingBalance *string `json:"remainingBalance,omitempty"`
	DebtType         *string `json:"debtType,omitempty"`
	DueDate          *string `json:"dueDate,omitempty"` // YYYY-MM-DD
}

// PreviewScheduleRequest represents the preview schedule request body
type PreviewScheduleRequest struct {
	Principal    string `json:"principal"`
	InterestRate string `json:"interestRate"`
	TermMonths   int32  `json:"termMonths"`
}

// DebtRecordRequest is a single row of a debt import
type DebtRecordRequest struct {
	Name             string `json:"name"`
	Principal        string `json:"principal"`
	InterestRate     string `json:"interestRate"`
	TermMonths       int32  `json:"termMonths"`
	DateAdded        string `json:"dateAdded"`
	RemainingBalance string `json:"remainingBalance"`
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID               int32   `json:"id"`
	Name             string  `json:"name"`
	Principal        string  `json:"principal"`
	InterestRate     string  `json:"interestRate"`
	TermMonths       int32   `json:"termMonths"`
	RemainingBalance string  `json:"remainingBalance"`
	DebtType         string  `json:"debtType"`
	DueDate          *string `json:"dueDate,omitempty"`
	DateAdded        string  `json:"dateAdded"`
}

// DebtRecordResponse is a single row of a debt export
type DebtRecordResponse struct {
	Name             string `json:"name"`
	Principal        string `json:"principal"`
	InterestRate     string `json:"interestRate"`
	TermMonths       int32  `json:"termMonths"`
	DateAdded        string `json:"dateAdded"`
	RemainingBalance string `json:"remainingBalance"`
}

// PreviewScheduleResponse is a computed schedule with its totals
type PreviewScheduleResponse struct {
	Summary  amortization.Summary         `json:"summary"`
	Schedule []amortization.ScheduleEntry `json:"schedule"`
}

// CreateDebt godoc
// @Summary Create a debt
// @Tags debts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param debt body DebtRequest true "Debt"
// @Success 201 {object} DebtResponse
// @Failure 400 {object} ProblemDetails
// @Router /debts [post]
func (h *DebtHandler) CreateDebt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req DebtRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErr := req.toInput()
	if fieldErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*fieldErr})
	}

	debt, err := h.debtService.CreateDebt(userID, input)
	if err != nil {
		if resp := debtValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create debt")
		return NewInternalError(c, "Failed to create debt")
	}

	log.Info().Int32("user_id", userID).Int32("debt_id", debt.ID).Msg("Debt created")
	return c.JSON(http.StatusCreated, toDebtResponse(debt))
}

// GetDebts handles GET /api/v1/debts
func (h *DebtHandler) GetDebts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	debts, err := h.debtService.GetDebts(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get debts")
		return NewInternalError(c, "Failed to get debts")
	}

	response := make([]DebtResponse, len(debts))
	for i, d := range debts {
		response[i] = toDebtResponse(d)
	}
	return c.JSON(http.StatusOK, response)
}

// GetDebt handles GET /api/v1/debts/:id
func (h *DebtHandler) GetDebt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid debt ID")
	}

	debt, err := h.debtService.GetDebt(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrDebtNotFound) {
			return NewNotFoundError(c, "Debt not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("debt_id", id).Msg("Failed to get debt")
		return NewInternalError(c, "Failed to get debt")
	}
	return c.JSON(http.StatusOK, toDebtResponse(debt))
}

// UpdateDebt handles PUT /api/v1/debts/:id
func (h *DebtHandler) UpdateDebt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid debt ID")
	}

	var req DebtRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErr := req.toInput()
	if fieldErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*fieldErr})
	}

	debt, err := h.debtService.UpdateDebt(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrDebtNotFound) {
			return NewNotFoundError(c, "Debt not found")
		}
		if resp := debtValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("debt_id", id).Msg("Failed to update debt")
		return NewInternalError(c, "Failed to update debt")
	}
	return c.JSON(http.StatusOK, toDebtResponse(debt))
}

// DeleteDebt handles DELETE /api/v1/debts/:id
func (h *DebtHandler) DeleteDebt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid debt ID")
	}

	if err := h.debtService.DeleteDebt(userID, id); err != nil {
		if errors.Is(err, domain.ErrDebtNotFound) {
			return NewNotFoundError(c, "Debt not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("debt_id", id).Msg("Failed to delete debt")
		return NewInternalError(c, "Failed to delete debt")
	}

	log.Info().Int32("user_id", userID).Int32("debt_id", id).Msg("Debt deleted")
	return c.NoContent(http.StatusNoContent)
}

// GetSchedule godoc
// @Summary Amortization schedule of a debt
// @Tags debts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Debt ID"
// @Success 200 {array} amortization.ScheduleEntry
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /debts/{id}/schedule [get]
func (h *DebtHandler) GetSchedule(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid debt ID")
	}

	schedule, err := h.debtService.GetSchedule(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrDebtNotFound) {
			return NewNotFoundError(c, "Debt not found")
		}
		if resp := scheduleError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("debt_id", id).Msg("Failed to compute schedule")
		return NewInternalError(c, "Failed to compute schedule")
	}
	return c.JSON(http.StatusOK, schedule)
}

// GetAccruedInterest godoc
// @Summary Interest accrued on a debt
// @Description Accepts either days=N or since=YYYY-MM-DD
// @Tags debts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Debt ID"
// @Param days query int false "Number of days"
// @Param since query string false "Start date"
// @Success 200 {object} service.AccruedInterest
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /debts/{id}/accrued-interest [get]
func (h *DebtHandler) GetAccruedInterest(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid debt ID")
	}

	var days int
	switch {
	case c.QueryParam("days") != "":
		n, err := strconv.Atoi(c.QueryParam("days"))
		if err != nil {
			return NewFieldError(c, "days", "Must be a whole number")
		}
		days = n
	case c.QueryParam("since") != "":
		since, err := time.Parse("2006-01-02", c.QueryParam("since"))
		if err != nil {
			return NewFieldError(c, "since", "Must be a date in YYYY-MM-DD format")
		}
		days = util.DaysBetween(since, time.Now().UTC())
	default:
		return NewFieldError(c, "days", "Days is required")
	}

	accrued, err := h.debtService.GetAccruedInterest(userID, id, days)
	if err != nil {
		if errors.Is(err, domain.ErrDebtNotFound) {
			return NewNotFoundError(c, "Debt not found")
		}
		if errors.Is(err, domain.ErrAccrualDaysInvalid) {
			return NewFieldError(c, "days", "Days must not be negative")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("debt_id", id).Msg("Failed to compute accrued interest")
		return NewInternalError(c, "Failed to compute accrued interest")
	}
	return c.JSON(http.StatusOK, accrued)
}

// PreviewSchedule handles POST /api/v1/debts/preview-schedule
func (h *DebtHandler) PreviewSchedule(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req PreviewScheduleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return NewFieldError(c, "principal", "Must be a valid decimal number")
	}
	rate, err := parseDecimal(req.InterestRate)
	if err != nil {
		return NewFieldError(c, "interestRate", "Must be a valid decimal number")
	}

	schedule, summary, err := h.debtService.PreviewSchedule(principal, rate, req.TermMonths)
	if err != nil {
		if resp := scheduleError(c, err); resp != nil {
			return resp
		}
		if resp := debtValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to preview schedule")
		return NewInternalError(c, "Failed to preview schedule")
	}

	return c.JSON(http.StatusOK, PreviewScheduleResponse{Summary: summary, Schedule: schedule})
}

// ExportDebts handles GET /api/v1/debts/export
func (h *DebtHandler) ExportDebts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	records, err := h.debtService.ExportDebts(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to export debts")
		return NewInternalError(c, "Failed to export debts")
	}

	response := make([]DebtRecordResponse, len(records))
	for i, r := range records {
		response[i] = DebtRecordResponse{
			Name:             r.Name,
			Principal:        r.Principal.StringFixed(2),
			InterestRate:     r.InterestRate.StringFixed(2),
			TermMonths:       r.TermMonths,
			DateAdded:        r.DateAdded.Format(time.RFC3339),
			RemainingBalance: r.RemainingBalance.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// ImportDebts godoc
// @Summary Replace all debts with the given records
// @Tags debts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param records body []DebtRecordRequest true "Debt records"
// @Success 200 {array} DebtResponse
// @Failure 400 {object} ProblemDetails
// @Router /debts/import [post]
func (h *DebtHandler) ImportDebts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req []DebtRecordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	records := make([]domain.DebtRecord, 0, len(req))
	var errs []ValidationError
	for i, r := range req {
		record, fieldErr := r.toRecord()
		if fieldErr != nil {
			fieldErr.Field = "[" + strconv.Itoa(i) + "]." + fieldErr.Field
			errs = append(errs, *fieldErr)
			continue
		}
		records = append(records, record)
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	debts, err := h.debtService.ImportDebts(userID, records)
	if err != nil {
		if errors.Is(err, domain.ErrDebtImportRowsInvalid) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to import debts")
		return NewInternalError(c, "Failed to import debts")
	}

	log.Info().Int32("user_id", userID).Int("count", len(debts)).Msg("Debts imported")

	response := make([]DebtResponse, len(debts))
	for i, d := range debts {
		response[i] = toDebtResponse(d)
	}
	return c.JSON(http.StatusOK, response)
}

func (req DebtRequest) toInput() (service.DebtInput, *ValidationError) {
	input := service.DebtInput{
		Name:       req.Name,
		TermMonths: req.TermMonths,
		DebtType:   req.DebtType,
	}

	var err error
	if input.Principal, err = decimal.NewFromString(req.Principal); err != nil {
		return input, &ValidationError{Field: "principal", Message: "Must be a valid decimal number"}
	}
	if input.InterestRate, err = parseDecimal(req.InterestRate); err != nil {
		return input, &ValidationError{Field: "interestRate", Message: "Must be a valid decimal number"}
	}
	if req.RemainingBalance != nil {
		balance, err := decimal.NewFromString(*req.RemainingBalance)
		if err != nil {
			return input, &ValidationError{Field: "remainingBalance", Message: "Must be a valid decimal number"}
		}
		input.RemainingBalance = &balance
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return input, &ValidationError{Field: "dueDate", Message: "Must be a date in YYYY-MM-DD format"}
		}
		input.DueDate = &due
	}
	return input, nil
}

func (r DebtRecordRequest) toRecord() (domain.DebtRecord, *ValidationError) {
	record := domain.DebtRecord{
		Name:       r.Name,
		TermMonths: r.TermMonths,
		DateAdded:  time.Now().UTC(),
	}

	var err error
	if record.Principal, err = decimal.NewFromString(r.Principal); err != nil {
		return record, &ValidationError{Field: "principal", Message: "Must be a valid decimal number"}
	}
	if record.InterestRate, err = parseDecimal(r.InterestRate); err != nil {
		return record, &ValidationError{Field: "interestRate", Message: "Must be a valid decimal number"}
	}
	record.RemainingBalance = record.Principal
	if r.RemainingBalance != "" {
		if record.RemainingBalance, err = decimal.NewFromString(r.RemainingBalance); err != nil {
			return record, &ValidationError{Field: "remainingBalance", Message: "Must be a valid decimal number"}
		}
	}
	if r.DateAdded != "" {
		added, err := time.Parse(time.RFC3339, r.DateAdded)
		if err != nil {
			added, err = time.Parse("2006-01-02", r.DateAdded)
		}
		if err != nil {
			return record, &ValidationError{Field: "dateAdded", Message: "Must be an RFC 3339 timestamp or YYYY-MM-DD"}
		}
		record.DateAdded = added
	}
	return record, nil
}

// debtValidationError maps debt validation sentinels to a problem response, or returns nil
func debtValidationError(c echo.Context, err error) error {
	var field, message string
	switch {
	case errors.Is(err, domain.ErrDebtNameEmpty):
		field, message = "name", "Name is required"
	case errors.Is(err, domain.ErrDebtNameTooLong):
		field, message = "name", "Name must be 200 characters or less"
	case errors.Is(err, domain.ErrDebtPrincipalInvalid):
		field, message = "principal", "Principal must be positive and at most 999999999999.99"
	case errors.Is(err, domain.ErrDebtRateInvalid):
		field, message = "interestRate", "Interest rate must be between 0 and 100"
	case errors.Is(err, domain.ErrDebtTermInvalid):
		field, message = "termMonths", "Term months must be between 1 and 1200"
	case errors.Is(err, domain.ErrDebtBalanceInvalid):
		field, message = "remainingBalance", "Remaining balance must be between 0 and 999999999999.99"
	default:
		return nil
	}
	return NewFieldError(c, field, message)
}

// scheduleError maps amortization failures on stored or previewed terms to a
// problem response, or returns nil
func scheduleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, amortization.ErrOverflow):
		return NewFieldError(c, "interestRate", "Interest rate is too high to schedule over this term")
	case errors.Is(err, amortization.ErrInvalidArgument):
		return NewFieldError(c, "termMonths", "Term months must be between 1 and 1200")
	}
	return nil
}

func toDebtResponse(d *domain.Debt) DebtResponse {
	resp := DebtResponse{
		ID:               d.ID,
		Name:             d.Name,
		Principal:        d.Principal.StringFixed(2),
		InterestRate:     d.InterestRate.StringFixed(2),
		TermMonths:       d.TermMonths,
		RemainingBalance: d.RemainingBalance.StringFixed(2),
		DebtType:         d.DebtType,
		DateAdded:        d.DateAdded.Format(time.RFC3339),
	}
	if d.DueDate != nil {
		due := d.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}
