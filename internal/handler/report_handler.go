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
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID            int32  `json:"id"`
	Title         string `json:"title"`
	DateGenerated string `json:"dateGenerated"`
	DownloadURL   string `json:"downloadUrl,omitempty"`
}

// GetReports handles GET /api/v1/reports
func (h *ReportHandler) GetReports(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	reports, err := h.reportService.GetReports(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get reports")
		return NewInternalError(c, "Failed to get reports")
	}

	response := make([]ReportResponse, len(reports))
	for i, r := range reports {
		response[i] = toReportResponse(r)
	}
	return c.JSON(http.StatusOK, response)
}

// UploadReport handles POST /api/v1/reports (multipart "file", optional "title")
func (h *ReportHandler) UploadReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
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

	report, err := h.reportService.UploadReport(c.Request().Context(), userID, service.ReportUpload{
		Title:       c.FormValue("title"),
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Size:        file.Size,
		Data:        src,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileRequired):
			return NewFieldError(c, "file", "File is required")
		case errors.Is(err, domain.ErrNameTooLong):
			return NewFieldError(c, "title", "Title must be 255 characters or less")
		case errors.Is(err, service.ErrReportTooLarge):
			return NewPayloadTooLargeError(c, "File too large. Maximum size is 20MB")
		case errors.Is(err, service.ErrFileStorageUnavailable):
			return NewServiceUnavailableError(c, "Report uploads are disabled (storage not configured)")
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to upload report")
		return NewInternalError(c, "Failed to upload report")
	}
	return c.JSON(http.StatusCreated, toReportResponse(report))
}

// GenerateDebtReport godoc
// @Summary Render a debt's balance chart as a report
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param id path int true "Debt ID"
// @Success 201 {object} ReportResponse
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /debts/{id}/report [post]
func (h *ReportHandler) GenerateDebtReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	debtID, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid debt ID")
	}

	report, err := h.reportService.GenerateDebtReport(c.Request().Context(), userID, debtID)
	if err != nil {
		if resp := scheduleError(c, err); resp != nil {
			return resp
		}
		switch {
		case errors.Is(err, domain.ErrDebtNotFound):
			return NewNotFoundError(c, "Debt not found")
		case errors.Is(err, service.ErrFileStorageUnavailable):
			return NewServiceUnavailableError(c, "Reports are disabled (storage not configured)")
		}
		log.Error().Err(err).Int32("user_id", userID).Int32("debt_id", debtID).Msg("Failed to generate report")
		return NewInternalError(c, "Failed to generate report")
	}

	log.Info().Int32("user_id", userID).Int32("report_id", report.ID).Msg("Debt report generated")
	return c.JSON(http.StatusCreated, toReportResponse(report))
}

func toReportResponse(r *service.ReportView) ReportResponse {
	return ReportResponse{
		ID:            r.ID,
		Title:         r.Title,
		DateGenerated: r.DateGenerated.Format(time.RFC3339),
		DownloadURL:   r.DownloadURL,
	}
}
