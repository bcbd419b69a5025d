package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/amortization"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/repository/storage"
	"github.com/pennyhq/penny/penny-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MaxReportSize bounds uploaded reports
const MaxReportSize = 20 * 1024 * 1024 // 20MB

var ErrReportTooLarge = errors.New("file too large. Maximum size is 20MB")

// ReportView is a report with a time-limited download link
type ReportView struct {
	domain.Report
	DownloadURL string `json:"downloadUrl"`
}

// ReportService stores uploaded reports and renders debt charts
type ReportService struct {
	reportRepo domain.ReportRepository
	debtRepo   domain.DebtRepository
	files      storage.FileRepository
	notifier   *NotificationService
}

// NewReportService creates a new ReportService. files may be nil, which
// disables every operation except listing.
func NewReportService(reportRepo domain.ReportRepository, debtRepo domain.DebtRepository, files storage.FileRepository, notifier *NotificationService) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		debtRepo:   debtRepo,
		files:      files,
		notifier:   notifier,
	}
}

// GetReports lists the user's reports with download links
func (s *ReportService) GetReports(ctx context.Context, userID int32) ([]*ReportView, error) {
	reports, err := s.reportRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}
	views := make([]*ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, s.toView(ctx, r))
	}
	return views, nil
}

// ReportUpload describes an uploaded report file
type ReportUpload struct {
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadReport stores a report file for the user
func (s *ReportService) UploadReport(ctx context.Context, userID int32, upload ReportUpload) (*ReportView, error) {
	if upload.Data == nil || upload.Filename == "" {
		return nil, domain.ErrFileRequired
	}
	if upload.Size > MaxReportSize {
		return nil, ErrReportTooLarge
	}
	if s.files == nil {
		return nil, ErrFileStorageUnavailable
	}

	title := strings.TrimSpace(upload.Title)
	if title == "" {
		title = filepath.Base(upload.Filename)
	}
	if len(title) > domain.MaxLongNameLength {
		return nil, domain.ErrNameTooLong
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath := storage.GenerateObjectPath(userID, storage.KindReport, safeBaseName(upload.Filename), filepath.Ext(upload.Filename))
	return s.store(ctx, userID, title, objectPath, upload.Data, contentType, upload.Size)
}

// GenerateDebtReport renders the remaining balance of a debt over its
// schedule as a PNG chart and stores it as a report
func (s *ReportService) GenerateDebtReport(ctx context.Context, userID int32, debtID int32) (*ReportView, error) {
	if s.files == nil {
		return nil, ErrFileStorageUnavailable
	}
	debt, err := s.debtRepo.GetByID(userID, debtID)
	if err != nil {
		return nil, err
	}
	schedule, err := amortization.Schedule(TermsOf(debt))
	if err != nil {
		return nil, err
	}

	png, err := RenderBalanceChart(debt, schedule)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s balance schedule", debt.Name)
	objectPath := storage.GenerateObjectPath(userID, storage.KindReport, "balance", ".png")
	view, err := s.store(ctx, userID, title, objectPath, bytes.NewReader(png), "image/png", int64(len(png)))
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(userID, fmt.Sprintf("Report ready: %s", title))
	return view, nil
}

func (s *ReportService) store(ctx context.Context, userID int32, title, objectPath string, data io.Reader, contentType string, size int64) (*ReportView, error) {
	key, err := s.files.Upload(ctx, objectPath, data, contentType, size)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to store report")
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	report, err := s.reportRepo.Create(&domain.Report{UserID: userID, Title: title, FileKey: key})
	if err != nil {
		_ = s.files.Delete(ctx, key)
		return nil, err
	}
	return s.toView(ctx, report), nil
}

func (s *ReportService) toView(ctx context.Context, r *domain.Report) *ReportView {
	view := &ReportView{Report: *r}
	if s.files == nil {
		return view
	}
	url, err := s.files.GeneratePresignedURL(ctx, r.FileKey, PresignExpiry)
	if err != nil {
		log.Warn().Err(err).Int32("report_id", r.ID).Msg("Failed to presign report")
		return view
	}
	view.DownloadURL = url
	return view
}

// RenderBalanceChart draws the remaining balance of a debt month by month,
// starting from the principal on the day it was added
func RenderBalanceChart(debt *domain.Debt, schedule []amortization.ScheduleEntry) ([]byte, error) {
	if len(schedule) == 0 {
		return nil, fmt.Errorf("%w: empty schedule", amortization.ErrInvalidArgument)
	}

	start := debt.DateAdded
	if start.IsZero() {
		start = time.Now().UTC()
	}

	xValues := make([]time.Time, 0, len(schedule)+1)
	yValues := make([]float64, 0, len(schedule)+1)
	xValues = append(xValues, start)
	yValues = append(yValues, debt.Principal.InexactFloat64())
	for _, e := range schedule {
		xValues = append(xValues, util.AddMonths(start, e.Month))
		yValues = append(yValues, e.Remaining)
	}

	graph := chart.Chart{
		Title:  debt.Name,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Remaining balance",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("16a34a"),
					StrokeWidth: 2.5,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
