package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

// NotificationRepository implements domain.NotificationRepository using PostgreSQL
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create stores a notification
func (r *NotificationRepository) Create(n *domain.Notification) (*domain.Notification, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO notifications (user_id, message, is_read) VALUES ($1, $2, $3)
		RETURNING id, user_id, message, is_read, created_at`, n.UserID, n.Message, n.IsRead)
	return scanNotification(row)
}

// GetAllByUser lists a user's notifications, newest first
func (r *NotificationRepository) GetAllByUser(userID int32) ([]*domain.Notification, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, user_id, message, is_read, created_at FROM notifications
		WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// MarkRead flags a notification as read
func (r *NotificationRepository) MarkRead(userID int32, id int32) (*domain.Notification, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, message, is_read, created_at`, id, userID)
	n, err := scanNotification(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// ReportRepository implements domain.ReportRepository using PostgreSQL
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Create stores report metadata
func (r *ReportRepository) Create(report *domain.Report) (*domain.Report, error) {
	var created domain.Report
	err := r.pool.QueryRow(context.Background(), `
		INSERT INTO reports (user_id, title, file_key) VALUES ($1, $2, $3)
		RETURNING id, user_id, file_key, title, date_generated`, report.UserID, report.Title, report.FileKey,
	).Scan(&created.ID, &created.UserID, &created.FileKey, &created.Title, &created.DateGenerated)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetAllByUser lists a user's reports, newest first
func (r *ReportRepository) GetAllByUser(userID int32) ([]*domain.Report, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, user_id, file_key, title, date_generated FROM reports
		WHERE user_id = $1 ORDER BY date_generated DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.FileKey, &rep.Title, &rep.DateGenerated); err != nil {
			return nil, err
		}
		result = append(result, &rep)
	}
	return result, rows.Err()
}
