package domain

import (
	"errors"
	"time"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrReportNotFound       = errors.New("report not found")
)

// Notification is an in-app message for a user
type Notification struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"userId"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationRepository defines the interface for notification persistence operations
type NotificationRepository interface {
	Create(notification *Notification) (*Notification, error)
	GetAllByUser(userID int32) ([]*Notification, error)
	MarkRead(userID int32, id int32) (*Notification, error)
}

// Report is a generated or uploaded file kept for a user
type Report struct {
	ID            int32     `json:"id"`
	UserID        int32     `json:"userId"`
	FileKey       string    `json:"-"`
	Title         string    `json:"title"`
	DateGenerated time.Time `json:"dateGenerated"`
}

// ReportRepository defines the interface for report persistence operations
type ReportRepository interface {
	Create(report *Report) (*Report, error)
	GetAllByUser(userID int32) ([]*Report, error)
}
