package domain

import (
	"errors"
	"time"
)

var (
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrReminderBillInvalid  = errors.New("reminder bill is invalid")
	ErrReminderEmailInvalid = errors.New("reminder email is invalid")
	ErrReminderTimeRequired = errors.New("reminder time is required")
)

// Reminder is a stored note to remind the user about a bill.
// Reminders are never dispatched by the server.
type Reminder struct {
	ID         int32     `json:"id"`
	UserID     int32     `json:"userId"`
	BillID     int32     `json:"billId"`
	Email      string    `json:"email"`
	ReminderAt time.Time `json:"reminderAt"`
	Message    string    `json:"message"`
	SendEmail  bool      `json:"sendEmail"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReminderRepository defines the interface for reminder persistence operations
type ReminderRepository interface {
	Create(reminder *Reminder) (*Reminder, error)
	GetByID(userID int32, id int32) (*Reminder, error)
	GetAllByUser(userID int32, billID *int32) ([]*Reminder, error)
	Update(reminder *Reminder) (*Reminder, error)
	Delete(userID int32, id int32) error
}
