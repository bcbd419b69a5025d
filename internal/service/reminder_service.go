package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/websocket"
)

// ReminderService handles reminder business logic. Reminders are stored only.
type ReminderService struct {
	reminderRepo   domain.ReminderRepository
	billRepo       domain.BillRepository
	notifier       *NotificationService
	eventPublisher websocket.EventPublisher
}

// NewReminderService creates a new ReminderService. notifier may be nil.
func NewReminderService(reminderRepo domain.ReminderRepository, billRepo domain.BillRepository, notifier *NotificationService) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		billRepo:     billRepo,
		notifier:     notifier,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ReminderService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ReminderService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// ReminderInput contains input for creating or replacing a reminder
type ReminderInput struct {
	BillID     int32
	Email      string
	ReminderAt time.Time
	Message    string
	SendEmail  bool
}

// validate checks the input and returns the bill the reminder points at
func (s *ReminderService) validate(userID int32, input ReminderInput) (*domain.Bill, error) {
	if input.BillID <= 0 {
		return nil, domain.ErrReminderBillInvalid
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrReminderEmailInvalid
	}
	if input.ReminderAt.IsZero() {
		return nil, domain.ErrReminderTimeRequired
	}

	// A reminder may only reference the user's own bill
	bill, err := s.billRepo.GetByID(userID, input.BillID)
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return nil, domain.ErrReminderBillInvalid
		}
		return nil, err
	}
	return bill, nil
}

// CreateReminder stores a reminder for one of the user's bills
func (s *ReminderService) CreateReminder(userID int32, input ReminderInput) (*domain.Reminder, error) {
	bill, err := s.validate(userID, input)
	if err != nil {
		return nil, err
	}

	created, err := s.reminderRepo.Create(&domain.Reminder{
		UserID:     userID,
		BillID:     bill.ID,
		Email:      strings.TrimSpace(input.Email),
		ReminderAt: input.ReminderAt,
		Message:    input.Message,
		SendEmail:  input.SendEmail,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(userID, fmt.Sprintf("Reminder set for %s on %s", bill.Name, created.ReminderAt.Format("2006-01-02 15:04")))
	s.publishEvent(userID, websocket.ReminderCreated(created))
	return created, nil
}

// GetReminder retrieves one of the user's reminders
func (s *ReminderService) GetReminder(userID int32, id int32) (*domain.Reminder, error) {
	return s.reminderRepo.GetByID(userID, id)
}

// GetReminders lists the user's reminders, optionally for one bill
func (s *ReminderService) GetReminders(userID int32, billID *int32) ([]*domain.Reminder, error) {
	return s.reminderRepo.GetAllByUser(userID, billID)
}

// UpdateReminder replaces a reminder
func (s *ReminderService) UpdateReminder(userID int32, id int32, input ReminderInput) (*domain.Reminder, error) {
	if _, err := s.reminderRepo.GetByID(userID, id); err != nil {
		return nil, err
	}
	if _, err := s.validate(userID, input); err != nil {
		return nil, err
	}

	updated, err := s.reminderRepo.Update(&domain.Reminder{
		ID:         id,
		UserID:     userID,
		BillID:     input.BillID,
		Email:      strings.TrimSpace(input.Email),
		ReminderAt: input.ReminderAt,
		Message:    input.Message,
		SendEmail:  input.SendEmail,
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.ReminderUpdated(updated))
	return updated, nil
}

// DeleteReminder removes a reminder
func (s *ReminderService) DeleteReminder(userID int32, id int32) error {
	if err := s.reminderRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.ReminderDeleted(map[string]int32{"id": id}))
	return nil
}
