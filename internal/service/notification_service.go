package service

import (
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo domain.NotificationRepository
	eventPublisher   websocket.EventPublisher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo domain.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *NotificationService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *NotificationService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// Notify stores a notification for the user. Failures are logged and do not
// propagate: a missing notification never fails the operation that raised it.
func (s *NotificationService) Notify(userID int32, message string) {
	if s == nil {
		return
	}
	n, err := s.notificationRepo.Create(&domain.Notification{UserID: userID, Message: message})
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create notification")
		return
	}
	s.publishEvent(userID, websocket.NotificationCreated(n))
}

// GetNotifications lists a user's notifications, newest first
func (s *NotificationService) GetNotifications(userID int32) ([]*domain.Notification, error) {
	return s.notificationRepo.GetAllByUser(userID)
}

// MarkRead flags a notification as read
func (s *NotificationService) MarkRead(userID int32, id int32) (*domain.Notification, error) {
	n, err := s.notificationRepo.MarkRead(userID, id)
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.NotificationRead(n))
	return n, nil
}
