package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypeImported EventType = "imported"
	EventTypeRead     EventType = "read"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeDebt         EntityType = "debt"
	EntityTypeBill         EntityType = "bill"
	EntityTypeReminder     EntityType = "reminder"
	EntityTypeInvestment   EntityType = "investment"
	EntityTypeProfitLoss   EntityType = "profit_loss"
	EntityTypeNotification EntityType = "notification"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "debt.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "debt"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// DebtCreated creates a debt.created event
func DebtCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeDebt, payload)
}

// DebtUpdated creates a debt.updated event
func DebtUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeDebt, payload)
}

// DebtDeleted creates a debt.deleted event
func DebtDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeDebt, payload)
}

// DebtsImported creates a debt.imported event
func DebtsImported(payload interface{}) Event {
	return NewEvent(EventTypeImported, EntityTypeDebt, payload)
}

// BillCreated creates a bill.created event
func BillCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeBill, payload)
}

// BillUpdated creates a bill.updated event
func BillUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeBill, payload)
}

// BillDeleted creates a bill.deleted event
func BillDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeBill, payload)
}

// ReminderCreated creates a reminder.created event
func ReminderCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeReminder, payload)
}

// ReminderUpdated creates a reminder.updated event
func ReminderUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeReminder, payload)
}

// ReminderDeleted creates a reminder.deleted event
func ReminderDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeReminder, payload)
}

// InvestmentCreated creates an investment.created event
func InvestmentCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeInvestment, payload)
}

// InvestmentUpdated creates an investment.updated event
func InvestmentUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeInvestment, payload)
}

// InvestmentDeleted creates an investment.deleted event
func InvestmentDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeInvestment, payload)
}

// ProfitLossCreated creates a profit_loss.created event
func ProfitLossCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeProfitLoss, payload)
}

// NotificationCreated creates a notification.created event
func NotificationCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeNotification, payload)
}

// NotificationRead creates a notification.read event
func NotificationRead(payload interface{}) Event {
	return NewEvent(EventTypeRead, EntityTypeNotification, payload)
}
