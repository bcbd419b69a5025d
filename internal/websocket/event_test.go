package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewEvent(EventTypeCreated, EntityTypeDebt, map[string]interface{}{"id": 1, "name": "Car loan"})

	assert.Equal(t, "debt.created", evt.Type)
	assert.Equal(t, EntityTypeDebt, evt.Entity)
	assert.False(t, evt.Timestamp.Before(before))
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{"debt created", DebtCreated(nil), "debt.created"},
		{"debt updated", DebtUpdated(nil), "debt.updated"},
		{"debt deleted", DebtDeleted(nil), "debt.deleted"},
		{"debts imported", DebtsImported(nil), "debt.imported"},
		{"bill created", BillCreated(nil), "bill.created"},
		{"bill updated", BillUpdated(nil), "bill.updated"},
		{"bill deleted", BillDeleted(nil), "bill.deleted"},
		{"reminder created", ReminderCreated(nil), "reminder.created"},
		{"reminder updated", ReminderUpdated(nil), "reminder.updated"},
		{"reminder deleted", ReminderDeleted(nil), "reminder.deleted"},
		{"investment created", InvestmentCreated(nil), "investment.created"},
		{"investment updated", InvestmentUpdated(nil), "investment.updated"},
		{"investment deleted", InvestmentDeleted(nil), "investment.deleted"},
		{"profit loss created", ProfitLossCreated(nil), "profit_loss.created"},
		{"notification created", NotificationCreated(nil), "notification.created"},
		{"notification read", NotificationRead(nil), "notification.read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Type)
		})
	}
}

func TestEvent_ToJSON(t *testing.T) {
	evt := BillCreated(map[string]interface{}{"id": float64(5)})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "bill.created", decoded["type"])
	assert.Equal(t, "bill", decoded["entity"])
	assert.Equal(t, float64(5), decoded["payload"].(map[string]interface{})["id"])
	assert.NotEmpty(t, decoded["timestamp"])
}
