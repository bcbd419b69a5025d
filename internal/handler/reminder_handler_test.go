package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
)

func newReminderHandlerForTest() (*ReminderHandler, *testutil.MockReminderRepository) {
	bills := testutil.NewMockBillRepository()
	seedBill(bills, 1, 1, "Rent")
	seedBill(bills, 2, 2, "Gym")
	reminders := testutil.NewMockReminderRepository()
	return NewReminderHandler(service.NewReminderService(reminders, bills, nil)), reminders
}

func TestCreateReminder_Success(t *testing.T) {
	handler, repo := newReminderHandlerForTest()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/reminders",
		`{"billId": 1, "email": "me@example.com", "reminderAt": "2026-10-30T09:00:00Z", "message": "Pay rent", "sendEmail": true}`)
	setupAuthContext(c, 1)

	if err := handler.CreateReminder(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response ReminderResponse
	json.Unmarshal(rec.Body.Bytes(), &response)
	if response.ReminderAt != "2026-10-30T09:00:00Z" || response.BillID != 1 || !response.SendEmail {
		t.Errorf("Unexpected reminder %+v", response)
	}
	if len(repo.Reminders) != 1 {
		t.Errorf("Expected 1 stored reminder, got %d", len(repo.Reminders))
	}
}

func TestCreateReminder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"other user's bill", `{"billId": 2, "email": "me@example.com", "reminderAt": "2026-10-30T09:00:00Z"}`, "billId"},
		{"unknown bill", `{"billId": 42, "email": "me@example.com", "reminderAt": "2026-10-30T09:00:00Z"}`, "billId"},
		{"bad email", `{"billId": 1, "email": "me", "reminderAt": "2026-10-30T09:00:00Z"}`, "email"},
		{"bad time", `{"billId": 1, "email": "me@example.com", "reminderAt": "tomorrow"}`, "reminderAt"},
		{"missing time", `{"billId": 1, "email": "me@example.com"}`, "reminderAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, repo := newReminderHandlerForTest()
			c, rec := newJSONContext(http.MethodPost, "/api/v1/reminders", tt.body)
			setupAuthContext(c, 1)

			if err := handler.CreateReminder(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rec.Code)
			}

			var problem ProblemDetails
			json.Unmarshal(rec.Body.Bytes(), &problem)
			if len(problem.Errors) != 1 || problem.Errors[0].Field != tt.field {
				t.Errorf("Expected error on %s, got %+v", tt.field, problem.Errors)
			}
			if len(repo.Reminders) != 0 {
				t.Error("Expected nothing stored")
			}
		})
	}
}

func TestGetReminders_BillFilter(t *testing.T) {
	handler, _ := newReminderHandlerForTest()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/reminders",
		`{"billId": 1, "email": "me@example.com", "reminderAt": "2026-10-30T09:00:00Z"}`)
	setupAuthContext(c, 1)
	if err := handler.CreateReminder(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("Failed to create reminder: %v %d", err, rec.Code)
	}

	tests := []struct {
		target   string
		expected int
		count    int
	}{
		{"/api/v1/reminders", http.StatusOK, 1},
		{"/api/v1/reminders?billId=1", http.StatusOK, 1},
		{"/api/v1/reminders?billId=2", http.StatusOK, 0},
		{"/api/v1/reminders?billId=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		c, rec := newJSONContext(http.MethodGet, tt.target, "")
		setupAuthContext(c, 1)

		if err := handler.GetReminders(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != tt.expected {
			t.Errorf("%s: expected status %d, got %d", tt.target, tt.expected, rec.Code)
			continue
		}
		if tt.expected != http.StatusOK {
			continue
		}
		var response []ReminderResponse
		json.Unmarshal(rec.Body.Bytes(), &response)
		if len(response) != tt.count {
			t.Errorf("%s: expected %d reminders, got %d", tt.target, tt.count, len(response))
		}
	}
}
