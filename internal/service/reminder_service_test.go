package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newReminderServiceForTest() (*ReminderService, *testutil.MockReminderRepository, *testutil.MockNotificationRepository, *testutil.MockEventPublisher) {
	bills := testutil.NewMockBillRepository()
	bills.AddBill(&domain.Bill{ID: 1, UserID: 1, Name: "Rent", Amount: decimal.NewFromInt(1200), Category: "Housing",
		DueDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)})
	bills.AddBill(&domain.Bill{ID: 2, UserID: 2, Name: "Gym", Amount: decimal.NewFromInt(40), Category: "Health",
		DueDate: time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)})

	reminders := testutil.NewMockReminderRepository()
	notifications := testutil.NewMockNotificationRepository()
	publisher := testutil.NewMockEventPublisher()

	svc := NewReminderService(reminders, bills, NewNotificationService(notifications))
	svc.SetEventPublisher(publisher)
	return svc, reminders, notifications, publisher
}

func validReminderInput() ReminderInput {
	return ReminderInput{
		BillID:     1,
		Email:      " me@example.com ",
		ReminderAt: time.Date(2026, 10, 30, 9, 0, 0, 0, time.UTC),
		Message:    "Pay rent",
	}
}

func TestReminderService_CreateReminder(t *testing.T) {
	svc, reminders, notifications, publisher := newReminderServiceForTest()

	reminder, err := svc.CreateReminder(1, validReminderInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reminder.Email != "me@example.com" {
		t.Errorf("expected trimmed email, got %q", reminder.Email)
	}
	if len(reminders.Reminders) != 1 {
		t.Errorf("expected 1 stored reminder, got %d", len(reminders.Reminders))
	}
	if len(notifications.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.Notifications))
	}
	for _, n := range notifications.Notifications {
		if !strings.Contains(n.Message, "Rent") || !strings.Contains(n.Message, "2026-10-30 09:00") {
			t.Errorf("unexpected notification message %q", n.Message)
		}
	}
	// notification.created is only published when the notifier has a publisher
	if len(publisher.Events) != 1 || publisher.Events[0].Event.Type != "reminder.created" {
		t.Errorf("expected reminder.created event, got %+v", publisher.Events)
	}
}

func TestReminderService_CreateReminder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ReminderInput)
		want   error
	}{
		{"missing bill", func(in *ReminderInput) { in.BillID = 0 }, domain.ErrReminderBillInvalid},
		{"unknown bill", func(in *ReminderInput) { in.BillID = 99 }, domain.ErrReminderBillInvalid},
		{"other user's bill", func(in *ReminderInput) { in.BillID = 2 }, domain.ErrReminderBillInvalid},
		{"bad email", func(in *ReminderInput) { in.Email = "nope" }, domain.ErrReminderEmailInvalid},
		{"missing time", func(in *ReminderInput) { in.ReminderAt = time.Time{} }, domain.ErrReminderTimeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reminders, _, _ := newReminderServiceForTest()
			input := validReminderInput()
			tt.modify(&input)

			if _, err := svc.CreateReminder(1, input); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(reminders.Reminders) != 0 {
				t.Error("expected nothing stored")
			}
		})
	}
}

func TestReminderService_GetReminders_FilterByBill(t *testing.T) {
	svc, _, _, _ := newReminderServiceForTest()

	first := validReminderInput()
	if _, err := svc.CreateReminder(1, first); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second := validReminderInput()
	second.ReminderAt = first.ReminderAt.Add(-24 * time.Hour)
	if _, err := svc.CreateReminder(1, second); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	all, err := svc.GetReminders(1, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 || !all[0].ReminderAt.Before(all[1].ReminderAt) {
		t.Errorf("expected 2 reminders ordered by time, got %+v", all)
	}

	other := int32(2)
	filtered, err := svc.GetReminders(1, &other)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(filtered) != 0 {
		t.Errorf("expected no reminders for bill 2, got %d", len(filtered))
	}
}

func TestReminderService_UpdateAndDelete(t *testing.T) {
	svc, reminders, _, publisher := newReminderServiceForTest()

	created, err := svc.CreateReminder(1, validReminderInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	input := validReminderInput()
	input.Message = "Pay rent today"
	input.SendEmail = true
	updated, err := svc.UpdateReminder(1, created.ID, input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Message != "Pay rent today" || !updated.SendEmail {
		t.Errorf("unexpected update result %+v", updated)
	}

	if _, err := svc.UpdateReminder(2, created.ID, input); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound for other user, got %v", err)
	}

	if err := svc.DeleteReminder(1, created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(reminders.Reminders) != 0 {
		t.Error("expected reminder to be deleted")
	}

	last := publisher.Events[len(publisher.Events)-1]
	if last.Event.Type != "reminder.deleted" {
		t.Errorf("expected reminder.deleted event, got %s", last.Event.Type)
	}
}
