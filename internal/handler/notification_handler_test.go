package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
)

func TestNotifications_ListAndMarkRead(t *testing.T) {
	repo := testutil.NewMockNotificationRepository()
	svc := service.NewNotificationService(repo)
	svc.Notify(1, "New debt added: Car loan")
	svc.Notify(1, "Imported 3 debts")
	svc.Notify(2, "Someone else's")
	handler := NewNotificationHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/api/v1/notifications", "")
	setupAuthContext(c, 1)

	if err := handler.GetNotifications(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var list []NotificationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(list))
	}
	if list[0].Message != "Imported 3 debts" {
		t.Errorf("Expected newest first, got %q", list[0].Message)
	}

	c, rec = newJSONContext(http.MethodPatch, "/api/v1/notifications/1/read", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, 1)

	if err := handler.MarkRead(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var marked NotificationResponse
	json.Unmarshal(rec.Body.Bytes(), &marked)
	if !marked.IsRead {
		t.Error("Expected notification to be read")
	}
}

func TestMarkRead_OtherUsersNotification(t *testing.T) {
	repo := testutil.NewMockNotificationRepository()
	svc := service.NewNotificationService(repo)
	svc.Notify(2, "Private")
	handler := NewNotificationHandler(svc)

	c, rec := newJSONContext(http.MethodPatch, "/api/v1/notifications/1/read", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, 1)

	if err := handler.MarkRead(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	if repo.Notifications[1].IsRead {
		t.Error("Expected notification to stay unread")
	}
}
