package service

import (
	"errors"
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
)

func TestNotificationService_NotifyAndMarkRead(t *testing.T) {
	repo := testutil.NewMockNotificationRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewNotificationService(repo)
	svc.SetEventPublisher(publisher)

	svc.Notify(1, "New debt added: Car loan")
	svc.Notify(2, "someone else")

	list, err := svc.GetNotifications(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 || list[0].Message != "New debt added: Car loan" {
		t.Fatalf("unexpected notifications %+v", list)
	}

	read, err := svc.MarkRead(1, list[0].ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !read.IsRead {
		t.Error("expected notification to be read")
	}

	if _, err := svc.MarkRead(2, list[0].ID); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}

	types := []string{}
	for _, e := range publisher.Events {
		types = append(types, e.Event.Type)
	}
	if len(types) != 3 || types[2] != "notification.read" {
		t.Errorf("unexpected events %v", types)
	}
}

func TestNotificationService_NotifySwallowsErrors(t *testing.T) {
	repo := testutil.NewMockNotificationRepository()
	repo.CreateErr = errors.New("db down")
	svc := NewNotificationService(repo)

	svc.Notify(1, "lost")

	var nilSvc *NotificationService
	nilSvc.Notify(1, "ignored")
}
