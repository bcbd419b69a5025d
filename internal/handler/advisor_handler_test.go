package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
)

func TestChat_Success(t *testing.T) {
	client := &testutil.MockCompletionClient{Reply: "Build an emergency fund first."}
	handler := NewAdvisorHandler(service.NewAdvisorService(client, "gpt-3.5-turbo", 2000))

	c, rec := newJSONContext(http.MethodPost, "/api/v1/advisor/chat",
		`{"message": "Should I invest or save?", "category": "saving"}`)
	setupAuthContext(c, 1)

	if err := handler.Chat(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Response != "Build an emergency fund first." {
		t.Errorf("Unexpected reply %q", response.Response)
	}
	if len(client.Calls) != 1 {
		t.Errorf("Expected 1 provider call, got %d", len(client.Calls))
	}
}

func TestChat_ProviderFailureStillAnswers(t *testing.T) {
	client := &testutil.MockCompletionClient{Err: errors.New("connection refused")}
	handler := NewAdvisorHandler(service.NewAdvisorService(client, "gpt-3.5-turbo", 2000))

	c, rec := newJSONContext(http.MethodPost, "/api/v1/advisor/chat", `{"message": "hello"}`)
	setupAuthContext(c, 1)

	if err := handler.Chat(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response ChatResponse
	json.Unmarshal(rec.Body.Bytes(), &response)
	if response.Response != "Error from advisor API: connection refused" {
		t.Errorf("Unexpected reply %q", response.Response)
	}
}

func TestChat_Errors(t *testing.T) {
	tests := []struct {
		name     string
		svc      *service.AdvisorService
		body     string
		auth     bool
		expected int
	}{
		{"empty message", service.NewAdvisorService(&testutil.MockCompletionClient{}, "m", 100), `{"message": "  "}`, true, http.StatusBadRequest},
		{"not configured", service.NewAdvisorService(nil, "", 0), `{"message": "hi"}`, true, http.StatusServiceUnavailable},
		{"unauthenticated", service.NewAdvisorService(&testutil.MockCompletionClient{}, "m", 100), `{"message": "hi"}`, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAdvisorHandler(tt.svc)
			c, rec := newJSONContext(http.MethodPost, "/api/v1/advisor/chat", tt.body)
			if tt.auth {
				setupAuthContext(c, 1)
			}

			if err := handler.Chat(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}
