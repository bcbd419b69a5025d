package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Complete(t *testing.T) {
	var received openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Pay the highest rate first."}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-3.5-turbo", time.Second)
	reply, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: "sys"},
		{Role: domain.ChatRoleUser, Content: "How do I pay off debt?"},
	}, MaxOutputTokens)

	require.NoError(t, err)
	assert.Equal(t, "Pay the highest rate first.", reply)
	assert.Equal(t, "gpt-3.5-turbo", received.Model)
	assert.Equal(t, MaxOutputTokens, received.MaxTokens)
	assert.Len(t, received.Messages, 2)
}

func TestOpenAIClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("bad", server.URL, "gpt-3.5-turbo", time.Second)
	_, err := client.Complete(context.Background(), nil, MaxOutputTokens)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestOpenAIClient_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("k", server.URL, "gpt-3.5-turbo", time.Second)
	_, err := client.Complete(context.Background(), nil, MaxOutputTokens)

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
