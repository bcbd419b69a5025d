package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagingFixture struct {
	handler  *MessagingHandler
	convs    *testutil.MockConversationRepository
	messages *testutil.MockMessageRepository
	files    *testutil.MockFileRepository
}

func newMessagingFixture(withStorage bool) messagingFixture {
	users := testutil.NewMockUserRepository()
	users.AddUser(&domain.User{ID: 1, Email: "alice@example.com"}, "Alice")
	convs := testutil.NewMockConversationRepository()
	messages := testutil.NewMockMessageRepository(convs)

	f := messagingFixture{convs: convs, messages: messages}
	if withStorage {
		f.files = testutil.NewMockFileRepository()
		f.handler = NewMessagingHandler(service.NewMessagingService(convs, messages, users, f.files))
	} else {
		f.handler = NewMessagingHandler(service.NewMessagingService(convs, messages, users, nil))
	}
	return f
}

func (f messagingFixture) createConversation(t *testing.T, body string) ConversationResponse {
	t.Helper()
	c, rec := newJSONContext(http.MethodPost, "/api/v1/conversations", body)
	setupAuthContext(c, 1)

	require.NoError(t, f.handler.CreateConversation(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var conv ConversationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))
	return conv
}

func TestCreateConversation_Defaults(t *testing.T) {
	f := newMessagingFixture(false)

	conv := f.createConversation(t, `{}`)

	assert.Equal(t, domain.DefaultConversationName, conv.Name)
	assert.True(t, conv.IsGroup)
}

func TestGetConversations_GroupFilter(t *testing.T) {
	f := newMessagingFixture(false)
	f.createConversation(t, `{"name": "Savings club"}`)
	f.createConversation(t, `{"name": "Alice", "isGroup": false}`)

	tests := []struct {
		target   string
		expected int
		names    []string
	}{
		{"/api/v1/conversations", http.StatusOK, []string{"Alice", "Savings club"}},
		{"/api/v1/conversations?isGroup=true", http.StatusOK, []string{"Savings club"}},
		{"/api/v1/conversations?isGroup=false", http.StatusOK, []string{"Alice"}},
		{"/api/v1/conversations?isGroup=maybe", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodGet, tt.target, "")
			setupAuthContext(c, 1)

			require.NoError(t, f.handler.GetConversations(c))
			require.Equal(t, tt.expected, rec.Code)
			if tt.names == nil {
				return
			}

			var convs []ConversationResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &convs))
			names := make([]string, len(convs))
			for i, conv := range convs {
				names[i] = conv.Name
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestSendMessage(t *testing.T) {
	f := newMessagingFixture(false)
	conv := f.createConversation(t, `{"name": "Savings club"}`)
	id := itoa32(conv.ID)

	c, rec := newJSONContext(http.MethodPost, "/api/v1/conversations/"+id+"/messages",
		`{"sender": "alice", "content": "hello", "senderUserId": 1}`)
	c.SetParamNames("id")
	c.SetParamValues(id)
	setupAuthContext(c, 1)

	require.NoError(t, f.handler.SendMessage(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var msg MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "text", msg.MessageType)
	require.NotNil(t, msg.SenderUserID)
	assert.Equal(t, int32(1), *msg.SenderUserID)
}

func TestSendMessage_Errors(t *testing.T) {
	f := newMessagingFixture(false)
	conv := f.createConversation(t, `{"name": "Savings club"}`)

	tests := []struct {
		name     string
		id       string
		body     string
		expected int
	}{
		{"unknown conversation", "404", `{"content": "hi"}`, http.StatusNotFound},
		{"bad message type", itoa32(conv.ID), `{"content": "hi", "messageType": "sticker"}`, http.StatusBadRequest},
		{"bad id", "abc", `{"content": "hi"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPost, "/api/v1/conversations/"+tt.id+"/messages", tt.body)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			setupAuthContext(c, 1)

			require.NoError(t, f.handler.SendMessage(c))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestUploadFile_Success(t *testing.T) {
	f := newMessagingFixture(true)
	conv := f.createConversation(t, `{"name": "Savings club"}`)
	id := itoa32(conv.ID)

	c, rec := newMultipartContext(t, "/api/v1/conversations/"+id+"/upload", "statement.pdf", []byte("%PDF-1.4"),
		map[string]string{"sender": "alice"})
	c.SetParamNames("id")
	c.SetParamValues(id)
	setupAuthContext(c, 1)

	require.NoError(t, f.handler.UploadFile(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, strings.HasPrefix(response.FileURL, "https://files.test/"))
	assert.Equal(t, "alice", response.Message.Sender)
	assert.Equal(t, "file", response.Message.MessageType)
	require.NotNil(t, response.Message.FileURL)
	assert.Equal(t, response.FileURL, *response.Message.FileURL)
	assert.Len(t, f.files.Objects, 1)

	// Listing presigns again from the stored key
	c, rec = newJSONContext(http.MethodGet, "/api/v1/conversations/"+id+"/messages", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	setupAuthContext(c, 1)

	require.NoError(t, f.handler.GetMessages(c))
	var messages []MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].FileURL)
	assert.Equal(t, response.FileURL, *messages[0].FileURL)
}

func TestUploadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		storage  bool
		id       string
		filename string
		expected int
	}{
		{"no file", true, "1", "", http.StatusBadRequest},
		{"unknown conversation", true, "404", "a.txt", http.StatusNotFound},
		{"storage disabled", false, "1", "a.txt", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMessagingFixture(tt.storage)
			f.createConversation(t, `{"name": "Savings club"}`)

			c, rec := newMultipartContext(t, "/api/v1/conversations/"+tt.id+"/upload", tt.filename, []byte("data"), nil)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			setupAuthContext(c, 1)

			require.NoError(t, f.handler.UploadFile(c))
			assert.Equal(t, tt.expected, rec.Code)
			assert.Empty(t, f.messages.Messages)
		})
	}
}

func TestClearMessages(t *testing.T) {
	f := newMessagingFixture(false)
	conv := f.createConversation(t, `{"name": "Savings club"}`)
	id := itoa32(conv.ID)

	for _, content := range []string{"one", "two"} {
		c, _ := newJSONContext(http.MethodPost, "/", `{"content": "`+content+`"}`)
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, f.handler.SendMessage(c))
	}
	require.Len(t, f.messages.Messages, 2)

	c, rec := newJSONContext(http.MethodDelete, "/api/v1/conversations/"+id+"/messages", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	setupAuthContext(c, 1)

	require.NoError(t, f.handler.ClearMessages(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "All messages cleared successfully"}`, rec.Body.String())
	assert.Empty(t, f.messages.Messages)

	c, rec = newJSONContext(http.MethodDelete, "/api/v1/conversations/404/messages", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	require.NoError(t, f.handler.ClearMessages(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
