package service

import (
	"context"
	"strings"
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessagingServiceForTest() (*MessagingService, *testutil.MockMessageRepository, *testutil.MockFileRepository) {
	convs := testutil.NewMockConversationRepository()
	msgs := testutil.NewMockMessageRepository(convs)
	users := testutil.NewMockUserRepository()
	users.AddUser(&domain.User{ID: 1, Email: "a@example.com"}, "Alice")
	files := testutil.NewMockFileRepository()
	return NewMessagingService(convs, msgs, users, files), msgs, files
}

func TestMessagingService_CreateConversation_Defaults(t *testing.T) {
	svc, _, _ := newMessagingServiceForTest()

	conv, err := svc.CreateConversation("  ", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConversationName, conv.Name)
	assert.True(t, conv.IsGroup)

	direct := false
	_, err = svc.CreateConversation("Alice & Bob", &direct)
	require.NoError(t, err)

	groups := true
	listed, err := svc.GetConversations(&groups)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestMessagingService_SendMessage(t *testing.T) {
	svc, _, _ := newMessagingServiceForTest()
	conv, _ := svc.CreateConversation("Budget club", nil)

	known, unknown := int32(1), int32(99)
	msg, err := svc.SendMessage(conv.ID, SendMessageInput{Content: "hi", SenderUserID: &known})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSender, msg.Sender)
	assert.Equal(t, domain.MessageTypeText, msg.MessageType)
	require.NotNil(t, msg.SenderUserID)

	msg, err = svc.SendMessage(conv.ID, SendMessageInput{Sender: "bob", Content: "yo", SenderUserID: &unknown})
	require.NoError(t, err)
	assert.Nil(t, msg.SenderUserID, "unknown sender user ids are ignored")

	_, err = svc.SendMessage(conv.ID, SendMessageInput{Content: "x", MessageType: "sticker"})
	assert.ErrorIs(t, err, domain.ErrMessageTypeInvalid)

	_, err = svc.SendMessage(404, SendMessageInput{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)

	msgs, err := svc.GetMessages(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Content)
}

func TestMessagingService_UploadFile(t *testing.T) {
	svc, msgs, files := newMessagingServiceForTest()
	conv, _ := svc.CreateConversation("Budget club", nil)

	msg, err := svc.UploadFile(context.Background(), conv.ID, UploadInput{
		Filename:    "March statement.pdf",
		ContentType: "application/pdf",
		Size:        5,
		Data:        strings.NewReader("%PDF-"),
		Sender:      "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MessageTypeFile, msg.MessageType)
	require.NotNil(t, msg.FileURL)
	assert.True(t, strings.HasPrefix(*msg.FileURL, "https://files.test/"))
	assert.Equal(t, *msg.FileURL, msg.Content)

	require.Len(t, files.Objects, 1)
	for key := range files.Objects {
		assert.True(t, strings.HasPrefix(key, "1/attachments/"))
		assert.True(t, strings.HasSuffix(key, "_March_statement.pdf"))
		stored := msgs.Messages[msg.ID]
		assert.Equal(t, key, *stored.FileURL, "the object key is stored, not the signed URL")
	}
}

func TestMessagingService_UploadFile_InfersImage(t *testing.T) {
	svc, _, _ := newMessagingServiceForTest()
	conv, _ := svc.CreateConversation("", nil)

	msg, err := svc.UploadFile(context.Background(), conv.ID, UploadInput{
		Filename: "a.png", ContentType: "image/png", Size: 3, Data: strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageTypeImage, msg.MessageType)
}

func TestMessagingService_UploadFile_Errors(t *testing.T) {
	svc, _, _ := newMessagingServiceForTest()
	conv, _ := svc.CreateConversation("", nil)

	_, err := svc.UploadFile(context.Background(), conv.ID, UploadInput{})
	assert.ErrorIs(t, err, domain.ErrFileRequired)

	_, err = svc.UploadFile(context.Background(), 404, UploadInput{Filename: "a.txt", Data: strings.NewReader("a")})
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)

	_, err = svc.UploadFile(context.Background(), conv.ID, UploadInput{Filename: "a.txt", Size: MaxAttachmentSize + 1, Data: strings.NewReader("a")})
	assert.ErrorIs(t, err, ErrAttachmentTooLarge)
}

func TestMessagingService_ClearMessages(t *testing.T) {
	svc, _, _ := newMessagingServiceForTest()
	conv, _ := svc.CreateConversation("Budget club", nil)
	svc.SendMessage(conv.ID, SendMessageInput{Content: "one"})
	svc.SendMessage(conv.ID, SendMessageInput{Content: "two"})

	n, err := svc.ClearMessages(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.ClearMessages(404)
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}
