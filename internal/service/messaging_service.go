package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/repository/storage"
	"github.com/rs/zerolog/log"
)

// MaxAttachmentSize bounds uploaded chat files
const MaxAttachmentSize = 25 * 1024 * 1024 // 25MB

var (
	ErrAttachmentTooLarge     = errors.New("file too large. Maximum size is 25MB")
	ErrFileStorageUnavailable = errors.New("file storage not configured")
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// MessagingService handles conversations, messages and chat attachments
type MessagingService struct {
	conversationRepo domain.ConversationRepository
	messageRepo      domain.MessageRepository
	userRepo         domain.UserRepository
	files            storage.FileRepository
}

// NewMessagingService creates a new MessagingService. files may be nil, which
// disables attachments.
func NewMessagingService(conversationRepo domain.ConversationRepository, messageRepo domain.MessageRepository, userRepo domain.UserRepository, files storage.FileRepository) *MessagingService {
	return &MessagingService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		files:            files,
	}
}

// CreateConversation creates a conversation. Empty names get a default and
// conversations are groups unless isGroup says otherwise.
func (s *MessagingService) CreateConversation(name string, isGroup *bool) (*domain.Conversation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultConversationName
	}
	if len(name) > domain.MaxLongNameLength {
		return nil, domain.ErrNameTooLong
	}
	group := true
	if isGroup != nil {
		group = *isGroup
	}
	return s.conversationRepo.Create(&domain.Conversation{Name: name, IsGroup: group})
}

// GetConversations lists conversations, optionally only groups or only directs
func (s *MessagingService) GetConversations(isGroup *bool) ([]*domain.Conversation, error) {
	return s.conversationRepo.List(isGroup)
}

// GetMessages lists a conversation's messages in chronological order.
// Stored attachment keys are swapped for presigned URLs.
func (s *MessagingService) GetMessages(ctx context.Context, conversationID int32) ([]*domain.Message, error) {
	if _, err := s.conversationRepo.GetByID(conversationID); err != nil {
		return nil, err
	}
	msgs, err := s.messageRepo.GetByConversation(conversationID)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		s.resolveAttachment(ctx, m)
	}
	return msgs, nil
}

// SendMessageInput contains input for posting a message
type SendMessageInput struct {
	Sender       string
	Content      string
	MessageType  domain.MessageType
	SenderUserID *int32
}

// SendMessage adds a message to a conversation
func (s *MessagingService) SendMessage(conversationID int32, input SendMessageInput) (*domain.Message, error) {
	if _, err := s.conversationRepo.GetByID(conversationID); err != nil {
		return nil, err
	}

	msgType := input.MessageType
	if msgType == "" {
		msgType = domain.MessageTypeText
	}
	if !msgType.IsValid() {
		return nil, domain.ErrMessageTypeInvalid
	}

	return s.messageRepo.Create(&domain.Message{
		ConversationID: conversationID,
		Sender:         senderOrDefault(input.Sender),
		Content:        input.Content,
		MessageType:    msgType,
		SenderUserID:   s.knownUser(input.SenderUserID),
	})
}

// UploadInput describes a chat attachment
type UploadInput struct {
	Filename     string
	ContentType  string
	Size         int64
	Data         io.Reader
	Sender       string
	MessageType  domain.MessageType // inferred from ContentType when empty
	SenderUserID *int32
}

// UploadFile stores an attachment and posts a message pointing at it.
// It returns the created message with a presigned file URL.
func (s *MessagingService) UploadFile(ctx context.Context, conversationID int32, input UploadInput) (*domain.Message, error) {
	if input.Data == nil || input.Filename == "" {
		return nil, domain.ErrFileRequired
	}
	if input.Size > MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}
	if s.files == nil {
		return nil, ErrFileStorageUnavailable
	}
	if _, err := s.conversationRepo.GetByID(conversationID); err != nil {
		return nil, err
	}

	msgType := input.MessageType
	if msgType == "" {
		msgType = inferMessageType(input.ContentType)
	}
	if !msgType.IsValid() {
		return nil, domain.ErrMessageTypeInvalid
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath := storage.GenerateObjectPath(conversationID, storage.KindAttachment, safeBaseName(input.Filename), filepath.Ext(input.Filename))
	key, err := s.files.Upload(ctx, objectPath, input.Data, contentType, input.Size)
	if err != nil {
		log.Error().Err(err).Int32("conversation_id", conversationID).Msg("Failed to store attachment")
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	msg, err := s.messageRepo.Create(&domain.Message{
		ConversationID: conversationID,
		Sender:         senderOrDefault(input.Sender),
		Content:        key,
		FileURL:        &key,
		MessageType:    msgType,
		SenderUserID:   s.knownUser(input.SenderUserID),
	})
	if err != nil {
		_ = s.files.Delete(ctx, key)
		return nil, err
	}

	s.resolveAttachment(ctx, msg)
	return msg, nil
}

// ClearMessages deletes every message of a conversation
func (s *MessagingService) ClearMessages(conversationID int32) (int64, error) {
	if _, err := s.conversationRepo.GetByID(conversationID); err != nil {
		return 0, err
	}
	return s.messageRepo.DeleteByConversation(conversationID)
}

// knownUser drops sender user ids that do not resolve to a user
func (s *MessagingService) knownUser(id *int32) *int32 {
	if id == nil {
		return nil
	}
	if _, err := s.userRepo.GetByID(*id); err != nil {
		return nil
	}
	return id
}

// resolveAttachment replaces a stored object key with a presigned URL
func (s *MessagingService) resolveAttachment(ctx context.Context, m *domain.Message) {
	if m.FileURL == nil || s.files == nil {
		return
	}
	key := *m.FileURL
	url, err := s.files.GeneratePresignedURL(ctx, key, PresignExpiry)
	if err != nil {
		log.Warn().Err(err).Int32("message_id", m.ID).Msg("Failed to presign attachment")
		return
	}
	m.FileURL = &url
	if m.Content == key {
		m.Content = url
	}
}

func senderOrDefault(sender string) string {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return domain.DefaultSender
	}
	return sender
}

func inferMessageType(contentType string) domain.MessageType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return domain.MessageTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return domain.MessageTypeVideo
	default:
		return domain.MessageTypeFile
	}
}

func safeBaseName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Trim(unsafeFileChars.ReplaceAllString(base, "_"), "_.")
	if base == "" {
		return "file"
	}
	if len(base) > 100 {
		base = base[:100]
	}
	return base
}
