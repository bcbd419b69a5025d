package domain

import (
	"errors"
	"time"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageTypeInvalid   = errors.New("message type is invalid")
	ErrFileRequired         = errors.New("no file provided")
)

// DefaultConversationName is used when a conversation is created without a name
const DefaultConversationName = "Unnamed Group"

// DefaultSender is used when a message carries no sender
const DefaultSender = "Unknown"

// MessageType is the kind of content a message carries
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVideo MessageType = "video"
	MessageTypeFile  MessageType = "file"
)

// IsValid reports whether t is a known message type
func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeVideo, MessageTypeFile:
		return true
	}
	return false
}

// Conversation is a direct or group chat
type Conversation struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	IsGroup   bool      `json:"isGroup"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is a single chat entry
type Message struct {
	ID             int32       `json:"id"`
	ConversationID int32       `json:"conversationId"`
	Sender         string      `json:"sender"`
	Content        string      `json:"content"`
	Timestamp      time.Time   `json:"timestamp"`
	FileURL        *string     `json:"fileUrl,omitempty"`
	MessageType    MessageType `json:"messageType"`
	SenderUserID   *int32      `json:"senderUserId,omitempty"`
}

// ConversationRepository defines the interface for conversation persistence operations
type ConversationRepository interface {
	Create(conversation *Conversation) (*Conversation, error)
	GetByID(id int32) (*Conversation, error)
	List(isGroup *bool) ([]*Conversation, error)
}

// MessageRepository defines the interface for message persistence operations
type MessageRepository interface {
	Create(message *Message) (*Message, error)
	GetByConversation(conversationID int32) ([]*Message, error)
	DeleteByConversation(conversationID int32) (int64, error)
}
