package domain

import "errors"

var (
	ErrAdvisorMessageEmpty = errors.New("message is required")
	ErrAdvisorUnavailable  = errors.New("advisor is not configured")
)

// ChatRole tags who authored a chat message
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one role-tagged entry of a completion request
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
