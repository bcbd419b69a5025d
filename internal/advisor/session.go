// Package advisor keeps the conversation state sent to a chat-completion
// provider and the provider clients themselves.
package advisor

import (
	"strings"
	"unicode/utf8"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

// DefaultSystemPrompt is used when a session is created without one
const DefaultSystemPrompt = "You are a helpful financial assistant specializing in debt management."

// DefaultMaxTokens is the prompt budget of a session
const DefaultMaxTokens = 2000

// replyPriming is added once per request for the assistant reply header
const replyPriming = 3

// ChatSession holds the messages of one advisor exchange. The first message is
// always the system prompt.
type ChatSession struct {
	model     string
	maxTokens int
	messages  []domain.ChatMessage
}

// NewChatSession creates a session seeded with a system prompt
func NewChatSession(systemPrompt, model string, maxTokens int) *ChatSession {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &ChatSession{
		model:     model,
		maxTokens: maxTokens,
		messages:  []domain.ChatMessage{{Role: domain.ChatRoleSystem, Content: systemPrompt}},
	}
}

// CategoryPrompt builds the system prompt for a question about a category
func CategoryPrompt(category string) string {
	if strings.TrimSpace(category) == "" {
		category = "general finance"
	}
	return "You are a helpful financial assistant. The user is asking about " + category + "."
}

// Model returns the model name the session targets
func (s *ChatSession) Model() string { return s.model }

// AddUserMessage appends a user turn
func (s *ChatSession) AddUserMessage(content string) {
	s.messages = append(s.messages, domain.ChatMessage{Role: domain.ChatRoleUser, Content: content})
}

// AddAssistantMessage appends an assistant turn
func (s *ChatSession) AddAssistantMessage(content string) {
	s.messages = append(s.messages, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: content})
}

// Messages returns a copy of the session messages
func (s *ChatSession) Messages() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// TokenUsage estimates the prompt size of the session
func (s *ChatSession) TokenUsage() int {
	return EstimateTokens(s.messages, s.model)
}

// DiscardExceedingTokens drops the oldest non-system messages until the
// estimate fits the budget. The system prompt is never dropped.
func (s *ChatSession) DiscardExceedingTokens() {
	for s.TokenUsage() > s.maxTokens && len(s.messages) > 1 {
		s.messages = append(s.messages[:1], s.messages[2:]...)
	}
}

// EstimateTokens approximates the token count of messages for model. Each
// value costs one token per four characters, rounded up, plus a fixed
// per-message overhead.
func EstimateTokens(messages []domain.ChatMessage, model string) int {
	perMessage := 4
	if strings.HasPrefix(model, "gpt-4") {
		perMessage = 3
	}

	total := 0
	for _, m := range messages {
		total += perMessage
		total += textTokens(string(m.Role))
		total += textTokens(m.Content)
	}
	return total + replyPriming
}

func textTokens(s string) int {
	n := utf8.RuneCountInString(s)
	return (n + 3) / 4
}
