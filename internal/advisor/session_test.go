package advisor

import (
	"strings"
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatSession_DefaultPrompt(t *testing.T) {
	s := NewChatSession("", "gpt-3.5-turbo", 0)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.ChatRoleSystem, msgs[0].Role)
	assert.Equal(t, DefaultSystemPrompt, msgs[0].Content)
}

func TestCategoryPrompt(t *testing.T) {
	assert.Equal(t, "You are a helpful financial assistant. The user is asking about budgeting.", CategoryPrompt("budgeting"))
	assert.Equal(t, "You are a helpful financial assistant. The user is asking about general finance.", CategoryPrompt(""))
}

func TestEstimateTokens(t *testing.T) {
	msgs := []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "abcdefgh"}}

	// 4 overhead + 1 ("user") + 2 (8 chars) + 3 priming
	assert.Equal(t, 10, EstimateTokens(msgs, "gpt-3.5-turbo"))
	assert.Equal(t, 9, EstimateTokens(msgs, "gpt-4o"))
	assert.Equal(t, 3, EstimateTokens(nil, "gpt-3.5-turbo"))
}

func TestDiscardExceedingTokens_DropsOldestNonSystem(t *testing.T) {
	s := NewChatSession("system", "gpt-3.5-turbo", 40)
	s.AddUserMessage(strings.Repeat("a", 40))
	s.AddAssistantMessage(strings.Repeat("b", 40))
	s.AddUserMessage("latest")

	s.DiscardExceedingTokens()

	msgs := s.Messages()
	assert.LessOrEqual(t, s.TokenUsage(), 40)
	assert.Equal(t, domain.ChatRoleSystem, msgs[0].Role)
	assert.Equal(t, "latest", msgs[len(msgs)-1].Content)
}

func TestDiscardExceedingTokens_KeepsSystemPrompt(t *testing.T) {
	s := NewChatSession(strings.Repeat("x", 400), "gpt-3.5-turbo", 10)
	s.AddUserMessage("hello")

	s.DiscardExceedingTokens()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.ChatRoleSystem, msgs[0].Role)
}

func TestDiscardExceedingTokens_NoopWithinBudget(t *testing.T) {
	s := NewChatSession("system", "gpt-3.5-turbo", 2000)
	s.AddUserMessage("hello")
	s.AddAssistantMessage("hi")

	s.DiscardExceedingTokens()

	assert.Len(t, s.Messages(), 3)
}
