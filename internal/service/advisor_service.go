package service

import (
	"context"
	"strings"

	"github.com/pennyhq/penny/penny-backend/internal/advisor"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// AdvisorService answers finance questions through a chat-completion provider
type AdvisorService struct {
	client    advisor.CompletionClient
	model     string
	maxTokens int
}

// NewAdvisorService creates a new AdvisorService. A nil client leaves the
// advisor unavailable.
func NewAdvisorService(client advisor.CompletionClient, model string, maxTokens int) *AdvisorService {
	return &AdvisorService{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Chat sends one question in a fresh session and returns the reply.
// Provider failures are reported in the reply text, not as an error.
func (s *AdvisorService) Chat(ctx context.Context, userID int32, message, category string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrAdvisorMessageEmpty
	}
	if s.client == nil {
		return "", domain.ErrAdvisorUnavailable
	}

	session := advisor.NewChatSession(advisor.CategoryPrompt(category), s.model, s.maxTokens)
	session.AddUserMessage(message)
	session.DiscardExceedingTokens()

	reply, err := s.client.Complete(ctx, session.Messages(), advisor.MaxOutputTokens)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Str("category", category).Msg("Advisor completion failed")
		return "Error from advisor API: " + err.Error(), nil
	}

	session.AddAssistantMessage(reply)
	return reply, nil
}
