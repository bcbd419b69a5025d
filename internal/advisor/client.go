package advisor

import (
	"context"
	"errors"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

// Generation settings shared by every provider
const (
	MaxOutputTokens = 512
	Temperature     = 0.7
)

// ErrEmptyCompletion is returned when a provider answers without any text
var ErrEmptyCompletion = errors.New("no response from advisor")

// CompletionClient sends a conversation to a chat-completion provider and
// returns the assistant reply
type CompletionClient interface {
	Complete(ctx context.Context, messages []domain.ChatMessage, maxOutputTokens int) (string, error)
}
