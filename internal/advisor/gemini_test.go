package advisor

import (
	"testing"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGeminiContents(t *testing.T) {
	system, contents := toGeminiContents([]domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: "be helpful"},
		{Role: domain.ChatRoleUser, Content: "hi"},
		{Role: domain.ChatRoleAssistant, Content: "hello"},
	})

	require.NotNil(t, system)
	assert.Equal(t, "be helpful", system.Parts[0].Text)
	require.Len(t, contents, 2)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
}

func TestExtractText(t *testing.T) {
	_, err := extractText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyCompletion)

	text, err := extractText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "a"}, {Text: "b"}}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ab", text)
}
