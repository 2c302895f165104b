package autosuggest

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/dshills/lineedit/document"
)

const aiSystemPrompt = "You complete partially typed terminal input. " +
	"Reply with only the characters that should follow the user's text, " +
	"with no quoting and no explanation. Reply with an empty string if " +
	"there is no likely continuation."

// AI suggests input continuations using the Anthropic API. The network
// round trip only happens through SuggestAsync; the synchronous Suggest
// declines, so the input path never blocks on the API.
type AI struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAI creates an AI suggester. The client reads ANTHROPIC_API_KEY from the
// environment when constructed with anthropic.NewClient().
func NewAI(client anthropic.Client) *AI {
	return &AI{
		client: client,
		model:  anthropic.ModelClaude4Sonnet20250514,
	}
}

// SetModel overrides the default model.
func (s *AI) SetModel(model anthropic.Model) { s.model = model }

// Suggest implements AutoSuggest by declining; use SuggestAsync.
func (s *AI) Suggest(_ *document.Document) (*Suggestion, error) { return nil, nil }

// SuggestAsync implements AsyncAutoSuggest.
func (s *AI) SuggestAsync(ctx context.Context, doc *document.Document) (*Suggestion, error) {
	prefix := doc.TextBeforeCursor()
	if strings.TrimSpace(prefix) == "" {
		return nil, nil
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: int64(64),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prefix)),
		},
		System: []anthropic.TextBlockParam{{Type: "text", Text: aiSystemPrompt}},
	})
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			out.WriteString(content.Text)
		}
	}

	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil, nil
	}
	// The model occasionally echoes the prefix; keep only the continuation.
	if strings.HasPrefix(text, prefix) {
		text = text[len(prefix):]
	}
	if text == "" {
		return nil, nil
	}
	return &Suggestion{Text: text}, nil
}
