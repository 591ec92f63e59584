package explain

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicDefaultModel is the model used when the configuration names
// none.
const AnthropicDefaultModel = "claude-3-5-sonnet-20241022"

// anthropicDefaultMaxTokens caps response length when the request does
// not set its own limit; Anthropic's API requires an explicit value.
const anthropicDefaultMaxTokens = 1024

func init() {
	RegisterProviderFactory("anthropic", newAnthropicModel)
}

// anthropicModel implements the ChatModel interface for Anthropic's
// Claude API.
type anthropicModel struct {
	client anthropic.Client
	model  string
}

// newAnthropicModel creates an Anthropic-backed chat model.
func newAnthropicModel(config Config) (ChatModel, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = AnthropicDefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &anthropicModel{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

// Model returns the configured model identifier.
func (m *anthropicModel) Model() string { return m.model }

// DoRequest sends a message request and returns the concatenated text
// blocks with the provider-reported token counts.
func (m *anthropicModel) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(optString(opts, "model", m.model)),
		MaxTokens: int64(optInt(opts, "max_tokens", anthropicDefaultMaxTokens)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if temperature, ok := optFloat(opts, "temperature"); ok {
		params.Temperature = anthropic.Float(temperature)
	}
	if system := optString(opts, "system", ""); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", 0, 0, err
	}

	var text strings.Builder
	for _, block := range message.Content {
		switch content := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(content.Text)
		}
	}
	if text.Len() == 0 {
		return "", 0, 0, ErrEmptyResponse
	}

	return text.String(),
		int(message.Usage.InputTokens),
		int(message.Usage.OutputTokens),
		nil
}
