package explain

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIDefaultModel is the model used when the configuration names
// none.
const OpenAIDefaultModel = "gpt-4"

func init() {
	RegisterProviderFactory("openai", newOpenAIModel)
}

// openAIModel implements the ChatModel interface for OpenAI's chat
// completion API.
type openAIModel struct {
	client *openai.Client
	model  string
}

// newOpenAIModel creates an OpenAI-backed chat model.
func newOpenAIModel(config Config) (ChatModel, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = OpenAIDefaultModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &openAIModel{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Model returns the configured model identifier.
func (m *openAIModel) Model() string { return m.model }

// DoRequest sends a chat completion request and returns the generated
// content with the provider-reported token counts.
func (m *openAIModel) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system := optString(opts, "system", ""); system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:     optString(opts, "model", m.model),
		Messages:  messages,
		MaxTokens: optInt(opts, "max_tokens", 0),
	}
	if temperature, ok := optFloat(opts, "temperature"); ok {
		req.Temperature = float32(temperature)
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", 0, 0, err
	}
	if len(resp.Choices) == 0 {
		return "", 0, 0, ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content,
		resp.Usage.PromptTokens,
		resp.Usage.CompletionTokens,
		nil
}
