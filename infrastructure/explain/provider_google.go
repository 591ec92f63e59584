package explain

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GoogleDefaultModel is the model used when the configuration names
// none.
const GoogleDefaultModel = "gemini-2.0-flash-exp"

func init() {
	RegisterProviderFactory("google", newGoogleModel)
}

// googleModel implements the ChatModel interface for Google's Gemini
// API.
type googleModel struct {
	client *genai.Client
	model  string
}

// newGoogleModel creates a Gemini-backed chat model.
func newGoogleModel(config Config) (ChatModel, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = GoogleDefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Google client: %w", err)
	}

	return &googleModel{client: client, model: model}, nil
}

// Model returns the configured model identifier.
func (m *googleModel) Model() string { return m.model }

// DoRequest sends a content generation request and returns the response
// text with the provider-reported token counts. Gemini has no separate
// system role, so a system option is prepended to the prompt.
func (m *googleModel) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	finalPrompt := prompt
	if system := optString(opts, "system", ""); system != "" {
		finalPrompt = fmt.Sprintf("System: %s\n\nUser: %s", system, prompt)
	}

	generationConfig := &genai.GenerateContentConfig{}
	if maxTokens := optInt(opts, "max_tokens", 0); maxTokens > 0 {
		generationConfig.MaxOutputTokens = int32(maxTokens)
	}
	if temperature, ok := optFloat(opts, "temperature"); ok {
		t := float32(temperature)
		generationConfig.Temperature = &t
	}

	contents := []*genai.Content{
		genai.NewContentFromText(finalPrompt, genai.RoleUser),
	}

	resp, err := m.client.Models.GenerateContent(ctx, optString(opts, "model", m.model), contents, generationConfig)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", 0, 0, fmt.Errorf("google api error (status %d): %w", apiErr.Code, err)
		}
		return "", 0, 0, err
	}

	content := resp.Text()
	if content == "" {
		return "", 0, 0, ErrEmptyResponse
	}

	var tokensIn, tokensOut int
	if usage := resp.UsageMetadata; usage != nil {
		tokensIn = int(usage.PromptTokenCount)
		tokensOut = int(usage.CandidatesTokenCount)
	}
	return content, tokensIn, tokensOut, nil
}
