package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

// OpenAIOptions configures OpenAIResponder.
type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OpenAIResponder talks to an OpenAI-compatible chat completions API.
type OpenAIResponder struct {
	client openaigo.Client
	model  string
}

var _ Responder = (*OpenAIResponder)(nil)

// NewOpenAIResponder builds a responder. Retries are disabled: a failed
// call falls back to the heuristics instead.
func NewOpenAIResponder(opts OpenAIOptions) (*OpenAIResponder, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		modelName = "gpt-3.5-turbo"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(baseURL))
	}

	return &OpenAIResponder{
		client: openaigo.NewClient(requestOpts...),
		model:  modelName,
	}, nil
}

// Reply generates the assistant's answer to message given the recent history.
func (r *OpenAIResponder) Reply(ctx context.Context, history []chat.Message, message string) (string, error) {
	recent := recentHistory(history)
	messages := make([]openaigo.ChatCompletionMessageParamUnion, 0, len(recent)+2)
	messages = append(messages, openaigo.SystemMessage(replySystemPrompt))
	for _, msg := range recent {
		if msg.Sender == chat.SenderAssistant {
			messages = append(messages, openaigo.AssistantMessage(msg.Content))
			continue
		}
		messages = append(messages, openaigo.UserMessage(msg.Content))
	}
	messages = append(messages, openaigo.UserMessage(message))

	return r.complete(ctx, messages, replyMaxTokens, replyTemperature)
}

// AnalyzeMood asks the model for a mood reading of message.
func (r *OpenAIResponder) AnalyzeMood(ctx context.Context, message string) (mood.Analysis, error) {
	content, err := r.complete(ctx, []openaigo.ChatCompletionMessageParamUnion{
		openaigo.SystemMessage(moodSystemPrompt),
		openaigo.UserMessage(message),
	}, moodMaxTokens, moodTemperature)
	if err != nil {
		return mood.Analysis{}, err
	}
	return parseMoodOutput(content)
}

// CheckCrisis asks the model whether message signals a crisis.
func (r *OpenAIResponder) CheckCrisis(ctx context.Context, message string) (bool, error) {
	content, err := r.complete(ctx, []openaigo.ChatCompletionMessageParamUnion{
		openaigo.SystemMessage(crisisSystemPrompt),
		openaigo.UserMessage(message),
	}, crisisMaxTokens, crisisTemperature)
	if err != nil {
		return false, err
	}
	return parseCrisisOutput(content), nil
}

func (r *OpenAIResponder) complete(ctx context.Context, messages []openaigo.ChatCompletionMessageParamUnion, maxTokens int64, temperature float64) (string, error) {
	resp, err := r.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model:       openaigo.ChatModel(r.model),
		Messages:    messages,
		MaxTokens:   openaigo.Int(maxTokens),
		Temperature: openaigo.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
