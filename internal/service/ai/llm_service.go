package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

// Service runs the reply, mood and crisis prompts as eino chains over a
// single chat model.
type Service struct {
	reply  compose.Runnable[map[string]any, *schema.Message]
	mood   compose.Runnable[map[string]any, *schema.Message]
	crisis compose.Runnable[map[string]any, *schema.Message]
}

var _ Responder = (*Service)(nil)

// NewService compiles the chains for chatModel.
func NewService(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	reply, err := compileChain(ctx, chatModel,
		schema.SystemMessage(replySystemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply chain: %w", err)
	}

	moodChain, err := compileChain(ctx, chatModel,
		schema.SystemMessage(moodSystemPrompt),
		schema.UserMessage("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile mood chain: %w", err)
	}

	crisis, err := compileChain(ctx, chatModel,
		schema.SystemMessage(crisisSystemPrompt),
		schema.UserMessage("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile crisis chain: %w", err)
	}

	return &Service{
		reply:  reply,
		mood:   moodChain,
		crisis: crisis,
	}, nil
}

func compileChain(ctx context.Context, chatModel model.ChatModel, templates ...schema.MessagesTemplate) (compose.Runnable[map[string]any, *schema.Message], error) {
	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(prompt.FromMessages(schema.FString, templates...))
	chain.AppendChatModel(chatModel)
	return chain.Compile(ctx)
}

// Reply generates the assistant's answer to message given the recent history.
func (s *Service) Reply(ctx context.Context, history []chat.Message, message string) (string, error) {
	input := map[string]any{
		"history": buildHistoryMessages(history),
		"query":   message,
	}

	response, err := s.reply.Invoke(ctx, input, generationOptions(replyMaxTokens, replyTemperature))
	if err != nil {
		return "", fmt.Errorf("failed to run reply chain: %w", err)
	}

	log.Debug().Str("component", "ai").Int("length", len(response.Content)).Msg("generated reply")
	return response.Content, nil
}

// AnalyzeMood asks the model for a mood reading of message.
func (s *Service) AnalyzeMood(ctx context.Context, message string) (mood.Analysis, error) {
	response, err := s.mood.Invoke(ctx, map[string]any{"query": message}, generationOptions(moodMaxTokens, moodTemperature))
	if err != nil {
		return mood.Analysis{}, fmt.Errorf("failed to run mood chain: %w", err)
	}
	return parseMoodOutput(response.Content)
}

// CheckCrisis asks the model whether message signals a crisis.
func (s *Service) CheckCrisis(ctx context.Context, message string) (bool, error) {
	response, err := s.crisis.Invoke(ctx, map[string]any{"query": message}, generationOptions(crisisMaxTokens, crisisTemperature))
	if err != nil {
		return false, fmt.Errorf("failed to run crisis chain: %w", err)
	}
	return parseCrisisOutput(response.Content), nil
}

func generationOptions(maxTokens int, temperature float32) compose.Option {
	return compose.WithChatModelOption(
		model.WithMaxTokens(maxTokens),
		model.WithTemperature(temperature),
	)
}

func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	recent := recentHistory(messages)
	if len(recent) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(recent))
	for _, msg := range recent {
		switch msg.Sender {
		case chat.SenderUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.SenderAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
