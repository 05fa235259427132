package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

// ErrMoodFormat marks a mood analysis the model answered but not as the JSON
// object it was asked for.
var ErrMoodFormat = errors.New("mood analysis is not a json object")

// Responder generates replies and readings from a language model.
type Responder interface {
	Reply(ctx context.Context, history []chat.Message, message string) (string, error)
	AnalyzeMood(ctx context.Context, message string) (mood.Analysis, error)
	CheckCrisis(ctx context.Context, message string) (bool, error)
}

const historyLimit = 10

// recentHistory returns at most historyLimit user/assistant turns.
func recentHistory(messages []chat.Message) []chat.Message {
	if len(messages) == 0 {
		return nil
	}

	start := 0
	if len(messages) > historyLimit {
		start = len(messages) - historyLimit
	}

	out := make([]chat.Message, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		if msg.Sender != chat.SenderUser && msg.Sender != chat.SenderAssistant {
			continue
		}
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// parseMoodOutput extracts the first JSON object from content.
func parseMoodOutput(content string) (mood.Analysis, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return mood.Analysis{}, ErrMoodFormat
	}

	var analysis mood.Analysis
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &analysis); err != nil {
		return mood.Analysis{}, fmt.Errorf("%w: %v", ErrMoodFormat, err)
	}

	analysis.Mood = strings.ToLower(strings.TrimSpace(analysis.Mood))
	if analysis.Mood == "" {
		analysis.Mood = mood.Neutral
	}
	analysis.Explanation = strings.TrimSpace(analysis.Explanation)
	return analysis, nil
}

// parseCrisisOutput accepts only an explicit "true".
func parseCrisisOutput(content string) bool {
	answer := strings.Trim(strings.ToLower(strings.TrimSpace(content)), ".!\"'")
	return answer == "true"
}
