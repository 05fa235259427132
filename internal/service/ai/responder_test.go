package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
)

func TestParseMoodOutputWithSurroundingText(t *testing.T) {
	analysis, err := parseMoodOutput("Sure! {\"mood\": \"Anxious\", \"intensity\": 7, \"explanation\": \" worried about exams \"} Hope this helps.")
	if err != nil {
		t.Fatalf("parseMoodOutput err: %v", err)
	}
	if analysis.Mood != "anxious" {
		t.Fatalf("expected lowercased mood, got %q", analysis.Mood)
	}
	if analysis.Intensity.Normalize() != 7 {
		t.Fatalf("expected intensity 7, got %v", analysis.Intensity.Normalize())
	}
	if analysis.Explanation != "worried about exams" {
		t.Fatalf("unexpected explanation %q", analysis.Explanation)
	}
}

func TestParseMoodOutputRejectsProse(t *testing.T) {
	if _, err := parseMoodOutput("The user seems happy."); !errors.Is(err, ErrMoodFormat) {
		t.Fatalf("expected ErrMoodFormat, got %v", err)
	}
	if _, err := parseMoodOutput("{mood: happy}"); !errors.Is(err, ErrMoodFormat) {
		t.Fatalf("expected ErrMoodFormat for invalid json, got %v", err)
	}
}

func TestParseCrisisOutput(t *testing.T) {
	cases := map[string]bool{
		"true":    true,
		" TRUE. ": true,
		"false":   false,
		"maybe":   false,
		"":        false,
	}
	for input, want := range cases {
		if got := parseCrisisOutput(input); got != want {
			t.Fatalf("parseCrisisOutput(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRecentHistoryKeepsLastTurns(t *testing.T) {
	messages := make([]chat.Message, 0, 14)
	for i := 0; i < 14; i++ {
		sender := chat.SenderUser
		if i%2 == 1 {
			sender = chat.SenderAssistant
		}
		messages = append(messages, chat.Message{Sender: sender, Content: fmt.Sprintf("m%d", i)})
	}

	recent := recentHistory(messages)
	if len(recent) != historyLimit {
		t.Fatalf("expected %d messages, got %d", historyLimit, len(recent))
	}
	if recent[0].Content != "m4" {
		t.Fatalf("expected m4 first, got %s", recent[0].Content)
	}
}

func TestOpenAIResponderReply(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"cmpl-1","object":"chat.completion","created":1,"model":"gpt-test","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Glad to hear it"}}]}`)
	}))
	defer server.Close()

	responder, err := NewOpenAIResponder(OpenAIOptions{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-test"})
	if err != nil {
		t.Fatalf("NewOpenAIResponder err: %v", err)
	}

	history := []chat.Message{
		{Sender: chat.SenderUser, Content: "hi"},
		{Sender: chat.SenderAssistant, Content: "Hello! How are you feeling today?"},
	}
	reply, err := responder.Reply(context.Background(), history, "I feel okay")
	if err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if reply != "Glad to hear it" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if captured.Model != "gpt-test" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if len(captured.Messages) != 4 {
		t.Fatalf("expected system + 2 history + user, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[3].Content != "I feel okay" {
		t.Fatalf("unexpected message layout: %+v", captured.Messages)
	}
}

func TestOpenAIResponderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIResponder(OpenAIOptions{}); err == nil {
		t.Fatal("expected error without api key")
	}
}
