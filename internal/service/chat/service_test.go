package chat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
	chat "github.com/mindheaven/mindheaven/backend/internal/service/chat"
)

func TestServiceGetSession(t *testing.T) {
	svc := chat.NewService(chat.DefaultLimits())
	ctx := context.Background()

	session := svc.CreateSession(ctx)

	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID, session.ID)
	}
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := chat.NewService(chat.DefaultLimits())

	if _, err := svc.GetSession(context.Background(), "missing"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRecordExchangeTrimsHistory(t *testing.T) {
	svc := chat.NewService(chat.Limits{History: 4, MoodHistory: 3, MoodWindow: 2})
	ctx := context.Background()
	session := svc.CreateSession(ctx)

	for i := 0; i < 5; i++ {
		err := svc.RecordExchange(ctx, session.ID, chat.Exchange{
			UserMessage: fmt.Sprintf("msg-%d", i),
			Reply:       "ok",
			Analysis:    mood.Analysis{Mood: mood.Neutral, Intensity: mood.Of(float64(i))},
		})
		if err != nil {
			t.Fatalf("RecordExchange err: %v", err)
		}
	}

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(transcript))
	}
	if transcript[0].Content != "msg-3" {
		t.Fatalf("expected oldest kept message msg-3, got %s", transcript[0].Content)
	}

	moods := svc.MoodHistory(ctx, session.ID)
	if len(moods) != 2 {
		t.Fatalf("expected window of 2, got %d", len(moods))
	}
	if moods[1].Message != "msg-4" || moods[1].Intensity.Normalize() != 4 {
		t.Fatalf("unexpected latest sample: %+v", moods[1])
	}
}

func TestClearConversationKeepsMoods(t *testing.T) {
	svc := chat.NewService(chat.DefaultLimits())
	ctx := context.Background()
	session := svc.CreateSession(ctx)

	err := svc.RecordExchange(ctx, session.ID, chat.Exchange{
		UserMessage: "I feel okay",
		Reply:       "Glad to hear it",
		Analysis:    mood.Analysis{Mood: mood.Positive, Intensity: mood.Of(6)},
	})
	if err != nil {
		t.Fatalf("RecordExchange err: %v", err)
	}

	if err := svc.ClearConversation(ctx, session.ID); err != nil {
		t.Fatalf("ClearConversation err: %v", err)
	}

	transcript, _ := svc.LoadTranscript(ctx, session.ID)
	if len(transcript) != 0 {
		t.Fatalf("expected empty transcript, got %d", len(transcript))
	}
	if moods := svc.MoodHistory(ctx, session.ID); len(moods) != 1 {
		t.Fatalf("expected mood history kept, got %d", len(moods))
	}
}

func TestMoodHistoryUnknownSession(t *testing.T) {
	svc := chat.NewService(chat.DefaultLimits())

	moods := svc.MoodHistory(context.Background(), "missing")
	if moods == nil || len(moods) != 0 {
		t.Fatalf("expected empty non-nil history, got %v", moods)
	}
}
