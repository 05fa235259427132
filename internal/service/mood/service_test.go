package mood

import (
	"context"
	"errors"
	"fmt"
	"testing"

	analysis "github.com/mindheaven/mindheaven/backend/internal/analysis/mood"
	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
	model "github.com/mindheaven/mindheaven/backend/internal/model/mood"
	"github.com/mindheaven/mindheaven/backend/internal/service/ai"
)

type fakeResponder struct {
	reply     string
	replyErr  error
	reading   model.Analysis
	moodErr   error
	crisis    bool
	crisisErr error

	replyCalls  int
	crisisCalls int
}

func (f *fakeResponder) Reply(_ context.Context, _ []chat.Message, _ string) (string, error) {
	f.replyCalls++
	return f.reply, f.replyErr
}

func (f *fakeResponder) AnalyzeMood(_ context.Context, _ string) (model.Analysis, error) {
	return f.reading, f.moodErr
}

func (f *fakeResponder) CheckCrisis(_ context.Context, _ string) (bool, error) {
	f.crisisCalls++
	return f.crisis, f.crisisErr
}

func newTestService(responder ai.Responder, crisisCheck bool) *Service {
	svc := NewService(responder, Config{CrisisCheck: crisisCheck})
	svc.pick = func(int) int { return 0 }
	return svc
}

func TestRespondKeywordCrisisSkipsModel(t *testing.T) {
	responder := &fakeResponder{reply: "should not be used"}
	svc := newTestService(responder, true)

	resp := svc.Respond(context.Background(), nil, "I want to end it all")
	if !resp.IsCrisis {
		t.Fatal("expected crisis response")
	}
	if resp.Reply != analysis.CrisisResponses[0] {
		t.Fatalf("unexpected reply %q", resp.Reply)
	}
	if resp.MoodAnalysis.Mood != model.Depressed || resp.MoodAnalysis.Intensity.Normalize() != 8 {
		t.Fatalf("unexpected analysis %+v", resp.MoodAnalysis)
	}
	if responder.replyCalls != 0 || responder.crisisCalls != 0 {
		t.Fatal("model must not be consulted after a keyword match")
	}
}

func TestRespondModelCrisis(t *testing.T) {
	responder := &fakeResponder{crisis: true}
	svc := newTestService(responder, true)

	resp := svc.Respond(context.Background(), nil, "nothing matters now")
	if !resp.IsCrisis {
		t.Fatal("expected model flagged crisis")
	}
}

func TestRespondUsesModel(t *testing.T) {
	responder := &fakeResponder{
		reply:   " Glad to hear it ",
		reading: model.Analysis{Mood: model.Positive, Intensity: model.Of(6), Explanation: "calm"},
	}
	svc := newTestService(responder, false)

	resp := svc.Respond(context.Background(), nil, "I feel okay")
	if resp.Reply != "Glad to hear it" {
		t.Fatalf("unexpected reply %q", resp.Reply)
	}
	if resp.MoodAnalysis.Mood != model.Positive || resp.MoodAnalysis.Intensity.Normalize() != 6 {
		t.Fatalf("unexpected analysis %+v", resp.MoodAnalysis)
	}
	if responder.crisisCalls != 0 {
		t.Fatal("crisis check disabled by config")
	}
}

func TestRespondUnparsedMoodIsNeutral(t *testing.T) {
	responder := &fakeResponder{
		reply:   "Tell me more.",
		moodErr: fmt.Errorf("%w: prose", ai.ErrMoodFormat),
	}
	svc := newTestService(responder, false)

	resp := svc.Respond(context.Background(), nil, "it was a day")
	if resp.Reply != "Tell me more." {
		t.Fatalf("model reply should be kept, got %q", resp.Reply)
	}
	if resp.MoodAnalysis.Mood != model.Neutral || resp.MoodAnalysis.Intensity.Normalize() != 5 {
		t.Fatalf("unexpected analysis %+v", resp.MoodAnalysis)
	}
	if resp.MoodAnalysis.Explanation != "Unable to parse mood analysis from AI response." {
		t.Fatalf("unexpected explanation %q", resp.MoodAnalysis.Explanation)
	}
}

func TestRespondFallsBackOnModelError(t *testing.T) {
	responder := &fakeResponder{replyErr: errors.New("upstream down")}
	svc := newTestService(responder, false)

	resp := svc.Respond(context.Background(), nil, "I'm so tired today")
	if resp.MoodAnalysis.Mood != model.Negative || resp.MoodAnalysis.Intensity.Normalize() != 4 {
		t.Fatalf("expected tired pattern, got %+v", resp.MoodAnalysis)
	}
	if resp.Reply == "" {
		t.Fatal("expected canned reply")
	}
}

func TestRespondWithoutModel(t *testing.T) {
	svc := newTestService(nil, true)

	resp := svc.Respond(context.Background(), nil, "the weather is odd")
	if resp.IsCrisis {
		t.Fatal("unexpected crisis")
	}
	if resp.MoodAnalysis.Mood != model.Neutral {
		t.Fatalf("expected neutral default, got %s", resp.MoodAnalysis.Mood)
	}
	if resp.Reply != "I'm listening. Can you tell me more?" {
		t.Fatalf("unexpected default reply %q", resp.Reply)
	}
}
