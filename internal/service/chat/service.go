package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

var ErrSessionNotFound = errors.New("session not found")

// Limits caps how much of a session is retained and served.
type Limits struct {
	History     int
	MoodHistory int
	MoodWindow  int
}

// DefaultLimits mirrors the server defaults.
func DefaultLimits() Limits {
	return Limits{History: 50, MoodHistory: 50, MoodWindow: 20}
}

type sessionState struct {
	session  chat.Session
	messages []chat.Message
	moods    []mood.Sample
}

// Service encapsulates conversation state management.
type Service struct {
	mu       sync.RWMutex
	limits   Limits
	sessions map[string]*sessionState
	now      func() time.Time
}

// NewService bootstraps the in-memory chat service.
func NewService(limits Limits) *Service {
	defaults := DefaultLimits()
	if limits.History <= 0 {
		limits.History = defaults.History
	}
	if limits.MoodHistory <= 0 {
		limits.MoodHistory = defaults.MoodHistory
	}
	if limits.MoodWindow <= 0 {
		limits.MoodWindow = defaults.MoodWindow
	}

	return &Service{
		limits:   limits,
		sessions: make(map[string]*sessionState),
		now:      time.Now,
	}
}

// CreateSession provisions an anonymous session.
func (s *Service) CreateSession(_ context.Context) chat.Session {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionState{
		session:  session,
		messages: make([]chat.Message, 0, 16),
	}
	s.mu.Unlock()

	return session
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return state.session, nil
}

// Exchange is one user message together with the reply it produced.
type Exchange struct {
	UserMessage string
	Reply       string
	IsCrisis    bool
	Analysis    mood.Analysis
}

// RecordExchange appends both turns and one mood sample to the session,
// trimming the oldest entries beyond the configured limits.
func (s *Service) RecordExchange(_ context.Context, sessionID string, exchange Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	now := s.now().UTC()
	state.messages = append(state.messages,
		chat.Message{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Sender:    chat.SenderUser,
			Content:   exchange.UserMessage,
			CreatedAt: now,
		},
		chat.Message{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Sender:    chat.SenderAssistant,
			Content:   exchange.Reply,
			IsCrisis:  exchange.IsCrisis,
			CreatedAt: now,
		},
	)
	state.messages = keepLast(state.messages, s.limits.History)

	state.moods = append(state.moods, mood.Sample{
		Mood:      exchange.Analysis.Mood,
		Intensity: mood.Of(exchange.Analysis.Intensity.Normalize()),
		Timestamp: now.Format(time.RFC3339),
		Message:   exchange.UserMessage,
	})
	state.moods = keepLast(state.moods, s.limits.MoodHistory)
	return nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(state.messages))
	copy(copied, state.messages)
	return copied, nil
}

// MoodHistory returns the most recent mood samples, at most MoodWindow of them.
// Unknown sessions have an empty history.
func (s *Service) MoodHistory(_ context.Context, sessionID string) []mood.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return []mood.Sample{}
	}

	recent := keepLast(state.moods, s.limits.MoodWindow)
	copied := make([]mood.Sample, len(recent))
	copy(copied, recent)
	return copied
}

// ClearConversation drops the chat transcript. Mood history is kept so the
// chart stays continuous across clears.
func (s *Service) ClearConversation(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	state.messages = make([]chat.Message, 0, 16)
	return nil
}

func keepLast[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return items[len(items)-limit:]
}
