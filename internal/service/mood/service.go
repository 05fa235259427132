package mood

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"

	analysis "github.com/mindheaven/mindheaven/backend/internal/analysis/mood"
	"github.com/mindheaven/mindheaven/backend/internal/logging"
	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
	model "github.com/mindheaven/mindheaven/backend/internal/model/mood"
	"github.com/mindheaven/mindheaven/backend/internal/service/ai"
)

// Config 控制回复与情绪分析服务的行为。
type Config struct {
	// CrisisCheck asks the model for a second opinion when no keyword matched.
	CrisisCheck bool
}

// Response is the body of a /chat reply.
type Response struct {
	Reply        string         `json:"reply"`
	MoodAnalysis model.Analysis `json:"mood_analysis"`
	IsCrisis     bool           `json:"is_crisis"`
}

// Service answers user messages: crisis detection first, then the language
// model, then the pattern bank when the model is missing or failing.
type Service struct {
	responder   ai.Responder
	crisisCheck bool
	pick        func(n int) int
	logger      zerolog.Logger
}

// NewService 创建服务。responder 为 nil 时只使用启发式规则。
func NewService(responder ai.Responder, cfg Config) *Service {
	return &Service{
		responder:   responder,
		crisisCheck: cfg.CrisisCheck,
		pick:        rand.IntN,
		logger:      logging.Component("mood"),
	}
}

// Enabled reports whether a language model backs the service.
func (s *Service) Enabled() bool {
	return s != nil && s.responder != nil
}

// Respond produces the reply and mood reading for message.
func (s *Service) Respond(ctx context.Context, history []chat.Message, message string) Response {
	if s.isCrisis(ctx, message) {
		return s.fromDecision(analysis.CrisisDecision(), true)
	}

	if !s.Enabled() {
		return s.fromDecision(analysis.Analyze(message), false)
	}

	reply, err := s.responder.Reply(ctx, history, message)
	if err != nil {
		s.logger.Error().Err(err).Msg("reply generation failed, use fallback")
		return s.fromDecision(analysis.Analyze(message), false)
	}

	reading, err := s.responder.AnalyzeMood(ctx, message)
	switch {
	case errors.Is(err, ai.ErrMoodFormat):
		reading = model.Analysis{
			Mood:        model.Neutral,
			Intensity:   model.Of(model.DefaultIntensity),
			Explanation: "Unable to parse mood analysis from AI response.",
		}
	case err != nil:
		s.logger.Error().Err(err).Msg("mood analysis failed, use fallback")
		return s.fromDecision(analysis.Analyze(message), false)
	}

	return Response{
		Reply:        strings.TrimSpace(reply),
		MoodAnalysis: reading,
		IsCrisis:     false,
	}
}

func (s *Service) isCrisis(ctx context.Context, message string) bool {
	if analysis.DetectCrisis(message) {
		return true
	}
	if !s.Enabled() || !s.crisisCheck {
		return false
	}

	crisis, err := s.responder.CheckCrisis(ctx, message)
	if err != nil {
		s.logger.Error().Err(err).Msg("model crisis check failed")
		return false
	}
	return crisis
}

func (s *Service) fromDecision(decision analysis.Decision, crisis bool) Response {
	reply := ""
	if len(decision.Responses) > 0 {
		reply = decision.Responses[s.pick(len(decision.Responses))]
	}

	return Response{
		Reply: reply,
		MoodAnalysis: model.Analysis{
			Mood:        decision.Mood,
			Intensity:   model.Of(float64(decision.Intensity)),
			Explanation: decision.Explanation,
		},
		IsCrisis: crisis,
	}
}
