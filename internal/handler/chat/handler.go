package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mindheaven/mindheaven/backend/internal/logging"
	"github.com/mindheaven/mindheaven/backend/internal/model/chat"
	chatService "github.com/mindheaven/mindheaven/backend/internal/service/chat"
	moodService "github.com/mindheaven/mindheaven/backend/internal/service/mood"
	"github.com/mindheaven/mindheaven/backend/pkg/utils"
)

// CookieOptions controls the anonymous session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc   *chatService.Service
	companion *moodService.Service
	cookie    CookieOptions
	logger    zerolog.Logger
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, companion *moodService.Service, cookie CookieOptions) *Handler {
	if cookie.Name == "" {
		cookie.Name = "mindheaven_session"
	}
	return &Handler{
		chatSvc:   chatSvc,
		companion: companion,
		cookie:    cookie,
		logger:    logging.Component("chat"),
	}
}

// RegisterRoutes 注册聊天相关的路由. chatMiddlewares wrap only POST /chat.
func (h *Handler) RegisterRoutes(r chi.Router, chatMiddlewares ...func(http.Handler) http.Handler) {
	r.With(chatMiddlewares...).Post("/chat", h.handleChat)
	r.Get("/mood_history", h.handleMoodHistory)
	r.Post("/clear_conversation", h.handleClearConversation)
}

var errNoPayload = errors.New("no JSON data provided")

// decodeMessage reads the "message" field. An empty object, null or a
// non-object body counts as no payload; a missing field yields "".
func decodeMessage(r *http.Request) (string, error) {
	var payload map[string]json.RawMessage
	if err := utils.DecodeJSON(r, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", errNoPayload
	}
	raw, ok := payload["message"]
	if !ok {
		return "", nil
	}
	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		return "", fmt.Errorf("message field: %w", err)
	}
	return message, nil
}

// handleChat 处理一条用户消息并返回回复与情绪分析
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	session := h.resolveSession(w, r)

	raw, err := decodeMessage(r)
	if err != nil {
		h.logger.Debug().Err(err).Str("session", session.ID).Msg("rejected chat payload")
		utils.RespondError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}

	message := strings.TrimSpace(raw)
	if message == "" {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"reply": "Please say something!"})
		return
	}

	transcript, err := h.chatSvc.LoadTranscript(r.Context(), session.ID)
	if err != nil {
		h.logger.Error().Err(err).Str("session", session.ID).Msg("load transcript failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := h.companion.Respond(r.Context(), transcript, message)

	err = h.chatSvc.RecordExchange(r.Context(), session.ID, chatService.Exchange{
		UserMessage: message,
		Reply:       resp.Reply,
		IsCrisis:    resp.IsCrisis,
		Analysis:    resp.MoodAnalysis,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("session", session.ID).Msg("record exchange failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if resp.IsCrisis {
		h.logger.Warn().Str("session", session.ID).Msg("crisis reply sent")
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

// handleMoodHistory 返回最近的情绪记录
func (h *Handler) handleMoodHistory(w http.ResponseWriter, r *http.Request) {
	session := h.resolveSession(w, r)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"moods": h.chatSvc.MoodHistory(r.Context(), session.ID),
	})
}

// handleClearConversation 清空聊天记录，保留情绪记录
func (h *Handler) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	session := h.resolveSession(w, r)
	if err := h.chatSvc.ClearConversation(r.Context(), session.ID); err != nil && !errors.Is(err, chatService.ErrSessionNotFound) {
		h.logger.Error().Err(err).Str("session", session.ID).Msg("clear conversation failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// resolveSession returns the session named by the cookie, creating a new one
// and setting the cookie when it is missing or unknown.
func (h *Handler) resolveSession(w http.ResponseWriter, r *http.Request) chat.Session {
	if c, err := r.Cookie(h.cookie.Name); err == nil && c.Value != "" {
		if session, err := h.chatSvc.GetSession(r.Context(), c.Value); err == nil {
			return session
		}
	}

	session := h.chatSvc.CreateSession(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Debug().Str("session", session.ID).Msg("session created")
	return session
}
