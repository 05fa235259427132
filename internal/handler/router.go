package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mindheaven/mindheaven/backend/internal/handler/chat"
	"github.com/mindheaven/mindheaven/backend/internal/handler/resources"
	middlewarePkg "github.com/mindheaven/mindheaven/backend/internal/middleware"
	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
	chatService "github.com/mindheaven/mindheaven/backend/internal/service/chat"
	moodService "github.com/mindheaven/mindheaven/backend/internal/service/mood"
	"github.com/mindheaven/mindheaven/backend/pkg/utils"
)

// RouterOptions carries the HTTP-level settings the router needs.
type RouterOptions struct {
	AllowedOrigins []string
	RatePerMinute  int
	Cookie         chat.CookieOptions
}

// NewRouter wires HTTP routes to core services.
func NewRouter(opts RouterOptions, resourceStore resource.Store, chatSvc *chatService.Service, companion *moodService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))
	r.Use(middlewarePkg.NoCache)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	limiter := middlewarePkg.NewRateLimiter(opts.RatePerMinute)

	chat.New(chatSvc, companion, opts.Cookie).RegisterRoutes(r, limiter.Handler)
	resources.New(resourceStore).RegisterRoutes(r)

	return r
}
