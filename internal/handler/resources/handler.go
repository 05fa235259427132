package resources

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
	"github.com/mindheaven/mindheaven/backend/pkg/utils"
)

// Handler serves the helpline directory.
type Handler struct {
	store resource.Store
}

// New 创建资源处理器
func New(store resource.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册资源相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.handleListResources)
}

func (h *Handler) handleListResources(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Directory())
}
