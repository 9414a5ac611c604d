package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/thonia-chat/internal/handler/live"
	"github.com/zhouzirui/thonia-chat/internal/handler/page"
	middlewarePkg "github.com/zhouzirui/thonia-chat/internal/middleware"
	"github.com/zhouzirui/thonia-chat/pkg/utils"
)

// NewRouter wires HTTP routes to the widget page and its live channel.
func NewRouter(pageHandler *page.Handler, liveHandler *live.Handler, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	pageHandler.RegisterRoutes(r)
	liveHandler.RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
