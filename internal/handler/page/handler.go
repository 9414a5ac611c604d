package page

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed widget.html
var widgetHTML string

var widgetTemplate = template.Must(template.New("widget").Parse(widgetHTML))

// Data 渲染挂件页面所需的数据
type Data struct {
	Title       string
	SocketPath  string
	Placeholder string
}

// Handler 提供挂件页面
type Handler struct {
	data   Data
	logger *zap.Logger
}

// New 创建页面处理器
func New(data Data, logger *zap.Logger) *Handler {
	if data.Title == "" {
		data.Title = "ThonIA"
	}
	if data.SocketPath == "" {
		data.SocketPath = "/ws"
	}
	if data.Placeholder == "" {
		data.Placeholder = "Posez votre question..."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{data: data, logger: logger.Named("page")}
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleWidget)
}

func (h *Handler) handleWidget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := widgetTemplate.Execute(w, h.data); err != nil {
		h.logger.Error("render widget page failed", zap.Error(err))
	}
}
