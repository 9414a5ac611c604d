package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/thonia-chat/internal/service/predictions"
	"github.com/zhouzirui/thonia-chat/internal/widget"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// ClientFactory returns the chat backend client used by a new connection.
type ClientFactory func() widget.Client

// LoaderFactory builds the load-time collaborator of a connection. push delivers predictions to the page.
type LoaderFactory func(push predictions.Sink) widget.Loader

// Handler serves the live widget channel: one controller per websocket connection.
type Handler struct {
	newClient ClientFactory
	newLoader LoaderFactory
	cfg       widget.Config
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

// New creates the live channel handler. newLoader may be nil.
func New(newClient ClientFactory, newLoader LoaderFactory, cfg widget.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		newClient: newClient,
		newLoader: newLoader,
		cfg:       cfg,
		logger:    logger.Named("websocket"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册 WebSocket 路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// SubmitMessage carries the raw value of the chat input.
type SubmitMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.newClient == nil {
		http.Error(w, "chat client unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := newSession(conn, h.logger)
	controller := widget.New(sess, sess, h.newClient(), h.cfg, h.logger)
	if h.newLoader != nil {
		controller.WithLoader(h.newLoader(sess.pushPredictions))
	}

	h.logger.Info("connection opened", zap.String("session", sess.id), zap.String("remote", r.RemoteAddr))
	defer h.logger.Info("connection closed", zap.String("session", sess.id))

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go sess.pingLoop(ctx)

	var inflight sync.WaitGroup
	defer inflight.Wait()
	defer cancel()

	sess.send("connected", map[string]any{"session": sess.id})

	inflight.Add(1)
	go func() {
		defer inflight.Done()
		controller.Load(ctx)
	}()

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("read error", zap.String("session", sess.id), zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case "submit":
			var submit SubmitMessage
			if err := json.Unmarshal(msg.Data, &submit); err != nil {
				sess.sendError("invalid submit payload")
				continue
			}
			inflight.Add(1)
			go func() {
				defer inflight.Done()
				if _, err := controller.Submit(ctx, submit.Text); err != nil {
					if errors.Is(err, widget.ErrBusy) {
						sess.sendError(err.Error())
						return
					}
					h.logger.Warn("submit failed", zap.String("session", sess.id), zap.Error(err))
				}
			}()
		default:
			sess.sendError("unsupported message type: " + msg.Type)
		}
	}
}
