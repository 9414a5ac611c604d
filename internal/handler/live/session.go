package live

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/thonia-chat/internal/model/chat"
	"github.com/zhouzirui/thonia-chat/internal/render"
	"github.com/zhouzirui/thonia-chat/internal/service/predictions"
)

// AppendData tells the page to add one message element to the display container.
type AppendData struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	ClassName string `json:"className"`
	HTML      string `json:"html"`
}

// session is the server side of one page: it mirrors widget.Input and widget.Display onto the socket.
type session struct {
	id     string
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn, logger *zap.Logger) *session {
	return &session{
		id:     uuid.NewString(),
		conn:   conn,
		logger: logger,
	}
}

func (s *session) Append(msg chat.Message) {
	s.send("append", AppendData{
		ID:        msg.ID,
		Sender:    string(msg.Sender),
		ClassName: render.CSSClasses(msg),
		HTML:      render.HTML(msg.Text),
	})
}

func (s *session) Remove(id string) {
	s.send("remove", map[string]string{"id": id})
}

func (s *session) ScrollToLatest() {
	s.send("scroll", nil)
}

func (s *session) Clear() {
	s.send("input", map[string]string{"action": "clear"})
}

func (s *session) Focus() {
	s.send("input", map[string]string{"action": "focus"})
}

func (s *session) SetEnabled(enabled bool) {
	action := "disable"
	if enabled {
		action = "enable"
	}
	s.send("input", map[string]string{"action": action})
}

func (s *session) pushPredictions(items []predictions.Prediction) {
	s.send("predictions", map[string]any{"items": items})
}

func (s *session) sendError(message string) {
	s.send("error", map[string]string{"message": message})
}

func (s *session) send(kind string, data any) {
	msg := outgoingMessage{
		Type:      kind,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Debug("write failed", zap.String("session", s.id), zap.String("type", kind), zap.Error(err))
	}
}

// pingLoop 定期发送ping消息
func (s *session) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
