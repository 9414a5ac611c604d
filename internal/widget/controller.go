package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/thonia-chat/internal/model/chat"
)

const (
	DefaultTypingText   = "..."
	DefaultFallbackText = "Désolé, je n'arrive pas à me connecter à mon cerveau... 🧠 Réessayez plus tard."
)

// ErrBusy is returned when a submission arrives while a previous one is still waiting for its reply.
var ErrBusy = errors.New("a chat request is already in flight")

// Config holds the presentation strings of the widget.
type Config struct {
	TypingText   string
	FallbackText string
}

func (c Config) withDefaults() Config {
	if c.TypingText == "" {
		c.TypingText = DefaultTypingText
	}
	if c.FallbackText == "" {
		c.FallbackText = DefaultFallbackText
	}
	return c
}

// Controller drives the chat widget: it turns submissions into transcript updates around one backend call.
type Controller struct {
	input   Input
	display Display
	client  Client
	loader  Loader
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	state chat.State
	busy  bool

	loadOnce sync.Once
}

// New wires a controller to its view and backend. A nil logger disables logging.
func New(input Input, display Display, client Client, cfg Config, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		input:   input,
		display: display,
		client:  client,
		cfg:     cfg.withDefaults(),
		logger:  logger.Named("widget"),
		now:     func() time.Time { return time.Now().UTC() },
		state:   chat.StateIdle,
	}
}

// WithLoader registers the collaborator run by Load.
func (c *Controller) WithLoader(loader Loader) *Controller {
	c.loader = loader
	return c
}

// State returns the lifecycle state of the current submission.
func (c *Controller) State() chat.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a submission is waiting for its reply.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Load triggers the load-time collaborator. Only the first call has an effect; failures are logged.
func (c *Controller) Load(ctx context.Context) {
	c.loadOnce.Do(func() {
		if c.loader == nil {
			return
		}
		if err := c.loader.Load(ctx); err != nil {
			c.logger.Warn("load-time collaborator failed", zap.Error(err))
		}
	})
}

// Submit handles one form submission and blocks until the reply (or the fallback) is shown.
//
// Whitespace-only input is ignored and reported as StateIdle. Otherwise the returned state is
// StateResolved or StateFailed; backend failures never surface as an error. ErrBusy is returned,
// with nothing rendered, when another submission is still in flight.
func (c *Controller) Submit(ctx context.Context, raw string) (chat.State, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		c.input.Focus()
		return chat.StateIdle, nil
	}

	placeholder, err := c.begin(text)
	if err != nil {
		return chat.StateIdle, err
	}

	reply, sendErr := c.client.Send(ctx, text)

	return c.finish(placeholder, reply, sendErr), nil
}

func (c *Controller) begin(text string) (chat.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return chat.Message{}, ErrBusy
	}
	c.busy = true
	c.input.SetEnabled(false)

	c.show(c.message(chat.SenderUser, text))
	c.state = chat.StateUserShown
	c.input.Clear()

	placeholder := c.message(chat.SenderBotTyping, c.cfg.TypingText)
	c.show(placeholder)
	c.state = chat.StateTypingShown

	return placeholder, nil
}

func (c *Controller) finish(placeholder chat.Message, reply string, sendErr error) chat.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.display.Remove(placeholder.ID)

	outcome := chat.StateResolved
	if sendErr != nil {
		c.logger.Warn("chat request failed", zap.Error(sendErr))
		reply = c.cfg.FallbackText
		outcome = chat.StateFailed
	}
	c.state = outcome
	c.show(c.message(chat.SenderBot, reply))

	c.state = chat.StateIdle
	c.busy = false
	c.input.SetEnabled(true)
	c.input.Focus()

	return outcome
}

func (c *Controller) show(msg chat.Message) {
	c.display.Append(msg)
	c.display.ScrollToLatest()
}

func (c *Controller) message(sender chat.Sender, text string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		CreatedAt: c.now(),
	}
}
