package widget

import (
	"context"

	"github.com/zhouzirui/thonia-chat/internal/model/chat"
)

// Input is the text field the user types into.
type Input interface {
	Clear()
	Focus()
	SetEnabled(enabled bool)
}

// Display is the container that shows the transcript.
type Display interface {
	Append(msg chat.Message)
	Remove(id string)
	ScrollToLatest()
}

// Client sends one user message to the chat backend and returns its reply.
type Client interface {
	Send(ctx context.Context, message string) (string, error)
}

// Loader is a collaborator triggered once when the widget loads.
type Loader interface {
	Load(ctx context.Context) error
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(ctx context.Context) error

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) error {
	return f(ctx)
}
