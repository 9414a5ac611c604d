package chat

import "time"

// Sender identifies who a rendered message belongs to.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderBot       Sender = "bot"
	SenderBotTyping Sender = "bot-typing"
)

// Message is a single entry of the transcript. It only lives as long as the view that shows it.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsPlaceholder reports whether the message is the transient typing indicator.
func (m Message) IsPlaceholder() bool {
	return m.Sender == SenderBotTyping
}
