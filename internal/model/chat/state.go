package chat

// State tracks where a single submission is in its lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateUserShown   State = "user-message-shown"
	StateTypingShown State = "typing-shown"
	StateResolved    State = "resolved"
	StateFailed      State = "failed"
)
