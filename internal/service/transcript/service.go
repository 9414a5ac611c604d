package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/thonia-chat/internal/model/chat"
)

// Service keeps the ordered list of displayed messages for one page session.
// It satisfies widget.Display and is safe for concurrent use.
type Service struct {
	mu       sync.RWMutex
	messages []chat.Message
	scrolled string
}

// NewService returns an empty transcript.
func NewService() *Service {
	return &Service{messages: make([]chat.Message, 0, 16)}
}

// Append adds a message at the end of the transcript.
func (s *Service) Append(msg chat.Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

// Remove drops the message with the given id. Unknown ids are ignored.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, msg := range s.messages {
		if msg.ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			if s.scrolled == id {
				s.scrolled = s.lastIDLocked()
			}
			return
		}
	}
}

// ScrollToLatest moves the view to the most recent message.
func (s *Service) ScrollToLatest() {
	s.mu.Lock()
	s.scrolled = s.lastIDLocked()
	s.mu.Unlock()
}

// ScrolledTo returns the id of the message the view currently shows last.
func (s *Service) ScrolledTo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrolled
}

// Messages returns a copy of the transcript in display order.
func (s *Service) Messages() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Len reports the number of displayed messages.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *Service) lastIDLocked() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].ID
}
