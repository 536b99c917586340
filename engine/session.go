package engine

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
)

// Session is the message history of one agent run.
type Session struct {
	ID        string
	UserID    string
	TurnCount int

	messages []anthropic.MessageParam
}

// NewSession creates a session with a fresh ID.
func NewSession(userID string) *Session {
	return &Session{
		ID:     uuid.New().String(),
		UserID: userID,
	}
}

// RestoreHistory replaces the session history with a copy of history.
func (s *Session) RestoreHistory(history []anthropic.MessageParam) {
	s.messages = append([]anthropic.MessageParam(nil), history...)
}

func (s *Session) AddUserMessage(text string) {
	s.messages = append(s.messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
}

func (s *Session) AddAssistantResponse(resp *anthropic.Message) {
	s.messages = append(s.messages, resp.ToParam())
}

func (s *Session) AddToolResults(results []anthropic.ContentBlockParamUnion) {
	s.messages = append(s.messages, anthropic.NewUserMessage(results...))
}

func (s *Session) IncrementTurnCount() {
	s.TurnCount++
}

// Messages returns a copy of the history.
func (s *Session) Messages() []anthropic.MessageParam {
	return append([]anthropic.MessageParam(nil), s.messages...)
}
