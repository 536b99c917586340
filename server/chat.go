package server

import (
	"context"
	"log"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mybambu/transfer-tools/engine"
)

// Chat message types.
const (
	MessageUser  = "message"
	MessageReply = "text"
	MessageError = "error"
)

// ChatMessage is the WebSocket frame in both directions.
type ChatMessage struct {
	Type    string   `json:"type"`
	Content string   `json:"content"`
	Tools   []string `json:"tools,omitempty"`
}

// chat runs one conversation per connection. History lives only as long as
// the connection.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	if s.agent == nil {
		http.Error(w, "chat agent not configured", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	conversationID := uuid.New().String()
	log.Printf("[SERVER] conversation %s started", conversationID)

	var history []anthropic.MessageParam
	for {
		var msg ChatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[SERVER] conversation %s read: %v", conversationID, err)
			}
			return
		}
		if msg.Type != MessageUser || msg.Content == "" {
			if err := conn.WriteJSON(ChatMessage{Type: MessageError, Content: "expected a non-empty message"}); err != nil {
				return
			}
			continue
		}

		reply, next := s.turn(r.Context(), conversationID, history, msg.Content)
		history = next
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("[SERVER] conversation %s write: %v", conversationID, err)
			return
		}
	}
}

// turn runs the agent for one user message. On failure the history is left
// unchanged so the user can retry.
func (s *Server) turn(ctx context.Context, conversationID string, history []anthropic.MessageParam, content string) (ChatMessage, []anthropic.MessageParam) {
	ctx, cancel := context.WithTimeout(ctx, s.agentTimeout)
	defer cancel()

	out, err := s.agent.Run(ctx, &engine.Input{
		UserMessage: content,
		UserID:      conversationID,
		History:     history,
	})
	if err != nil {
		log.Printf("[SERVER] conversation %s agent error: %v", conversationID, err)
		return ChatMessage{Type: MessageError, Content: "Sorry, something went wrong. Please try again."}, history
	}

	reply := ChatMessage{Type: MessageReply, Content: out.Text}
	for _, t := range out.ToolsUsed {
		reply.Tools = append(reply.Tools, t.Tool)
	}
	return reply, out.History
}
