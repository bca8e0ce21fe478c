// ABOUTME: Transcript message type and role constants
// ABOUTME: Messages are append-only within a session's transcript

package chat

import (
	"github.com/google/uuid"

	"github.com/access-ed/edassist/internal/api"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. The ID is client-generated and local;
// only role and content go over the wire.
type Message struct {
	ID      string
	Role    Role
	Content string
}

// newMessage creates a transcript entry with a fresh ID.
func newMessage(role Role, content string) Message {
	return Message{
		ID:      uuid.New().String(),
		Role:    role,
		Content: content,
	}
}

// historyOf converts transcript messages to the wire history format.
func historyOf(messages []Message) []api.HistoryMessage {
	history := make([]api.HistoryMessage, len(messages))
	for i, m := range messages {
		history[i] = api.HistoryMessage{Role: string(m.Role), Content: m.Content}
	}
	return history
}
