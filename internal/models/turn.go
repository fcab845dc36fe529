// ABOUTME: Conversation turn types for the consultant dialogue
// ABOUTME: Turns are append-only and owned by the calling session
package models

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. Assistant turns may carry the
// retrieved context that grounded them so a UI can render sources.
type Turn struct {
	Role    Role          `json:"role"`
	Content string        `json:"content"`
	Context []ContextItem `json:"context,omitempty"`
}

// LastN returns the trailing n turns of history (or all of them if fewer).
func LastN(history []Turn, n int) []Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
