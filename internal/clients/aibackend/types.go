package aibackend

import "time"

// sessionResponse is the auth/session exchange result.
type sessionResponse struct {
	AccessToken string    `json:"accessToken"`
	Expires     time.Time `json:"expires"`
	Error       string    `json:"error"`
}

// conversationRequest is one prompt submission to the backend.
type conversationRequest struct {
	Action          string          `json:"action"`
	Messages        []promptMessage `json:"messages"`
	Model           string          `json:"model"`
	ConversationID  string          `json:"conversation_id,omitempty"`
	ParentMessageID string          `json:"parent_message_id"`
}

type promptMessage struct {
	ID      string        `json:"id"`
	Role    string        `json:"role"`
	Content messageContent `json:"content"`
}

type messageContent struct {
	ContentType string   `json:"content_type"`
	Parts       []string `json:"parts"`
}

// conversationEvent is one event from the backend's completion stream. The
// stream repeats the partially-generated message; the last event before the
// end marker carries the full reply.
type conversationEvent struct {
	Message        *conversationMessage `json:"message"`
	ConversationID string               `json:"conversation_id"`
}

type conversationMessage struct {
	ID      string        `json:"id"`
	Content messageContent `json:"content"`
}
