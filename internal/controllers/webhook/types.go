package webhook

// Notification is the top-level webhook delivery from the WhatsApp Cloud API.
type Notification struct {
	// Object discriminates the notification source; only
	// "whatsapp_business_account" is handled.
	Object string `json:"object"`
	// Entry is the ordered list of business-account entries. Only the first
	// entry is consumed.
	Entry []Entry `json:"entry"`
}

// Entry is one business-account entry within a notification.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps a single change notification.
type Change struct {
	// Field tags the kind of change; only "messages" is handled.
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue holds the message data for a "messages" change.
type ChangeValue struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
}

// Metadata describes the receiving phone number.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is a WhatsApp contact attached to a change.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile carries the contact display name.
type ContactProfile struct {
	Name string `json:"name"`
}

// Message is an incoming WhatsApp message.
type Message struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	// Type discriminates the message kind; only "text" is handled.
	Type string       `json:"type"`
	Text *TextContent `json:"text,omitempty"`
}

// TextContent holds a text message body.
type TextContent struct {
	Body string `json:"body"`
}

// TextMessage is a fully-populated inbound text message extracted from a
// notification. Every field is guaranteed present once extraction succeeds.
type TextMessage struct {
	// WaID is the sender identifier the reply is addressed to.
	WaID string
	// UserName is the sender's display name from the first contact.
	UserName string
	// MessageID correlates the read receipt with the inbound message.
	MessageID string
	// Body is the message text forwarded to the AI backend.
	Body string
}
