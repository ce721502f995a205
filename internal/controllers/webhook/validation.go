package webhook

// NotificationObject is the discriminator value identifying deliveries from
// the WhatsApp Business Platform.
const NotificationObject = "whatsapp_business_account"

const (
	changeFieldMessages = "messages"
	messageTypeText     = "text"
)

// ExtractTextMessages collapses the nested presence checks over a parsed
// notification into a single pass and returns the fully-populated text
// messages it carries, in wire order. Changes with a different field tag,
// changes missing contacts or messages, and non-text messages are skipped
// without error. Only the first entry is consumed.
func ExtractTextMessages(n *Notification) []TextMessage {
	if len(n.Entry) == 0 {
		return nil
	}
	entry := n.Entry[0]

	var out []TextMessage
	for _, change := range entry.Changes {
		if change.Field != changeFieldMessages {
			continue
		}
		value := change.Value
		if len(value.Contacts) == 0 || len(value.Messages) == 0 {
			continue
		}
		userName := value.Contacts[0].Profile.Name
		for _, msg := range value.Messages {
			if msg.Type != messageTypeText || msg.Text == nil || msg.Text.Body == "" {
				continue
			}
			out = append(out, TextMessage{
				WaID:      msg.From,
				UserName:  userName,
				MessageID: msg.ID,
				Body:      msg.Text.Body,
			})
		}
	}
	return out
}
