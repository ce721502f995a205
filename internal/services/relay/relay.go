//go:generate go tool mockgen -source=relay.go -destination=relay_mock_test.go -package=relay
package relay

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/whatschat-ai/whatsapp-relay-api/internal/controllers/webhook"
)

// MessageSender delivers read receipts and text replies through the WhatsApp
// Cloud API.
type MessageSender interface {
	MarkRead(ctx context.Context, messageID string) error
	SendText(ctx context.Context, to, body string) error
}

// Responder generates a reply for a user prompt from the conversational AI
// backend.
type Responder interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Service runs the per-message relay pipeline: read receipt, AI completion,
// reply send. Messages within one notification are processed strictly in
// order with no retries.
type Service struct {
	sender    MessageSender
	responder Responder
}

// NewService creates a new relay Service.
func NewService(sender MessageSender, responder Responder) *Service {
	return &Service{
		sender:    sender,
		responder: responder,
	}
}

// Relay processes messages sequentially. Every failure is contained at the
// step it occurred on: a failed read receipt never blocks the reply, a failed
// AI completion skips only that message's reply, and a failed reply send
// never aborts the remaining messages.
func (s *Service) Relay(ctx context.Context, messages []webhook.TextMessage) {
	logger := zerolog.Ctx(ctx)
	for _, msg := range messages {
		logger.Info().
			Str("from", msg.WaID).
			Str("userName", msg.UserName).
			Str("messageId", msg.MessageID).
			Msg("relaying inbound message")

		if err := s.sender.MarkRead(ctx, msg.MessageID); err != nil {
			logger.Error().Err(err).Str("messageId", msg.MessageID).Msg("failed to mark message as read")
		}

		reply, err := s.responder.SendMessage(ctx, msg.Body)
		if err != nil {
			logger.Error().Err(err).Str("from", msg.WaID).Msg("AI backend failed to generate a reply")
			continue
		}

		if err := s.sender.SendText(ctx, msg.WaID, reply); err != nil {
			logger.Error().Err(err).Str("to", msg.WaID).Msg("failed to send reply")
		}
	}
}
