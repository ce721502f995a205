package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Dispatcher relays extracted text messages through the read-receipt,
// AI-completion and reply-send pipeline.
type Dispatcher interface {
	Relay(ctx context.Context, messages []TextMessage)
}

// Controller handles the Meta webhook surface: the GET verification
// handshake and POST message notifications.
type Controller struct {
	verifyToken string
	dispatcher  Dispatcher
}

// NewController creates a new webhook Controller.
func NewController(verifyToken string, dispatcher Dispatcher) *Controller {
	return &Controller{
		verifyToken: verifyToken,
		dispatcher:  dispatcher,
	}
}

// HandleVerification godoc
// @Summary      Verify the webhook endpoint
// @Description  Responds to the Meta webhook verification handshake by echoing hub.challenge when the verify token matches.
// @Tags         Webhook
// @Produce      plain
// @Param        hub.mode          query     string  true  "Subscription mode, expected to be 'subscribe'"
// @Param        hub.verify_token  query     string  true  "Shared verify token configured at subscription time"
// @Param        hub.challenge     query     string  true  "Challenge string to echo back"
// @Success      200  {string}  string  "hub.challenge echoed back"
// @Failure      403  "Missing parameters or verify token mismatch"
// @Router       /api/webhook [get]
func (w *Controller) HandleVerification(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Missing mode or token",
		})
	}

	if mode != "subscribe" || token != w.verifyToken {
		return c.Status(fiber.StatusForbidden).Send(nil)
	}

	zerolog.Ctx(c.UserContext()).Info().Msg("webhook verified")
	return c.Status(fiber.StatusOK).SendString(challenge)
}

// HandleNotification godoc
// @Summary      Ingest a webhook notification
// @Description  Accepts message notifications from the WhatsApp Business Platform, relays contained text messages to the AI backend and replies to the sender. Always answers 200 once the notification is accepted, regardless of downstream send failures.
// @Tags         Webhook
// @Accept       json
// @Param        notification  body  Notification  true  "Webhook notification payload"
// @Success      200  "Notification accepted"
// @Failure      400  "Malformed JSON body"
// @Failure      404  "Missing or unexpected notification object"
// @Router       /api/webhook [post]
func (w *Controller) HandleNotification(c *fiber.Ctx) error {
	var notification Notification
	if err := c.BodyParser(&notification); err != nil {
		return richerrors.Error{
			ExternalMsg: "Invalid request payload",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}

	zerolog.Ctx(c.UserContext()).Debug().RawJSON("notification", c.Body()).Msg("incoming webhook")

	if notification.Object == "" {
		return richerrors.Error{
			ExternalMsg: "Notification is not from the WhatsApp API",
			Err:         errors.New("notification object is missing"),
			Code:        fiber.StatusNotFound,
		}
	}
	if notification.Object != NotificationObject {
		return richerrors.Error{
			ExternalMsg: "Notification is not from the WhatsApp API",
			Err:         fmt.Errorf("unexpected notification object %q", notification.Object),
			Code:        fiber.StatusNotFound,
		}
	}

	messages := ExtractTextMessages(&notification)
	if len(messages) > 0 {
		w.dispatcher.Relay(c.UserContext(), messages)
	}

	// The 200 only acknowledges that the notification was accepted; send
	// failures are logged by the dispatcher and never surface here.
	return c.Status(fiber.StatusOK).Send(nil)
}
