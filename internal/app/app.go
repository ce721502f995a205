package app

import (
	"fmt"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	_ "github.com/whatschat-ai/whatsapp-relay-api/docs" // Import Swagger docs
	"github.com/whatschat-ai/whatsapp-relay-api/internal/clients/aibackend"
	"github.com/whatschat-ai/whatsapp-relay-api/internal/clients/whatsapp"
	"github.com/whatschat-ai/whatsapp-relay-api/internal/config"
	"github.com/whatschat-ai/whatsapp-relay-api/internal/controllers/webhook"
	"github.com/whatschat-ai/whatsapp-relay-api/internal/services/relay"
	"github.com/whatschat-ai/whatsapp-relay-api/pkg/middleware"
)

// CreateServer wires the outbound clients into the relay pipeline and builds
// the Fiber app serving the webhook surface.
func CreateServer(settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	whatsappClient, err := whatsapp.New(settings.WhatsAppSendMessageAPI, settings.WhatsAppToken, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create WhatsApp client: %w", err)
	}

	responder := aibackend.New(settings.AIBackendURL, settings.SessionToken, settings.AIRequestTimeout)
	relayService := relay.NewService(whatsappClient, responder)

	return CreateFiberApp(logger, settings, relayService), nil
}

// CreateFiberApp registers the middleware chain and routes.
func CreateFiberApp(logger zerolog.Logger, settings *config.Settings, dispatcher webhook.Dispatcher) *fiber.App {
	logger.Info().Msg("Starting WhatsApp Relay API...")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return middleware.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New())
	app.Use(helmet.New(helmet.Config{
		XFrameOptions:           "SAMEORIGIN",
		CrossOriginOpenerPolicy: "same-origin-allow-popups",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the WhatsApp Relay API!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": "Server is up and running",
		})
	})

	webhookController := webhook.NewController(settings.VerifyToken, dispatcher)
	logger.Info().Msg("Registering routes...")

	app.Get("/api/webhook", webhookController.HandleVerification)
	app.Post("/api/webhook", webhookController.HandleNotification)

	app.Use(middleware.NotFoundHandler)

	return app
}
