package config

import "time"

// Settings contains the application config
type Settings struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	MonPort     int    `env:"MON_PORT" envDefault:"8888"`
	EnablePprof bool   `env:"ENABLE_PPROF"`
	LogLevel    string `env:"LOG_LEVEL"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"whatsapp-relay-api"`

	// VerifyToken is the shared secret echoed back during the Meta webhook
	// subscription handshake.
	VerifyToken string `env:"VERIFY_TOKEN"`

	// WhatsAppSendMessageAPI is the Cloud API messages endpoint used for both
	// read receipts and outbound replies.
	WhatsAppSendMessageAPI string `env:"WHATSAPP_SEND_MESSAGE_API"`
	WhatsAppToken          string `env:"WHATSAPP_TOKEN"`

	// SessionToken authenticates the conversational AI backend session.
	SessionToken     string        `env:"SESSION_TOKEN"`
	AIBackendURL     string        `env:"AI_BACKEND_URL" envDefault:"https://chat.openai.com"`
	AIRequestTimeout time.Duration `env:"AI_REQUEST_TIMEOUT" envDefault:"2m"`
}
