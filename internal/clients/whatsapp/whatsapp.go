package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
)

const (
	messagingProduct = "whatsapp"

	// Default timeout for Cloud API requests
	defaultSendTimeout = 30 * time.Second
	// Maximum response body size to read for error logging
	maxResponseBodySize = 1024
)

// SendFailureCode is the code carried by errors from failed Cloud API calls.
const SendFailureCode = -1

// ReadReceipt marks an inbound message as read.
type ReadReceipt struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

// TextMessageRequest is the payload for sending a text message.
type TextMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             TextPayload `json:"text"`
}

// TextPayload holds an outbound text body.
type TextPayload struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

// Client is a thin wrapper around the WhatsApp Cloud API messages endpoint.
type Client struct {
	sendMessageURL string
	token          string
	httpClient     *http.Client
}

// New creates a new Client for the given messages endpoint and bearer token.
func New(sendMessageURL, token string, httpClient *http.Client) (*Client, error) {
	parsedURL, err := url.Parse(sendMessageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse send message API URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultSendTimeout}
	}
	return &Client{
		sendMessageURL: parsedURL.String(),
		token:          token,
		httpClient:     httpClient,
	}, nil
}

// MarkRead issues a read receipt for the given inbound message ID.
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	return c.post(ctx, ReadReceipt{
		MessagingProduct: messagingProduct,
		Status:           "read",
		MessageID:        messageID,
	})
}

// SendText sends a text reply to the given recipient. Link previews are
// disabled to match the upstream message format.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, TextMessageRequest{
		MessagingProduct: messagingProduct,
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text: TextPayload{
			PreviewURL: false,
			Body:       body,
		},
	})
}

func (c *Client) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Cloud API payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendMessageURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create Cloud API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return richerrors.Error{
			Code: SendFailureCode,
			Err:  fmt.Errorf("failed to POST to Cloud API: %w", err),
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		// Capture the structured error payload for logging (limited size).
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return richerrors.Error{
			Code: SendFailureCode,
			Err:  fmt.Errorf("Cloud API returned status code %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	return nil
}
