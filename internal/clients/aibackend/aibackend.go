// Package aibackend talks to the session-authenticated conversational AI
// backend. A session token is exchanged for a short-lived access token which
// is reused across prompts; replies continue a single conversation thread.
package aibackend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	sessionPath      = "/api/auth/session"
	conversationPath = "/backend-api/conversation"

	sessionCookieName = "__Secure-next-auth.session-token"
	conversationModel = "text-davinci-002-render"

	accessTokenCacheKey = "access_token"
	// Fallback TTL when the session response carries no usable expiry.
	defaultAccessTokenTTL = time.Hour
	// Renew slightly before the backend-reported expiry.
	accessTokenExpiryMargin = 5 * time.Minute

	streamDataPrefix = "data: "
	streamEndMarker  = "[DONE]"
)

// Client is a conversational AI backend client.
type Client struct {
	baseURL        string
	sessionToken   string
	requestTimeout time.Duration
	httpClient     *http.Client
	tokens         *cache.Cache

	mu              sync.Mutex
	conversationID  string
	parentMessageID string
}

// New creates a new Client. requestTimeout bounds one full completion round
// trip including authentication; a hung backend is cut off at the deadline
// instead of blocking the inbound request forever.
func New(baseURL, sessionToken string, requestTimeout time.Duration) *Client {
	return &Client{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		sessionToken:    sessionToken,
		requestTimeout:  requestTimeout,
		httpClient:      &http.Client{},
		tokens:          cache.New(defaultAccessTokenTTL, 10*time.Minute),
		parentMessageID: uuid.NewString(),
	}
}

// EnsureAuth returns a valid access token, exchanging the session token with
// the backend when no cached token is available.
func (c *Client) EnsureAuth(ctx context.Context) (string, error) {
	if token, ok := c.tokens.Get(accessTokenCacheKey); ok {
		return token.(string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sessionPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create session request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: c.sessionToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to refresh backend session: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("session refresh returned status code %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("failed to decode session response: %w", err)
	}
	if session.Error != "" {
		return "", fmt.Errorf("session refresh rejected: %s", session.Error)
	}
	if session.AccessToken == "" {
		return "", errors.New("session response contains no access token, the session token may have expired")
	}

	ttl := defaultAccessTokenTTL
	if !session.Expires.IsZero() {
		if remaining := time.Until(session.Expires) - accessTokenExpiryMargin; remaining > 0 {
			ttl = remaining
		}
	}
	c.tokens.Set(accessTokenCacheKey, session.AccessToken, ttl)

	return session.AccessToken, nil
}

// SendMessage submits text as a prompt and blocks until the backend finishes
// generating the reply.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	accessToken, err := c.EnsureAuth(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	request := conversationRequest{
		Action: "next",
		Messages: []promptMessage{{
			ID:   uuid.NewString(),
			Role: "user",
			Content: messageContent{
				ContentType: "text",
				Parts:       []string{text},
			},
		}},
		Model:           conversationModel,
		ConversationID:  c.conversationID,
		ParentMessageID: c.parentMessageID,
	}
	c.mu.Unlock()

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal conversation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+conversationPath, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create conversation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit prompt: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusUnauthorized {
		// The cached token is no longer accepted; drop it so the next
		// message re-authenticates.
		c.tokens.Delete(accessTokenCacheKey)
		return "", fmt.Errorf("prompt submission returned status code %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("prompt submission returned status code %d", resp.StatusCode)
	}

	event, err := readFinalEvent(resp.Body)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.conversationID = event.ConversationID
	c.parentMessageID = event.Message.ID
	c.mu.Unlock()

	return event.Message.Content.Parts[0], nil
}

// readFinalEvent scans the completion event stream and returns the last
// well-formed event before the end marker.
func readFinalEvent(body io.Reader) (*conversationEvent, error) {
	var final *conversationEvent

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}
		data := strings.TrimPrefix(line, streamDataPrefix)
		if data == streamEndMarker {
			break
		}
		var event conversationEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			// Keep-alive and moderation events are not completions.
			continue
		}
		if event.Message == nil || len(event.Message.Content.Parts) == 0 {
			continue
		}
		final = &event
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read completion stream: %w", err)
	}
	if final == nil {
		return nil, errors.New("completion stream contained no reply")
	}
	return final, nil
}
