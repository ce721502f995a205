package aibackend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendFixture struct {
	sessionCalls      atomic.Int64
	conversationCalls atomic.Int64
	lastRequest       conversationRequest

	server *httptest.Server
}

func newBackendFixture(t *testing.T, reply string) *backendFixture {
	t.Helper()
	f := &backendFixture{}
	mux := http.NewServeMux()

	mux.HandleFunc(sessionPath, func(w http.ResponseWriter, r *http.Request) {
		f.sessionCalls.Add(1)

		cookie, err := r.Cookie(sessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "test-session-token", cookie.Value)

		_ = json.NewEncoder(w).Encode(sessionResponse{
			AccessToken: "test-access-token",
			Expires:     time.Now().Add(time.Hour),
		})
	})

	mux.HandleFunc(conversationPath, func(w http.ResponseWriter, r *http.Request) {
		f.conversationCalls.Add(1)

		assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastRequest))

		w.Header().Set("Content-Type", "text/event-stream")
		// Partial completion followed by the full reply, as streamed by the
		// backend.
		fmt.Fprintf(w, "data: %s\n\n", streamEvent("conv-1", "msg-1", reply[:1]))
		fmt.Fprintf(w, "data: %s\n\n", streamEvent("conv-1", "msg-1", reply))
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func streamEvent(conversationID, messageID, text string) string {
	event := conversationEvent{
		ConversationID: conversationID,
		Message: &conversationMessage{
			ID: messageID,
			Content: messageContent{
				ContentType: "text",
				Parts:       []string{text},
			},
		},
	}
	data, _ := json.Marshal(event)
	return string(data)
}

func TestClient_SendMessage(t *testing.T) {
	t.Parallel()

	t.Run("authenticates and returns the final completion", func(t *testing.T) {
		fixture := newBackendFixture(t, "hi there")
		client := New(fixture.server.URL, "test-session-token", time.Minute)

		reply, err := client.SendMessage(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "hi there", reply)

		assert.Equal(t, "next", fixture.lastRequest.Action)
		require.Len(t, fixture.lastRequest.Messages, 1)
		assert.Equal(t, "user", fixture.lastRequest.Messages[0].Role)
		assert.Equal(t, []string{"hello"}, fixture.lastRequest.Messages[0].Content.Parts)
		assert.NotEmpty(t, fixture.lastRequest.ParentMessageID)
	})

	t.Run("access token is reused across prompts", func(t *testing.T) {
		fixture := newBackendFixture(t, "hi there")
		client := New(fixture.server.URL, "test-session-token", time.Minute)

		_, err := client.SendMessage(context.Background(), "first")
		require.NoError(t, err)
		_, err = client.SendMessage(context.Background(), "second")
		require.NoError(t, err)

		assert.Equal(t, int64(1), fixture.sessionCalls.Load())
		assert.Equal(t, int64(2), fixture.conversationCalls.Load())
	})

	t.Run("second prompt continues the conversation", func(t *testing.T) {
		fixture := newBackendFixture(t, "hi there")
		client := New(fixture.server.URL, "test-session-token", time.Minute)

		_, err := client.SendMessage(context.Background(), "first")
		require.NoError(t, err)
		_, err = client.SendMessage(context.Background(), "second")
		require.NoError(t, err)

		assert.Equal(t, "conv-1", fixture.lastRequest.ConversationID)
		assert.Equal(t, "msg-1", fixture.lastRequest.ParentMessageID)
	})

	t.Run("backend error status fails the prompt", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc(sessionPath, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(sessionResponse{AccessToken: "test-access-token"})
		})
		mux.HandleFunc(conversationPath, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client := New(server.URL, "test-session-token", time.Minute)
		_, err := client.SendMessage(context.Background(), "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status code 503")
	})

	t.Run("hung backend is cut off at the deadline", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc(sessionPath, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(sessionResponse{AccessToken: "test-access-token"})
		})
		mux.HandleFunc(conversationPath, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client := New(server.URL, "test-session-token", 100*time.Millisecond)

		start := time.Now()
		_, err := client.SendMessage(context.Background(), "hello")
		require.Error(t, err)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestClient_EnsureAuth(t *testing.T) {
	t.Parallel()

	t.Run("expired session yields a descriptive error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(sessionResponse{Error: "RefreshAccessTokenError"})
		}))
		defer server.Close()

		client := New(server.URL, "test-session-token", time.Minute)
		_, err := client.EnsureAuth(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RefreshAccessTokenError")
	})

	t.Run("session status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := New(server.URL, "test-session-token", time.Minute)
		_, err := client.EnsureAuth(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status code 403")
	})
}
