package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"social/internal/adapters/memory"
	"social/internal/adapters/ws"
	"social/internal/config"
	"social/internal/core/auth"
	"social/internal/domain"
	"social/internal/event"
	"social/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type feedEnv struct {
	hub    *ws.Hub
	bus    *event.Bus
	srv    *httptest.Server
	access string
}

func newFeedEnv(t *testing.T) *feedEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	users := memory.NewUserRepository()
	_, err := users.Insert(ctx, "alice@example.com", "x")
	require.NoError(t, err)
	require.NoError(t, users.SetActivated(ctx, "alice@example.com"))

	codec, err := auth.NewTokenCodec("test-secret", "HS256")
	require.NoError(t, err)
	core := auth.NewService(users, auth.NewBcryptHasher(bcrypt.MinCost, 1), codec, logger.Discard())

	access, err := core.IssueAccessToken("alice@example.com")
	require.NoError(t, err)

	hub := ws.NewHub(ctx, logger.Discard())
	go hub.Run()

	bus := event.New(logger.Discard())
	ws.Subscribe(bus, hub)

	h := ws.NewHandler(hub, &config.Config{AllowedOrigins: []string{"http://localhost:3000"}}, core, logger.Discard())
	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(srv.Close)

	return &feedEnv{hub: hub, bus: bus, srv: srv, access: access}
}

func (e *feedEnv) url(token string) string {
	return "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/ws/feed?token=" + token
}

func TestFeed_RejectsBadTokens(t *testing.T) {
	e := newFeedEnv(t)

	for _, token := range []string{"", "invalid_token"} {
		_, resp, err := websocket.DefaultDialer.Dial(e.url(token), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestFeed_RejectsForeignOrigin(t *testing.T) {
	e := newFeedEnv(t)

	header := http.Header{"Origin": []string{"http://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(e.url(e.access), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFeed_ReceivesBusEvents(t *testing.T) {
	e := newFeedEnv(t)

	conn, _, err := websocket.DefaultDialer.Dial(e.url(e.access), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return e.hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	e.bus.Publish(domain.TopicPostCreated, domain.EventPostCreated{
		Post: &domain.Post{ID: 42, Body: "hello", UserID: 1},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Channel string      `json:"channel"`
		Event   string      `json:"event"`
		Payload domain.Post `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, domain.ChannelFeed, got.Channel)
	assert.Equal(t, domain.WsEventPostCreated, got.Event)
	assert.EqualValues(t, 42, got.Payload.ID)
	assert.Equal(t, "hello", got.Payload.Body)
}

func TestFeed_ClientLeaves(t *testing.T) {
	e := newFeedEnv(t)

	conn, _, err := websocket.DefaultDialer.Dial(e.url(e.access), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return e.hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return e.hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}
