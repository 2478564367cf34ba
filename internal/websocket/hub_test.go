package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("hub-test-secret")

func signToken(t *testing.T, role string) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "00000000-0000-0000-0000-000000000001",
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func startHubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		ServeWs(hub, c, testSecret)
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func TestServeWsRejectsMissingOrBadToken(t *testing.T) {
	_, srv := startHubServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws?token=not-a-jwt")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeWsRequiresReviewPermission(t *testing.T) {
	_, srv := startHubServer(t)

	resp, err := http.Get(srv.URL + "/ws?token=" + signToken(t, model.RoleViewer))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServeWsBroadcastsToReviewer(t *testing.T) {
	hub, srv := startHubServer(t)

	url := strings.Replace(srv.URL, "http://", "ws://", 1) + "/ws?token=" + signToken(t, model.RoleManager)
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.clientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish([]byte(`{"action":"approve_translation"}`))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(message), "approve_translation")
}
