package events

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(hub)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)
	return conn
}

func TestScreenUpdatedBroadcast(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	defer hub.Close()
	conn := dialHub(t, hub)

	hub.ScreenUpdated("greeting")

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, "screen.updated", event.Type)
	require.Equal(t, "greeting", event.Slug)
	require.Empty(t, event.Keys)
}

func TestSettingsUpdatedBroadcast(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	defer hub.Close()
	conn := dialHub(t, hub)

	hub.SettingsUpdated([]string{"primaryColor", "recipientName"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, "settings.updated", event.Type)
	require.Equal(t, []string{"primaryColor", "recipientName"}, event.Keys)
	require.Empty(t, event.Slug)
}

func TestClosedClientIsDropped(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	defer hub.Close()
	conn := dialHub(t, hub)

	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)

	// Broadcasting into an empty hub is a no-op.
	hub.ScreenUpdated("greeting")
}
