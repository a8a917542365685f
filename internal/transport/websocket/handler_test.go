package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleWebSocketForwardsProductEvents(t *testing.T) {
	bus := events.NewEventBus[any]()
	h := NewHandler(hclog.NewNullLogger(), bus, "http://localhost:5173")
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return bus.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	bus.Publish("ignored")
	bus.Publish(events.ProductUpdated{ProductID: "abc"})

	var msg struct {
		EventType string `json:"event-type"`
		Data      struct {
			ProductID string `json:"product_id"`
		} `json:"data"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventProductUpdated, msg.EventType)
	assert.Equal(t, "abc", msg.Data.ProductID)

	conn.Close()
	assert.Eventually(t, func() bool { return bus.SubscriberCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandleWebSocketRejectsForeignOrigin(t *testing.T) {
	h := NewHandler(hclog.NewNullLogger(), events.NewEventBus[any](), "http://localhost:5173")
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestToMessage(t *testing.T) {
	testCases := []struct {
		event    any
		expected string
	}{
		{events.ProductAdded{ProductID: "a"}, EventProductAdded},
		{events.ProductUpdated{ProductID: "a"}, EventProductUpdated},
		{events.ProductDeleted{ProductID: "a"}, EventProductDeleted},
	}

	for _, tc := range testCases {
		msg, ok := toMessage(tc.event)
		assert.True(t, ok)
		assert.Equal(t, tc.expected, msg.EventType)
		assert.Equal(t, tc.event, msg.Data)
	}

	_, ok := toMessage(42)
	assert.False(t, ok)
}
