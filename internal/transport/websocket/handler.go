package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/events"
)

// Event type names sent to clients
const (
	EventProductAdded   = "product_added"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
)

type Handler struct {
	Upgrader websocket.Upgrader
	Log      hclog.Logger
	EventBus *events.EventBus[any]
}

type Message struct {
	EventType string      `json:"event-type"`
	Data      interface{} `json:"data"`
}

// NewHandler creates a handler accepting same-origin connections and
// connections from allowedOrigin.
func NewHandler(log hclog.Logger, eventBus *events.EventBus[any], allowedOrigin string) *Handler {
	return &Handler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin || sameOrigin(r, origin)
			},
		},
		Log:      log,
		EventBus: eventBus,
	}
}

func sameOrigin(r *http.Request, origin string) bool {
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("Unable to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	subscriber := h.EventBus.Subscribe()
	defer h.EventBus.Unsubscribe(subscriber)

	// closed when the client goes away
	done := make(chan struct{})
	go h.readPump(conn, done)

	for {
		select {
		case event, ok := <-subscriber:
			if !ok {
				return
			}
			message, known := toMessage(event)
			if !known {
				h.Log.Warn("Unknown event type", "event", event)
				continue
			}

			payload, err := json.Marshal(message)
			if err != nil {
				h.Log.Error("Error marshalling message", "error", err)
				continue
			}

			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.Log.Error("Error writing message to WebSocket", "error", err)
				return
			}
		case <-done:
			h.Log.Debug("WebSocket connection closed by the client")
			return
		}
	}
}

func toMessage(event any) (Message, bool) {
	switch e := event.(type) {
	case events.ProductAdded:
		return Message{EventType: EventProductAdded, Data: e}, true
	case events.ProductUpdated:
		return Message{EventType: EventProductUpdated, Data: e}, true
	case events.ProductDeleted:
		return Message{EventType: EventProductDeleted, Data: e}, true
	default:
		return Message{}, false
	}
}

func (h *Handler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Error("Error reading message", "error", err)
			}
			return
		}
	}
}
