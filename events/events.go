package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/codedevify/Urbansolz/models"
)

const (
	TypeOrderCreated   = "order.created"
	TypeOrderConfirmed = "order.confirmed"
	TypeOrderCancelled = "order.cancelled"
)

// Event describes one order lifecycle transition.
type Event struct {
	EventID    string             `json:"event_id"`
	Type       string             `json:"type"`
	OrderID    string             `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	Total      float64            `json:"total"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type Publisher interface {
	Publish(ev Event)
}

// NopPublisher drops events; used when no fanout is wired.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub broadcasts order events to connected websocket clients and, when a
// producer is attached, to Kafka.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	producer *Producer
}

func NewHub(producer *Producer) *Hub {
	return &Hub{
		clients:  make(map[*websocket.Conn]bool),
		producer: producer,
	}
}

// HandleWS upgrades the request and keeps the connection registered until the
// client goes away.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			break
		}
	}
}

func (h *Hub) Publish(ev Event) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("warning: failed to encode order event: %v", err)
		return
	}

	h.mu.Lock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
	h.mu.Unlock()

	if h.producer != nil {
		h.producer.Publish(ev.Type, []byte(ev.OrderID), data)
	}
}
