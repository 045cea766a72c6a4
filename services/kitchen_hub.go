package services

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/marco-valdez/la-comanda-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// KitchenHub pushes order status changes to connected kitchen screens.
type KitchenHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// OrderStatusEvent is the message broadcast on every status change.
type OrderStatusEvent struct {
	OrderID      uint    `json:"order_id"`
	CustomerName string  `json:"customer_name"`
	Status       string  `json:"status"`
	TableNumber  *int    `json:"table_number,omitempty"`
	Total        float64 `json:"total"`
}

var kitchenHub *KitchenHub

// InitKitchenHub creates the global hub. Called once from main.
func InitKitchenHub() *KitchenHub {
	kitchenHub = &KitchenHub{clients: make(map[*websocket.Conn]bool)}
	return kitchenHub
}

// GetKitchenHub returns the global hub, or nil before InitKitchenHub.
func GetKitchenHub() *KitchenHub {
	return kitchenHub
}

// Subscribe upgrades the request to a websocket and registers the client.
func (h *KitchenHub) Subscribe(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Drain reads so the connection stays alive and closed peers are
	// detected and unregistered.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

// Broadcast sends an event to every connected client, dropping clients
// whose connection has gone away.
func (h *KitchenHub) Broadcast(event OrderStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Dropping kitchen client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// NotifyOrderStatus broadcasts an order's current status to the kitchen
// feed. A nil hub (tests, tooling) makes this a no-op.
func NotifyOrderStatus(order *models.Order) {
	if kitchenHub == nil {
		return
	}

	event := OrderStatusEvent{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		Total:        order.Total,
	}
	if order.Table != nil {
		event.TableNumber = &order.Table.Number
	}
	kitchenHub.Broadcast(event)
}
