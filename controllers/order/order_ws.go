package orderControllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/logger"
)

// Live order feed for the admin dashboard. Every connected client receives a
// JSON event when an order is created or changes status.

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var (
	feedMu      sync.Mutex
	feedClients = make(map[*websocket.Conn]bool)
)

type orderEvent struct {
	OrderNumber   string               `json:"order_number"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	TotalAmount   float64              `json:"total_amount"`
}

// GET /admin/orders-feed (websocket)
func OrderFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.L.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		feedMu.Lock()
		feedClients[conn] = true
		feedMu.Unlock()

		// Reader loop only exists to detect disconnects.
		go func() {
			defer func() {
				feedMu.Lock()
				delete(feedClients, conn)
				feedMu.Unlock()
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// BroadcastOrderUpdate pushes an order event to every connected feed client.
// Dead connections are dropped on write failure.
func BroadcastOrderUpdate(order *models.Order) {
	event := orderEvent{
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount,
	}

	feedMu.Lock()
	defer feedMu.Unlock()
	for conn := range feedClients {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(feedClients, conn)
		}
	}
}
