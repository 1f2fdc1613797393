package websocket

import (
	"context"
	"sync"

	"kyc-verification-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// feedChannel is the redis pub/sub channel mirroring feed events across
// instances. Every instance republishes local broadcasts here and relays
// remote ones to its own clients.
const feedChannel = "kyc_feed_events"

// Hub fans lifecycle event envelopes out to every connected operator
// dashboard. The feed is broadcast-only: all operators see all sessions.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil in single-node mode.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.relayFromRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Operator feed client connected", map[string]interface{}{
				"clients": h.clientCount(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Operator feed client disconnected", map[string]interface{}{
				"clients": h.clientCount(),
			})
		}
	}
}

// Broadcast delivers an event envelope to every connected client. With
// redis configured, delivery goes through the shared channel so each
// instance (this one included) relays exactly once; without it, delivery
// is local only.
func (h *Hub) Broadcast(data []byte) {
	if h.rdb == nil {
		h.deliverLocal(data)
		return
	}

	if err := h.rdb.Publish(context.Background(), feedChannel, data).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish feed event to redis", map[string]interface{}{
			"error": err.Error(),
		})
		h.deliverLocal(data)
	}
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop the connection rather than block the feed.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) relayFromRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, feedChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliverLocal([]byte(msg.Payload))
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
