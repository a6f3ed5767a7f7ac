// Package realtime pushes history and generation events to connected
// WebSocket clients. The browser UI may either poll the history endpoint or
// subscribe here.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"video-studio/internal/shared/eventbus"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// wireEvent is the JSON shape pushed to clients.
type wireEvent struct {
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// RealtimeModule subscribes to the shared event bus and exposes the
// /ws/events endpoint.
type RealtimeModule struct {
	bus eventbus.EventBusInterface
	hub *hub
	log *zap.Logger
}

// NewRealtimeModule creates a new realtime module instance.
func NewRealtimeModule(bus eventbus.EventBusInterface, log *zap.Logger) *RealtimeModule {
	return &RealtimeModule{
		bus: bus,
		hub: newHub(log),
		log: log,
	}
}

// Start subscribes the module to every event type it relays.
func (rm *RealtimeModule) Start() {
	relayed := []string{
		eventbus.EventTypeHistoryAdded,
		eventbus.EventTypeHistoryUpdated,
		eventbus.EventTypeHistoryRemoved,
		eventbus.EventTypeGenerationCompleted,
		eventbus.EventTypeGenerationFailed,
	}
	for _, eventType := range relayed {
		rm.bus.Subscribe(eventType, rm.relay)
	}
}

// relay serializes a bus event and fans it out to connected clients.
func (rm *RealtimeModule) relay(ctx context.Context, event eventbus.Event) error {
	payload, err := json.Marshal(wireEvent{
		Type:      event.Type(),
		Source:    event.Source(),
		Timestamp: event.Timestamp(),
		Data:      event.Data(),
	})
	if err != nil {
		rm.log.Error("failed to serialize realtime event",
			zap.String("eventType", event.Type()),
			zap.Error(err))
		return err
	}

	rm.hub.broadcast(payload)
	return nil
}

// RegisterRoutes registers the WebSocket endpoint.
func (rm *RealtimeModule) RegisterRoutes(router fiber.Router) {
	wsGroup := router.Group("/ws")

	wsGroup.Use("/events", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	wsGroup.Get("/events", websocket.New(rm.handleConnection))
}

func (rm *RealtimeModule) handleConnection(conn *websocket.Conn) {
	clientID := uuid.NewString()
	client := rm.hub.add(clientID, conn)
	defer rm.hub.remove(clientID)

	// Writer loop; reads are only consumed to detect disconnects.
	go func() {
		for {
			select {
			case payload, ok := <-client.send:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					rm.log.Warn("failed to write to realtime client",
						zap.String("clientID", clientID),
						zap.Error(err))
					return
				}
			case <-client.done:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Stop disconnects all clients.
func (rm *RealtimeModule) Stop() error {
	rm.hub.closeAll()
	return nil
}
