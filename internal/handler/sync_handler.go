package handler

import (
	"cv-builder-be/internal/pkg/logger"
	"cv-builder-be/internal/service"
	internalWS "cv-builder-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// SyncHandler exposes the realtime sync-status stream. Clients open one
// socket per session and receive pending-count and connectivity pushes.
type SyncHandler struct {
	queueService service.IQueueService
	hub          *internalWS.Hub
	logger       logger.ILogger
}

func NewSyncHandler(queueService service.IQueueService, hub *internalWS.Hub, log logger.ILogger) *SyncHandler {
	return &SyncHandler{
		queueService: queueService,
		hub:          hub,
		logger:       log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *SyncHandler) ServeWs(c *fiber.Ctx) error {
	sessionIdStr := c.Query("session")
	if sessionIdStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing 'session' query parameter"})
	}

	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SyncHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionId})
			internalWS.ServeWs(h.hub, conn, sessionId)
			h.logger.Info("SyncHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetSyncStatus returns a point-in-time snapshot over plain HTTP, for
// clients that cannot hold a socket open.
func (h *SyncHandler) GetSyncStatus(c *fiber.Ctx) error {
	sessionId, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	pending, err := h.queueService.GetPendingActions(c.Context(), sessionId)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"session_id":    sessionId,
		"online":        h.queueService.IsOnline(sessionId),
		"pending_count": len(pending),
	})
}

// RegisterRoutes registers the sync routes.
func (h *SyncHandler) RegisterRoutes(router fiber.Router) {
	sync := router.Group("/sync")
	sync.Get("/:sessionId/status", h.GetSyncStatus)

	// WebSocket
	router.Get("/ws", h.ServeWs)
}
