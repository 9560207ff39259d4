package notification

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/jwt"
	"homeservices/internal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub keeps one live websocket per user. A new connection replaces the old one.
type Hub struct {
	connections map[string]*conn
	mutex       sync.RWMutex
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*conn),
		log:         logger.OrNop(log),
	}
}

func (h *Hub) register(userID string, ws *websocket.Conn) *conn {
	c := &conn{ws: ws}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old != nil {
		_ = old.ws.Close()
	}
	h.connections[userID] = c
	return c
}

// unregister drops c only if it is still the user's current connection.
func (h *Hub) unregister(userID string, c *conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cur, exists := h.connections[userID]; exists && cur == c {
		delete(h.connections, userID)
	}
	_ = c.ws.Close()
}

type pushEvent struct {
	Type         string                 `json:"type"`
	Notification domain.AppNotification `json:"notification"`
}

func (h *Hub) Publish(userID string, n domain.AppNotification) bool {
	h.mutex.RLock()
	c, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists || c == nil {
		return false
	}

	if err := c.writeJSON(pushEvent{Type: "notification", Notification: n}); err != nil {
		h.log.Debug("notification push failed", zap.String("user_id", userID), zap.Error(err))
		h.unregister(userID, c)
		return false
	}
	return true
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.connections {
		_ = c.ws.Close()
		delete(h.connections, userID)
	}
}

// WSHandler serves GET /ws/notifications?token=JWT. Browsers cannot set headers on
// websocket upgrades, so the token travels in the query string.
type WSHandler struct {
	hub *Hub
	jwt *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwtService}
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	userID := claims.UserID
	cn := h.hub.register(userID, ws)
	h.hub.log.Debug("websocket connected", zap.String("user_id", userID))

	done := make(chan struct{})
	defer func() {
		close(done)
		h.hub.unregister(userID, cn)
		h.hub.log.Debug("websocket disconnected", zap.String("user_id", userID))
	}()

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	go pingLoop(cn, done)

	// Clients only listen; reading keeps control frames flowing and detects close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.hub.log.Debug("websocket read error", zap.String("user_id", userID), zap.Error(err))
			}
			return
		}
	}
}

func pingLoop(c *conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
