package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"hrportal/internal/authz"
	"hrportal/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one payload plus the audience allowed to receive it.
type Message struct {
	CompanyID  uuid.UUID
	EmployeeID uuid.UUID
	ActorID    uuid.UUID
	ActorOnly  bool
	Payload    []byte
}

// visibleTo reports whether p may receive m: the acting user always, then
// reviewers of the company and the employee the request belongs to.
func (m Message) visibleTo(p *model.Principal) bool {
	if p == nil || !p.Active {
		return false
	}
	if p.ID == m.ActorID {
		return true
	}
	if m.ActorOnly {
		return false
	}
	if authz.IsReviewer(p, m.CompanyID) {
		return true
	}
	return authz.CanAccessCompany(p, m.CompanyID) && p.IsEmployee(m.EmployeeID)
}

// Client is a single connected browser tab.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	Principal *model.Principal
}

// Hub fans messages out to connected clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // closed when Run returns
	logger     *zap.Logger
	mu         sync.Mutex
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run dispatches until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("websocket client connected", zap.String("user_id", client.Principal.ID.String()))
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Debug("websocket client disconnected", zap.String("user_id", client.Principal.ID.String()))
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !msg.visibleTo(client.Principal) {
					continue
				}
				select {
				case client.Send <- msg.Payload:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds c to the hub. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes c; it returns immediately once the hub has stopped.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues msg without blocking; it reports false when the queue is full.
func (h *Hub) Publish(msg Message) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		w, err := c.Conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(message)

		n := len(c.Send)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'\n'})
			_, _ = w.Write(<-c.Send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("websocket read failed", zap.Error(err))
			}
			break
		}
	}
}

// PrincipalResolver turns the token query parameter into the session principal.
type PrincipalResolver func(ctx context.Context, token string) (*model.Principal, error)

// ServeWs upgrades an authenticated request and registers the client.
func ServeWs(hub *Hub, c *gin.Context, resolve PrincipalResolver) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	p, err := resolve(c.Request.Context(), tokenString)
	if err != nil || p == nil || !p.Active {
		hub.logger.Info("websocket connection rejected", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256), Principal: p}
	if !hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
