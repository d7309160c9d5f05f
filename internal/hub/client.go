package hub

import (
	"encoding/json"
	"log/slog"
	"time"
	"wavelink-server/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Requests allowed per connection before the read pump starts rejecting.
const (
	requestRefill = 500 * time.Millisecond
	requestBurst  = 10
)

// Client is the connection handle: the bridge between one WebSocket
// connection and the hub.
type Client struct {
	UserID  uuid.UUID
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	closed  chan struct{}
	limiter *rate.Limiter
	log     *slog.Logger
}

// close marks the handle dead: writePump stops and frames enqueued from now
// on are dropped. Called only from the hub loop, at most once per client.
// Send itself is never closed, so a request the handle queued before it was
// displaced can still be handled without panicking the loop.
func (c *Client) close() {
	close(c.closed)
}

// readPump reads request frames from the WebSocket and forwards them into
// the hub's event queue. It runs until the connection drops.
func (c *Client) readPump() {
	defer func() {
		// The hub may already be shut down; never block on a dead loop.
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	for {
		var req domain.WebSocketMessage
		if err := c.Conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("read failed", "user", c.UserID, "error", err)
			}
			break
		}

		if !c.limiter.Allow() {
			c.sendSystemMessage(domain.EventError, "Too many requests, slow down.")
			continue
		}

		select {
		case c.Hub.messages <- &ClientRequest{Client: c, Message: req}:
		case <-c.Hub.done:
			return
		}
	}
}

// writePump drains the Send channel into the WebSocket. The hub ends the
// pump and the connection through the client's closed signal.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for {
		select {
		case message := <-c.Send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn("write failed", "user", c.UserID, "error", err)
				return
			}
		case <-c.closed:
			return
		}
	}
}

// enqueue marshals an event envelope onto the client's send channel. This is
// fire-and-forget: when the channel is full or the handle is already dead the
// frame is dropped and the client self-heals by re-fetching on its next
// request.
func (c *Client) enqueue(event string, payload interface{}) {
	frame, err := json.Marshal(domain.WebSocketMessage{Type: event, Payload: payload})
	if err != nil {
		c.log.Error("marshal failed", "event", event, "error", err)
		return
	}
	select {
	case c.Send <- frame:
	case <-c.closed:
		c.log.Warn("dropped frame for closed connection", "user", c.UserID, "event", event)
	default:
		c.log.Warn("dropped frame for slow connection", "user", c.UserID, "event", event)
	}
}

// sendSystemMessage pushes an out-of-band notice to this client.
func (c *Client) sendSystemMessage(msgType, content string) {
	c.enqueue(msgType, domain.ChatResponse{Success: false, Message: content})
}
