// Package hub keeps the in-process connection state for the message
// synchronization core: which connection represents each user, and how chat
// updates fan out to the online participants of a chat.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
	"wavelink-server/internal/domain"
	"wavelink-server/internal/service"
	"wavelink-server/pkg/errs"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// storeTimeout bounds every store-backed request so a stalled store never
// leaves the initiating connection waiting indefinitely.
const storeTimeout = 10 * time.Second

// ClientRequest bundles a client with their incoming request frame.
type ClientRequest struct {
	Client  *Client
	Message domain.WebSocketMessage
}

// Hub drains one queue of connection and request events on a single
// goroutine. Handlers run to completion; the only suspension points are the
// store calls inside the services. The registry is mutated exclusively from
// this loop.
type Hub struct {
	connections map[*Client]bool
	registry    *Registry
	dispatcher  *Dispatcher

	messages   chan *ClientRequest
	register   chan *Client
	unregister chan *Client

	chatService    service.IChatService
	messageService service.IMessageService
	log            *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates a Hub over the given services.
func NewHub(chatService service.IChatService, messageService service.IMessageService, log *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	registry := NewRegistry()
	return &Hub{
		connections:    make(map[*Client]bool),
		registry:       registry,
		dispatcher:     NewDispatcher(registry, log),
		messages:       make(chan *ClientRequest),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		chatService:    chatService,
		messageService: messageService,
		log:            log,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

// Run is the hub's event loop. Call it in its own goroutine; it returns
// after Stop.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			for client := range h.connections {
				client.close()
			}
			return

		case client := <-h.register:
			h.connections[client] = true
			if displaced := h.registry.Connect(client); displaced != nil {
				displaced.sendSystemMessage(domain.EventError, "You have been connected from another location.")
				delete(h.connections, displaced)
				displaced.close()
			}
			h.log.Info("client connected", "user", client.UserID, "online", h.registry.Len())

		case client := <-h.unregister:
			if _, ok := h.connections[client]; ok {
				h.registry.Disconnect(client)
				delete(h.connections, client)
				client.close()
				h.log.Info("client disconnected", "user", client.UserID, "online", h.registry.Len())
			}

		case request := <-h.messages:
			h.handleMessage(request)
		}
	}
}

// Stop shuts the event loop down and waits for it to finish.
func (h *Hub) Stop() {
	h.cancel()
	<-h.done
}

// ServeWs hands a freshly-upgraded connection to the hub. A new connection
// for an already-connected user replaces the previous one; prior state is
// never resumed.
func (h *Hub) ServeWs(conn *websocket.Conn, userID uuid.UUID) {
	client := &Client{
		UserID:  userID,
		Hub:     h,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		closed:  make(chan struct{}),
		limiter: rate.NewLimiter(rate.Every(requestRefill), requestBurst),
		log:     h.log,
	}
	select {
	case h.register <- client:
	case <-h.done:
		// Connection raced shutdown; the loop will never accept it.
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()
}

func (h *Hub) handleMessage(req *ClientRequest) {
	switch req.Message.Type {
	case domain.EventGetChatsByUserID:
		h.handleGetChatsByUserID(req)
	case domain.EventGetChatByID:
		h.handleGetChatByID(req)
	case domain.EventSendMessage:
		h.handleSendMessage(req)
	case domain.EventDeleteMessage:
		h.handleDeleteMessage(req)
	default:
		req.Client.sendSystemMessage(domain.EventError, "Unknown message type: "+req.Message.Type)
	}
}

func (h *Hub) handleGetChatsByUserID(req *ClientRequest) {
	var payload domain.GetChatsByUserIDPayload
	if err := parsePayload(req.Message.Payload, &payload); err != nil {
		req.Client.sendSystemMessage(domain.EventError, "Invalid getChatsByUserId payload.")
		return
	}

	ctx, cancel := context.WithTimeout(h.ctx, storeTimeout)
	defer cancel()

	chats, err := h.chatService.GetChatsForUser(ctx, payload.UserID)
	if err != nil {
		h.reportError(req.Client, domain.EventGetChatsByUserID, err)
		return
	}
	req.Client.enqueue(domain.EventGetChatsByUserID, domain.OkChats(chats))
}

func (h *Hub) handleGetChatByID(req *ClientRequest) {
	var payload domain.GetChatByIDPayload
	if err := parsePayload(req.Message.Payload, &payload); err != nil {
		req.Client.sendSystemMessage(domain.EventError, "Invalid getChatById payload.")
		return
	}

	ctx, cancel := context.WithTimeout(h.ctx, storeTimeout)
	defer cancel()

	chat, err := h.chatService.GetChatByID(ctx, payload.ChatID)
	if err != nil {
		h.reportError(req.Client, domain.EventGetChatByID, err)
		return
	}
	req.Client.enqueue(domain.EventGetChatByID, domain.OkChat(chat))
}

func (h *Hub) handleSendMessage(req *ClientRequest) {
	var payload domain.SendMessagePayload
	if err := parsePayload(req.Message.Payload, &payload); err != nil {
		req.Client.sendSystemMessage(domain.EventError, "Invalid sendMessage payload.")
		return
	}

	ctx, cancel := context.WithTimeout(h.ctx, storeTimeout)
	defer cancel()

	chat, err := h.messageService.AppendMessages(ctx, payload.ChatID, payload.Messages, payload.ParticipantIDs)
	if err != nil {
		h.reportError(req.Client, domain.EventGetChatByID, err)
		return
	}
	h.dispatcher.DispatchChatUpdate(req.Client, chat, payload.ParticipantIDs, domain.EventGetChatByID)
}

func (h *Hub) handleDeleteMessage(req *ClientRequest) {
	var payload domain.DeleteMessagePayload
	if err := parsePayload(req.Message.Payload, &payload); err != nil {
		req.Client.sendSystemMessage(domain.EventError, "Invalid deleteMessage payload.")
		return
	}

	ctx, cancel := context.WithTimeout(h.ctx, storeTimeout)
	defer cancel()

	chat, err := h.messageService.RemoveMessage(ctx, payload.ChatID, payload.MessageID)
	if err != nil {
		h.reportError(req.Client, domain.EventGetChatByID, err)
		return
	}
	h.dispatcher.DispatchChatUpdate(req.Client, chat, payload.ParticipantIDs, domain.EventGetChatByID)
}

// parsePayload re-marshals the envelope's loosely-typed payload into the
// concrete request shape.
func parsePayload(payload interface{}, result interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, result)
}

// reportError resolves every failure path into an emission back to the
// initiating connection. Store outages are additionally logged as
// operational faults; invalid ids and missing chats are the caller's to fix
// and are only reported back.
func (h *Hub) reportError(initiator *Client, event string, err error) {
	if errors.Is(err, errs.ErrStoreUnavailable) {
		h.log.Error("store failure", "event", event, "user", initiator.UserID, "error", err)
	}
	h.dispatcher.DispatchError(initiator, event, err)
}
