package hub

import (
	"github.com/google/uuid"
)

// Registry is the single source of truth for which connection currently
// represents each user. It is owned by the hub's event loop: all mutation
// happens synchronously inside that one goroutine, so no locking is needed.
type Registry struct {
	clients map[uuid.UUID]*Client
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[uuid.UUID]*Client)}
}

// Connect records client as the live connection for its user. A reconnect
// replaces the previous entry; the displaced client is returned so the hub
// can shut it down. Returns nil when the user had no prior connection.
func (r *Registry) Connect(client *Client) *Client {
	displaced := r.clients[client.UserID]
	if displaced == client {
		displaced = nil
	}
	r.clients[client.UserID] = client
	return displaced
}

// Disconnect removes client's entry. A stale disconnect, one arriving after
// the same user already reconnected on a newer handle, must not evict the
// newer entry, so the entry is only removed when it still maps to this
// exact client. Never fails.
func (r *Registry) Disconnect(client *Client) {
	if r.clients[client.UserID] == client {
		delete(r.clients, client.UserID)
	}
}

// Handles returns the live clients for the connected subset of userIDs, in
// no particular order.
func (r *Registry) Handles(userIDs []uuid.UUID) []*Client {
	var handles []*Client
	for _, id := range userIDs {
		if client, ok := r.clients[id]; ok {
			handles = append(handles, client)
		}
	}
	return handles
}

// Handle returns the live client for one user, or nil.
func (r *Registry) Handle(userID uuid.UUID) *Client {
	return r.clients[userID]
}

// Len reports how many users are currently connected.
func (r *Registry) Len() int {
	return len(r.clients)
}
