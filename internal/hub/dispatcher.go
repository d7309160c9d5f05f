package hub

import (
	"log/slog"
	"wavelink-server/internal/domain"

	"github.com/google/uuid"
)

// Dispatcher pushes chat updates to every online participant. Delivery is
// at-most-once: there is no acknowledgment and no retry for handles that go
// stale between resolution and emission; clients reconcile by re-fetching
// on reconnect.
type Dispatcher struct {
	registry *Registry
	log      *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(registry *Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// DispatchChatUpdate emits the resolved chat under event to every connected
// participant. When fewer than two participants resolve to live handles
// (the registry may momentarily not even hold the initiator), the update
// goes to the initiating connection alone, which guarantees at least one
// delivery for every successful mutation.
func (d *Dispatcher) DispatchChatUpdate(initiator *Client, chat *domain.Chat, participantIDs []string, event string) {
	handles := d.registry.Handles(parseUserIDs(participantIDs))
	payload := domain.OkChat(chat)

	if len(handles) > 1 {
		for _, handle := range handles {
			handle.enqueue(event, payload)
		}
		d.log.Debug("chat update fanned out", "event", event, "chat", chat.ID, "recipients", len(handles))
		return
	}

	initiator.enqueue(event, payload)
}

// DispatchError reports a failed operation to the initiating connection
// only. Failures are never fanned out.
func (d *Dispatcher) DispatchError(initiator *Client, event string, err error) {
	initiator.enqueue(event, domain.Errf(err))
}

func parseUserIDs(ids []string) []uuid.UUID {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue // malformed ids simply resolve to nobody
		}
		parsed = append(parsed, id)
	}
	return parsed
}
