package hub

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"wavelink-server/internal/domain"
	"wavelink-server/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func receivedResponse(t *testing.T, c *Client) (string, domain.ChatResponse) {
	t.Helper()
	select {
	case frame := <-c.Send:
		var env struct {
			Type    string              `json:"type"`
			Payload domain.ChatResponse `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(frame, &env))
		return env.Type, env.Payload
	default:
		t.Fatal("expected a frame, got none")
		return "", domain.ChatResponse{}
	}
}

func TestDispatchChatUpdateReachesAllConnectedParticipants(t *testing.T) {
	registry := NewRegistry()
	d := NewDispatcher(registry, discardLogger())

	a := newTestClient(uuid.New())
	b := newTestClient(uuid.New())
	c := newTestClient(uuid.New())
	registry.Connect(a)
	registry.Connect(b)
	registry.Connect(c)

	chat := &domain.Chat{ID: "65f000000000000000000001"}
	ids := []string{a.UserID.String(), b.UserID.String(), c.UserID.String()}

	d.DispatchChatUpdate(a, chat, ids, domain.EventGetChatByID)

	for _, client := range []*Client{a, b, c} {
		event, resp := receivedResponse(t, client)
		assert.Equal(t, domain.EventGetChatByID, event)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.ChatData)
		assert.Equal(t, chat.ID, resp.ChatData.ID)
	}
}

func TestDispatchChatUpdateFallsBackToInitiator(t *testing.T) {
	registry := NewRegistry()
	d := NewDispatcher(registry, discardLogger())

	a := newTestClient(uuid.New())
	registry.Connect(a)
	offline := uuid.New()

	chat := &domain.Chat{ID: "65f000000000000000000002"}
	d.DispatchChatUpdate(a, chat, []string{a.UserID.String(), offline.String()}, domain.EventGetChatByID)

	event, resp := receivedResponse(t, a)
	assert.Equal(t, domain.EventGetChatByID, event)
	assert.True(t, resp.Success)
	assert.Empty(t, a.Send, "exactly one emission for the lone participant")
}

func TestDispatchChatUpdateWithEmptyResolutionStillNotifiesInitiator(t *testing.T) {
	registry := NewRegistry()
	d := NewDispatcher(registry, discardLogger())

	// Initiator not yet present in the registry: the momentarily
	// inconsistent case. The update must still reach it.
	a := newTestClient(uuid.New())

	chat := &domain.Chat{ID: "65f000000000000000000003"}
	d.DispatchChatUpdate(a, chat, []string{uuid.NewString()}, domain.EventGetChatByID)

	_, resp := receivedResponse(t, a)
	assert.True(t, resp.Success)
}

func TestDispatchErrorGoesOnlyToInitiator(t *testing.T) {
	registry := NewRegistry()
	d := NewDispatcher(registry, discardLogger())

	a := newTestClient(uuid.New())
	b := newTestClient(uuid.New())
	registry.Connect(a)
	registry.Connect(b)

	d.DispatchError(a, domain.EventGetChatByID, errs.NotFound("chat", "deadbeef"))

	event, resp := receivedResponse(t, a)
	assert.Equal(t, domain.EventGetChatByID, event)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "not found")
	assert.Empty(t, b.Send, "failures are never fanned out")
}

func TestDispatchSkipsMalformedParticipantIDs(t *testing.T) {
	registry := NewRegistry()
	d := NewDispatcher(registry, discardLogger())

	a := newTestClient(uuid.New())
	registry.Connect(a)

	chat := &domain.Chat{ID: "65f000000000000000000004"}
	d.DispatchChatUpdate(a, chat, []string{"not-a-uuid", a.UserID.String()}, domain.EventGetChatByID)

	_, resp := receivedResponse(t, a)
	assert.True(t, resp.Success)
}
