package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardCreatesDistinctMessage(t *testing.T) {
	senderID := uuid.NewString()
	forwarderID := uuid.NewString()
	original := MessageRecord{
		ID:        uuid.NewString(),
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		SenderID:  senderID,
		Kind:      MessageDefault,
		Text:      "look at this",
		Image:     "uploads/cat.png",
	}

	forwarded := original.Forward(forwarderID)

	assert.NotEqual(t, original.ID, forwarded.ID, "forward must mint a fresh id")
	assert.Equal(t, MessageForward, forwarded.Kind)
	assert.Equal(t, forwarderID, forwarded.ForwarderID)
	assert.Equal(t, original.SenderID, forwarded.SenderID)
	assert.Equal(t, original.CreatedAt, forwarded.CreatedAt)
	assert.Equal(t, original.Text, forwarded.Text)
	assert.Equal(t, original.Image, forwarded.Image)

	// The original record is untouched.
	assert.Equal(t, MessageDefault, original.Kind)
	assert.Empty(t, original.ForwarderID)
}

func TestForwardDropsReplySnapshot(t *testing.T) {
	original := MessageRecord{
		ID:       uuid.NewString(),
		SenderID: uuid.NewString(),
		Text:     "answer",
		Reply:    &ReplyRecord{ID: uuid.NewString(), Text: "question"},
	}

	forwarded := original.Forward(uuid.NewString())
	assert.Nil(t, forwarded.Reply, "a forward carries content, not the reply context")
}

func TestReplySnapshotSurvivesOriginalDeletion(t *testing.T) {
	original := MessageRecord{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		SenderID:  uuid.NewString(),
		Text:      "delete me later",
		Image:     "uploads/sunset.png",
	}
	snapshot := original.ReplySnapshot()
	require.NotNil(t, snapshot)

	messages := []MessageRecord{
		original,
		{ID: uuid.NewString(), SenderID: uuid.NewString(), Text: "replying", Reply: snapshot},
	}

	// Delete the original from the sequence; the snapshot keeps its copy.
	messages = messages[1:]

	require.Len(t, messages, 1)
	reply := messages[0].Reply
	require.NotNil(t, reply)
	assert.Equal(t, original.ID, reply.ID)
	assert.Equal(t, original.Text, reply.Text)
	assert.Equal(t, original.Image, reply.Image)
	assert.Equal(t, original.SenderID, reply.SenderID)
	assert.Equal(t, original.CreatedAt, reply.CreatedAt)
}
