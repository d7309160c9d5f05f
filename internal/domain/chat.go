package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind distinguishes an ordinary message from a forwarded one.
type MessageKind string

const (
	MessageDefault MessageKind = "default"
	MessageForward MessageKind = "forward"
)

// Chat is a fully-resolved conversation: every user reference in the stored
// document is expanded into a User snapshot before it leaves the service
// layer. Messages are in insertion order, which is chronological order.
type Chat struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    User      `json:"createdBy"`
	Messages     []Message `json:"messages"`
	Participants []User    `json:"participants"`
}

// Message is one resolved unit of conversation content. Immutable once
// appended; there is no edit operation.
type Message struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Sender    User        `json:"sender"`
	Kind      MessageKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Image     string      `json:"image,omitempty"`
	// Forwarder is set only when Kind is MessageForward and names the user
	// who re-sent the message, as opposed to its original Sender.
	Forwarder *User `json:"forwarder,omitempty"`
	// Reply is a denormalized snapshot of the message being replied to. It
	// stays displayable even if the original is deleted later.
	Reply *ReplyMessage `json:"replyMessage,omitempty"`
}

// ReplyMessage is the resolved point-in-time copy of an earlier message.
// It deliberately carries content instead of a reference, so deleting the
// original never leaves a dangling pointer.
type ReplyMessage struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Sender    User      `json:"sender"`
	Text      string    `json:"text,omitempty"`
	Image     string    `json:"image,omitempty"`
}

// MessageRecord is a message as persisted inside a chat document and as
// submitted by clients: user references are ids, not snapshots.
type MessageRecord struct {
	ID          string       `bson:"id" json:"id"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	SenderID    string       `bson:"senderId" json:"senderId"`
	Kind        MessageKind  `bson:"kind" json:"kind"`
	Text        string       `bson:"text,omitempty" json:"text,omitempty"`
	Image       string       `bson:"image,omitempty" json:"image,omitempty"`
	ForwarderID string       `bson:"forwarderId,omitempty" json:"forwarderId,omitempty"`
	Reply       *ReplyRecord `bson:"replyMessage,omitempty" json:"replyMessage,omitempty"`
}

// ReplyRecord is the persisted form of a ReplyMessage snapshot.
type ReplyRecord struct {
	ID        string    `bson:"id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	SenderID  string    `bson:"senderId" json:"senderId"`
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
}

// Forward builds the record appended when forwarderID re-sends this message
// into a chat: a new message with a fresh id, the forward kind and the
// forwarder set, while sender, creation time and content are copied from the
// original. The original record is untouched.
func (m MessageRecord) Forward(forwarderID string) MessageRecord {
	return MessageRecord{
		ID:          uuid.NewString(),
		CreatedAt:   m.CreatedAt,
		SenderID:    m.SenderID,
		Kind:        MessageForward,
		Text:        m.Text,
		Image:       m.Image,
		ForwarderID: forwarderID,
	}
}

// ReplySnapshot copies this message into the denormalized form embedded in a
// reply to it.
func (m MessageRecord) ReplySnapshot() *ReplyRecord {
	return &ReplyRecord{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		SenderID:  m.SenderID,
		Text:      m.Text,
		Image:     m.Image,
	}
}
