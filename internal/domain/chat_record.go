package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatRecord is a chat document as stored in MongoDB. The message sequence
// is append-only; participant and creator fields hold user ids that the
// resolution step expands into snapshots.
type ChatRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	CreatedBy    string             `bson:"createdBy"`
	Messages     []MessageRecord    `bson:"messages"`
	Participants []string           `bson:"participants"`
}
