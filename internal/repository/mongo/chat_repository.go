package mongo

import (
	"context"
	"errors"
	"wavelink-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatCollection = "chats"

// ChatRepository handles database operations for chats and their embedded
// message sequences.
type ChatRepository struct {
	DB *mongo.Database
}

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{DB: db}
}

// GetChatByID retrieves one chat document by id. Returns (nil, nil) when no
// chat matches.
func (r *ChatRepository) GetChatByID(ctx context.Context, id primitive.ObjectID) (*domain.ChatRecord, error) {
	collection := r.DB.Collection(chatCollection)

	chat := &domain.ChatRecord{}
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return chat, nil
}

// GetChatsByParticipant retrieves every chat whose participant set contains
// userID. Result order is whatever the store returns.
func (r *ChatRepository) GetChatsByParticipant(ctx context.Context, userID string) ([]*domain.ChatRecord, error) {
	collection := r.DB.Collection(chatCollection)

	cursor, err := collection.Find(ctx, bson.M{"participants": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []*domain.ChatRecord
	if err = cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// AppendMessages atomically appends messages to the chat's sequence and
// returns the updated document in the same round trip. The store commit
// order is the only ordering authority between concurrent appends: both are
// applied, neither clobbers the other. Returns (nil, nil) when the chat does
// not exist.
func (r *ChatRepository) AppendMessages(ctx context.Context, id primitive.ObjectID, messages []domain.MessageRecord) (*domain.ChatRecord, error) {
	collection := r.DB.Collection(chatCollection)

	update := bson.M{"$push": bson.M{"messages": bson.M{"$each": messages}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	chat := &domain.ChatRecord{}
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return chat, nil
}

// RemoveMessage atomically removes the message with messageID from the
// chat's sequence and returns the updated document. Returns (nil, nil) when
// the chat does not exist; removing an absent message id is a no-op.
func (r *ChatRepository) RemoveMessage(ctx context.Context, id primitive.ObjectID, messageID string) (*domain.ChatRecord, error) {
	collection := r.DB.Collection(chatCollection)

	update := bson.M{"$pull": bson.M{"messages": bson.M{"id": messageID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	chat := &domain.ChatRecord{}
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return chat, nil
}
