package service

import (
	"context"
	"wavelink-server/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interfaces ---

// IChatService resolves stored chats into fully-populated snapshots.
type IChatService interface {
	GetChatByID(ctx context.Context, chatID string) (*domain.Chat, error)
	GetChatsForUser(ctx context.Context, userID string) ([]*domain.Chat, error)
	Resolve(ctx context.Context, record *domain.ChatRecord) (*domain.Chat, error)
}

// IMessageService is the only legal way messages enter or leave a chat.
type IMessageService interface {
	AppendMessages(ctx context.Context, chatID string, messages []domain.MessageRecord, participantIDs []string) (*domain.Chat, error)
	RemoveMessage(ctx context.Context, chatID, messageID string) (*domain.Chat, error)
}

// IChatResolver is the resolution subset needed by the mutation engine.
type IChatResolver interface {
	Resolve(ctx context.Context, record *domain.ChatRecord) (*domain.Chat, error)
}

// --- Repository Interfaces ---

// IUserRepository defines the interface for identity-snapshot reads.
type IUserRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
}

// IChatRepository defines the interface for chat persistence. Append and
// removal must be atomic read-modify-write operations at the store layer.
type IChatRepository interface {
	GetChatByID(ctx context.Context, id primitive.ObjectID) (*domain.ChatRecord, error)
	GetChatsByParticipant(ctx context.Context, userID string) ([]*domain.ChatRecord, error)
	AppendMessages(ctx context.Context, id primitive.ObjectID, messages []domain.MessageRecord) (*domain.ChatRecord, error)
	RemoveMessage(ctx context.Context, id primitive.ObjectID, messageID string) (*domain.ChatRecord, error)
}
