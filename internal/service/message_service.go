package service

import (
	"context"
	"log/slog"
	"wavelink-server/internal/domain"
	"wavelink-server/pkg/errs"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageService appends and removes messages. The store's atomic
// read-modify-write is the serialization point between concurrent calls;
// this service holds no chat state of its own.
type MessageService struct {
	chatRepo IChatRepository
	resolver IChatResolver
	log      *slog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(chatRepo IChatRepository, resolver IChatResolver, log *slog.Logger) *MessageService {
	return &MessageService{chatRepo: chatRepo, resolver: resolver, log: log}
}

// AppendMessages appends messages to the chat's sequence and returns the
// re-resolved chat. One record is an ordinary send or reply; several records
// are a forward, each carrying a fresh id and the forward kind. Neither text
// nor image is required on a record; empty messages pass through unchanged.
//
// participantIDs is accepted here untouched so the caller can hand it to
// the fan-out without a second store read. It is not checked against the
// persisted participant set.
func (s *MessageService) AppendMessages(ctx context.Context, chatID string, messages []domain.MessageRecord, participantIDs []string) (*domain.Chat, error) {
	id, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return nil, errs.InvalidIdentifier(chatID)
	}
	if len(messages) == 0 {
		return nil, errs.ValidationFailed("no messages to append")
	}

	record, err := s.chatRepo.AppendMessages(ctx, id, messages)
	if err != nil {
		return nil, errs.StoreUnavailable(err)
	}
	if record == nil {
		// The messages were not thrown away silently; the caller reports
		// this back to the sender for resubmission.
		return nil, errs.NotFound("chat", chatID)
	}

	s.log.Debug("messages appended", "chat", chatID, "count", len(messages))
	return s.resolver.Resolve(ctx, record)
}

// RemoveMessage removes one message by id and returns the re-resolved chat.
// Reply snapshots embedded in other messages keep their copied content.
func (s *MessageService) RemoveMessage(ctx context.Context, chatID, messageID string) (*domain.Chat, error) {
	id, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return nil, errs.InvalidIdentifier(chatID)
	}

	record, err := s.chatRepo.RemoveMessage(ctx, id, messageID)
	if err != nil {
		return nil, errs.StoreUnavailable(err)
	}
	if record == nil {
		return nil, errs.NotFound("chat", chatID)
	}

	s.log.Debug("message removed", "chat", chatID, "message", messageID)
	return s.resolver.Resolve(ctx, record)
}
