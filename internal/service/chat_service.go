package service

import (
	"context"
	"log/slog"
	"wavelink-server/internal/domain"
	"wavelink-server/pkg/errs"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService produces fully-resolved chats: every user reference in a
// stored document is expanded into an identity snapshot before the chat
// leaves this layer. Nothing is cached between calls; the store is re-read
// on every resolution.
type ChatService struct {
	chatRepo IChatRepository
	userRepo IUserRepository
	log      *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(chatRepo IChatRepository, userRepo IUserRepository, log *slog.Logger) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo, log: log}
}

// GetChatByID retrieves and resolves one chat. The id is validated before
// the store is touched.
func (s *ChatService) GetChatByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	id, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return nil, errs.InvalidIdentifier(chatID)
	}

	record, err := s.chatRepo.GetChatByID(ctx, id)
	if err != nil {
		return nil, errs.StoreUnavailable(err)
	}
	if record == nil {
		return nil, errs.NotFound("chat", chatID)
	}

	return s.Resolve(ctx, record)
}

// GetChatsForUser retrieves and resolves every chat the user participates
// in. List order is store-determined; callers must not depend on it.
func (s *ChatService) GetChatsForUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, errs.InvalidIdentifier(userID)
	}

	records, err := s.chatRepo.GetChatsByParticipant(ctx, userID)
	if err != nil {
		return nil, errs.StoreUnavailable(err)
	}

	chats := make([]*domain.Chat, 0, len(records))
	for _, record := range records {
		chat, err := s.Resolve(ctx, record)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

// Resolve expands participants, creator, message senders, forwarders and
// reply senders into user snapshots with a single batched store read.
func (s *ChatService) Resolve(ctx context.Context, record *domain.ChatRecord) (*domain.Chat, error) {
	users, err := s.userRepo.GetUsersByIDs(ctx, collectUserIDs(record))
	if err != nil {
		return nil, errs.StoreUnavailable(err)
	}

	byID := make(map[uuid.UUID]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	// Unknown references resolve to a bare snapshot carrying only the id,
	// so a deleted account never breaks an existing chat.
	snapshot := func(ref string) domain.User {
		id, err := uuid.Parse(ref)
		if err != nil {
			s.log.Warn("unresolvable user reference", "ref", ref)
			return domain.User{}
		}
		if u, ok := byID[id]; ok {
			return *u
		}
		return domain.User{ID: id}
	}

	chat := &domain.Chat{
		ID:           record.ID.Hex(),
		CreatedAt:    record.CreatedAt,
		CreatedBy:    snapshot(record.CreatedBy),
		Messages:     make([]domain.Message, 0, len(record.Messages)),
		Participants: make([]domain.User, 0, len(record.Participants)),
	}
	for _, p := range record.Participants {
		chat.Participants = append(chat.Participants, snapshot(p))
	}
	for _, m := range record.Messages {
		msg := domain.Message{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			Sender:    snapshot(m.SenderID),
			Kind:      m.Kind,
			Text:      m.Text,
			Image:     m.Image,
		}
		if m.ForwarderID != "" {
			forwarder := snapshot(m.ForwarderID)
			msg.Forwarder = &forwarder
		}
		if m.Reply != nil {
			msg.Reply = &domain.ReplyMessage{
				ID:        m.Reply.ID,
				CreatedAt: m.Reply.CreatedAt,
				Sender:    snapshot(m.Reply.SenderID),
				Text:      m.Reply.Text,
				Image:     m.Reply.Image,
			}
		}
		chat.Messages = append(chat.Messages, msg)
	}
	return chat, nil
}

// collectUserIDs gathers every distinct parseable user reference in the
// record for one batched lookup.
func collectUserIDs(record *domain.ChatRecord) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	add := func(ref string) {
		id, err := uuid.Parse(ref)
		if err != nil || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	add(record.CreatedBy)
	for _, p := range record.Participants {
		add(p)
	}
	for _, m := range record.Messages {
		add(m.SenderID)
		if m.ForwarderID != "" {
			add(m.ForwarderID)
		}
		if m.Reply != nil {
			add(m.Reply.SenderID)
		}
	}
	return ids
}
