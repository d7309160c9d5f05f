package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
	"wavelink-server/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChatRepo is an in-memory stand-in for the chat store. Appends are
// serialized by the mutex, mirroring the store being the serialization
// point for concurrent mutations.
type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[primitive.ObjectID]*domain.ChatRecord
	calls int
	err   error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[primitive.ObjectID]*domain.ChatRecord)}
}

func (f *fakeChatRepo) put(record *domain.ChatRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats[record.ID] = record
}

func (f *fakeChatRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func clone(record *domain.ChatRecord) *domain.ChatRecord {
	copied := *record
	copied.Messages = append([]domain.MessageRecord(nil), record.Messages...)
	copied.Participants = append([]string(nil), record.Participants...)
	return &copied
}

func (f *fakeChatRepo) GetChatByID(ctx context.Context, id primitive.ObjectID) (*domain.ChatRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.chats[id]
	if !ok {
		return nil, nil
	}
	return clone(record), nil
}

func (f *fakeChatRepo) GetChatsByParticipant(ctx context.Context, userID string) ([]*domain.ChatRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var records []*domain.ChatRecord
	for _, record := range f.chats {
		for _, p := range record.Participants {
			if p == userID {
				records = append(records, clone(record))
				break
			}
		}
	}
	return records, nil
}

func (f *fakeChatRepo) AppendMessages(ctx context.Context, id primitive.ObjectID, messages []domain.MessageRecord) (*domain.ChatRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.chats[id]
	if !ok {
		return nil, nil
	}
	record.Messages = append(record.Messages, messages...)
	return clone(record), nil
}

func (f *fakeChatRepo) RemoveMessage(ctx context.Context, id primitive.ObjectID, messageID string) (*domain.ChatRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.chats[id]
	if !ok {
		return nil, nil
	}
	kept := record.Messages[:0]
	for _, m := range record.Messages {
		if m.ID != messageID {
			kept = append(kept, m)
		}
	}
	record.Messages = kept
	return clone(record), nil
}

// fakeUserRepo serves identity snapshots from a fixed map.
type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var users []*domain.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func testUser(name string) *domain.User {
	return &domain.User{
		ID:               uuid.New(),
		FirstName:        name,
		LastName:         "Tester",
		Email:            name + "@example.com",
		AvatarImages:     []string{"uploads/" + name + ".png"},
		BackgroundColors: [2]string{"#00C6FF", "#0072FF"},
	}
}

func testChatRecord(users ...*domain.User) *domain.ChatRecord {
	participants := make([]string, len(users))
	for i, u := range users {
		participants[i] = u.ID.String()
	}
	return &domain.ChatRecord{
		ID:           primitive.NewObjectID(),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		CreatedBy:    participants[0],
		Participants: participants,
	}
}
