// Package memory keeps users and messages in process memory. It backs the
// "memory" database DSN and the service tests; contents are lost on exit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
)

// Store holds both collections behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User // by username
	messages map[string]models.Message
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]models.User),
		messages: make(map[string]models.Message),
	}
}

// Users returns a view of s satisfying users.Repository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Messages returns a view of s satisfying messages.Repository.
func (s *Store) Messages() *MessageRepository { return &MessageRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.UserName]; ok {
		return common.ErrUsernameTaken
	}
	r.s.users[user.UserName] = cloneUser(*user)
	return nil
}

func (r *UserRepository) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (r *UserRepository) UpdateLastSeen(_ context.Context, userName string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.users[userName]; ok {
		u.LastSeen = &at
		r.s.users[userName] = u
	}
	return nil
}

func (r *UserRepository) ListExcept(_ context.Context, userName string, limit int) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*models.User
	for name, u := range r.s.users {
		if name == userName {
			continue
		}
		c := cloneUser(u)
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserName < result[j].UserName })
	return truncate(result, limit), nil
}

type MessageRepository struct{ s *Store }

func (r *MessageRepository) Create(_ context.Context, msg *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.messages[msg.ID] = cloneMessage(*msg)
	return nil
}

func (r *MessageRepository) FindByID(_ context.Context, id string) (*models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := cloneMessage(m)
	return &c, nil
}

func (r *MessageRepository) ListReceived(_ context.Context, recipient string, limit int) ([]*models.Message, error) {
	return r.filter(limit, func(m *models.Message) bool {
		return m.Recipient == recipient && !m.IsDraft
	}), nil
}

func (r *MessageRepository) ListSent(_ context.Context, sender string, drafts bool, limit int) ([]*models.Message, error) {
	return r.filter(limit, func(m *models.Message) bool {
		return m.Sender == sender && m.IsDraft == drafts
	}), nil
}

func (r *MessageRepository) MarkRead(_ context.Context, id, recipient string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m, ok := r.s.messages[id]; ok && m.Recipient == recipient {
		m.ReadAt = &at
		r.s.messages[id] = m
	}
	return nil
}

func (r *MessageRepository) MarkReadIfUnread(_ context.Context, id string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok || m.ReadAt != nil {
		return false, nil
	}
	m.ReadAt = &at
	r.s.messages[id] = m
	return true, nil
}

func (r *MessageRepository) SoftDelete(_ context.Context, id, participant string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok || !m.HasParticipant(participant) {
		return common.ErrorNotFound
	}
	m.IsDeleted = true
	r.s.messages[id] = m
	return nil
}

// filter returns non-deleted messages matching keep, newest first.
func (r *MessageRepository) filter(limit int, keep func(*models.Message) bool) []*models.Message {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*models.Message
	for _, m := range r.s.messages {
		if m.IsDeleted || !keep(&m) {
			continue
		}
		c := cloneMessage(m)
		result = append(result, &c)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return truncate(result, limit)
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

func cloneUser(u models.User) models.User {
	if u.LastSeen != nil {
		t := *u.LastSeen
		u.LastSeen = &t
	}
	return u
}

func cloneMessage(m models.Message) models.Message {
	if m.SecretCode != nil {
		c := *m.SecretCode
		m.SecretCode = &c
	}
	if m.ReadAt != nil {
		t := *m.ReadAt
		m.ReadAt = &t
	}
	return m
}
