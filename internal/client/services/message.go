package services

import (
	"context"

	"github.com/dmitrijs2005/loveletters/internal/client/client"
	"github.com/dmitrijs2005/loveletters/internal/client/models"
)

// MessageService wraps the message endpoints with the current session.
type MessageService interface {
	Send(ctx context.Context, msg models.NewMessage) (*models.Message, error)
	Inbox(ctx context.Context) ([]models.Message, error)
	Sent(ctx context.Context) ([]models.Message, error)
	Drafts(ctx context.Context) ([]models.Message, error)
	Get(ctx context.Context, id string) (*models.Message, error)
	Unlock(ctx context.Context, id, code string) error
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type messageService struct {
	client  client.Client
	session *Session
}

func NewMessageService(c client.Client, s *Session) MessageService {
	return &messageService{client: c, session: s}
}

func (m *messageService) Send(ctx context.Context, msg models.NewMessage) (*models.Message, error) {
	var sent *models.Message
	err := m.session.authorized(ctx, func(token string) (err error) {
		sent, err = m.client.Send(ctx, token, msg)
		return err
	})
	return sent, err
}

func (m *messageService) list(ctx context.Context, fn func(context.Context, string) ([]models.Message, error)) ([]models.Message, error) {
	var msgs []models.Message
	err := m.session.authorized(ctx, func(token string) (err error) {
		msgs, err = fn(ctx, token)
		return err
	})
	return msgs, err
}

func (m *messageService) Inbox(ctx context.Context) ([]models.Message, error) {
	return m.list(ctx, m.client.Inbox)
}

func (m *messageService) Sent(ctx context.Context) ([]models.Message, error) {
	return m.list(ctx, m.client.Sent)
}

func (m *messageService) Drafts(ctx context.Context) ([]models.Message, error) {
	return m.list(ctx, m.client.Drafts)
}

func (m *messageService) Get(ctx context.Context, id string) (*models.Message, error) {
	var msg *models.Message
	err := m.session.authorized(ctx, func(token string) (err error) {
		msg, err = m.client.Message(ctx, token, id)
		return err
	})
	return msg, err
}

func (m *messageService) Unlock(ctx context.Context, id, code string) error {
	return m.session.authorized(ctx, func(token string) error {
		return m.client.Unlock(ctx, token, id, code)
	})
}

func (m *messageService) MarkRead(ctx context.Context, id string) error {
	return m.session.authorized(ctx, func(token string) error {
		return m.client.MarkRead(ctx, token, id)
	})
}

func (m *messageService) Delete(ctx context.Context, id string) error {
	return m.session.authorized(ctx, func(token string) error {
		return m.client.Delete(ctx, token, id)
	})
}
