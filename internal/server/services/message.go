package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/logging"
	"github.com/dmitrijs2005/loveletters/internal/server/metrics"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NewMessage is the sender-supplied part of a message.
type NewMessage struct {
	Recipient  string
	Content    string
	SecretCode *string
	IsDraft    bool
}

// MessageService decides who may see, unlock, mark and delete which message.
// Every method takes the authenticated username as actor and re-reads the
// message from the store.
//
// A message nobody may see and a message that does not exist look the same
// to callers: both give common.ErrorNotFound.
type MessageService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewMessageService(m repomanager.RepositoryManager, logger logging.Logger) *MessageService {
	return &MessageService{
		repomanager: m,
		logger:      logger.With("module", "messages"),
		now:         time.Now,
	}
}

// Send stores a new message from actor. The recipient is not checked
// against the user list.
func (s *MessageService) Send(ctx context.Context, actor string, in NewMessage) (*models.Message, error) {
	if in.Recipient == "" {
		return nil, fmt.Errorf("%w: recipient is required", common.ErrorValidation)
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		Sender:     actor,
		Recipient:  in.Recipient,
		Content:    in.Content,
		SecretCode: in.SecretCode,
		CreatedAt:  s.now().UTC(),
		IsDraft:    in.IsDraft,
	}

	if err := s.repomanager.Messages().Create(ctx, msg); err != nil {
		return nil, s.internal(ctx, "send", err)
	}

	metrics.RecordMessageOperation("send", metrics.OutcomeSuccess)
	s.logger.Info(ctx, "message stored", "id", msg.ID, "draft", msg.IsDraft, "locked", msg.IsLocked())

	return msg, nil
}

func (s *MessageService) Inbox(ctx context.Context, actor string) ([]*models.Message, error) {
	list, err := s.repomanager.Messages().ListReceived(ctx, actor, common.MaxListSize)
	if err != nil {
		return nil, s.internal(ctx, "inbox", err)
	}
	return list, nil
}

func (s *MessageService) Sent(ctx context.Context, actor string) ([]*models.Message, error) {
	list, err := s.repomanager.Messages().ListSent(ctx, actor, false, common.MaxListSize)
	if err != nil {
		return nil, s.internal(ctx, "sent", err)
	}
	return list, nil
}

func (s *MessageService) Drafts(ctx context.Context, actor string) ([]*models.Message, error) {
	list, err := s.repomanager.Messages().ListSent(ctx, actor, true, common.MaxListSize)
	if err != nil {
		return nil, s.internal(ctx, "drafts", err)
	}
	return list, nil
}

// Get returns message id if actor sent or received it. Soft-deleted messages
// are still returned here.
func (s *MessageService) Get(ctx context.Context, actor, id string) (*models.Message, error) {
	msg, err := s.find(ctx, "get", id)
	if err != nil {
		return nil, err
	}
	if !msg.HasParticipant(actor) {
		return nil, common.ErrorNotFound
	}
	return msg, nil
}

// Unlock confirms a locked message with its code and stamps it read. Only
// the recipient may unlock. Unlocking an already read message succeeds
// without touching the read time. A message without a code never unlocks.
func (s *MessageService) Unlock(ctx context.Context, actor, id, code string) error {
	msg, err := s.find(ctx, "unlock", id)
	if err != nil {
		return err
	}
	if msg.Recipient != actor {
		return common.ErrorNotFound
	}

	if msg.SecretCode == nil || *msg.SecretCode != code {
		metrics.RecordMessageOperation("unlock", metrics.OutcomeFailure)
		s.logger.Debug(ctx, "unlock rejected", "id", id)
		return common.ErrWrongCode
	}

	if msg.ReadAt == nil {
		if _, err := s.repomanager.Messages().MarkReadIfUnread(ctx, id, s.now().UTC()); err != nil {
			return s.internal(ctx, "unlock", err)
		}
	}

	metrics.RecordMessageOperation("unlock", metrics.OutcomeSuccess)
	return nil
}

// MarkRead stamps the read time on id if actor is its recipient. It does not
// look at the secret code, overwrites an earlier read time and reports
// success when nothing matched.
func (s *MessageService) MarkRead(ctx context.Context, actor, id string) error {
	if err := s.repomanager.Messages().MarkRead(ctx, id, actor, s.now().UTC()); err != nil {
		return s.internal(ctx, "read", err)
	}
	metrics.RecordMessageOperation("read", metrics.OutcomeSuccess)
	return nil
}

// Delete soft-deletes id for either participant.
func (s *MessageService) Delete(ctx context.Context, actor, id string) error {
	err := s.repomanager.Messages().SoftDelete(ctx, id, actor)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			metrics.RecordMessageOperation("delete", metrics.OutcomeFailure)
			return err
		}
		return s.internal(ctx, "delete", err)
	}

	metrics.RecordMessageOperation("delete", metrics.OutcomeSuccess)
	s.logger.Info(ctx, "message deleted", "id", id)
	return nil
}

func (s *MessageService) find(ctx context.Context, op, id string) (*models.Message, error) {
	msg, err := s.repomanager.Messages().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			metrics.RecordMessageOperation(op, metrics.OutcomeFailure)
			return nil, err
		}
		return nil, s.internal(ctx, op, err)
	}
	return msg, nil
}

func (s *MessageService) internal(ctx context.Context, op string, err error) error {
	metrics.RecordMessageOperation(op, metrics.OutcomeError)
	s.logger.Error(ctx, "message store failed", "operation", op, "error", err)
	return common.ErrorInternal
}
