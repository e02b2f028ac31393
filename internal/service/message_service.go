package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chinazagideon/alx-travel-app/internal/clock"
	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/notify"
	"github.com/chinazagideon/alx-travel-app/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageService struct {
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	queue       notify.Queue
	clock       clock.Clock
	logger      *zap.Logger
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	queue notify.Queue,
	clk clock.Clock,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		queue:       queue,
		clock:       clk,
		logger:      logger,
	}
}

// SendMessage отправляет сообщение другому пользователю и ставит
// в очередь уведомление получателю
func (s *MessageService) SendMessage(ctx context.Context, senderID, recipientID int64, body string) (*model.Message, error) {
	if senderID == recipientID {
		return nil, model.ErrSelfMessage
	}
	if strings.TrimSpace(body) == "" {
		return nil, model.ErrEmptyBody
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("get recipient: %w", err)
	}
	if recipient == nil {
		return nil, model.ErrUserNotFound
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Уведомление получателю — fire-and-forget
	err = s.queue.Enqueue(ctx, notify.Job{
		ID:        uuid.NewString(),
		Type:      notify.JobMessageReceived,
		MessageID: message.ID,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn("Failed to enqueue message notification",
			zap.Int64("message_id", message.ID),
			zap.Error(err),
		)
	}

	return message, nil
}

// GetConversation получает переписку с собеседником и помечает
// входящие сообщения прочитанными
func (s *MessageService) GetConversation(ctx context.Context, userID, otherID int64) ([]*model.Message, error) {
	messages, err := s.messageRepo.GetConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkRead(ctx, userID, otherID); err != nil {
		s.logger.Warn("Failed to mark messages read",
			zap.Int64("user_id", userID),
			zap.Int64("other_id", otherID),
			zap.Error(err),
		)
	}

	return messages, nil
}
