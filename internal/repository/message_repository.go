package repository

import (
	"context"
	"fmt"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	*base.Repository
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт сообщение
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	query := `
		INSERT INTO messages (sender_id, recipient_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, sent_at
	`

	err := r.QueryRow(
		ctx, query,
		message.SenderID,
		message.RecipientID,
		message.Body,
	).Scan(&message.ID, &message.IsRead, &message.SentAt)

	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

// GetByID получает сообщение по ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	query := `
		SELECT id, sender_id, recipient_id, body, is_read, sent_at
		FROM messages
		WHERE id = $1
	`

	var message model.Message
	err := r.QueryRow(ctx, query, id).Scan(
		&message.ID,
		&message.SenderID,
		&message.RecipientID,
		&message.Body,
		&message.IsRead,
		&message.SentAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message by id: %w", err)
	}

	return &message, nil
}

// GetConversation получает переписку двух пользователей в хронологическом порядке
func (r *MessageRepository) GetConversation(ctx context.Context, userID, otherID int64) ([]*model.Message, error) {
	query := `
		SELECT id, sender_id, recipient_id, body, is_read, sent_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY sent_at
	`

	rows, err := r.Query(ctx, query, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var message model.Message
		err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.RecipientID,
			&message.Body,
			&message.IsRead,
			&message.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

// MarkRead помечает прочитанными все входящие сообщения от собеседника
func (r *MessageRepository) MarkRead(ctx context.Context, recipientID, senderID int64) error {
	query := `
		UPDATE messages
		SET is_read = TRUE
		WHERE recipient_id = $1 AND sender_id = $2 AND is_read = FALSE
	`

	if _, err := r.ExecAffected(ctx, query, recipientID, senderID); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}

	return nil
}
