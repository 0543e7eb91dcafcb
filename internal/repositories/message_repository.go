package repositories

import (
	"context"
	"database/sql"
	"time"

	"barterBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	query := `INSERT INTO messages (id, thread_id, sender_id, receiver_id, kind, text, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query,
		msg.ID, msg.ThreadID, msg.SenderID, msg.ReceiverID, msg.Kind, msg.Text, msg.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// CreateSettlementNotice inserts the completion summary addressed to one
// party. The message id is deterministic per (thread, receiver), so a
// replayed fan-out lands on the same primary key and INSERT IGNORE keeps
// the trail single.
func (r *MessageRepository) CreateSettlementNotice(ctx context.Context, msg models.Message) error {
	query := `INSERT IGNORE INTO messages (id, thread_id, sender_id, receiver_id, kind, text, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query,
		msg.ID, msg.ThreadID, msg.SenderID, msg.ReceiverID, models.MessageKindSettlement, msg.Text, time.Now())
	return err
}

func (r *MessageRepository) GetMessagesByThreadID(ctx context.Context, threadID int) ([]models.Message, error) {
	query := `SELECT id, thread_id, sender_id, receiver_id, kind, text, created_at
              FROM messages WHERE thread_id = ? ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(&msg.ID, &msg.ThreadID, &msg.SenderID, &msg.ReceiverID, &msg.Kind, &msg.Text, &msg.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) DeleteMessage(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM messages WHERE id = ? AND kind <> ?`, id, models.MessageKindSettlement)
	return err
}
