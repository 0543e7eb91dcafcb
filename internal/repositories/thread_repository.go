package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"barterBack/internal/models"
)

type ThreadRepository struct {
	DB *sql.DB
}

func (r *ThreadRepository) CreateThread(ctx context.Context, t models.Thread) (models.Thread, error) {
	query := `INSERT INTO threads (initiator_id, receiver_id, offered_item_id, requested_item_id, completed, created_at)
              VALUES (?, ?, ?, ?, false, ?)`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query, t.InitiatorID, t.ReceiverID, t.OfferedItemID, t.RequestedItemID, now)
	if err != nil {
		return models.Thread{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Thread{}, err
	}
	t.ID = int(id)
	t.CreatedAt = now
	t.Confirmations = []int{}
	return t, nil
}

func (r *ThreadRepository) GetThreadByID(ctx context.Context, id int) (models.Thread, error) {
	var t models.Thread
	query := `SELECT id, initiator_id, receiver_id, offered_item_id, requested_item_id, completed, rating, created_at, updated_at
              FROM threads WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.InitiatorID, &t.ReceiverID, &t.OfferedItemID, &t.RequestedItemID,
		&t.Completed, &t.Rating, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Thread{}, models.ErrThreadNotFound
		}
		return models.Thread{}, err
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT user_id FROM thread_confirmations WHERE thread_id = ?`, id)
	if err != nil {
		return models.Thread{}, err
	}
	defer rows.Close()

	t.Confirmations = []int{}
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return models.Thread{}, err
		}
		t.Confirmations = append(t.Confirmations, userID)
	}
	return t, rows.Err()
}

func (r *ThreadRepository) GetThreadsByUserID(ctx context.Context, userID int) ([]models.Thread, error) {
	query := `SELECT id, initiator_id, receiver_id, offered_item_id, requested_item_id, completed, rating, created_at, updated_at
              FROM threads
              WHERE initiator_id = ? OR receiver_id = ?
              ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	threads := []models.Thread{}
	for rows.Next() {
		var t models.Thread
		err := rows.Scan(&t.ID, &t.InitiatorID, &t.ReceiverID, &t.OfferedItemID, &t.RequestedItemID,
			&t.Completed, &t.Rating, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

// AddConfirmation записывает подтверждение; повторный вызов для той же пары
// (thread_id, user_id) не меняет ничего — первичный ключ по обоим полям.
func (r *ThreadRepository) AddConfirmation(ctx context.Context, threadID, userID int) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT IGNORE INTO thread_confirmations (thread_id, user_id, created_at) VALUES (?, ?, ?)`,
		threadID, userID, time.Now())
	return err
}

func (r *ThreadRepository) CountConfirmations(ctx context.Context, threadID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM thread_confirmations WHERE thread_id = ?`, threadID).Scan(&count)
	return count, err
}

// MarkCompleted flips the completed flag once and reports whether this call
// did the flip. The WHERE completed = false guard makes the transition a
// compare-and-set, so two racing confirmers cannot both win.
func (r *ThreadRepository) MarkCompleted(ctx context.Context, threadID int) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE threads SET completed = true, updated_at = ? WHERE id = ? AND completed = false`,
		time.Now(), threadID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *ThreadRepository) SetRating(ctx context.Context, threadID, score int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE threads SET rating = ?, updated_at = ? WHERE id = ?`, score, time.Now(), threadID)
	return err
}
