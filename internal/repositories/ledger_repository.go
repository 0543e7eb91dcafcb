package repositories

import (
	"context"
	"database/sql"
	"time"

	"barterBack/internal/models"
)

type LedgerRepository struct {
	DB *sql.DB
}

// AppendEntry is keyed by UNIQUE (user_id, thread_id): replaying the
// settlement fan-out after a crash cannot credit a ledger twice.
func (r *LedgerRepository) AppendEntry(ctx context.Context, e models.LedgerEntry) error {
	query := `INSERT IGNORE INTO ledger_entries
              (user_id, thread_id, gave_item_id, received_item_id, counterparty_id, counterparty_name, deleted, created_at)
              VALUES (?, ?, ?, ?, ?, ?, false, ?)`
	_, err := r.DB.ExecContext(ctx, query,
		e.UserID, e.ThreadID, e.GaveItemID, e.ReceivedItemID, e.CounterpartyID, e.CounterpartyName, time.Now())
	return err
}

func (r *LedgerRepository) GetEntriesByUserID(ctx context.Context, userID int) ([]models.LedgerEntry, error) {
	query := `
        SELECT le.id, le.user_id, le.thread_id, le.gave_item_id, le.received_item_id,
               le.counterparty_id, le.counterparty_name, le.created_at,
               gi.name, ri.name
        FROM ledger_entries le
        JOIN items gi ON gi.id = le.gave_item_id
        JOIN items ri ON ri.id = le.received_item_id
        WHERE le.user_id = ? AND le.deleted = false
        ORDER BY le.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.ThreadID, &e.GaveItemID, &e.ReceivedItemID,
			&e.CounterpartyID, &e.CounterpartyName, &e.CreatedAt,
			&e.GaveItemName, &e.ReceivedItemName)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *LedgerRepository) HasEntry(ctx context.Context, userID, threadID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE user_id = ? AND thread_id = ?`,
		userID, threadID).Scan(&count)
	return count > 0, err
}
