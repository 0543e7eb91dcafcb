package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"barterBack/internal/models"
)

type ItemRepository struct {
	DB *sql.DB
}

func (r *ItemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	query := `INSERT INTO items (user_id, name, description, category, exchanged, created_at)
              VALUES (?, ?, ?, ?, false, ?)`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query, item.UserID, item.Name, item.Description, item.Category, now)
	if err != nil {
		return models.Item{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Item{}, err
	}
	item.ID = int(id)
	item.CreatedAt = now
	return item, nil
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	var item models.Item
	query := `SELECT id, user_id, name, description, category, exchanged, created_at, updated_at
              FROM items WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Description, &item.Category,
		&item.Exchanged, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, models.ErrItemNotFound
	}
	return item, err
}

func (r *ItemRepository) GetItemsByUserID(ctx context.Context, userID int) ([]models.Item, error) {
	query := `SELECT id, user_id, name, description, category, exchanged, created_at, updated_at
              FROM items WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &item.Category,
			&item.Exchanged, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, category = ?, updated_at = ?
              WHERE id = ? AND exchanged = false`
	res, err := r.DB.ExecContext(ctx, query, item.Name, item.Description, item.Category, time.Now(), item.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrItemExchanged
	}
	return nil
}

// SetExchanged is idempotent: the flag only ever goes false -> true.
func (r *ItemRepository) SetExchanged(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE items SET exchanged = true, updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

func (r *ItemRepository) DeleteItem(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND exchanged = false`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrItemExchanged
	}
	return nil
}
