package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"barterBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `INSERT INTO users (name, phone, email, password, city, role, average_rating, created_at)
              VALUES (?, ?, ?, ?, ?, ?, 0, ?)`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Phone, user.Email, user.Password, user.City, user.Role, now)
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	user.CreatedAt = now
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `SELECT id, name, phone, email, city, avatar_path, average_rating, role, created_at, updated_at
              FROM users WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Phone, &user.Email, &user.City,
		&user.AvatarPath, &user.AverageRating, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return user, err
}

func (r *UserRepository) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var user models.User
	query := `SELECT id, name, phone, email, password, city, average_rating, role, created_at
              FROM users WHERE phone = ?`
	err := r.DB.QueryRowContext(ctx, query, phone).Scan(
		&user.ID, &user.Name, &user.Phone, &user.Email, &user.Password,
		&user.City, &user.AverageRating, &user.Role, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return user, err
}

func (r *UserRepository) GetDisplayName(ctx context.Context, id int) (string, error) {
	var name string
	err := r.DB.QueryRowContext(ctx, `SELECT name FROM users WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUserNotFound
	}
	return name, err
}

func (r *UserRepository) UpdateUser(ctx context.Context, user models.User) error {
	query := `UPDATE users SET name = ?, email = ?, city = ?, avatar_path = ?, updated_at = ? WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Email, user.City, user.AvatarPath, time.Now(), user.ID)
	return err
}

func (r *UserRepository) SetAverageRating(ctx context.Context, userID int, value float64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET average_rating = ?, updated_at = ? WHERE id = ?`, value, time.Now(), userID)
	return err
}

func (r *UserRepository) CreateSession(ctx context.Context, s models.Session) error {
	query := `INSERT INTO sessions (user_id, role, refresh_token, expires_at)
              VALUES (?, ?, ?, ?)
              ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)`
	_, err := r.DB.ExecContext(ctx, query, s.UserID, s.Role, s.RefreshToken, s.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	query := `SELECT user_id, role, refresh_token, expires_at FROM sessions WHERE refresh_token = ?`
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(&s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, nil
	}
	return s, err
}

func (r *UserRepository) SaveDeviceToken(ctx context.Context, userID int, token string) error {
	query := `INSERT INTO device_tokens (user_id, token, created_at)
              VALUES (?, ?, ?)
              ON DUPLICATE KEY UPDATE created_at = VALUES(created_at)`
	_, err := r.DB.ExecContext(ctx, query, userID, token, time.Now())
	return err
}

func (r *UserRepository) GetDeviceTokens(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT token FROM device_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}
