package repositories

import (
	"context"
	"database/sql"
	"time"

	"barterBack/internal/models"
)

type RatingRepository struct {
	DB *sql.DB
}

// Exists reports whether the rater already rated this thread. The UNIQUE
// (rater_id, thread_id) key on user_ratings backs this check at the storage
// level as well.
func (r *RatingRepository) Exists(ctx context.Context, raterID, threadID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_ratings WHERE rater_id = ? AND thread_id = ?`,
		raterID, threadID).Scan(&count)
	return count > 0, err
}

func (r *RatingRepository) CreateRating(ctx context.Context, rating models.UserRating) (models.UserRating, error) {
	query := `INSERT INTO user_ratings (user_id, rater_id, rater_name, thread_id, score, comment, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query,
		rating.UserID, rating.RaterID, rating.RaterName, rating.ThreadID, rating.Score, rating.Comment, now)
	if err != nil {
		return models.UserRating{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.UserRating{}, err
	}
	rating.ID = int(id)
	rating.CreatedAt = now
	return rating, nil
}

func (r *RatingRepository) AverageForUser(ctx context.Context, userID int) (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(score), 0) FROM user_ratings WHERE user_id = ?`, userID).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if avg.Valid {
		return avg.Float64, nil
	}
	return 0, nil
}

func (r *RatingRepository) GetRatingsByUserID(ctx context.Context, userID int) ([]models.UserRating, error) {
	query := `SELECT id, user_id, rater_id, rater_name, thread_id, score, comment, created_at
              FROM user_ratings WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []models.UserRating{}
	for rows.Next() {
		var rating models.UserRating
		err := rows.Scan(&rating.ID, &rating.UserID, &rating.RaterID, &rating.RaterName,
			&rating.ThreadID, &rating.Score, &rating.Comment, &rating.CreatedAt)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
