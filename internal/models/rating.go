package models

import "time"

// UserRating is a score one party left for the other after a settled
// exchange. At most one rating exists per (rater_id, thread_id).
type UserRating struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"` // кого оценили
	RaterID   int       `json:"rater_id"`
	RaterName string    `json:"rater_name"`
	ThreadID  int       `json:"thread_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
