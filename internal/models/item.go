package models

import "time"

type Item struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	Exchanged   bool       `json:"exchanged"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
