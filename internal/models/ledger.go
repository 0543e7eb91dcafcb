package models

import "time"

// LedgerEntry is one line of a user's exchange history. Exactly one entry
// exists per user per settled thread; the (user_id, thread_id) pair is
// unique in storage.
type LedgerEntry struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	ThreadID         int       `json:"thread_id"`
	GaveItemID       int       `json:"gave_item_id"`
	ReceivedItemID   int       `json:"received_item_id"`
	CounterpartyID   int       `json:"counterparty_id"`
	CounterpartyName string    `json:"counterparty_name"`
	Deleted          bool      `json:"-"`
	CreatedAt        time.Time `json:"created_at"`

	// Заполняются JOIN-ом при чтении.
	GaveItemName     string `json:"gave_item_name,omitempty"`
	ReceivedItemName string `json:"received_item_name,omitempty"`
}
