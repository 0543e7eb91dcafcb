package models

import "time"

// Статусы потока обмена.
const (
	ThreadProposed           = "proposed"
	ThreadPartiallyConfirmed = "partially_confirmed"
	ThreadCompleted          = "completed"
)

// Thread is the negotiation between two users over a proposed barter.
// InitiatorID opens the thread offering OfferedItemID in exchange for
// RequestedItemID owned by ReceiverID. Item references may be absent for a
// plain conversation thread; settlement only activates when both are set.
type Thread struct {
	ID              int        `json:"id"`
	InitiatorID     int        `json:"initiator_id"`
	ReceiverID      int        `json:"receiver_id"`
	OfferedItemID   *int       `json:"offered_item_id,omitempty"`
	RequestedItemID *int       `json:"requested_item_id,omitempty"`
	Confirmations   []int      `json:"confirmations"`
	Completed       bool       `json:"completed"`
	Rating          *int       `json:"rating,omitempty"` // устаревшее поле, только для отображения
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func (t Thread) HasParticipant(userID int) bool {
	return userID == t.InitiatorID || userID == t.ReceiverID
}

// OtherParty returns the counterparty of userID. The caller must have
// checked HasParticipant first.
func (t Thread) OtherParty(userID int) int {
	if userID == t.InitiatorID {
		return t.ReceiverID
	}
	return t.InitiatorID
}

func (t Thread) HasConfirmed(userID int) bool {
	for _, id := range t.Confirmations {
		if id == userID {
			return true
		}
	}
	return false
}

// ReadyForSettlement reports whether both sides put an item on the table.
func (t Thread) ReadyForSettlement() bool {
	return t.OfferedItemID != nil && t.RequestedItemID != nil
}

// State derives the display status from the confirmation set.
func (t Thread) State() string {
	switch {
	case t.Completed:
		return ThreadCompleted
	case len(t.Confirmations) == 1:
		return ThreadPartiallyConfirmed
	default:
		return ThreadProposed
	}
}
