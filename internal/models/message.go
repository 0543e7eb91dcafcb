package models

import "time"

// Виды сообщений в потоке.
const (
	MessageKindText       = "text"
	MessageKindSettlement = "settlement"
)

// Структура сообщения
type Message struct {
	ID         string    `json:"id"`
	ThreadID   int       `json:"thread_id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Kind       string    `json:"kind"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
