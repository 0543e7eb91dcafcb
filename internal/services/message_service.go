package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"barterBack/internal/models"
	"barterBack/internal/repositories"
)

type MessageService struct {
	MessageRepo *repositories.MessageRepository
	ThreadRepo  *repositories.ThreadRepository
	Notifier    Notifier
}

func (s *MessageService) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return models.Message{}, models.ErrNoRecord
	}
	thread, err := s.ThreadRepo.GetThreadByID(ctx, msg.ThreadID)
	if err != nil {
		return models.Message{}, err
	}
	if !thread.HasParticipant(msg.SenderID) {
		return models.Message{}, models.ErrNotAParticipant
	}

	msg.ID = uuid.NewString()
	msg.ReceiverID = thread.OtherParty(msg.SenderID)
	msg.Kind = models.MessageKindText
	msg.CreatedAt = time.Now()

	msg, err = s.MessageRepo.CreateMessage(ctx, msg)
	if err != nil {
		return models.Message{}, err
	}
	if s.Notifier != nil {
		s.Notifier.Notify(msg.ReceiverID, "new_message", map[string]string{
			"thread_id": fmt.Sprint(msg.ThreadID),
		})
	}
	return msg, nil
}

func (s *MessageService) GetMessagesByThreadID(ctx context.Context, threadID int) ([]models.Message, error) {
	return s.MessageRepo.GetMessagesByThreadID(ctx, threadID)
}

func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	return s.MessageRepo.DeleteMessage(ctx, id)
}
