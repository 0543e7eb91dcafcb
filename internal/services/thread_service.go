package services

import (
	"context"

	"barterBack/internal/models"
	"barterBack/internal/repositories"
)

type ThreadService struct {
	ThreadRepo *repositories.ThreadRepository
	ItemRepo   *repositories.ItemRepository
}

// CreateThread opens a negotiation. Item references are validated to belong
// to the right side of the table before the thread is stored.
func (s *ThreadService) CreateThread(ctx context.Context, t models.Thread) (models.Thread, error) {
	if t.OfferedItemID != nil {
		item, err := s.ItemRepo.GetItemByID(ctx, *t.OfferedItemID)
		if err != nil {
			return models.Thread{}, err
		}
		if item.UserID != t.InitiatorID {
			return models.Thread{}, models.ErrNotAParticipant
		}
		if item.Exchanged {
			return models.Thread{}, models.ErrItemExchanged
		}
	}
	if t.RequestedItemID != nil {
		item, err := s.ItemRepo.GetItemByID(ctx, *t.RequestedItemID)
		if err != nil {
			return models.Thread{}, err
		}
		if item.UserID != t.ReceiverID {
			return models.Thread{}, models.ErrNotAParticipant
		}
		if item.Exchanged {
			return models.Thread{}, models.ErrItemExchanged
		}
	}
	return s.ThreadRepo.CreateThread(ctx, t)
}

func (s *ThreadService) GetThreadByID(ctx context.Context, id int) (models.Thread, error) {
	return s.ThreadRepo.GetThreadByID(ctx, id)
}

func (s *ThreadService) GetThreadsByUserID(ctx context.Context, userID int) ([]models.Thread, error) {
	return s.ThreadRepo.GetThreadsByUserID(ctx, userID)
}
