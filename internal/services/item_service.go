package services

import (
	"context"

	"barterBack/internal/models"
	"barterBack/internal/repositories"
)

type ItemService struct {
	ItemRepo *repositories.ItemRepository
}

func (s *ItemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	return s.ItemRepo.CreateItem(ctx, item)
}

func (s *ItemService) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	return s.ItemRepo.GetItemByID(ctx, id)
}

func (s *ItemService) GetItemsByUserID(ctx context.Context, userID int) ([]models.Item, error) {
	return s.ItemRepo.GetItemsByUserID(ctx, userID)
}

func (s *ItemService) UpdateItem(ctx context.Context, item models.Item) error {
	return s.ItemRepo.UpdateItem(ctx, item)
}

func (s *ItemService) DeleteItem(ctx context.Context, id int) error {
	return s.ItemRepo.DeleteItem(ctx, id)
}
