package services

import (
	"context"

	"barterBack/internal/cache"
	"barterBack/internal/repositories"
)

// DisplayNameResolver reads user display names through the redis cache with
// fall-through to the users table.
type DisplayNameResolver struct {
	Cache *cache.NameCache
	Users *repositories.UserRepository
}

func (r *DisplayNameResolver) GetDisplayName(ctx context.Context, userID int) (string, error) {
	if name, ok := r.Cache.Get(ctx, userID); ok {
		return name, nil
	}
	name, err := r.Users.GetDisplayName(ctx, userID)
	if err != nil {
		return "", err
	}
	r.Cache.Set(ctx, userID, name)
	return name, nil
}
