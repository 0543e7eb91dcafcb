package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"barterBack/internal/cache"
	"barterBack/internal/models"
	"barterBack/internal/repositories"
	"barterBack/utils"
)

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo   *repositories.UserRepository
	LedgerRepo *repositories.LedgerRepository
	NameCache  *cache.NameCache
	Tokens     *utils.Manager
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hash)
	if user.Role == "" {
		user.Role = "user"
	}
	return s.UserRepo.CreateUser(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.UserRepo.GetUserByPhone(ctx, req.Phone)
	if err != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}

	access, err := s.Tokens.NewJWT(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	user.Password = ""
	return user, models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, user models.User) error {
	if err := s.UserRepo.UpdateUser(ctx, user); err != nil {
		return err
	}
	// Снимок имени в кеше больше не актуален.
	s.NameCache.Invalidate(ctx, user.ID)
	return nil
}

func (s *UserService) GetLedgerByUserID(ctx context.Context, userID int) ([]models.LedgerEntry, error) {
	return s.LedgerRepo.GetEntriesByUserID(ctx, userID)
}

func (s *UserService) SaveDeviceToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.SaveDeviceToken(ctx, userID, token)
}
