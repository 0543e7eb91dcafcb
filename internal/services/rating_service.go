package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"barterBack/internal/models"
)

type RatingThreadStore interface {
	GetThreadByID(ctx context.Context, id int) (models.Thread, error)
	SetRating(ctx context.Context, threadID, score int) error
}

type RatingStore interface {
	Exists(ctx context.Context, raterID, threadID int) (bool, error)
	CreateRating(ctx context.Context, rating models.UserRating) (models.UserRating, error)
	AverageForUser(ctx context.Context, userID int) (float64, error)
}

type RatingUserStore interface {
	SetAverageRating(ctx context.Context, userID int, value float64) error
}

// RatingService lets each party of a settled exchange rate the other once.
type RatingService struct {
	Threads  RatingThreadStore
	Ratings  RatingStore
	Users    RatingUserStore
	Names    SettlementNameStore
	Notifier Notifier

	locks keyedMutex
}

// Rate validates the request, appends the rating to the counterparty and
// recomputes the counterparty's average. The read-modify-write on one ratee
// is serialized by a per-ratee lock; raters of different users never contend.
func (s *RatingService) Rate(ctx context.Context, threadID, raterID, score int, comment string) (float64, error) {
	thread, err := s.Threads.GetThreadByID(ctx, threadID)
	if err != nil {
		return 0, err
	}
	if !thread.HasParticipant(raterID) {
		return 0, models.ErrNotAParticipant
	}
	if score < 1 || score > 5 {
		return 0, models.ErrInvalidScore
	}
	if !thread.Completed {
		return 0, models.ErrThreadNotCompleted
	}

	rateeID := thread.OtherParty(raterID)
	unlock := s.locks.lock(rateeID)
	defer unlock()

	exists, err := s.Ratings.Exists(ctx, raterID, threadID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, models.ErrAlreadyRated
	}

	// Имя фиксируем в момент записи: отзыв остаётся читаемым, даже если
	// автор потом переименуется.
	raterName, err := s.Names.GetDisplayName(ctx, raterID)
	if err != nil {
		return 0, err
	}

	_, err = s.Ratings.CreateRating(ctx, models.UserRating{
		UserID:    rateeID,
		RaterID:   raterID,
		RaterName: raterName,
		ThreadID:  threadID,
		Score:     score,
		Comment:   comment,
	})
	if err != nil {
		return 0, err
	}

	avg, err := s.Ratings.AverageForUser(ctx, rateeID)
	if err != nil {
		return 0, err
	}
	avg = math.Round(avg*10) / 10
	if err := s.Users.SetAverageRating(ctx, rateeID, avg); err != nil {
		return 0, err
	}

	if err := s.Threads.SetRating(ctx, threadID, score); err != nil {
		log.Printf("set legacy thread rating: %v", err)
	}
	if s.Notifier != nil {
		s.Notifier.Notify(rateeID, "new_rating", map[string]string{
			"thread_id": fmt.Sprint(threadID),
			"score":     fmt.Sprint(score),
		})
	}
	return avg, nil
}
