package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"barterBack/internal/models"
	"barterBack/internal/services"
)

type fakeRatingStore struct{ ratings []models.UserRating }

func (f *fakeRatingStore) Exists(ctx context.Context, raterID, threadID int) (bool, error) {
	for _, r := range f.ratings {
		if r.RaterID == raterID && r.ThreadID == threadID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRatingStore) CreateRating(ctx context.Context, rating models.UserRating) (models.UserRating, error) {
	f.ratings = append(f.ratings, rating)
	return rating, nil
}

func (f *fakeRatingStore) AverageForUser(ctx context.Context, userID int) (float64, error) {
	var sum, n int
	for _, r := range f.ratings {
		if r.UserID == userID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type fakeUserStore struct{ averages map[int]float64 }

func (f *fakeUserStore) SetAverageRating(ctx context.Context, userID int, value float64) error {
	if f.averages == nil {
		f.averages = make(map[int]float64)
	}
	f.averages[userID] = value
	return nil
}

func newRatingHandler(completed bool) *RatingHandler {
	threads := &fakeThreadStore{thread: models.Thread{
		ID:          1,
		InitiatorID: 100,
		ReceiverID:  200,
		Completed:   completed,
	}}
	svc := &services.RatingService{
		Threads: threads,
		Ratings: &fakeRatingStore{},
		Users:   &fakeUserStore{},
		Names:   fakeNameStore{},
	}
	return &RatingHandler{Service: svc}
}

func TestRateParticipantHandler(t *testing.T) {
	h := newRatingHandler(true)

	req := httptest.NewRequest(http.MethodPost, "/thread/rate",
		strings.NewReader(`{"thread_id":1,"rater_id":100,"score":4,"comment":"норм"}`))
	rec := httptest.NewRecorder()
	h.RateParticipant(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var res map[string]float64
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res["new_average"] != 4.0 {
		t.Fatalf("new_average = %v, want 4.0", res["new_average"])
	}
}

func TestRateParticipantHandlerErrors(t *testing.T) {
	tests := []struct {
		name      string
		completed bool
		body      string
		code      int
	}{
		{"invalid json", true, `{`, http.StatusBadRequest},
		{"unknown thread", true, `{"thread_id":42,"rater_id":100,"score":4}`, http.StatusNotFound},
		{"outsider", true, `{"thread_id":1,"rater_id":999,"score":4}`, http.StatusForbidden},
		{"score out of range", true, `{"thread_id":1,"rater_id":100,"score":6}`, http.StatusBadRequest},
		{"not completed", false, `{"thread_id":1,"rater_id":100,"score":4}`, http.StatusConflict},
	}
	for _, tt := range tests {
		h := newRatingHandler(tt.completed)
		req := httptest.NewRequest(http.MethodPost, "/thread/rate", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		h.RateParticipant(rec, req)
		if rec.Code != tt.code {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.code)
		}
	}
}

func TestRateParticipantHandlerDuplicate(t *testing.T) {
	h := newRatingHandler(true)
	body := `{"thread_id":1,"rater_id":100,"score":4}`

	req := httptest.NewRequest(http.MethodPost, "/thread/rate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RateParticipant(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first rate: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/thread/rate", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.RateParticipant(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("repeat rate: status = %d, want 409", rec.Code)
	}
}
