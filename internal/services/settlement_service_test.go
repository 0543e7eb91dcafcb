package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"barterBack/internal/models"
)

type stubThreadStore struct {
	mu            sync.Mutex
	threads       map[int]models.Thread
	confirmations map[int]map[int]bool
	ratings       map[int]int
}

func newStubThreadStore(threads ...models.Thread) *stubThreadStore {
	s := &stubThreadStore{
		threads:       make(map[int]models.Thread),
		confirmations: make(map[int]map[int]bool),
		ratings:       make(map[int]int),
	}
	for _, t := range threads {
		s.threads[t.ID] = t
		s.confirmations[t.ID] = make(map[int]bool)
	}
	return s
}

func (s *stubThreadStore) GetThreadByID(ctx context.Context, id int) (models.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[id]
	if !ok {
		return models.Thread{}, models.ErrThreadNotFound
	}
	t.Confirmations = nil
	for userID := range s.confirmations[id] {
		t.Confirmations = append(t.Confirmations, userID)
	}
	return t, nil
}

func (s *stubThreadStore) AddConfirmation(ctx context.Context, threadID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmations[threadID][userID] = true
	return nil
}

func (s *stubThreadStore) CountConfirmations(ctx context.Context, threadID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.confirmations[threadID]), nil
}

func (s *stubThreadStore) MarkCompleted(ctx context.Context, threadID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.threads[threadID]
	if t.Completed {
		return false, nil
	}
	t.Completed = true
	s.threads[threadID] = t
	return true, nil
}

func (s *stubThreadStore) SetRating(ctx context.Context, threadID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[threadID] = score
	return nil
}

type stubItemStore struct {
	mu    sync.Mutex
	items map[int]models.Item
}

func (s *stubItemStore) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.Item{}, models.ErrItemNotFound
	}
	return item, nil
}

func (s *stubItemStore) SetExchanged(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.items[id]
	item.Exchanged = true
	s.items[id] = item
	return nil
}

type stubLedgerStore struct {
	mu      sync.Mutex
	entries map[[2]int]models.LedgerEntry // (userID, threadID)
	failing bool
}

func (s *stubLedgerStore) AppendEntry(ctx context.Context, e models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("ledger unavailable")
	}
	if s.entries == nil {
		s.entries = make(map[[2]int]models.LedgerEntry)
	}
	key := [2]int{e.UserID, e.ThreadID}
	if _, ok := s.entries[key]; ok {
		return nil // как INSERT IGNORE по (user_id, thread_id)
	}
	s.entries[key] = e
	return nil
}

func (s *stubLedgerStore) entriesFor(userID int) []models.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LedgerEntry
	for key, e := range s.entries {
		if key[0] == userID {
			out = append(out, e)
		}
	}
	return out
}

type stubMessageStore struct {
	mu      sync.Mutex
	notices map[string]models.Message
}

func (s *stubMessageStore) CreateSettlementNotice(ctx context.Context, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notices == nil {
		s.notices = make(map[string]models.Message)
	}
	if _, ok := s.notices[msg.ID]; ok {
		return nil // детерминированный id, как INSERT IGNORE
	}
	s.notices[msg.ID] = msg
	return nil
}

type stubNameStore struct {
	names map[int]string
}

func (s *stubNameStore) GetDisplayName(ctx context.Context, id int) (string, error) {
	name, ok := s.names[id]
	if !ok {
		return "", models.ErrUserNotFound
	}
	return name, nil
}

type stubNotifier struct {
	mu     sync.Mutex
	events []string
}

func (s *stubNotifier) Notify(userID int, event string, payload map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func intPtr(v int) *int { return &v }

func newSettlementFixture() (*SettlementService, *stubThreadStore, *stubItemStore, *stubLedgerStore, *stubMessageStore, *stubNotifier) {
	threads := newStubThreadStore(models.Thread{
		ID:              1,
		InitiatorID:     100,
		ReceiverID:      200,
		OfferedItemID:   intPtr(10),
		RequestedItemID: intPtr(20),
	})
	items := &stubItemStore{items: map[int]models.Item{
		10: {ID: 10, UserID: 100, Name: "Велосипед"},
		20: {ID: 20, UserID: 200, Name: "Гитара"},
	}}
	ledger := &stubLedgerStore{}
	messages := &stubMessageStore{}
	notifier := &stubNotifier{}
	svc := &SettlementService{
		Threads:  threads,
		Items:    items,
		Ledger:   ledger,
		Messages: messages,
		Names:    &stubNameStore{names: map[int]string{100: "Аслан", 200: "Мария"}},
		Notifier: notifier,
	}
	return svc, threads, items, ledger, messages, notifier
}

func TestConfirmHappyPath(t *testing.T) {
	svc, threads, items, ledger, messages, _ := newSettlementFixture()
	ctx := context.Background()

	res, err := svc.Confirm(ctx, 1, 100)
	if err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	if !res.Confirmed || res.Completed {
		t.Fatalf("expected confirmed without completion, got %+v", res)
	}
	thread, _ := threads.GetThreadByID(ctx, 1)
	if thread.State() != models.ThreadPartiallyConfirmed {
		t.Fatalf("expected partially_confirmed, got %s", thread.State())
	}
	if items.items[10].Exchanged || items.items[20].Exchanged {
		t.Fatal("items must not flip before both confirmations")
	}

	res, err = svc.Confirm(ctx, 1, 200)
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
	if !res.Completed {
		t.Fatalf("expected completion, got %+v", res)
	}
	if !items.items[10].Exchanged || !items.items[20].Exchanged {
		t.Fatal("both items must be exchanged after completion")
	}

	e100 := ledger.entriesFor(100)
	if len(e100) != 1 {
		t.Fatalf("expected 1 ledger entry for initiator, got %d", len(e100))
	}
	if e100[0].GaveItemID != 10 || e100[0].ReceivedItemID != 20 || e100[0].CounterpartyID != 200 {
		t.Fatalf("initiator entry wrong: %+v", e100[0])
	}
	if e100[0].CounterpartyName != "Мария" {
		t.Fatalf("counterparty name not resolved: %+v", e100[0])
	}
	e200 := ledger.entriesFor(200)
	if len(e200) != 1 {
		t.Fatalf("expected 1 ledger entry for receiver, got %d", len(e200))
	}
	if e200[0].GaveItemID != 20 || e200[0].ReceivedItemID != 10 || e200[0].CounterpartyID != 100 {
		t.Fatalf("receiver entry wrong: %+v", e200[0])
	}
	if len(messages.notices) != 2 {
		t.Fatalf("expected 2 settlement notices, got %d", len(messages.notices))
	}
}

func TestConfirmIdempotent(t *testing.T) {
	svc, threads, items, ledger, _, _ := newSettlementFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := svc.Confirm(ctx, 1, 100)
		if err != nil {
			t.Fatalf("Confirm #%d: %v", i+1, err)
		}
		if !res.Confirmed || res.Completed {
			t.Fatalf("Confirm #%d: unexpected result %+v", i+1, res)
		}
	}
	thread, _ := threads.GetThreadByID(ctx, 1)
	if thread.State() != models.ThreadPartiallyConfirmed {
		t.Fatalf("repeated confirms must keep partially_confirmed, got %s", thread.State())
	}
	if items.items[10].Exchanged || len(ledger.entries) != 0 {
		t.Fatal("repeated single-party confirms must not settle")
	}
}

func TestConfirmAfterCompletionIsNoop(t *testing.T) {
	svc, _, _, ledger, messages, _ := newSettlementFixture()
	ctx := context.Background()

	if _, err := svc.Confirm(ctx, 1, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(ctx, 1, 200); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Confirm(ctx, 1, 100)
	if err != nil {
		t.Fatalf("confirm after completion: %v", err)
	}
	if !res.Completed {
		t.Fatalf("expected completed result, got %+v", res)
	}
	if len(ledger.entries) != 2 || len(messages.notices) != 2 {
		t.Fatal("no extra fan-out effects allowed after completion")
	}
}

func TestConfirmConcurrentFanOutOnce(t *testing.T) {
	svc, threads, items, ledger, messages, _ := newSettlementFixture()
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		userID := 100
		if i%2 == 1 {
			userID = 200
		}
		wg.Add(1)
		go func(uid int) {
			defer wg.Done()
			if _, err := svc.Confirm(ctx, 1, uid); err != nil {
				t.Errorf("Confirm(%d): %v", uid, err)
			}
		}(userID)
	}
	wg.Wait()

	thread, _ := threads.GetThreadByID(ctx, 1)
	if !thread.Completed {
		t.Fatal("thread must be completed")
	}
	if !items.items[10].Exchanged || !items.items[20].Exchanged {
		t.Fatal("both items must be exchanged")
	}
	if got := len(ledger.entriesFor(100)); got != 1 {
		t.Fatalf("initiator ledger entries = %d, want 1", got)
	}
	if got := len(ledger.entriesFor(200)); got != 1 {
		t.Fatalf("receiver ledger entries = %d, want 1", got)
	}
	if len(messages.notices) != 2 {
		t.Fatalf("settlement notices = %d, want 2", len(messages.notices))
	}
}

func TestConfirmRetryAfterPartialFanOut(t *testing.T) {
	svc, threads, _, ledger, messages, _ := newSettlementFixture()
	ctx := context.Background()

	if _, err := svc.Confirm(ctx, 1, 100); err != nil {
		t.Fatal(err)
	}

	// Леджер падает на первом завершении — completed не переключается.
	ledger.failing = true
	if _, err := svc.Confirm(ctx, 1, 200); err == nil {
		t.Fatal("expected error from failing ledger")
	}
	thread, _ := threads.GetThreadByID(ctx, 1)
	if thread.Completed {
		t.Fatal("completed flag must stay false after failed fan-out")
	}

	// Повтор после восстановления доводит расчёт без дублей.
	ledger.failing = false
	res, err := svc.Confirm(ctx, 1, 200)
	if err != nil {
		t.Fatalf("retry Confirm: %v", err)
	}
	if !res.Completed {
		t.Fatalf("expected completion on retry, got %+v", res)
	}
	if got := len(ledger.entriesFor(100)); got != 1 {
		t.Fatalf("initiator ledger entries = %d, want 1", got)
	}
	if got := len(ledger.entriesFor(200)); got != 1 {
		t.Fatalf("receiver ledger entries = %d, want 1", got)
	}
	if len(messages.notices) != 2 {
		t.Fatalf("settlement notices = %d, want 2", len(messages.notices))
	}
}

func TestConfirmRejectsNonParticipant(t *testing.T) {
	svc, _, _, _, _, _ := newSettlementFixture()
	if _, err := svc.Confirm(context.Background(), 1, 999); !errors.Is(err, models.ErrNotAParticipant) {
		t.Fatalf("expected ErrNotAParticipant, got %v", err)
	}
}

func TestConfirmThreadNotFound(t *testing.T) {
	svc, _, _, _, _, _ := newSettlementFixture()
	if _, err := svc.Confirm(context.Background(), 42, 100); !errors.Is(err, models.ErrThreadNotFound) {
		t.Fatalf("expected ErrThreadNotFound, got %v", err)
	}
}

func TestConfirmWithoutBothItemsNeverSettles(t *testing.T) {
	threads := newStubThreadStore(models.Thread{
		ID:            2,
		InitiatorID:   100,
		ReceiverID:    200,
		OfferedItemID: intPtr(10), // встречный предмет не выбран
	})
	ledger := &stubLedgerStore{}
	svc := &SettlementService{
		Threads:  threads,
		Items:    &stubItemStore{items: map[int]models.Item{10: {ID: 10}}},
		Ledger:   ledger,
		Messages: &stubMessageStore{},
		Names:    &stubNameStore{names: map[int]string{100: "A", 200: "B"}},
	}
	ctx := context.Background()
	if _, err := svc.Confirm(ctx, 2, 100); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Confirm(ctx, 2, 200)
	if err != nil {
		t.Fatal(err)
	}
	if res.Completed {
		t.Fatal("message-only thread must not complete")
	}
	if len(ledger.entries) != 0 {
		t.Fatal("no ledger writes for message-only thread")
	}
}
