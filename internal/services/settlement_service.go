package services

import (
	"context"
	"fmt"
	"log"

	"barterBack/internal/models"
)

// Store contracts are declared on the consumer side so the engine can be
// exercised against stubs.

type SettlementThreadStore interface {
	GetThreadByID(ctx context.Context, id int) (models.Thread, error)
	AddConfirmation(ctx context.Context, threadID, userID int) error
	CountConfirmations(ctx context.Context, threadID int) (int, error)
	MarkCompleted(ctx context.Context, threadID int) (bool, error)
}

type SettlementItemStore interface {
	GetItemByID(ctx context.Context, id int) (models.Item, error)
	SetExchanged(ctx context.Context, id int) error
}

type SettlementLedgerStore interface {
	AppendEntry(ctx context.Context, e models.LedgerEntry) error
}

type SettlementMessageStore interface {
	CreateSettlementNotice(ctx context.Context, msg models.Message) error
}

type SettlementNameStore interface {
	GetDisplayName(ctx context.Context, id int) (string, error)
}

type Notifier interface {
	Notify(userID int, event string, payload map[string]string)
}

type ConfirmResult struct {
	Confirmed bool `json:"confirmed"`
	Completed bool `json:"completed"`
}

// SettlementService drives the two-party exchange to completion. Both
// parties confirm independently; the second confirmation triggers the
// completion fan-out exactly once.
type SettlementService struct {
	Threads  SettlementThreadStore
	Items    SettlementItemStore
	Ledger   SettlementLedgerStore
	Messages SettlementMessageStore
	Names    SettlementNameStore
	Notifier Notifier

	locks keyedMutex
}

// Confirm records userID's confirmation on the thread. Confirming twice is a
// no-op success. When the confirmation set reaches both parties and both
// items are on the table, the fan-out runs: items flip to exchanged, each
// party's ledger gains one entry, settlement notices land in the thread and
// the completed flag flips last as the durable commit point.
//
// The per-thread lock serializes racing confirmers in-process; every
// sub-write is keyed so a crash between fan-out and flag flip converges on
// the next confirm call without double effects.
func (s *SettlementService) Confirm(ctx context.Context, threadID, userID int) (ConfirmResult, error) {
	unlock := s.locks.lock(threadID)
	defer unlock()

	thread, err := s.Threads.GetThreadByID(ctx, threadID)
	if err != nil {
		return ConfirmResult{}, err
	}
	if !thread.HasParticipant(userID) {
		return ConfirmResult{}, models.ErrNotAParticipant
	}
	if thread.Completed {
		return ConfirmResult{Confirmed: true, Completed: true}, nil
	}

	if err := s.Threads.AddConfirmation(ctx, threadID, userID); err != nil {
		return ConfirmResult{}, err
	}
	count, err := s.Threads.CountConfirmations(ctx, threadID)
	if err != nil {
		return ConfirmResult{Confirmed: true}, err
	}
	if count < 2 || !thread.ReadyForSettlement() {
		return ConfirmResult{Confirmed: true}, nil
	}

	if err := s.settle(ctx, thread); err != nil {
		return ConfirmResult{Confirmed: true}, err
	}
	flipped, err := s.Threads.MarkCompleted(ctx, threadID)
	if err != nil {
		return ConfirmResult{Confirmed: true}, err
	}
	if flipped {
		s.notifyCompletion(thread)
	}
	return ConfirmResult{Confirmed: true, Completed: true}, nil
}

// settle applies the fan-out writes. Every write here is idempotent, so the
// sequence may run again after a partial failure.
func (s *SettlementService) settle(ctx context.Context, thread models.Thread) error {
	offered, err := s.Items.GetItemByID(ctx, *thread.OfferedItemID)
	if err != nil {
		return err
	}
	requested, err := s.Items.GetItemByID(ctx, *thread.RequestedItemID)
	if err != nil {
		return err
	}
	initiatorName, err := s.Names.GetDisplayName(ctx, thread.InitiatorID)
	if err != nil {
		return err
	}
	receiverName, err := s.Names.GetDisplayName(ctx, thread.ReceiverID)
	if err != nil {
		return err
	}

	if err := s.Items.SetExchanged(ctx, offered.ID); err != nil {
		return err
	}
	if err := s.Items.SetExchanged(ctx, requested.ID); err != nil {
		return err
	}

	err = s.Ledger.AppendEntry(ctx, models.LedgerEntry{
		UserID:           thread.InitiatorID,
		ThreadID:         thread.ID,
		GaveItemID:       offered.ID,
		ReceivedItemID:   requested.ID,
		CounterpartyID:   thread.ReceiverID,
		CounterpartyName: receiverName,
	})
	if err != nil {
		return err
	}
	err = s.Ledger.AppendEntry(ctx, models.LedgerEntry{
		UserID:           thread.ReceiverID,
		ThreadID:         thread.ID,
		GaveItemID:       requested.ID,
		ReceivedItemID:   offered.ID,
		CounterpartyID:   thread.InitiatorID,
		CounterpartyName: initiatorName,
	})
	if err != nil {
		return err
	}

	notice := func(receiverID int, gave, got models.Item, counterparty string) models.Message {
		return models.Message{
			ID:         fmt.Sprintf("settle-%d-%d", thread.ID, receiverID),
			ThreadID:   thread.ID,
			SenderID:   thread.OtherParty(receiverID),
			ReceiverID: receiverID,
			Kind:       models.MessageKindSettlement,
			Text:       fmt.Sprintf("Обмен завершён: вы отдали «%s» и получили «%s» от %s", gave.Name, got.Name, counterparty),
		}
	}
	if err := s.Messages.CreateSettlementNotice(ctx, notice(thread.InitiatorID, offered, requested, receiverName)); err != nil {
		return err
	}
	return s.Messages.CreateSettlementNotice(ctx, notice(thread.ReceiverID, requested, offered, initiatorName))
}

// Уведомления не участвуют в корректности расчёта: ошибки только в лог.
func (s *SettlementService) notifyCompletion(thread models.Thread) {
	if s.Notifier == nil {
		return
	}
	payload := map[string]string{"thread_id": fmt.Sprint(thread.ID)}
	s.Notifier.Notify(thread.InitiatorID, "exchange_completed", payload)
	s.Notifier.Notify(thread.ReceiverID, "exchange_completed", payload)
	log.Printf("settlement completed: thread=%d", thread.ID)
}
