package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"budgetx/internal/amqp"
	"budgetx/internal/storage"
)

type fakeAuditStore struct {
	entries   []storage.AuditEntry
	insertErr error
	pruned    []time.Time
}

func (f *fakeAuditStore) InsertAuditEntry(ctx context.Context, e storage.AuditEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditStore) PruneAuditBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.pruned = append(f.pruned, cutoff)
	return 3, nil
}

func TestAuditWorker_HandleChange(t *testing.T) {
	store := &fakeAuditStore{}
	w := NewAuditWorker(store, 90*24*time.Hour)

	event := amqp.NewChangeEvent(amqp.EntityExpense, amqp.OpCreate, 11, 2)
	if err := w.HandleChange(context.Background(), event); err != nil {
		t.Fatalf("HandleChange failed: %v", err)
	}

	if len(store.entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(store.entries))
	}
	got := store.entries[0]
	if got.Entity != "expense" || got.Op != "create" || got.RecordID != 11 || got.UserID != 2 {
		t.Errorf("entry = %+v, want expense/create/11/2", got)
	}
	if !got.OccurredAt.Equal(event.Timestamp) {
		t.Errorf("OccurredAt = %v, want event timestamp %v", got.OccurredAt, event.Timestamp)
	}
}

func TestAuditWorker_HandleChange_StorageError(t *testing.T) {
	store := &fakeAuditStore{insertErr: errors.New("disk full")}
	w := NewAuditWorker(store, time.Hour)

	err := w.HandleChange(context.Background(), amqp.NewChangeEvent(amqp.EntityIncome, amqp.OpUpdate, 1, 1))
	if err == nil {
		t.Fatal("expected error so the delivery is requeued, got nil")
	}
}

func TestAuditWorker_Prune_UsesRetentionCutoff(t *testing.T) {
	store := &fakeAuditStore{}
	retention := 48 * time.Hour
	w := NewAuditWorker(store, retention)

	before := time.Now().Add(-retention)
	if err := w.Prune(context.Background()); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	after := time.Now().Add(-retention)

	if len(store.pruned) != 1 {
		t.Fatalf("prune called %d times, want 1", len(store.pruned))
	}
	cutoff := store.pruned[0]
	if cutoff.Before(before.Add(-time.Second)) || cutoff.After(after.Add(time.Second)) {
		t.Errorf("cutoff = %v, want about %v ago", cutoff, retention)
	}
}
