// Package worker implements the audit-trail worker: it turns change events
// from the queue into audit_log rows and prunes rows past retention.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetx/internal/amqp"
	"budgetx/internal/storage"
)

// AuditStore is the slice of the repository the worker writes through.
type AuditStore interface {
	InsertAuditEntry(ctx context.Context, e storage.AuditEntry) error
	PruneAuditBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditWorker persists change events and enforces retention.
type AuditWorker struct {
	store     AuditStore
	retention time.Duration
}

func NewAuditWorker(store AuditStore, retention time.Duration) *AuditWorker {
	return &AuditWorker{
		store:     store,
		retention: retention,
	}
}

// HandleChange records one change event. Returning an error requeues the
// delivery, so only storage failures should bubble up.
func (w *AuditWorker) HandleChange(ctx context.Context, event *amqp.ChangeEvent) error {
	entry := storage.AuditEntry{
		Entity:     event.Entity,
		Op:         event.Op,
		RecordID:   event.RecordID,
		UserID:     event.UserID,
		OccurredAt: event.Timestamp,
	}

	if err := w.store.InsertAuditEntry(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	slog.InfoContext(ctx, "Audit entry recorded",
		"entity", event.Entity,
		"op", event.Op,
		"record_id", event.RecordID,
		"user_id", event.UserID)

	return nil
}

// Prune removes audit rows older than the configured retention window.
func (w *AuditWorker) Prune(ctx context.Context) error {
	cutoff := time.Now().Add(-w.retention)
	removed, err := w.store.PruneAuditBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune audit log: %w", err)
	}

	if removed > 0 {
		slog.InfoContext(ctx, "Pruned audit entries", "removed", removed, "cutoff", cutoff)
	}

	return nil
}

// RunRetention prunes on the given interval until ctx is cancelled.
func (w *AuditWorker) RunRetention(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Prune(ctx); err != nil {
				slog.ErrorContext(ctx, "Audit retention pass failed", "error", err)
			}
		}
	}
}
