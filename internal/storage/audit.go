package storage

import (
	"context"
	"fmt"
	"time"
)

// AuditEntry is one recorded change event as written by the audit worker.
type AuditEntry struct {
	ID         int64
	Entity     string
	Op         string
	RecordID   int64
	UserID     int64
	OccurredAt time.Time
}

// InsertAuditEntry appends a change record to the audit log.
func (r *Repository) InsertAuditEntry(ctx context.Context, e AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (entity, op, record_id, user_id, occurred_at) VALUES (?, ?, ?, ?, ?)",
		e.Entity, e.Op, e.RecordID, e.UserID, e.OccurredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns the newest audit rows for a user, most recent
// first, capped at limit.
func (r *Repository) ListAuditEntries(ctx context.Context, userID int64, limit int) ([]AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, entity, op, record_id, user_id, occurred_at FROM audit_log WHERE user_id = ? ORDER BY occurred_at DESC, id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}
	defer rows.Close()

	entries := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.Entity, &e.Op, &e.RecordID, &e.UserID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

// PruneAuditBefore deletes audit rows older than cutoff and returns how many
// were removed.
func (r *Repository) PruneAuditBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM audit_log WHERE occurred_at < ?",
		cutoff.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
