// Package services holds the orchestration between the write path and the
// async fan-out: the database stays authoritative, AMQP is best effort.
package services

import (
	"context"
	"log/slog"

	"budgetx/internal/amqp"
)

// ChangePublisher is the slice of the AMQP client the audit service needs.
type ChangePublisher interface {
	PublishChange(ctx context.Context, event *amqp.ChangeEvent) error
}

// AuditService publishes change events after successful mutations. A nil
// publisher disables the stream; publish failures are logged and swallowed
// so the request that already committed never fails retroactively.
type AuditService struct {
	publisher ChangePublisher
}

func NewAuditService(publisher ChangePublisher) *AuditService {
	return &AuditService{publisher: publisher}
}

// Record publishes a change event for an already-committed mutation.
func (s *AuditService) Record(ctx context.Context, entity, op string, recordID, userID int64) {
	if s == nil || s.publisher == nil {
		return
	}

	event := amqp.NewChangeEvent(entity, op, recordID, userID)
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"error", err,
			"entity", entity,
			"op", op,
			"record_id", recordID,
			"user_id", userID)
	}
}
