package amqp

import (
	"encoding/json"
	"time"
)

// Change operations carried by ChangeEvent.Op.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Entities carried by ChangeEvent.Entity.
const (
	EntityCustomer = "customer"
	EntityIncome   = "income"
	EntityExpense  = "expense"
)

// ChangeEvent is the message published after every successful mutation. It
// carries identifiers only; the audit worker stores them as-is and never
// needs the full row.
type ChangeEvent struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	RecordID  int64     `json:"record_id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeEvent stamps a change event with the current time.
func NewChangeEvent(entity, op string, recordID, userID int64) *ChangeEvent {
	return &ChangeEvent{
		Entity:    entity,
		Op:        op,
		RecordID:  recordID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ChangeEventFromJSON decodes an event from JSON bytes.
func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
