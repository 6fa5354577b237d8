package amqp

import (
	"testing"
	"time"
)

func TestChangeEventRoundTrip(t *testing.T) {
	event := NewChangeEvent(EntityIncome, OpCreate, 17, 3)

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	decoded, err := ChangeEventFromJSON(body)
	if err != nil {
		t.Fatalf("ChangeEventFromJSON failed: %v", err)
	}

	if decoded.Entity != EntityIncome || decoded.Op != OpCreate {
		t.Errorf("decoded entity/op = %s/%s, want income/create", decoded.Entity, decoded.Op)
	}
	if decoded.RecordID != 17 || decoded.UserID != 3 {
		t.Errorf("decoded ids = %d/%d, want 17/3", decoded.RecordID, decoded.UserID)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("decoded timestamp is zero")
	}
}

func TestNewChangeEventStampsNow(t *testing.T) {
	before := time.Now().Add(-time.Second)
	event := NewChangeEvent(EntityExpense, OpDelete, 1, 1)
	after := time.Now().Add(time.Second)

	if event.Timestamp.Before(before) || event.Timestamp.After(after) {
		t.Errorf("Timestamp = %v, want roughly now", event.Timestamp)
	}
}

func TestChangeEventFromJSON_Invalid(t *testing.T) {
	if _, err := ChangeEventFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}
