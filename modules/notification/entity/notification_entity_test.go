package entity

import (
	"testing"
	"time"
)

func TestJSONBRoundTrip(t *testing.T) {
	payload := JSONB{"event_id": "abc", "minutes": float64(30)}

	value, err := payload.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var scanned JSONB
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if scanned["event_id"] != "abc" {
		t.Fatalf("expected event_id abc, got %v", scanned["event_id"])
	}
	if scanned["minutes"] != float64(30) {
		t.Fatalf("expected minutes 30, got %v", scanned["minutes"])
	}
}

func TestJSONBScanNil(t *testing.T) {
	var scanned JSONB
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if scanned != nil {
		t.Fatalf("expected nil payload, got %v", scanned)
	}
}

func TestIsRead(t *testing.T) {
	n := Notification{}
	if n.IsRead() {
		t.Fatal("expected unread without read_at")
	}
	now := time.Now()
	n.ReadAt = &now
	if !n.IsRead() {
		t.Fatal("expected read with read_at set")
	}
}
