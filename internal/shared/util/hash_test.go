package util

import "testing"

func TestSHA256Hex(t *testing.T) {
	data := []byte("electrical|takeoff|plan-a.jpg")
	got := SHA256Hex(data)
	if got != SHA256Hex(data) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if got == SHA256Hex([]byte("electrical|takeoff|plan-b.jpg")) {
		t.Fatalf("different inputs produced the same hash")
	}
}
