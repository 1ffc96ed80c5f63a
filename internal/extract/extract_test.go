package extract

import (
	"context"
	"testing"
)

func TestIsPDF(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		fileName    string
		data        []byte
		want        bool
	}{
		{"content type", "application/pdf", "sheet.bin", nil, true},
		{"content type case", "Application/PDF", "sheet.bin", nil, true},
		{"extension", "", "e-101.PDF", nil, true},
		{"magic bytes", "application/octet-stream", "sheet", []byte("%PDF-1.7"), true},
		{"jpeg", "image/jpeg", "plan.jpg", []byte{0xFF, 0xD8}, false},
		{"empty", "", "", nil, false},
	}
	for _, tc := range cases {
		if got := IsPDF(tc.contentType, tc.fileName, tc.data); got != tc.want {
			t.Fatalf("%s: IsPDF = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSheetTextEmptyData(t *testing.T) {
	if _, err := SheetText(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for empty data")
	}
}

func TestSheetTextGarbageData(t *testing.T) {
	if _, err := SheetText(context.Background(), []byte("%PDF-1.7 but not really a pdf")); err == nil {
		t.Fatalf("expected an error for malformed pdf data")
	}
}

func TestSheetTextCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := SheetText(ctx, []byte("%PDF-1.7")); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
