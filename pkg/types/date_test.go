package types

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}

	got, err = ParseDate("2024-03-05T12:30:00+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 10 || got.Location() != time.UTC {
		t.Fatalf("expected UTC normalisation, got %v", got)
	}

	if _, err := ParseDate("05/03/2024"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}
