package enums

import "testing"

func TestParseTransactionStatus(t *testing.T) {
	for _, raw := range []string{"pending", "complete"} {
		got, err := ParseTransactionStatus(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !got.IsValid() || got.String() != raw {
			t.Fatalf("unexpected parse result %q for %q", got, raw)
		}
	}
	if _, err := ParseTransactionStatus("cancelled"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if TransactionStatus("").IsValid() {
		t.Fatal("empty status must be invalid")
	}
}

func TestParseLedgerEntryKind(t *testing.T) {
	got, err := ParseLedgerEntryKind("reversal")
	if err != nil || got != LedgerEntryKindReversal {
		t.Fatalf("unexpected parse result %q err=%v", got, err)
	}
	if _, err := ParseLedgerEntryKind("refund"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
