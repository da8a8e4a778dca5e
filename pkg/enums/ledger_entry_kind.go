package enums

import "fmt"

// LedgerEntryKind distinguishes money movements from their compensating entries.
type LedgerEntryKind string

const (
	LedgerEntryKindPayment  LedgerEntryKind = "payment"
	LedgerEntryKindReversal LedgerEntryKind = "reversal"
)

var validLedgerEntryKinds = []LedgerEntryKind{
	LedgerEntryKindPayment,
	LedgerEntryKindReversal,
}

// IsValid reports whether the value matches the canonical ledger entry kinds.
func (k LedgerEntryKind) IsValid() bool {
	for _, candidate := range validLedgerEntryKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseLedgerEntryKind converts raw input into LedgerEntryKind.
func ParseLedgerEntryKind(value string) (LedgerEntryKind, error) {
	for _, candidate := range validLedgerEntryKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ledger entry kind %q", value)
}
