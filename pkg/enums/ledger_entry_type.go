package enums

import "fmt"

// LedgerEntryType marks a ledger entry as money in or money out.
type LedgerEntryType string

const (
	LedgerEntryTypeIncome  LedgerEntryType = "income"
	LedgerEntryTypeExpense LedgerEntryType = "expense"
)

var validLedgerEntryTypes = []LedgerEntryType{
	LedgerEntryTypeIncome,
	LedgerEntryTypeExpense,
}

func (l LedgerEntryType) String() string {
	return string(l)
}

func (l LedgerEntryType) IsValid() bool {
	for _, candidate := range validLedgerEntryTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

func ParseLedgerEntryType(value string) (LedgerEntryType, error) {
	for _, candidate := range validLedgerEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ledger entry type %q", value)
}
