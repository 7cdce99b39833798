package enums

import "fmt"

// BillStatus tracks the payment lifecycle of a maintenance bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

var validBillStatuses = []BillStatus{
	BillStatusPending,
	BillStatusPaid,
	BillStatusOverdue,
}

func (b BillStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BillStatus.
func (b BillStatus) IsValid() bool {
	for _, candidate := range validBillStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBillStatus converts raw input into a BillStatus.
func ParseBillStatus(value string) (BillStatus, error) {
	for _, candidate := range validBillStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bill status %q", value)
}
