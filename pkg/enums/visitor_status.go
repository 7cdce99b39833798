package enums

import "fmt"

// VisitorStatus tracks a visit from gate entry to exit.
type VisitorStatus string

const (
	VisitorStatusExpected   VisitorStatus = "expected"
	VisitorStatusCheckedIn  VisitorStatus = "checked_in"
	VisitorStatusCheckedOut VisitorStatus = "checked_out"
	VisitorStatusDenied     VisitorStatus = "denied"
)

var validVisitorStatuses = []VisitorStatus{
	VisitorStatusExpected,
	VisitorStatusCheckedIn,
	VisitorStatusCheckedOut,
	VisitorStatusDenied,
}

func (v VisitorStatus) String() string {
	return string(v)
}

func (v VisitorStatus) IsValid() bool {
	for _, candidate := range validVisitorStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

func ParseVisitorStatus(value string) (VisitorStatus, error) {
	for _, candidate := range validVisitorStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid visitor status %q", value)
}
