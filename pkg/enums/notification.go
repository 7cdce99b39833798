package enums

import "fmt"

// NotificationType tags in-app notifications by their originating flow.
type NotificationType string

const (
	NotificationTypeBillCreated       NotificationType = "bill_created"
	NotificationTypeBillPaid          NotificationType = "bill_paid"
	NotificationTypeBillOverdue       NotificationType = "bill_overdue"
	NotificationTypeComplaintUpdated  NotificationType = "complaint_updated"
	NotificationTypeVisitorArrived    NotificationType = "visitor_arrived"
	NotificationTypeAnnouncement      NotificationType = "announcement"
	NotificationTypeGeneral           NotificationType = "general"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeBillCreated,
	NotificationTypeBillPaid,
	NotificationTypeBillOverdue,
	NotificationTypeComplaintUpdated,
	NotificationTypeVisitorArrived,
	NotificationTypeAnnouncement,
	NotificationTypeGeneral,
}

func (n NotificationType) String() string {
	return string(n)
}

func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
