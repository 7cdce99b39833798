package enums

import "fmt"

// AnnouncementCategory groups notices on the society board.
type AnnouncementCategory string

const (
	AnnouncementCategoryGeneral     AnnouncementCategory = "general"
	AnnouncementCategoryMaintenance AnnouncementCategory = "maintenance"
	AnnouncementCategoryEvent       AnnouncementCategory = "event"
	AnnouncementCategoryEmergency   AnnouncementCategory = "emergency"
)

var validAnnouncementCategories = []AnnouncementCategory{
	AnnouncementCategoryGeneral,
	AnnouncementCategoryMaintenance,
	AnnouncementCategoryEvent,
	AnnouncementCategoryEmergency,
}

func (a AnnouncementCategory) String() string {
	return string(a)
}

func (a AnnouncementCategory) IsValid() bool {
	for _, candidate := range validAnnouncementCategories {
		if candidate == a {
			return true
		}
	}
	return false
}

func ParseAnnouncementCategory(value string) (AnnouncementCategory, error) {
	for _, candidate := range validAnnouncementCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid announcement category %q", value)
}

// AnnouncementPriority orders notices on resident dashboards.
type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "low"
	AnnouncementPriorityNormal AnnouncementPriority = "normal"
	AnnouncementPriorityHigh   AnnouncementPriority = "high"
	AnnouncementPriorityUrgent AnnouncementPriority = "urgent"
)

var validAnnouncementPriorities = []AnnouncementPriority{
	AnnouncementPriorityLow,
	AnnouncementPriorityNormal,
	AnnouncementPriorityHigh,
	AnnouncementPriorityUrgent,
}

func (a AnnouncementPriority) String() string {
	return string(a)
}

func (a AnnouncementPriority) IsValid() bool {
	for _, candidate := range validAnnouncementPriorities {
		if candidate == a {
			return true
		}
	}
	return false
}

func ParseAnnouncementPriority(value string) (AnnouncementPriority, error) {
	for _, candidate := range validAnnouncementPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid announcement priority %q", value)
}
