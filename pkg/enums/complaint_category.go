package enums

import "fmt"

// ComplaintCategory buckets complaints for routing and reporting.
type ComplaintCategory string

const (
	ComplaintCategoryPlumbing    ComplaintCategory = "plumbing"
	ComplaintCategoryElectrical  ComplaintCategory = "electrical"
	ComplaintCategoryCleanliness ComplaintCategory = "cleanliness"
	ComplaintCategorySecurity    ComplaintCategory = "security"
	ComplaintCategoryNoise       ComplaintCategory = "noise"
	ComplaintCategoryOther       ComplaintCategory = "other"
)

var validComplaintCategories = []ComplaintCategory{
	ComplaintCategoryPlumbing,
	ComplaintCategoryElectrical,
	ComplaintCategoryCleanliness,
	ComplaintCategorySecurity,
	ComplaintCategoryNoise,
	ComplaintCategoryOther,
}

func (c ComplaintCategory) String() string {
	return string(c)
}

func (c ComplaintCategory) IsValid() bool {
	for _, candidate := range validComplaintCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseComplaintCategory(value string) (ComplaintCategory, error) {
	for _, candidate := range validComplaintCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid complaint category %q", value)
}
