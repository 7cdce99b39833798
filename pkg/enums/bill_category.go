package enums

import "fmt"

// BillCategory identifies what a bill charges for.
type BillCategory string

const (
	BillCategoryMaintenance BillCategory = "maintenance"
	BillCategoryWater       BillCategory = "water"
	BillCategoryElectricity BillCategory = "electricity"
	BillCategoryParking     BillCategory = "parking"
	BillCategoryOther       BillCategory = "other"
)

var validBillCategories = []BillCategory{
	BillCategoryMaintenance,
	BillCategoryWater,
	BillCategoryElectricity,
	BillCategoryParking,
	BillCategoryOther,
}

func (b BillCategory) String() string {
	return string(b)
}

func (b BillCategory) IsValid() bool {
	for _, candidate := range validBillCategories {
		if candidate == b {
			return true
		}
	}
	return false
}

func ParseBillCategory(value string) (BillCategory, error) {
	for _, candidate := range validBillCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bill category %q", value)
}
