package enums

import "fmt"

// FoodStatus tracks a donated food item through its sharing lifecycle. The
// same values are mirrored onto requested_foods rows by status propagation.
type FoodStatus string

const (
	FoodStatusAvailable FoodStatus = "Available"
	FoodStatusRequested FoodStatus = "Requested"
	FoodStatusDelivered FoodStatus = "Delivered"
)

var validFoodStatuses = []FoodStatus{
	FoodStatusAvailable,
	FoodStatusRequested,
	FoodStatusDelivered,
}

// String implements fmt.Stringer.
func (s FoodStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known food status.
func (s FoodStatus) IsValid() bool {
	for _, candidate := range validFoodStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseFoodStatus converts raw input into FoodStatus.
func ParseFoodStatus(value string) (FoodStatus, error) {
	for _, candidate := range validFoodStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid food status %q", value)
}
