package donations

import (
	"time"

	"github.com/google/uuid"

	"github.com/communitykitchen/foodshare-backend/pkg/enums"
)

// CreateFoodInput holds the fields a donor submits when posting surplus food.
// DonatorEmail doubles as the acting-as value checked against the token.
type CreateFoodInput struct {
	FoodName        string
	FoodImage       string
	PickupLocation  string
	FoodQuantity    int
	ExpiredAt       time.Time
	AdditionalNotes string
	DonatorName     string
	DonatorImage    string
	DonatorEmail    string
	FoodStatus      enums.FoodStatus
}

// EditFoodInput carries the full replacement field set for the upsert-style
// edit. DonatorEmail is the acting-as value; it is only persisted when the
// edit creates a new row.
type EditFoodInput struct {
	FoodName        string
	FoodImage       string
	PickupLocation  string
	FoodQuantity    int
	ExpiredAt       time.Time
	AdditionalNotes string
	DonatorName     string
	DonatorImage    string
	DonatorEmail    string
	FoodStatus      enums.FoodStatus
}

// ListParams mirrors the optional query parameters of the listing endpoints.
type ListParams struct {
	ID         *uuid.UUID
	OwnerEmail string
	SearchText string
	ExpiredAt  *time.Time
	Sort       string
}
