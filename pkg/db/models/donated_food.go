package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/communitykitchen/foodshare-backend/pkg/enums"
)

// DonatedFood is a surplus food listing posted by a donor. DonatorEmail is the
// owner key and is never reassigned after creation.
type DonatedFood struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	FoodName        string           `gorm:"column:food_name;not null"`
	FoodImage       string           `gorm:"column:food_image"`
	PickupLocation  string           `gorm:"column:pickup_location"`
	FoodQuantity    int              `gorm:"column:food_quantity;not null;default:1"`
	ExpiredAt       time.Time        `gorm:"column:expired_at"`
	AdditionalNotes string           `gorm:"column:additional_notes"`
	DonatorName     string           `gorm:"column:donator_name"`
	DonatorImage    string           `gorm:"column:donator_image"`
	DonatorEmail    string           `gorm:"column:donator_email;not null;index"`
	FoodStatus      enums.FoodStatus `gorm:"column:food_status;not null;default:'Available'"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
