package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/communitykitchen/foodshare-backend/pkg/enums"
)

// RequestedFood is a claim a requester places on a donated item. FoodID is a
// plain lookup key into donated_foods, not an enforced foreign key: deleting
// the donated row independently leaves the claim dangling, which is accepted.
// The food detail columns are a snapshot taken at request time.
type RequestedFood struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	FoodID         uuid.UUID        `gorm:"column:food_id;type:uuid;not null;index"`
	RequesterEmail string           `gorm:"column:requester_email;not null;index"`
	FoodName       string           `gorm:"column:food_name"`
	FoodImage      string           `gorm:"column:food_image"`
	PickupLocation string           `gorm:"column:pickup_location"`
	ExpiredAt      time.Time        `gorm:"column:expired_at"`
	DonatorName    string           `gorm:"column:donator_name"`
	DonatorEmail   string           `gorm:"column:donator_email"`
	RequestDate    time.Time        `gorm:"column:request_date"`
	FoodStatus     enums.FoodStatus `gorm:"column:food_status;not null;default:'Requested'"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
