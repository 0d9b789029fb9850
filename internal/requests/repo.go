package requests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	"github.com/communitykitchen/foodshare-backend/pkg/enums"
)

// Repository exposes requested food persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a requested food repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new claim row, generating the identifier when absent.
func (r *Repository) Create(ctx context.Context, request *models.RequestedFood) (*models.RequestedFood, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// ListByRequester returns every claim owned by the given email.
func (r *Repository) ListByRequester(ctx context.Context, email string) ([]models.RequestedFood, error) {
	var rows []models.RequestedFood
	err := r.db.WithContext(ctx).
		Where("requester_email = ?", email).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByFoodID returns every claim referencing the donated item.
func (r *Repository) ListByFoodID(ctx context.Context, foodID uuid.UUID) ([]models.RequestedFood, error) {
	var rows []models.RequestedFood
	err := r.db.WithContext(ctx).
		Where("food_id = ?", foodID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatusByFoodID mirrors a donated item's status change onto every claim
// referencing it. This is deliberately a multi-row update.
func (r *Repository) UpdateStatusByFoodID(ctx context.Context, foodID uuid.UUID, status enums.FoodStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RequestedFood{}).
		Where("food_id = ?", foodID).
		Update("food_status", status)
	return res.RowsAffected, res.Error
}

// DeleteByID removes a claim by its own identifier (requester cancelling).
// Deleting an already-deleted id reports a zero count, not an error.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.RequestedFood{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// DeleteByFoodID removes claims by the donated item they reference (donor
// rejecting). Same idempotent contract as DeleteByID.
func (r *Repository) DeleteByFoodID(ctx context.Context, foodID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.RequestedFood{}, "food_id = ?", foodID)
	return res.RowsAffected, res.Error
}
