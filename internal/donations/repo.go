package donations

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	"github.com/communitykitchen/foodshare-backend/pkg/enums"
)

// Repository exposes donated food persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a donated food repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new donated food row, generating the identifier when the
// caller did not supply one.
func (r *Repository) Create(ctx context.Context, food *models.DonatedFood) (*models.DonatedFood, error) {
	if food.ID == uuid.Nil {
		food.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// List resolves the filter union into a concrete query. PublicOnly excludes
// Delivered rows unconditionally before any other dimension applies.
func (r *Repository) List(ctx context.Context, filter Filter) ([]models.DonatedFood, error) {
	query := r.db.WithContext(ctx).Model(&models.DonatedFood{})

	if filter.PublicOnly {
		query = query.Where("food_status <> ?", enums.FoodStatusDelivered)
	}

	switch filter.Kind {
	case FilterByID:
		query = query.Where("id = ?", filter.ID)
	case FilterByOwner:
		query = query.Where("donator_email = ?", filter.OwnerEmail)
	case FilterBySearchText:
		pattern := "%" + strings.ToLower(filter.SearchText) + "%"
		query = query.Where("LOWER(food_name) LIKE ?", pattern)
	case FilterByExpiry:
		query = query.Where("expired_at = ?", filter.ExpiredAt).Order("expired_at ASC")
	case FilterBySort:
		direction := "ASC"
		if filter.Sort == SortDescending {
			direction = "DESC"
		}
		query = query.Order("food_quantity " + direction)
	}

	var rows []models.DonatedFood
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns the donated row or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DonatedFood, error) {
	var row models.DonatedFood
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert applies the submitted fields to the row with the given id, creating
// the row when no match exists. Edits therefore never report not-found. The
// donator_email column is only written on the create path; it is immutable
// once a record exists.
func (r *Repository) Upsert(ctx context.Context, id uuid.UUID, food *models.DonatedFood) (*models.DonatedFood, error) {
	updates := map[string]any{
		"food_name":        food.FoodName,
		"food_image":       food.FoodImage,
		"pickup_location":  food.PickupLocation,
		"food_quantity":    food.FoodQuantity,
		"expired_at":       food.ExpiredAt,
		"additional_notes": food.AdditionalNotes,
		"donator_name":     food.DonatorName,
		"donator_image":    food.DonatorImage,
		"food_status":      food.FoodStatus,
	}

	res := r.db.WithContext(ctx).
		Model(&models.DonatedFood{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		created := *food
		created.ID = id
		if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
			return nil, err
		}
		return &created, nil
	}

	return r.FindByID(ctx, id)
}

// UpdateStatus sets the status on a single donated row, reporting how many
// rows matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FoodStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.DonatedFood{}).
		Where("id = ?", id).
		Update("food_status", status)
	return res.RowsAffected, res.Error
}

// Delete removes the donated row. Deleting an already-deleted id is not an
// error; the zero count is reported to the caller.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.DonatedFood{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
