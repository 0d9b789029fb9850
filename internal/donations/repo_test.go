package donations

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/communitykitchen/foodshare-backend/internal/requests"
	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	"github.com/communitykitchen/foodshare-backend/pkg/enums"
)

func setupFoodsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the same
	// in-memory store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	donatedFoods := `
CREATE TABLE IF NOT EXISTS donated_foods (
  id TEXT PRIMARY KEY,
  food_name TEXT NOT NULL,
  food_image TEXT,
  pickup_location TEXT,
  food_quantity INTEGER NOT NULL DEFAULT 1,
  expired_at DATETIME,
  additional_notes TEXT,
  donator_name TEXT,
  donator_image TEXT,
  donator_email TEXT NOT NULL,
  food_status TEXT NOT NULL DEFAULT 'Available',
  created_at DATETIME,
  updated_at DATETIME
);`
	requestedFoods := `
CREATE TABLE IF NOT EXISTS requested_foods (
  id TEXT PRIMARY KEY,
  food_id TEXT NOT NULL,
  requester_email TEXT NOT NULL,
  food_name TEXT,
  food_image TEXT,
  pickup_location TEXT,
  expired_at DATETIME,
  donator_name TEXT,
  donator_email TEXT,
  request_date DATETIME,
  food_status TEXT NOT NULL DEFAULT 'Requested',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(donatedFoods).Error)
	require.NoError(t, db.Exec(requestedFoods).Error)
	return db
}

func seedDonated(t *testing.T, db *gorm.DB, name, email string, quantity int, status enums.FoodStatus) models.DonatedFood {
	t.Helper()
	row := models.DonatedFood{
		ID:           uuid.New(),
		FoodName:     name,
		FoodQuantity: quantity,
		ExpiredAt:    time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
		DonatorEmail: email,
		FoodStatus:   status,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func seedRequested(t *testing.T, db *gorm.DB, foodID uuid.UUID, email string) models.RequestedFood {
	t.Helper()
	row := models.RequestedFood{
		ID:             uuid.New(),
		FoodID:         foodID,
		RequesterEmail: email,
		FoodStatus:     enums.FoodStatusRequested,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func TestListPublicOnlyExcludesDelivered(t *testing.T) {
	db := setupFoodsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedDonated(t, db, "Apples", "donor@example.com", 3, enums.FoodStatusAvailable)
	seedDonated(t, db, "Bread", "donor@example.com", 5, enums.FoodStatusDelivered)

	rows, err := repo.List(ctx, Filter{Kind: FilterNone, PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Apples", rows[0].FoodName)

	// The owner's private listing still shows the delivered record.
	owned, err := repo.List(ctx, Filter{Kind: FilterByOwner, OwnerEmail: "donor@example.com"})
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestListSearchIsCaseInsensitiveSubstring(t *testing.T) {
	db := setupFoodsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedDonated(t, db, "Sourdough Bread", "donor@example.com", 2, enums.FoodStatusAvailable)
	seedDonated(t, db, "Apples", "donor@example.com", 2, enums.FoodStatusAvailable)

	rows, err := repo.List(ctx, Filter{Kind: FilterBySearchText, SearchText: "BREAD", PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sourdough Bread", rows[0].FoodName)
}

func TestListQuantitySort(t *testing.T) {
	db := setupFoodsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedDonated(t, db, "Small", "donor@example.com", 1, enums.FoodStatusAvailable)
	seedDonated(t, db, "Large", "donor@example.com", 9, enums.FoodStatusAvailable)

	asc, err := repo.List(ctx, Filter{Kind: FilterBySort, Sort: SortAscending, PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "Small", asc[0].FoodName)

	desc, err := repo.List(ctx, Filter{Kind: FilterBySort, Sort: SortDescending, PublicOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "Large", desc[0].FoodName)
}

func TestListExpiryFilterExactMatchAscending(t *testing.T) {
	db := setupFoodsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	target := time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC)
	for _, name := range []string{"Lentil soup", "Flatbread"} {
		row := models.DonatedFood{
			ID:           uuid.New(),
			FoodName:     name,
			FoodQuantity: 2,
			ExpiredAt:    target,
			DonatorEmail: "donor@example.com",
			FoodStatus:   enums.FoodStatusAvailable,
		}
		require.NoError(t, db.Create(&row).Error)
	}
	later := models.DonatedFood{
		ID:           uuid.New(),
		FoodName:     "Yogurt",
		FoodQuantity: 2,
		ExpiredAt:    target.Add(24 * time.Hour),
		DonatorEmail: "donor@example.com",
		FoodStatus:   enums.FoodStatusAvailable,
	}
	require.NoError(t, db.Create(&later).Error)

	rows, err := repo.List(ctx, Filter{Kind: FilterByExpiry, ExpiredAt: target, PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.True(t, row.ExpiredAt.Equal(target), "expected only exact expiry matches, got %s for %s", row.ExpiredAt, row.FoodName)
	}
	assert.False(t, rows[0].ExpiredAt.After(rows[1].ExpiredAt), "expected ascending expiry order")
}

func TestUpsertCreatesWhenIDMissing(t *testing.T) {
	db := setupFoodsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := uuid.New()
	row, err := repo.Upsert(ctx, id, &models.DonatedFood{
		FoodName:     "Late addition",
		FoodQuantity: 2,
		DonatorEmail: "donor@example.com",
		FoodStatus:   enums.FoodStatusAvailable,
	})
	require.NoError(t, err)
	assert.Equal(t, id, row.ID)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Late addition", found.FoodName)
}

func TestUpsertNeverReassignsDonatorEmail(t *testing.T) {
	db := setupFoodsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	existing := seedDonated(t, db, "Apples", "donor@example.com", 3, enums.FoodStatusAvailable)

	updated, err := repo.Upsert(ctx, existing.ID, &models.DonatedFood{
		FoodName:     "Apples (bruised)",
		FoodQuantity: 2,
		DonatorEmail: "attacker@example.com",
		FoodStatus:   enums.FoodStatusAvailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "Apples (bruised)", updated.FoodName)
	assert.Equal(t, "donor@example.com", updated.DonatorEmail)
}

func TestDeleteIsIdempotent(t *testing.T) {
	db := setupFoodsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	row := seedDonated(t, db, "Apples", "donor@example.com", 3, enums.FoodStatusAvailable)

	count, err := repo.Delete(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.Delete(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStatusPropagationAcrossCollections(t *testing.T) {
	db := setupFoodsTestDB(t)
	donatedRepo := NewRepository(db)
	requestedRepo := requests.NewRepository(db)
	ctx := context.Background()

	food := seedDonated(t, db, "Curry", "donor@example.com", 4, enums.FoodStatusRequested)
	other := seedDonated(t, db, "Rice", "donor@example.com", 2, enums.FoodStatusRequested)

	seedRequested(t, db, food.ID, "a@example.com")
	seedRequested(t, db, food.ID, "b@example.com")
	bystander := seedRequested(t, db, other.ID, "c@example.com")

	svc, err := NewService(donatedRepo, requestedRepo)
	require.NoError(t, err)

	result, err := svc.UpdateStatus(ctx, "donor@example.com", "donor@example.com", food.ID, enums.FoodStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.RequestedMatched)
	assert.Equal(t, int64(1), result.DonatedMatched)

	updatedFood, err := donatedRepo.FindByID(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.FoodStatusDelivered, updatedFood.FoodStatus)

	claims, err := requestedRepo.ListByFoodID(ctx, food.ID)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	for _, claim := range claims {
		assert.Equal(t, enums.FoodStatusDelivered, claim.FoodStatus)
	}

	untouched, err := requestedRepo.ListByFoodID(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, untouched, 1)
	assert.Equal(t, bystander.ID, untouched[0].ID)
	assert.Equal(t, enums.FoodStatusRequested, untouched[0].FoodStatus)
}
