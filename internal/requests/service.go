package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/communitykitchen/foodshare-backend/internal/ownership"
	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	"github.com/communitykitchen/foodshare-backend/pkg/enums"
	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
)

type requestedRepository interface {
	Create(ctx context.Context, request *models.RequestedFood) (*models.RequestedFood, error)
	ListByRequester(ctx context.Context, email string) ([]models.RequestedFood, error)
	ListByFoodID(ctx context.Context, foodID uuid.UUID) ([]models.RequestedFood, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteByFoodID(ctx context.Context, foodID uuid.UUID) (int64, error)
}

type donatedFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DonatedFood, error)
}

// CreateRequestInput holds the fields a requester submits when claiming a
// donated item. RequesterEmail doubles as the acting-as value checked against
// the token.
type CreateRequestInput struct {
	FoodID         uuid.UUID
	RequesterEmail string
	RequestDate    time.Time
}

// Service exposes claim creation, listing, and the two deletion addressing
// modes.
type Service interface {
	CreateRequest(ctx context.Context, verifiedEmail string, input CreateRequestInput) (*models.RequestedFood, error)
	ListOwned(ctx context.Context, verifiedEmail, ownerEmail string) ([]models.RequestedFood, error)
	ListByFoodID(ctx context.Context, foodID uuid.UUID) ([]models.RequestedFood, error)
	CancelByID(ctx context.Context, verifiedEmail, ownerEmail string, id uuid.UUID) (int64, error)
	RejectByFoodID(ctx context.Context, verifiedEmail, ownerEmail string, foodID uuid.UUID) (int64, error)
}

type service struct {
	repo    requestedRepository
	donated donatedFinder
}

// NewService builds the requested food service.
func NewService(repo requestedRepository, donated donatedFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("requested food repository required")
	}
	if donated == nil {
		return nil, fmt.Errorf("donated food repository required")
	}
	return &service{repo: repo, donated: donated}, nil
}

// CreateRequest claims a donated item. The donated record must exist at
// creation time; the claim stores a snapshot of its details, so later changes
// or deletion of the donated row leave the snapshot (and possibly a dangling
// food_id) behind. Nothing prevents multiple simultaneous claims on the same
// item.
func (s *service) CreateRequest(ctx context.Context, verifiedEmail string, input CreateRequestInput) (*models.RequestedFood, error) {
	if err := ownership.Require(verifiedEmail, input.RequesterEmail); err != nil {
		return nil, err
	}
	if input.FoodID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food_id is required")
	}

	food, err := s.donated.FindByID(ctx, input.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup donated food")
	}

	requestDate := input.RequestDate
	if requestDate.IsZero() {
		requestDate = time.Now().UTC()
	}

	request := &models.RequestedFood{
		FoodID:         food.ID,
		RequesterEmail: strings.ToLower(strings.TrimSpace(input.RequesterEmail)),
		FoodName:       food.FoodName,
		FoodImage:      food.FoodImage,
		PickupLocation: food.PickupLocation,
		ExpiredAt:      food.ExpiredAt,
		DonatorName:    food.DonatorName,
		DonatorEmail:   food.DonatorEmail,
		RequestDate:    requestDate,
		FoodStatus:     enums.FoodStatusRequested,
	}

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create requested food")
	}
	return created, nil
}

func (s *service) ListOwned(ctx context.Context, verifiedEmail, ownerEmail string) ([]models.RequestedFood, error) {
	if err := ownership.Require(verifiedEmail, ownerEmail); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByRequester(ctx, strings.ToLower(strings.TrimSpace(ownerEmail)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list requested foods")
	}
	return rows, nil
}

func (s *service) ListByFoodID(ctx context.Context, foodID uuid.UUID) ([]models.RequestedFood, error) {
	if foodID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food id is required")
	}

	rows, err := s.repo.ListByFoodID(ctx, foodID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list requests by food")
	}
	return rows, nil
}

// CancelByID deletes the requester's own claim by its record identifier.
func (s *service) CancelByID(ctx context.Context, verifiedEmail, ownerEmail string, id uuid.UUID) (int64, error) {
	if err := ownership.Require(verifiedEmail, ownerEmail); err != nil {
		return 0, err
	}
	if id == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "request id is required")
	}

	count, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete requested food")
	}
	return count, nil
}

// RejectByFoodID deletes claims by the donated item they reference. This is
// the donor-side rejection path and must stay distinct from CancelByID even
// though both hit the same collection.
func (s *service) RejectByFoodID(ctx context.Context, verifiedEmail, ownerEmail string, foodID uuid.UUID) (int64, error) {
	if err := ownership.Require(verifiedEmail, ownerEmail); err != nil {
		return 0, err
	}
	if foodID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "food id is required")
	}

	count, err := s.repo.DeleteByFoodID(ctx, foodID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete requests by food")
	}
	return count, nil
}
