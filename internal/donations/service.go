package donations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/communitykitchen/foodshare-backend/internal/ownership"
	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	"github.com/communitykitchen/foodshare-backend/pkg/enums"
	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
)

type donatedRepository interface {
	Create(ctx context.Context, food *models.DonatedFood) (*models.DonatedFood, error)
	List(ctx context.Context, filter Filter) ([]models.DonatedFood, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DonatedFood, error)
	Upsert(ctx context.Context, id uuid.UUID, food *models.DonatedFood) (*models.DonatedFood, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FoodStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type requestedStatusUpdater interface {
	UpdateStatusByFoodID(ctx context.Context, foodID uuid.UUID, status enums.FoodStatus) (int64, error)
}

// StatusUpdateResult reports how many rows each of the two independent writes
// touched. The writes are not wrapped in a transaction; a partial failure can
// leave the collections inconsistent until the next status change.
type StatusUpdateResult struct {
	RequestedMatched int64 `json:"requested_matched"`
	DonatedMatched   int64 `json:"donated_matched"`
}

// Service exposes donated food creation, querying, upsert-editing, deletion,
// and cross-collection status updates.
type Service interface {
	CreateFood(ctx context.Context, verifiedEmail string, input CreateFoodInput) (*models.DonatedFood, error)
	ListPublic(ctx context.Context, params ListParams) ([]models.DonatedFood, error)
	GetPublicByID(ctx context.Context, id uuid.UUID) (*models.DonatedFood, error)
	ListOwned(ctx context.Context, verifiedEmail, ownerEmail string) ([]models.DonatedFood, error)
	EditFood(ctx context.Context, verifiedEmail string, id uuid.UUID, input EditFoodInput) (*models.DonatedFood, error)
	DeleteFood(ctx context.Context, verifiedEmail, ownerEmail string, id uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, verifiedEmail, ownerEmail string, foodID uuid.UUID, status enums.FoodStatus) (*StatusUpdateResult, error)
}

type service struct {
	repo     donatedRepository
	requests requestedStatusUpdater
}

// NewService builds the donated food service backed by the provided
// repositories.
func NewService(repo donatedRepository, requests requestedStatusUpdater) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("donated food repository required")
	}
	if requests == nil {
		return nil, fmt.Errorf("requested food repository required")
	}
	return &service{repo: repo, requests: requests}, nil
}

func (s *service) CreateFood(ctx context.Context, verifiedEmail string, input CreateFoodInput) (*models.DonatedFood, error) {
	if err := ownership.Require(verifiedEmail, input.DonatorEmail); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FoodName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food_name is required")
	}
	if input.FoodQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food_quantity must be positive")
	}
	status := input.FoodStatus
	if status == "" {
		status = enums.FoodStatusAvailable
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid food status")
	}

	food := &models.DonatedFood{
		FoodName:        strings.TrimSpace(input.FoodName),
		FoodImage:       input.FoodImage,
		PickupLocation:  input.PickupLocation,
		FoodQuantity:    input.FoodQuantity,
		ExpiredAt:       input.ExpiredAt,
		AdditionalNotes: input.AdditionalNotes,
		DonatorName:     input.DonatorName,
		DonatorImage:    input.DonatorImage,
		DonatorEmail:    strings.ToLower(strings.TrimSpace(input.DonatorEmail)),
		FoodStatus:      status,
	}

	created, err := s.repo.Create(ctx, food)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create donated food")
	}
	return created, nil
}

func (s *service) ListPublic(ctx context.Context, params ListParams) ([]models.DonatedFood, error) {
	filter := ResolveFilter(params.ID, params.OwnerEmail, params.SearchText, params.ExpiredAt, params.Sort)
	filter.PublicOnly = true

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donated foods")
	}
	return rows, nil
}

func (s *service) GetPublicByID(ctx context.Context, id uuid.UUID) (*models.DonatedFood, error) {
	rows, err := s.repo.List(ctx, Filter{Kind: FilterByID, ID: id, PublicOnly: true})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup donated food")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food not found")
	}
	return &rows[0], nil
}

// ListOwned is the donor's private "manage my food" listing. Unlike the
// public path it includes Delivered records.
func (s *service) ListOwned(ctx context.Context, verifiedEmail, ownerEmail string) ([]models.DonatedFood, error) {
	if err := ownership.Require(verifiedEmail, ownerEmail); err != nil {
		return nil, err
	}

	filter := Filter{Kind: FilterByOwner, OwnerEmail: strings.ToLower(strings.TrimSpace(ownerEmail))}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned foods")
	}
	return rows, nil
}

func (s *service) EditFood(ctx context.Context, verifiedEmail string, id uuid.UUID, input EditFoodInput) (*models.DonatedFood, error) {
	if err := ownership.Require(verifiedEmail, input.DonatorEmail); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food id is required")
	}
	if strings.TrimSpace(input.FoodName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food_name is required")
	}
	status := input.FoodStatus
	if status == "" {
		status = enums.FoodStatusAvailable
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid food status")
	}

	food := &models.DonatedFood{
		FoodName:        strings.TrimSpace(input.FoodName),
		FoodImage:       input.FoodImage,
		PickupLocation:  input.PickupLocation,
		FoodQuantity:    input.FoodQuantity,
		ExpiredAt:       input.ExpiredAt,
		AdditionalNotes: input.AdditionalNotes,
		DonatorName:     input.DonatorName,
		DonatorImage:    input.DonatorImage,
		DonatorEmail:    strings.ToLower(strings.TrimSpace(input.DonatorEmail)),
		FoodStatus:      status,
	}

	updated, err := s.repo.Upsert(ctx, id, food)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Upsert raced with a delete between update and re-read.
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "re-read edited food")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert donated food")
	}
	return updated, nil
}

func (s *service) DeleteFood(ctx context.Context, verifiedEmail, ownerEmail string, id uuid.UUID) (int64, error) {
	if err := ownership.Require(verifiedEmail, ownerEmail); err != nil {
		return 0, err
	}
	if id == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "food id is required")
	}

	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete donated food")
	}
	return count, nil
}

// UpdateStatus propagates a status change to every requested_foods row
// referencing the donated item, then to the donated row itself. The two writes
// are independent and unordered from the observer's point of view.
func (s *service) UpdateStatus(ctx context.Context, verifiedEmail, ownerEmail string, foodID uuid.UUID, status enums.FoodStatus) (*StatusUpdateResult, error) {
	if err := ownership.Require(verifiedEmail, ownerEmail); err != nil {
		return nil, err
	}
	if foodID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid food status")
	}

	requestedMatched, err := s.requests.UpdateStatusByFoodID(ctx, foodID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update requested food status")
	}

	donatedMatched, err := s.repo.UpdateStatus(ctx, foodID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update donated food status")
	}

	return &StatusUpdateResult{
		RequestedMatched: requestedMatched,
		DonatedMatched:   donatedMatched,
	}, nil
}
