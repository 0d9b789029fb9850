package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/communitykitchen/foodshare-backend/api/middleware"
	"github.com/communitykitchen/foodshare-backend/api/responses"
	"github.com/communitykitchen/foodshare-backend/api/validators"
	"github.com/communitykitchen/foodshare-backend/internal/donations"
	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	"github.com/communitykitchen/foodshare-backend/pkg/enums"
	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
	"github.com/communitykitchen/foodshare-backend/pkg/logger"
)

type foodRequest struct {
	FoodName        string    `json:"food_name" validate:"required"`
	FoodImage       string    `json:"food_image,omitempty"`
	PickupLocation  string    `json:"pickup_location,omitempty"`
	FoodQuantity    int       `json:"food_quantity" validate:"required,min=1"`
	ExpiredAt       time.Time `json:"expired_at" validate:"required"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	DonatorName     string    `json:"donator_name,omitempty"`
	DonatorImage    string    `json:"donator_image,omitempty"`
	DonatorEmail    string    `json:"donator_email" validate:"required,email"`
	FoodStatus      string    `json:"food_status,omitempty"`
}

type foodResponse struct {
	ID              uuid.UUID `json:"id"`
	FoodName        string    `json:"food_name"`
	FoodImage       string    `json:"food_image,omitempty"`
	PickupLocation  string    `json:"pickup_location,omitempty"`
	FoodQuantity    int       `json:"food_quantity"`
	ExpiredAt       time.Time `json:"expired_at"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	DonatorName     string    `json:"donator_name,omitempty"`
	DonatorImage    string    `json:"donator_image,omitempty"`
	DonatorEmail    string    `json:"donator_email"`
	FoodStatus      string    `json:"food_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type deletedResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

type updateStatusRequest struct {
	FoodStatus string `json:"food_status" validate:"required"`
}

func toFoodResponse(food models.DonatedFood) foodResponse {
	return foodResponse{
		ID:              food.ID,
		FoodName:        food.FoodName,
		FoodImage:       food.FoodImage,
		PickupLocation:  food.PickupLocation,
		FoodQuantity:    food.FoodQuantity,
		ExpiredAt:       food.ExpiredAt,
		AdditionalNotes: food.AdditionalNotes,
		DonatorName:     food.DonatorName,
		DonatorImage:    food.DonatorImage,
		DonatorEmail:    food.DonatorEmail,
		FoodStatus:      food.FoodStatus.String(),
		CreatedAt:       food.CreatedAt,
		UpdatedAt:       food.UpdatedAt,
	}
}

func toFoodResponses(foods []models.DonatedFood) []foodResponse {
	out := make([]foodResponse, 0, len(foods))
	for _, food := range foods {
		out = append(out, toFoodResponse(food))
	}
	return out
}

func (p foodRequest) parseStatus() (enums.FoodStatus, error) {
	if strings.TrimSpace(p.FoodStatus) == "" {
		return "", nil
	}
	status, err := enums.ParseFoodStatus(p.FoodStatus)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid food status")
	}
	return status, nil
}

func parseFoodID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "foodId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid food id")
	}
	return id, nil
}

// CreateFood handles donors posting surplus food.
func CreateFood(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload foodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := payload.parseStatus()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.CreateFood(r.Context(), middleware.EmailFromContext(r.Context()), donations.CreateFoodInput{
			FoodName:        payload.FoodName,
			FoodImage:       payload.FoodImage,
			PickupLocation:  payload.PickupLocation,
			FoodQuantity:    payload.FoodQuantity,
			ExpiredAt:       payload.ExpiredAt,
			AdditionalNotes: payload.AdditionalNotes,
			DonatorName:     payload.DonatorName,
			DonatorImage:    payload.DonatorImage,
			DonatorEmail:    payload.DonatorEmail,
			FoodStatus:      status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toFoodResponse(*food))
	}
}

// ListFoods is the public browse endpoint. At most one filter dimension is
// honored per request; delivered items never appear here.
func ListFoods(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseQueryUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expiredAt, err := validators.ParseQueryTime(r, "expiredAt")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		foods, err := svc.ListPublic(r.Context(), donations.ListParams{
			ID:         id,
			SearchText: validators.QueryString(r, "search"),
			ExpiredAt:  expiredAt,
			Sort:       validators.QueryString(r, "sort"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toFoodResponses(foods))
	}
}

// GetFood fetches one public listing by path id.
func GetFood(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseFoodID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.GetPublicByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toFoodResponse(*food))
	}
}

// ManageFoods is the donor's private listing of their own posts, delivered
// items included.
func ManageFoods(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerEmail := validators.QueryString(r, "userEmail")

		foods, err := svc.ListOwned(r.Context(), middleware.EmailFromContext(r.Context()), ownerEmail)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toFoodResponses(foods))
	}
}

// EditFood replaces a donated food's fields. A missing id creates the record
// instead of reporting not-found.
func EditFood(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseFoodID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload foodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := payload.parseStatus()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.EditFood(r.Context(), middleware.EmailFromContext(r.Context()), id, donations.EditFoodInput{
			FoodName:        payload.FoodName,
			FoodImage:       payload.FoodImage,
			PickupLocation:  payload.PickupLocation,
			FoodQuantity:    payload.FoodQuantity,
			ExpiredAt:       payload.ExpiredAt,
			AdditionalNotes: payload.AdditionalNotes,
			DonatorName:     payload.DonatorName,
			DonatorImage:    payload.DonatorImage,
			DonatorEmail:    payload.DonatorEmail,
			FoodStatus:      status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toFoodResponse(*food))
	}
}

// DeleteFood removes a donated food listing. Deleting an absent id succeeds
// with a zero count.
func DeleteFood(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseFoodID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.DeleteFood(r.Context(), middleware.EmailFromContext(r.Context()), validators.QueryString(r, "userEmail"), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, deletedResponse{DeletedCount: count})
	}
}

// UpdateFoodStatus changes a donated food's status and mirrors it onto every
// claim referencing the item.
func UpdateFoodStatus(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseFoodID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseFoodStatus(payload.FoodStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid food status"))
			return
		}

		result, err := svc.UpdateStatus(r.Context(), middleware.EmailFromContext(r.Context()), validators.QueryString(r, "userEmail"), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
