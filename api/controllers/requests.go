package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/communitykitchen/foodshare-backend/api/middleware"
	"github.com/communitykitchen/foodshare-backend/api/responses"
	"github.com/communitykitchen/foodshare-backend/api/validators"
	"github.com/communitykitchen/foodshare-backend/internal/requests"
	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
	"github.com/communitykitchen/foodshare-backend/pkg/logger"
)

type createRequestRequest struct {
	FoodID         uuid.UUID  `json:"food_id" validate:"required"`
	RequesterEmail string     `json:"requester_email" validate:"required,email"`
	RequestDate    *time.Time `json:"request_date,omitempty"`
}

type requestResponse struct {
	ID             uuid.UUID `json:"id"`
	FoodID         uuid.UUID `json:"food_id"`
	RequesterEmail string    `json:"requester_email"`
	FoodName       string    `json:"food_name,omitempty"`
	FoodImage      string    `json:"food_image,omitempty"`
	PickupLocation string    `json:"pickup_location,omitempty"`
	ExpiredAt      time.Time `json:"expired_at"`
	DonatorName    string    `json:"donator_name,omitempty"`
	DonatorEmail   string    `json:"donator_email,omitempty"`
	RequestDate    time.Time `json:"request_date"`
	FoodStatus     string    `json:"food_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toRequestResponse(request models.RequestedFood) requestResponse {
	return requestResponse{
		ID:             request.ID,
		FoodID:         request.FoodID,
		RequesterEmail: request.RequesterEmail,
		FoodName:       request.FoodName,
		FoodImage:      request.FoodImage,
		PickupLocation: request.PickupLocation,
		ExpiredAt:      request.ExpiredAt,
		DonatorName:    request.DonatorName,
		DonatorEmail:   request.DonatorEmail,
		RequestDate:    request.RequestDate,
		FoodStatus:     request.FoodStatus.String(),
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}
}

func toRequestResponses(rows []models.RequestedFood) []requestResponse {
	out := make([]requestResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRequestResponse(row))
	}
	return out
}

// CreateRequest places a claim on a donated item.
func CreateRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := requests.CreateRequestInput{
			FoodID:         payload.FoodID,
			RequesterEmail: payload.RequesterEmail,
		}
		if payload.RequestDate != nil {
			input.RequestDate = *payload.RequestDate
		}

		created, err := svc.CreateRequest(r.Context(), middleware.EmailFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toRequestResponse(*created))
	}
}

// ListRequests returns the caller's own claims.
func ListRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListOwned(r.Context(), middleware.EmailFromContext(r.Context()), validators.QueryString(r, "userEmail"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toRequestResponses(rows))
	}
}

// ListRequestsByFood returns every claim on a donated item. Public: donors use
// it to review incoming requests.
func ListRequestsByFood(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseFoodID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByFoodID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toRequestResponses(rows))
	}
}

// CancelRequest removes the caller's claim by its record id.
func CancelRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "requestId")
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request id"))
			return
		}

		count, err := svc.CancelByID(r.Context(), middleware.EmailFromContext(r.Context()), validators.QueryString(r, "userEmail"), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, deletedResponse{DeletedCount: count})
	}
}

// RejectRequestsByFood removes every claim on a donated item. This is the
// donor-side rejection path, addressed by the food rather than the claim.
func RejectRequestsByFood(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseFoodID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.RejectByFoodID(r.Context(), middleware.EmailFromContext(r.Context()), validators.QueryString(r, "userEmail"), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, deletedResponse{DeletedCount: count})
	}
}
