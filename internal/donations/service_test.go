package donations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/communitykitchen/foodshare-backend/pkg/db/models"
	"github.com/communitykitchen/foodshare-backend/pkg/enums"
	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
)

type stubDonatedRepo struct {
	rows []models.DonatedFood
	err  error

	createCalls int
	listFilter  *Filter
	upsertID    uuid.UUID
	upsertRow   *models.DonatedFood
	statusID    uuid.UUID
	status      enums.FoodStatus
	statusCount int64
	deleteID    uuid.UUID
	deleteCount int64
}

func (s *stubDonatedRepo) Create(ctx context.Context, food *models.DonatedFood) (*models.DonatedFood, error) {
	s.createCalls++
	if s.err != nil {
		return nil, s.err
	}
	food.ID = uuid.New()
	return food, nil
}

func (s *stubDonatedRepo) List(ctx context.Context, filter Filter) ([]models.DonatedFood, error) {
	s.listFilter = &filter
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubDonatedRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DonatedFood, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.rows) == 0 {
		return nil, errors.New("not found")
	}
	return &s.rows[0], nil
}

func (s *stubDonatedRepo) Upsert(ctx context.Context, id uuid.UUID, food *models.DonatedFood) (*models.DonatedFood, error) {
	s.upsertID = id
	s.upsertRow = food
	if s.err != nil {
		return nil, s.err
	}
	created := *food
	created.ID = id
	return &created, nil
}

func (s *stubDonatedRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FoodStatus) (int64, error) {
	s.statusID = id
	s.status = status
	return s.statusCount, s.err
}

func (s *stubDonatedRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	s.deleteID = id
	return s.deleteCount, s.err
}

type stubRequestUpdater struct {
	foodID uuid.UUID
	status enums.FoodStatus
	count  int64
	err    error
	calls  int
}

func (s *stubRequestUpdater) UpdateStatusByFoodID(ctx context.Context, foodID uuid.UUID, status enums.FoodStatus) (int64, error) {
	s.calls++
	s.foodID = foodID
	s.status = status
	return s.count, s.err
}

func newTestService(t *testing.T, repo *stubDonatedRepo, updater *stubRequestUpdater) Service {
	t.Helper()
	svc, err := NewService(repo, updater)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validCreateInput() CreateFoodInput {
	return CreateFoodInput{
		FoodName:       "Sourdough loaves",
		PickupLocation: "Main St community fridge",
		FoodQuantity:   4,
		ExpiredAt:      time.Now().Add(48 * time.Hour),
		DonatorName:    "Pat Donor",
		DonatorEmail:   "donor@example.com",
	}
}

func TestNewServiceRequiresRepos(t *testing.T) {
	if _, err := NewService(nil, &stubRequestUpdater{}); err == nil {
		t.Fatal("expected error without donated repo")
	}
	if _, err := NewService(&stubDonatedRepo{}, nil); err == nil {
		t.Fatal("expected error without requested repo")
	}
}

func TestCreateFoodOwnerMismatchNeverHitsStore(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	_, err := svc.CreateFood(context.Background(), "someone@example.com", validCreateInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("store must not be invoked on mismatch, got %d calls", repo.createCalls)
	}
}

func TestCreateFoodDefaultsToAvailable(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	created, err := svc.CreateFood(context.Background(), "Donor@Example.com", validCreateInput())
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if created.FoodStatus != enums.FoodStatusAvailable {
		t.Fatalf("expected Available default, got %s", created.FoodStatus)
	}
	if created.DonatorEmail != "donor@example.com" {
		t.Fatalf("expected normalized owner email, got %q", created.DonatorEmail)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
}

func TestCreateFoodRejectsInvalidQuantity(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	input := validCreateInput()
	input.FoodQuantity = 0
	_, err := svc.CreateFood(context.Background(), "donor@example.com", input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPublicAlwaysExcludesDelivered(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	if _, err := svc.ListPublic(context.Background(), ListParams{SearchText: "bread"}); err != nil {
		t.Fatalf("list public: %v", err)
	}
	if repo.listFilter == nil || !repo.listFilter.PublicOnly {
		t.Fatal("expected PublicOnly filter on the public path")
	}
	if repo.listFilter.Kind != FilterBySearchText {
		t.Fatalf("expected search filter, got %v", repo.listFilter.Kind)
	}
}

func TestListPublicFilterPriority(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	id := uuid.New()
	params := ListParams{ID: &id, SearchText: "bread", Sort: "asc"}
	if _, err := svc.ListPublic(context.Background(), params); err != nil {
		t.Fatalf("list public: %v", err)
	}
	if repo.listFilter.Kind != FilterByID {
		t.Fatalf("id filter must win over search and sort, got %v", repo.listFilter.Kind)
	}
}

func TestListPublicExpiryWinsOverSort(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	expiry := time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC)
	params := ListParams{ExpiredAt: &expiry, Sort: "asc"}
	if _, err := svc.ListPublic(context.Background(), params); err != nil {
		t.Fatalf("list public: %v", err)
	}
	if repo.listFilter.Kind != FilterByExpiry {
		t.Fatalf("expiry filter must win over sort, got %v", repo.listFilter.Kind)
	}
	if !repo.listFilter.ExpiredAt.Equal(expiry) {
		t.Fatalf("expected expiry forwarded, got %s", repo.listFilter.ExpiredAt)
	}
}

func TestListOwnedRequiresMatchingEmail(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	_, err := svc.ListOwned(context.Background(), "donor@example.com", "other@example.com")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.listFilter != nil {
		t.Fatal("store must not be invoked on mismatch")
	}
}

func TestListOwnedIncludesDelivered(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	if _, err := svc.ListOwned(context.Background(), "donor@example.com", "donor@example.com"); err != nil {
		t.Fatalf("list owned: %v", err)
	}
	if repo.listFilter.PublicOnly {
		t.Fatal("owner listing must not exclude Delivered")
	}
	if repo.listFilter.Kind != FilterByOwner {
		t.Fatalf("expected owner filter, got %v", repo.listFilter.Kind)
	}
}

func TestGetPublicByIDNotFound(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	_, err := svc.GetPublicByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEditFoodOwnerMismatch(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	input := EditFoodInput{FoodName: "Rice", DonatorEmail: "other@example.com"}
	_, err := svc.EditFood(context.Background(), "donor@example.com", uuid.New(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.upsertRow != nil {
		t.Fatal("store must not be invoked on mismatch")
	}
}

func TestEditFoodUpsertsWithSuppliedID(t *testing.T) {
	repo := &stubDonatedRepo{}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	id := uuid.New()
	input := EditFoodInput{
		FoodName:     "Rice bags",
		FoodQuantity: 2,
		DonatorEmail: "donor@example.com",
		FoodStatus:   enums.FoodStatusAvailable,
	}
	updated, err := svc.EditFood(context.Background(), "donor@example.com", id, input)
	if err != nil {
		t.Fatalf("edit food: %v", err)
	}
	if repo.upsertID != id {
		t.Fatalf("expected upsert against %s, got %s", id, repo.upsertID)
	}
	if updated.ID != id {
		t.Fatalf("expected record id %s, got %s", id, updated.ID)
	}
}

func TestDeleteFoodReportsZeroForMissingID(t *testing.T) {
	repo := &stubDonatedRepo{deleteCount: 0}
	svc := newTestService(t, repo, &stubRequestUpdater{})

	count, err := svc.DeleteFood(context.Background(), "donor@example.com", "donor@example.com", uuid.New())
	if err != nil {
		t.Fatalf("delete must be idempotent, got %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero affected rows, got %d", count)
	}
}

func TestUpdateStatusTouchesBothCollections(t *testing.T) {
	repo := &stubDonatedRepo{statusCount: 1}
	updater := &stubRequestUpdater{count: 2}
	svc := newTestService(t, repo, updater)

	foodID := uuid.New()
	result, err := svc.UpdateStatus(context.Background(), "donor@example.com", "donor@example.com", foodID, enums.FoodStatusDelivered)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updater.calls != 1 || updater.foodID != foodID || updater.status != enums.FoodStatusDelivered {
		t.Fatalf("requested collection not updated as expected: %+v", updater)
	}
	if repo.statusID != foodID || repo.status != enums.FoodStatusDelivered {
		t.Fatalf("donated collection not updated as expected")
	}
	if result.RequestedMatched != 2 || result.DonatedMatched != 1 {
		t.Fatalf("unexpected counts %+v", result)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := &stubDonatedRepo{}
	updater := &stubRequestUpdater{}
	svc := newTestService(t, repo, updater)

	_, err := svc.UpdateStatus(context.Background(), "donor@example.com", "donor@example.com", uuid.New(), "Teleported")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if updater.calls != 0 {
		t.Fatal("store must not be invoked for invalid status")
	}
}

func TestUpdateStatusOwnerMismatch(t *testing.T) {
	repo := &stubDonatedRepo{}
	updater := &stubRequestUpdater{}
	svc := newTestService(t, repo, updater)

	_, err := svc.UpdateStatus(context.Background(), "donor@example.com", "other@example.com", uuid.New(), enums.FoodStatusDelivered)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if updater.calls != 0 {
		t.Fatal("store must not be invoked on mismatch")
	}
}
