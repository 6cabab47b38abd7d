package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/usecases"
	"motorhub.backend/pkg/utils"
)

type listingFixture struct {
	listingRepo *MockListingRepository
	userRepo    *MockUserRepository
	notifRepo   *MockNotificationRepository
	uc          *usecases.ListingUsecase
}

func newListingFixture() *listingFixture {
	f := &listingFixture{
		listingRepo: new(MockListingRepository),
		userRepo:    new(MockUserRepository),
		notifRepo:   new(MockNotificationRepository),
	}
	d := usecases.NewNotificationDispatcher(f.notifRepo, f.userRepo)
	f.uc = usecases.NewListingUsecase(f.listingRepo, d)
	return f
}

func porscheInput() *entities.ListingInput {
	return &entities.ListingInput{
		Make:       "Porsche",
		Model:      "911",
		Year:       2023,
		Price:      decimal.NewFromInt(215000),
		Categories: []string{entities.CategoryNew},
	}
}

func TestListingUsecase_Create_UnverifiedDealerDenied(t *testing.T) {
	f := newListingFixture()
	dealer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleDealer}

	_, err := f.uc.Create(context.Background(), dealer, porscheInput())

	var authErr *domainerrors.AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerrors.DenyNotVerified, authErr.Reason)
	f.listingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingUsecase_Create_DealerStartsPending(t *testing.T) {
	f := newListingFixture()
	dealer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleDealer, Verified: true}
	admin := uuid.New()

	f.listingRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *entities.Listing) bool {
		return l.Status() == entities.ListingStatusPending && l.OwnedBy(dealer.ID)
	})).Return(nil).Once()
	f.userRepo.On("ListByRole", mock.Anything, entities.UserRoleAdmin).Return([]*entities.User{{ID: admin}}, nil).Once()
	f.notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Notification) bool {
		return n.RecipientID == admin && n.Title == "New Listing Submitted"
	})).Return(nil).Once()

	l, err := f.uc.Create(context.Background(), dealer, porscheInput())
	require.NoError(t, err)
	assert.Equal(t, entities.ListingStatusPending, l.Status())
	f.listingRepo.AssertExpectations(t)
	f.notifRepo.AssertExpectations(t)
}

func TestListingUsecase_Create_AdminPublishesDirectly(t *testing.T) {
	f := newListingFixture()
	admin := entities.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}

	f.listingRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	l, err := f.uc.Create(context.Background(), admin, porscheInput())
	require.NoError(t, err)
	assert.Equal(t, entities.ListingStatusApproved, l.Status())
	assert.Nil(t, l.DealerID)
	f.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingUsecase_Create_Validation(t *testing.T) {
	f := newListingFixture()
	admin := entities.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}

	in := porscheInput()
	in.Price = decimal.Zero
	_, err := f.uc.Create(context.Background(), admin, in)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))

	in = porscheInput()
	in.Categories = []string{"Spaceship"}
	_, err = f.uc.Create(context.Background(), admin, in)
	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Field, "categories")
}

func TestListingUsecase_Reject_RequiresReason(t *testing.T) {
	f := newListingFixture()
	admin := entities.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}
	dealerID := uuid.New()
	id := uuid.New()
	f.listingRepo.On("GetByID", mock.Anything, id).
		Return(&entities.Listing{ID: id, DealerID: &dealerID, State: entities.ListingPending{}}, nil)

	_, err := f.uc.Reject(context.Background(), admin, id, "  ")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	f.listingRepo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingUsecase_Restore_DealerCannotLiftAdminArchive(t *testing.T) {
	f := newListingFixture()
	dealer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleDealer, Verified: true}
	id := uuid.New()
	f.listingRepo.On("GetByID", mock.Anything, id).Return(&entities.Listing{
		ID:       id,
		DealerID: &dealer.ID,
		State:    entities.ListingArchived{By: entities.ArchivedByAdmin},
	}, nil)

	_, err := f.uc.Restore(context.Background(), dealer, id)

	var authErr *domainerrors.AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerrors.DenyRecordLocked, authErr.Reason)
	f.listingRepo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingUsecase_Archive_RecordsArchiver(t *testing.T) {
	f := newListingFixture()
	dealer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleDealer}
	id := uuid.New()
	f.listingRepo.On("GetByID", mock.Anything, id).Return(&entities.Listing{
		ID: id, DealerID: &dealer.ID, Make: "BMW", Model: "M3", Year: 2021, State: entities.ListingApproved{},
	}, nil)
	f.listingRepo.On("UpdateState", mock.Anything, id, entities.ListingArchived{By: entities.ArchivedByDealer}).Return(nil).Once()
	f.notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	l, err := f.uc.Archive(context.Background(), dealer, id)
	require.NoError(t, err)
	assert.Equal(t, entities.ArchivedByDealer, l.ArchivedBy())
	f.listingRepo.AssertExpectations(t)
}

func TestListingUsecase_Approve_NotFound(t *testing.T) {
	f := newListingFixture()
	admin := entities.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}
	id := uuid.New()
	f.listingRepo.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.Approve(context.Background(), admin, id)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestListingUsecase_ListPublic_Filter(t *testing.T) {
	f := newListingFixture()
	f.listingRepo.On("List", mock.Anything, entities.ListingFilter{
		PublicOnly:    true,
		FeaturedFirst: true,
		Category:      entities.CategoryRental,
		Limit:         10,
		Offset:        10,
	}).Return([]*entities.Listing{}, int64(15), nil).Once()

	page, err := f.uc.ListPublic(context.Background(), entities.CategoryRental, utils.GetPaginationParams(2, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(15), page.Meta.TotalCount)
	assert.Equal(t, 2, page.Meta.TotalPages)
}

func TestListingUsecase_ListOwn_RequiresDealer(t *testing.T) {
	f := newListingFixture()
	buyer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleBuyer}
	_, err := f.uc.ListOwn(context.Background(), buyer, utils.GetPaginationParams(1, 0))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
