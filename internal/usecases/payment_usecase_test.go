package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/usecases"
)

type paymentFixture struct {
	paymentRepo *MockPaymentRepository
	listingRepo *MockListingRepository
	rentalRepo  *MockRentalRepository
	userRepo    *MockUserRepository
	notifRepo   *MockNotificationRepository
	uc          *usecases.PaymentUsecase
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		paymentRepo: new(MockPaymentRepository),
		listingRepo: new(MockListingRepository),
		rentalRepo:  new(MockRentalRepository),
		userRepo:    new(MockUserRepository),
		notifRepo:   new(MockNotificationRepository),
	}
	d := usecases.NewNotificationDispatcher(f.notifRepo, f.userRepo)
	f.uc = usecases.NewPaymentUsecase(f.paymentRepo, f.listingRepo, f.rentalRepo, f.userRepo, d)
	return f
}

func purchaseInput(itemID uuid.UUID) *entities.PaymentInput {
	return &entities.PaymentInput{
		ItemType:    entities.PaymentItemPurchase,
		ItemID:      itemID,
		Amount:      decimal.NewFromInt(215000),
		Method:      "Wire",
		ReferenceID: "TX-1",
	}
}

func TestPaymentUsecase_Submit_UnresolvedItem(t *testing.T) {
	f := newPaymentFixture()
	buyer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleBuyer}
	itemID := uuid.New()
	f.listingRepo.On("GetByID", mock.Anything, itemID).Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.Submit(context.Background(), buyer, purchaseInput(itemID))

	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "itemId", verr.Field)
	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Submit_CopiesDescription(t *testing.T) {
	f := newPaymentFixture()
	buyer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleBuyer}
	itemID := uuid.New()
	f.listingRepo.On("GetByID", mock.Anything, itemID).
		Return(&entities.Listing{ID: itemID, Make: "Porsche", Model: "911", Year: 2023, State: entities.ListingApproved{}}, nil)
	f.userRepo.On("GetByID", mock.Anything, buyer.ID).Return(&entities.User{ID: buyer.ID, Name: "Bea"}, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Payment) bool {
		return p.Status == entities.PaymentStatusPending && p.ItemDescription == "Purchase: 2023 Porsche 911"
	})).Return(nil).Once()
	f.userRepo.On("ListByRole", mock.Anything, entities.UserRoleAdmin).Return([]*entities.User{}, nil)

	p, err := f.uc.Submit(context.Background(), buyer, purchaseInput(itemID))
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, p.UserID)
	f.paymentRepo.AssertExpectations(t)
}

func TestPaymentUsecase_Submit_RentalMustBeOwn(t *testing.T) {
	f := newPaymentFixture()
	buyer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleBuyer}
	rentalID := uuid.New()
	f.rentalRepo.On("GetByID", mock.Anything, rentalID).
		Return(&entities.Rental{ID: rentalID, UserID: uuid.New(), ListingLabel: "2022 Tesla Model 3"}, nil)

	in := purchaseInput(rentalID)
	in.ItemType = entities.PaymentItemRental
	_, err := f.uc.Submit(context.Background(), buyer, in)

	var authErr *domainerrors.AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerrors.DenyNotOwner, authErr.Reason)
}

func TestPaymentUsecase_Submit_DealerDenied(t *testing.T) {
	f := newPaymentFixture()
	dealer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleDealer, Verified: true}

	_, err := f.uc.Submit(context.Background(), dealer, purchaseInput(uuid.New()))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPaymentUsecase_Decide_SecondDecisionRefused(t *testing.T) {
	f := newPaymentFixture()
	admin := entities.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}
	id := uuid.New()
	f.paymentRepo.On("GetByID", mock.Anything, id).Return(&entities.Payment{
		ID: id, UserID: uuid.New(), Status: entities.PaymentStatusRejected, Amount: decimal.NewFromInt(10),
	}, nil)

	_, err := f.uc.Decide(context.Background(), admin, id, entities.PaymentVerify)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	f.paymentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Decide_VerifyNotifiesPayer(t *testing.T) {
	f := newPaymentFixture()
	admin := entities.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}
	payer := uuid.New()
	id := uuid.New()
	f.paymentRepo.On("GetByID", mock.Anything, id).Return(&entities.Payment{
		ID: id, UserID: payer, Status: entities.PaymentStatusPending, Amount: decimal.NewFromInt(10),
	}, nil)
	f.paymentRepo.On("UpdateStatus", mock.Anything, id, entities.PaymentStatusVerified, mock.AnythingOfType("time.Time")).Return(nil).Once()
	f.notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Notification) bool {
		return n.RecipientID == payer && n.Type == entities.NotificationSuccess
	})).Return(nil).Once()

	p, err := f.uc.Decide(context.Background(), admin, id, entities.PaymentVerify)
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusVerified, p.Status)
	assert.True(t, p.DecidedAt.Valid)
	f.paymentRepo.AssertExpectations(t)
	f.notifRepo.AssertExpectations(t)
}

func TestPaymentUsecase_VerifiedVolume(t *testing.T) {
	f := newPaymentFixture()
	admin := entities.Actor{ID: uuid.New(), Role: entities.UserRoleAdmin}
	f.paymentRepo.On("List", mock.Anything, entities.PaymentFilter{Status: entities.PaymentStatusVerified}).Return([]*entities.Payment{
		{Status: entities.PaymentStatusVerified, Amount: decimal.NewFromInt(100)},
		{Status: entities.PaymentStatusVerified, Amount: decimal.RequireFromString("50.25")},
	}, nil)

	first, err := f.uc.VerifiedVolume(context.Background(), admin)
	require.NoError(t, err)
	second, err := f.uc.VerifiedVolume(context.Background(), admin)
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(t, 2, first.Count)
	assert.True(t, first.Total.Equal(second.Total))

	buyer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleBuyer}
	_, err = f.uc.VerifiedVolume(context.Background(), buyer)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPaymentUsecase_List_BuyerSeesOwn(t *testing.T) {
	f := newPaymentFixture()
	buyer := entities.Actor{ID: uuid.New(), Role: entities.UserRoleBuyer}
	f.paymentRepo.On("List", mock.Anything, entities.PaymentFilter{UserID: &buyer.ID}).
		Return([]*entities.Payment{{ID: uuid.New(), UserID: buyer.ID, CreatedAt: time.Now()}}, nil).Once()

	items, err := f.uc.List(context.Background(), buyer, "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	f.paymentRepo.AssertExpectations(t)
}
