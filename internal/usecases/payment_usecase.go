package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/lifecycle"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/utils"
)

// PaymentUsecase records payment proofs and their verification
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	listingRepo repositories.ListingRepository
	rentalRepo  repositories.RentalRepository
	userRepo    repositories.UserRepository
	dispatcher  *NotificationDispatcher
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	listingRepo repositories.ListingRepository,
	rentalRepo repositories.RentalRepository,
	userRepo repositories.UserRepository,
	dispatcher *NotificationDispatcher,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		listingRepo: listingRepo,
		rentalRepo:  rentalRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
	}
}

// Submit records a Pending proof of payment. The item must resolve at
// submission time; its description is copied so the payment stays readable
// if the item is later deleted.
func (u *PaymentUsecase) Submit(ctx context.Context, actor entities.Actor, input *entities.PaymentInput) (*entities.Payment, error) {
	if err := authz.Require(actor, authz.CreatePayment, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, domainerrors.Invalid("amount", "must be greater than zero")
	}

	description, err := u.describeItem(ctx, actor, input.ItemType, input.ItemID)
	if err != nil {
		return nil, err
	}
	payer, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := &entities.Payment{
		ID:              utils.NewID(),
		UserID:          actor.ID,
		ItemType:        input.ItemType,
		ItemID:          input.ItemID,
		ItemDescription: description,
		Amount:          input.Amount,
		Method:          input.Method,
		ReferenceID:     input.ReferenceID,
		Status:          entities.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	recordTransition(ctx, lifecycle.MachinePayment, payment.ID, "", string(payment.Status))
	u.dispatcher.Dispatch(ctx, lifecycle.PaymentSubmitted(payment, payer.Name)...)
	return payment, nil
}

func (u *PaymentUsecase) describeItem(ctx context.Context, actor entities.Actor, itemType entities.PaymentItemType, itemID uuid.UUID) (string, error) {
	switch itemType {
	case entities.PaymentItemPurchase:
		listing, err := u.listingRepo.GetByID(ctx, itemID)
		if err != nil {
			return "", unresolvedItem(err, "listing")
		}
		return "Purchase: " + listing.Label(), nil
	case entities.PaymentItemRental:
		rental, err := u.rentalRepo.GetByID(ctx, itemID)
		if err != nil {
			return "", unresolvedItem(err, "rental")
		}
		if rental.UserID != actor.ID {
			return "", domainerrors.Denied(string(authz.CreatePayment), domainerrors.DenyNotOwner)
		}
		return "Rental: " + rental.ListingLabel, nil
	}
	return "", domainerrors.Invalid("itemType", "unknown item type")
}

func unresolvedItem(err error, kind string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.Invalid("itemId", "referenced "+kind+" does not exist")
	}
	return err
}

// Decide verifies or rejects a pending payment. Settled payments are immutable.
func (u *PaymentUsecase) Decide(ctx context.Context, actor entities.Actor, id uuid.UUID, decision entities.PaymentDecision) (*entities.Payment, error) {
	if err := authz.Require(actor, authz.DecidePayment, authz.NoTarget); err != nil {
		return nil, err
	}
	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := lifecycle.DecidePayment(payment, decision)
	if err != nil {
		return nil, err
	}

	decidedAt := time.Now().UTC()
	if err := u.paymentRepo.UpdateStatus(ctx, id, t.To, decidedAt); err != nil {
		return nil, err
	}
	payment.Status = t.To
	payment.DecidedAt.SetValid(decidedAt)

	recordTransition(ctx, t.Machine, id, string(t.From), string(t.To))
	u.dispatcher.Dispatch(ctx, t.Effects...)
	return payment, nil
}

// Get returns a payment to an admin or to the buyer who submitted it
func (u *PaymentUsecase) Get(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.ViewPayment, authz.SubjectTarget(payment.UserID)); err != nil {
		return nil, err
	}
	return payment, nil
}

// List returns every payment to admins and the caller's own to buyers
func (u *PaymentUsecase) List(ctx context.Context, actor entities.Actor, status entities.PaymentStatus) ([]*entities.Payment, error) {
	filter := entities.PaymentFilter{Status: status}
	if !actor.IsAdmin() {
		if err := authz.Require(actor, authz.ViewPayment, authz.SubjectTarget(actor.ID)); err != nil {
			return nil, err
		}
		filter.UserID = &actor.ID
	}
	return u.paymentRepo.List(ctx, filter)
}

// VerifiedVolume sums verified payments, recomputed from the store on every call
func (u *PaymentUsecase) VerifiedVolume(ctx context.Context, actor entities.Actor) (entities.PaymentVolume, error) {
	if err := authz.Require(actor, authz.ViewStats, authz.NoTarget); err != nil {
		return entities.PaymentVolume{}, err
	}
	return u.verifiedVolume(ctx)
}

func (u *PaymentUsecase) verifiedVolume(ctx context.Context) (entities.PaymentVolume, error) {
	payments, err := u.paymentRepo.List(ctx, entities.PaymentFilter{Status: entities.PaymentStatusVerified})
	if err != nil {
		return entities.PaymentVolume{}, err
	}
	return lifecycle.VerifiedVolume(payments), nil
}
