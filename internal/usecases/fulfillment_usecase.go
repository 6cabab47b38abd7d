package usecases

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/lifecycle"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/utils"
)

// fulfillmentStore is the part of the booking and rental repositories the
// shared transition code needs.
type fulfillmentStore[T entities.FulfillmentRecord] interface {
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	List(ctx context.Context, filter entities.FulfillmentFilter) ([]T, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FulfillmentStatus) error
	SetHideFromDealer(ctx context.Context, id uuid.UUID, hidden bool) error
}

// FulfillmentUsecase drives test drive bookings and rentals
type FulfillmentUsecase struct {
	bookingRepo repositories.BookingRepository
	rentalRepo  repositories.RentalRepository
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	dispatcher  *NotificationDispatcher
}

// NewFulfillmentUsecase creates a new fulfillment usecase
func NewFulfillmentUsecase(
	bookingRepo repositories.BookingRepository,
	rentalRepo repositories.RentalRepository,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	dispatcher *NotificationDispatcher,
) *FulfillmentUsecase {
	return &FulfillmentUsecase{
		bookingRepo: bookingRepo,
		rentalRepo:  rentalRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
	}
}

// RequestBooking creates a Pending test drive for the calling buyer
func (u *FulfillmentUsecase) RequestBooking(ctx context.Context, actor entities.Actor, input *entities.BookingInput) (*entities.Booking, error) {
	if err := authz.Require(actor, authz.CreateFulfillment, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	scheduledAt, err := time.Parse("2006-01-02 15:04", input.Date+" "+input.Time)
	if err != nil {
		return nil, domainerrors.Invalid("date", "invalid date or time")
	}

	listing, requester, err := u.resolveRequest(ctx, actor, input.ListingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &entities.Booking{
		ID:           utils.NewID(),
		UserID:       actor.ID,
		DealerID:     listing.DealerID,
		ListingID:    listing.ID,
		ScheduledAt:  scheduledAt,
		Location:     strings.TrimSpace(input.Location),
		Notes:        input.Notes,
		Status:       entities.FulfillmentPending,
		ListingLabel: listing.Label(),
		UserName:     requester.Name,
		UserEmail:    requester.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	recordTransition(ctx, lifecycle.MachineBooking, booking.ID, "", string(booking.Status))
	u.dispatcher.Dispatch(ctx, lifecycle.FulfillmentRequested(booking, requester.Name)...)
	return booking, nil
}

// RequestRental creates a Pending rental for the calling buyer. The listing
// must be offered for rent.
func (u *FulfillmentUsecase) RequestRental(ctx context.Context, actor entities.Actor, input *entities.RentalInput) (*entities.Rental, error) {
	if err := authz.Require(actor, authz.CreateFulfillment, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, domainerrors.Invalid("dateStart", "invalid date")
	}

	listing, requester, err := u.resolveRequest(ctx, actor, input.ListingID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(listing.Categories, entities.CategoryRental) {
		return nil, domainerrors.Invalid("listingId", "listing is not offered for rent")
	}

	now := time.Now().UTC()
	rental := &entities.Rental{
		ID:           utils.NewID(),
		UserID:       actor.ID,
		DealerID:     listing.DealerID,
		ListingID:    listing.ID,
		StartDate:    startDate,
		DurationDays: input.DurationDays,
		Location:     strings.TrimSpace(input.Location),
		Status:       entities.FulfillmentPending,
		ListingLabel: listing.Label(),
		UserName:     requester.Name,
		UserEmail:    requester.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	recordTransition(ctx, lifecycle.MachineRental, rental.ID, "", string(rental.Status))
	u.dispatcher.Dispatch(ctx, lifecycle.FulfillmentRequested(rental, requester.Name)...)
	return rental, nil
}

// resolveRequest loads the publicly visible listing and the requester whose
// name and email are copied onto the record.
func (u *FulfillmentUsecase) resolveRequest(ctx context.Context, actor entities.Actor, listingID uuid.UUID) (*entities.Listing, *entities.User, error) {
	listing, err := u.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.Invalid("listingId", "listing does not exist")
		}
		return nil, nil, err
	}
	if !listing.PubliclyVisible() {
		return nil, nil, domainerrors.Invalid("listingId", "listing is not available")
	}
	requester, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}
	return listing, requester, nil
}

// TransitionBooking applies an admin command to a booking
func (u *FulfillmentUsecase) TransitionBooking(ctx context.Context, actor entities.Actor, id uuid.UUID, cmd entities.FulfillmentCommand) (*entities.Booking, error) {
	return transitionRecord[*entities.Booking](ctx, u.dispatcher, u.bookingRepo, actor, id, cmd)
}

// TransitionRental applies an admin command to a rental
func (u *FulfillmentUsecase) TransitionRental(ctx context.Context, actor entities.Actor, id uuid.UUID, cmd entities.FulfillmentCommand) (*entities.Rental, error) {
	return transitionRecord[*entities.Rental](ctx, u.dispatcher, u.rentalRepo, actor, id, cmd)
}

// SetBookingHidden sets the hideFromDealer overlay; status is untouched
func (u *FulfillmentUsecase) SetBookingHidden(ctx context.Context, actor entities.Actor, id uuid.UUID, hidden bool) error {
	return setHidden[*entities.Booking](ctx, u.bookingRepo, actor, id, hidden)
}

// SetRentalHidden sets the hideFromDealer overlay; status is untouched
func (u *FulfillmentUsecase) SetRentalHidden(ctx context.Context, actor entities.Actor, id uuid.UUID, hidden bool) error {
	return setHidden[*entities.Rental](ctx, u.rentalRepo, actor, id, hidden)
}

// GetBooking returns a booking the actor may see
func (u *FulfillmentUsecase) GetBooking(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Booking, error) {
	return getRecord[*entities.Booking](ctx, u.bookingRepo, actor, id)
}

// GetRental returns a rental the actor may see
func (u *FulfillmentUsecase) GetRental(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Rental, error) {
	return getRecord[*entities.Rental](ctx, u.rentalRepo, actor, id)
}

// ListBookings is role scoped: admins see all, dealers their visible own,
// buyers their own requests.
func (u *FulfillmentUsecase) ListBookings(ctx context.Context, actor entities.Actor, status entities.FulfillmentStatus) ([]*entities.Booking, error) {
	return listRecords[*entities.Booking](ctx, u.bookingRepo, actor, status)
}

// ListRentals is role scoped like ListBookings
func (u *FulfillmentUsecase) ListRentals(ctx context.Context, actor entities.Actor, status entities.FulfillmentStatus) ([]*entities.Rental, error) {
	return listRecords[*entities.Rental](ctx, u.rentalRepo, actor, status)
}

func transitionRecord[T entities.FulfillmentRecord](
	ctx context.Context,
	dispatcher *NotificationDispatcher,
	store fulfillmentStore[T],
	actor entities.Actor,
	id uuid.UUID,
	cmd entities.FulfillmentCommand,
) (T, error) {
	var zero T
	if err := authz.Require(actor, authz.TransitionFulfillment, authz.NoTarget); err != nil {
		return zero, err
	}
	record, err := store.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	t, err := lifecycle.TransitionFulfillment(record, cmd)
	if err != nil {
		return zero, err
	}
	if err := store.UpdateStatus(ctx, id, t.To); err != nil {
		return zero, err
	}
	recordTransition(ctx, t.Machine, id, string(t.From), string(t.To))
	dispatcher.Dispatch(ctx, t.Effects...)
	return store.GetByID(ctx, id)
}

func setHidden[T entities.FulfillmentRecord](ctx context.Context, store fulfillmentStore[T], actor entities.Actor, id uuid.UUID, hidden bool) error {
	if err := authz.Require(actor, authz.HideFulfillment, authz.NoTarget); err != nil {
		return err
	}
	return store.SetHideFromDealer(ctx, id, hidden)
}

func getRecord[T entities.FulfillmentRecord](ctx context.Context, store fulfillmentStore[T], actor entities.Actor, id uuid.UUID) (T, error) {
	var zero T
	record, err := store.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := authz.Require(actor, authz.ViewFulfillment, authz.FulfillmentTarget(record)); err != nil {
		return zero, err
	}
	return record, nil
}

func listRecords[T entities.FulfillmentRecord](ctx context.Context, store fulfillmentStore[T], actor entities.Actor, status entities.FulfillmentStatus) ([]T, error) {
	filter := entities.FulfillmentFilter{Status: status}
	switch {
	case actor.IsAdmin():
	case actor.IsDealer():
		filter.DealerID = &actor.ID
	default:
		filter.UserID = &actor.ID
	}

	records, err := store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !actor.IsDealer() {
		return records, nil
	}
	visible := make([]T, 0, len(records))
	for _, r := range records {
		if authz.DealerCanSee(actor.ID, r) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}
