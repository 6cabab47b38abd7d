package usecases

import (
	"context"
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

// ListingPage is one page of listings
type ListingPage struct {
	Items []*entities.Listing  `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// ListingUsecase drives listing moderation and listing queries
type ListingUsecase struct {
	listingRepo repositories.ListingRepository
	dispatcher  *NotificationDispatcher
}

// NewListingUsecase creates a new listing usecase
func NewListingUsecase(
	listingRepo repositories.ListingRepository,
	dispatcher *NotificationDispatcher,
) *ListingUsecase {
	return &ListingUsecase{
		listingRepo: listingRepo,
		dispatcher:  dispatcher,
	}
}

// Create stores a listing. Dealers own what they create and enter
// moderation; admin listings are platform-sourced and published directly.
func (u *ListingUsecase) Create(ctx context.Context, actor entities.Actor, input *entities.ListingInput) (*entities.Listing, error) {
	if err := authz.Require(actor, authz.CreateListing, authz.NoTarget); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Price.IsPositive() {
		return nil, domainerrors.Invalid("price", "must be greater than zero")
	}

	now := time.Now().UTC()
	listing := &entities.Listing{
		ID:          utils.NewID(),
		Make:        strings.TrimSpace(input.Make),
		Model:       strings.TrimSpace(input.Model),
		Year:        input.Year,
		Price:       input.Price,
		Mileage:     input.Mileage,
		Description: input.Description,
		Specs:       input.Specs,
		Categories:  input.Categories,
		Images:      input.Images,
		State:       lifecycle.InitialListingState(actor),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if actor.IsDealer() {
		owner := actor.ID
		listing.DealerID = &owner
	}

	if err := u.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	recordTransition(ctx, lifecycle.MachineListing, listing.ID, "", string(listing.Status()))
	u.dispatcher.Dispatch(ctx, lifecycle.ListingSubmitted(listing)...)
	return listing, nil
}

// Get returns a listing the actor may see. Anonymous callers pass the zero Actor.
// A listing hidden from the actor reads as missing, so unpublished ids do not leak.
func (u *ListingUsecase) Get(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Listing, error) {
	listing, err := u.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ViewListing, authz.ListingTarget(listing)).Allowed {
		return nil, domainerrors.ErrNotFound
	}
	return listing, nil
}

// Update edits non-status fields. Moderation state is never touched.
func (u *ListingUsecase) Update(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.ListingUpdate) (*entities.Listing, error) {
	listing, err := u.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.EditListing, authz.ListingTarget(listing)); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.Make != nil {
		listing.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		listing.Model = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		listing.Year = *input.Year
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, domainerrors.Invalid("price", "must be greater than zero")
		}
		listing.Price = *input.Price
	}
	if input.Mileage != nil {
		listing.Mileage = *input.Mileage
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Specs != nil {
		listing.Specs = input.Specs
	}
	if input.Categories != nil {
		listing.Categories = input.Categories
	}
	if input.Images != nil {
		listing.Images = input.Images
	}

	if err := u.listingRepo.UpdateDetails(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Approve publishes a pending listing
func (u *ListingUsecase) Approve(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Listing, error) {
	return u.moderate(ctx, actor, id, authz.ApproveListing, lifecycle.ApproveListing)
}

// Reject refuses a pending listing with a mandatory reason
func (u *ListingUsecase) Reject(ctx context.Context, actor entities.Actor, id uuid.UUID, reason string) (*entities.Listing, error) {
	return u.moderate(ctx, actor, id, authz.RejectListing, func(l *entities.Listing) (lifecycle.ListingTransition, error) {
		return lifecycle.RejectListing(l, reason)
	})
}

// Archive hides an approved listing. An admin archive can only be lifted by an admin.
func (u *ListingUsecase) Archive(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Listing, error) {
	by := entities.ArchivedByDealer
	if actor.IsAdmin() {
		by = entities.ArchivedByAdmin
	}
	return u.moderate(ctx, actor, id, authz.ArchiveListing, func(l *entities.Listing) (lifecycle.ListingTransition, error) {
		return lifecycle.ArchiveListing(l, by)
	})
}

// Restore returns an archived or rejected listing to approved
func (u *ListingUsecase) Restore(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Listing, error) {
	return u.moderate(ctx, actor, id, authz.RestoreListing, lifecycle.RestoreListing)
}

func (u *ListingUsecase) moderate(
	ctx context.Context,
	actor entities.Actor,
	id uuid.UUID,
	action authz.Action,
	command func(*entities.Listing) (lifecycle.ListingTransition, error),
) (*entities.Listing, error) {
	listing, err := u.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, action, authz.ListingTarget(listing)); err != nil {
		return nil, err
	}

	t, err := command(listing)
	if err != nil {
		return nil, err
	}
	if err := u.listingRepo.UpdateState(ctx, listing.ID, t.To); err != nil {
		return nil, err
	}
	listing.State = t.To

	recordTransition(ctx, t.Machine, listing.ID, string(t.From.Status()), string(t.To.Status()))
	u.dispatcher.Dispatch(ctx, t.Effects...)
	return listing, nil
}

// SetSuspended toggles the public-inventory overlay. Moderation status is kept.
func (u *ListingUsecase) SetSuspended(ctx context.Context, actor entities.Actor, id uuid.UUID, suspended bool) error {
	if err := authz.Require(actor, authz.SuspendListing, authz.NoTarget); err != nil {
		return err
	}
	return u.listingRepo.SetSuspended(ctx, id, suspended)
}

// SetFeatured marks a listing for the featured slot
func (u *ListingUsecase) SetFeatured(ctx context.Context, actor entities.Actor, id uuid.UUID, featured bool) error {
	if err := authz.Require(actor, authz.FeatureListing, authz.NoTarget); err != nil {
		return err
	}
	return u.listingRepo.SetFeatured(ctx, id, featured)
}

// Delete removes a listing. Payments keep their copied item description.
func (u *ListingUsecase) Delete(ctx context.Context, actor entities.Actor, id uuid.UUID) error {
	if err := authz.Require(actor, authz.DeleteListing, authz.NoTarget); err != nil {
		return err
	}
	return u.listingRepo.Delete(ctx, id)
}

// ListPublic returns approved, unsuspended listings, featured first
func (u *ListingUsecase) ListPublic(ctx context.Context, category string, pagination utils.PaginationParams) (*ListingPage, error) {
	return u.page(ctx, entities.ListingFilter{
		PublicOnly:    true,
		FeaturedFirst: true,
		Category:      category,
	}, pagination)
}

// ListOwn returns every listing of the calling dealer, whatever its status
func (u *ListingUsecase) ListOwn(ctx context.Context, actor entities.Actor, pagination utils.PaginationParams) (*ListingPage, error) {
	if !actor.IsDealer() {
		return nil, domainerrors.Denied("listing.list_own", domainerrors.DenyWrongRole)
	}
	owner := actor.ID
	return u.page(ctx, entities.ListingFilter{DealerID: &owner}, pagination)
}

// ListAll is the admin view, optionally narrowed to statuses
func (u *ListingUsecase) ListAll(ctx context.Context, actor entities.Actor, statuses []entities.ListingStatus, pagination utils.PaginationParams) (*ListingPage, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.Denied("listing.list_all", domainerrors.DenyWrongRole)
	}
	return u.page(ctx, entities.ListingFilter{Statuses: statuses}, pagination)
}

// ModerationQueue lists pending listings for admins
func (u *ListingUsecase) ModerationQueue(ctx context.Context, actor entities.Actor, pagination utils.PaginationParams) (*ListingPage, error) {
	return u.ListAll(ctx, actor, []entities.ListingStatus{entities.ListingStatusPending}, pagination)
}

func (u *ListingUsecase) page(ctx context.Context, filter entities.ListingFilter, pagination utils.PaginationParams) (*ListingPage, error) {
	filter.Limit = pagination.Limit
	filter.Offset = pagination.CalculateOffset()
	items, total, err := u.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListingPage{
		Items: items,
		Meta:  utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	}, nil
}
