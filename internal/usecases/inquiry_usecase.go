package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/utils"
)

// InquiryUsecase records buyer questions about listings
type InquiryUsecase struct {
	inquiryRepo repositories.InquiryRepository
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	dispatcher  *NotificationDispatcher
}

// NewInquiryUsecase creates a new inquiry usecase
func NewInquiryUsecase(
	inquiryRepo repositories.InquiryRepository,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	dispatcher *NotificationDispatcher,
) *InquiryUsecase {
	return &InquiryUsecase{
		inquiryRepo: inquiryRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
	}
}

// Submit stores an inquiry and tells every admin
func (u *InquiryUsecase) Submit(ctx context.Context, actor entities.Actor, input *entities.InquiryInput) (*entities.Inquiry, error) {
	if err := authz.Require(actor, authz.SubmitInquiry, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	listing, err := u.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Invalid("listingId", "listing does not exist")
		}
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	inquiry := &entities.Inquiry{
		ID:           utils.NewID(),
		UserID:       actor.ID,
		ListingID:    listing.ID,
		ListingLabel: listing.Label(),
		UserName:     user.Name,
		UserEmail:    user.Email,
		Message:      strings.TrimSpace(input.Message),
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	u.dispatcher.Dispatch(ctx, entities.NotifyAdmins(entities.NotificationInfo, "New Inquiry",
		fmt.Sprintf("%s asked about %s.", user.Name, inquiry.ListingLabel)))
	return inquiry, nil
}

// List returns every inquiry to admins
func (u *InquiryUsecase) List(ctx context.Context, actor entities.Actor) ([]*entities.Inquiry, error) {
	if err := authz.Require(actor, authz.ViewInquiries, authz.NoTarget); err != nil {
		return nil, err
	}
	return u.inquiryRepo.List(ctx)
}
