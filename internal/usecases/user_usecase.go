package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/lifecycle"
	"motorhub.backend/internal/domain/repositories"
)

// UserUsecase handles self-service profile operations and admin user management
type UserUsecase struct {
	userRepo    repositories.UserRepository
	listingRepo repositories.ListingRepository
	dispatcher  *NotificationDispatcher
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	listingRepo repositories.ListingRepository,
	dispatcher *NotificationDispatcher,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		dispatcher:  dispatcher,
	}
}

// UpdateProfile renames the caller
func (u *UserUsecase) UpdateProfile(ctx context.Context, actor entities.Actor, input *entities.UpdateProfileInput) (*entities.User, error) {
	if err := authz.Require(actor, authz.UpdateProfile, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, domainerrors.Invalid("name", "must be at least 2 characters")
	}
	if err := u.userRepo.UpdateProfile(ctx, actor.ID, name); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, actor.ID)
}

// UpdateSecuritySettings replaces the caller's security flags
func (u *UserUsecase) UpdateSecuritySettings(ctx context.Context, actor entities.Actor, settings entities.SecuritySettings) (*entities.User, error) {
	if err := authz.Require(actor, authz.UpdateProfile, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	if err := u.userRepo.UpdateSecuritySettings(ctx, actor.ID, settings); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, actor.ID)
}

// ToggleFavorite adds or removes a listing from the caller's favorites and
// returns the new set.
func (u *UserUsecase) ToggleFavorite(ctx context.Context, actor entities.Actor, listingID uuid.UUID) ([]uuid.UUID, error) {
	if err := authz.Require(actor, authz.ToggleFavorite, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	favorites := make([]uuid.UUID, 0, len(user.Favorites)+1)
	if user.HasFavorite(listingID) {
		for _, id := range user.Favorites {
			if id != listingID {
				favorites = append(favorites, id)
			}
		}
	} else {
		if _, err := u.listingRepo.GetByID(ctx, listingID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.Invalid("listingId", "listing does not exist")
			}
			return nil, err
		}
		favorites = append(favorites, user.Favorites...)
		favorites = append(favorites, listingID)
	}

	if err := u.userRepo.SetFavorites(ctx, actor.ID, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// ListFavorites returns the caller's favorite listings that still exist and
// are visible to them.
func (u *UserUsecase) ListFavorites(ctx context.Context, actor entities.Actor) ([]*entities.Listing, error) {
	user, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	listings := make([]*entities.Listing, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		l, err := u.listingRepo.GetByID(ctx, id)
		if errors.Is(err, domainerrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if authz.Authorize(actor, authz.ViewListing, authz.ListingTarget(l)).Allowed {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// ListUsers returns users matching search by name or email
func (u *UserUsecase) ListUsers(ctx context.Context, actor entities.Actor, search string) ([]*entities.User, error) {
	if err := authz.Require(actor, authz.ManageUsers, authz.NoTarget); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx, strings.TrimSpace(search))
}

// SetRole changes a user's role
func (u *UserUsecase) SetRole(ctx context.Context, actor entities.Actor, userID uuid.UUID, role entities.UserRole) (*entities.User, error) {
	if err := authz.Require(actor, authz.ManageUsers, authz.NoTarget); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domainerrors.Invalid("role", "unknown role")
	}
	if userID == actor.ID {
		return nil, domainerrors.Invalid("userId", "admins cannot change their own role")
	}
	if err := u.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// SetVerification is the explicit admin verification override
func (u *UserUsecase) SetVerification(ctx context.Context, actor entities.Actor, userID uuid.UUID, verified bool) (*entities.User, error) {
	if err := authz.Require(actor, authz.ManageUsers, authz.NoTarget); err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	outcome := lifecycle.OverrideVerification(user, verified)
	next := *user
	outcome.Apply(&next)
	if err := u.userRepo.UpdateVerification(ctx, &next); err != nil {
		return nil, err
	}
	u.dispatcher.Dispatch(ctx, outcome.Effects...)
	return &next, nil
}

// SetSuspended blocks or unblocks every non-read action of a user
func (u *UserUsecase) SetSuspended(ctx context.Context, actor entities.Actor, userID uuid.UUID, suspended bool) error {
	if err := authz.Require(actor, authz.ManageUsers, authz.NoTarget); err != nil {
		return err
	}
	if userID == actor.ID {
		return domainerrors.Invalid("userId", "admins cannot suspend themselves")
	}
	return u.userRepo.SetSuspended(ctx, userID, suspended)
}
