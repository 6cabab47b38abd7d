package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/repositories"
)

// ActorResolver loads the caller's current role and flags from the users
// collection on every request, so role changes, verification and suspension
// take effect without re-issuing tokens.
type ActorResolver struct {
	userRepo repositories.UserRepository
}

// NewActorResolver creates a new actor resolver
func NewActorResolver(userRepo repositories.UserRepository) *ActorResolver {
	return &ActorResolver{userRepo: userRepo}
}

// Resolve returns the actor for an authenticated user id
func (r *ActorResolver) Resolve(ctx context.Context, userID uuid.UUID) (entities.Actor, error) {
	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Actor{}, domainerrors.ErrUnauthorized
		}
		return entities.Actor{}, err
	}
	return entities.ActorFromUser(user), nil
}
