package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/domain/lifecycle"
	"motorhub.backend/internal/domain/repositories"
)

// KYCUsecase drives identity verification
type KYCUsecase struct {
	userRepo   repositories.UserRepository
	dispatcher *NotificationDispatcher
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(userRepo repositories.UserRepository, dispatcher *NotificationDispatcher) *KYCUsecase {
	return &KYCUsecase{
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// Submit records the caller's three artifacts and enters pending. A rejected
// user may resubmit any number of times.
func (u *KYCUsecase) Submit(ctx context.Context, actor entities.Actor, input *entities.KYCSubmissionInput) (*entities.User, error) {
	if err := authz.Require(actor, authz.SubmitKYC, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	outcome, err := lifecycle.SubmitKYC(user, *input, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return u.commit(ctx, user, outcome)
}

// Approve verifies a pending packet
func (u *KYCUsecase) Approve(ctx context.Context, actor entities.Actor, userID uuid.UUID) (*entities.User, error) {
	return u.decide(ctx, actor, userID, lifecycle.ApproveKYC)
}

// Reject refuses a pending packet with a reason sent to the user
func (u *KYCUsecase) Reject(ctx context.Context, actor entities.Actor, userID uuid.UUID, reason string) (*entities.User, error) {
	return u.decide(ctx, actor, userID, func(user *entities.User) (lifecycle.KYCOutcome, error) {
		return lifecycle.RejectKYC(user, reason)
	})
}

// Queue lists users whose packet awaits review
func (u *KYCUsecase) Queue(ctx context.Context, actor entities.Actor) ([]*entities.User, error) {
	if err := authz.Require(actor, authz.DecideKYC, authz.NoTarget); err != nil {
		return nil, err
	}
	return u.userRepo.ListByKYCStatus(ctx, entities.KYCPending)
}

func (u *KYCUsecase) decide(
	ctx context.Context,
	actor entities.Actor,
	userID uuid.UUID,
	command func(*entities.User) (lifecycle.KYCOutcome, error),
) (*entities.User, error) {
	if err := authz.Require(actor, authz.DecideKYC, authz.NoTarget); err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	outcome, err := command(user)
	if err != nil {
		return nil, err
	}
	return u.commit(ctx, user, outcome)
}

func (u *KYCUsecase) commit(ctx context.Context, user *entities.User, outcome lifecycle.KYCOutcome) (*entities.User, error) {
	next := *user
	outcome.Apply(&next)
	if err := u.userRepo.UpdateVerification(ctx, &next); err != nil {
		return nil, err
	}
	recordTransition(ctx, outcome.Machine, next.ID, string(outcome.From), string(outcome.To))
	u.dispatcher.Dispatch(ctx, outcome.Effects...)
	return &next, nil
}
