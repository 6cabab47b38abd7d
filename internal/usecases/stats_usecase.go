package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"
	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/domain/repositories"
)

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	Users           int64                  `json:"users"`
	Dealers         int64                  `json:"dealers"`
	PendingListings int64                  `json:"pendingListings"`
	PendingKYC      int64                  `json:"pendingKyc"`
	PendingPayments int                    `json:"pendingPayments"`
	VerifiedVolume  entities.PaymentVolume `json:"verifiedVolume"`
}

// StatsUsecase computes the admin dashboard from source on every call
type StatsUsecase struct {
	userRepo    repositories.UserRepository
	listingRepo repositories.ListingRepository
	paymentRepo repositories.PaymentRepository
	payments    *PaymentUsecase
}

// NewStatsUsecase creates a new stats usecase
func NewStatsUsecase(
	userRepo repositories.UserRepository,
	listingRepo repositories.ListingRepository,
	paymentRepo repositories.PaymentRepository,
	payments *PaymentUsecase,
) *StatsUsecase {
	return &StatsUsecase{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		paymentRepo: paymentRepo,
		payments:    payments,
	}
}

// Dashboard gathers every counter concurrently
func (u *StatsUsecase) Dashboard(ctx context.Context, actor entities.Actor) (*DashboardStats, error) {
	if err := authz.Require(actor, authz.ViewStats, authz.NoTarget); err != nil {
		return nil, err
	}

	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Users, err = u.userRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Dealers, err = u.userRepo.CountByRole(gctx, entities.UserRoleDealer)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingListings, err = u.listingRepo.CountByStatus(gctx, entities.ListingStatusPending)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingKYC, err = u.userRepo.CountByKYCStatus(gctx, entities.KYCPending)
		return err
	})
	g.Go(func() error {
		pending, err := u.paymentRepo.List(gctx, entities.PaymentFilter{Status: entities.PaymentStatusPending})
		stats.PendingPayments = len(pending)
		return err
	})
	g.Go(func() (err error) {
		stats.VerifiedVolume, err = u.payments.verifiedVolume(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
