package services

import (
	"context"
	"log"

	"swiftparcel/internal/adapters/persistence/repositories"
	"swiftparcel/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs:
//
//   - hourly: reconcile riders stuck in_delivery. Assignment and delivery
//     each update two documents (parcel + rider) without a transaction, so
//     a failed second write can leave a rider marked in_delivery with no
//     open parcel. The sweep is the corrective read that restores them.
//   - daily: purge expired refresh tokens.
type CronService struct {
	riderRepo        repositories.RiderRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	riderRepo repositories.RiderRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		riderRepo:        riderRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	s.cron.AddFunc("@hourly", s.ReconcileRiders)
	s.cron.AddFunc("@daily", s.purgeExpiredTokens)
	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// ReconcileRiders idles riders marked in_delivery that have no open parcel
// assigned to them. Exported so an operator endpoint or test can trigger a
// sweep outside the schedule.
func (s *CronService) ReconcileRiders() {
	ctx := context.Background()

	riders, err := s.riderRepo.ListStuckInDelivery(ctx)
	if err != nil {
		log.Printf("❌ Rider reconcile query error: %v", err)
		return
	}

	for _, rider := range riders {
		if err := s.riderRepo.UpdateWorkStatus(ctx, rider.ID, string(domain.WorkIdle)); err != nil {
			log.Printf("❌ Failed to idle rider %d: %v", rider.ID, err)
			continue
		}
		log.Printf("Reconciled rider %d (%s) back to idle", rider.ID, rider.Email)
	}
}

func (s *CronService) purgeExpiredTokens() {
	if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("❌ Failed to purge expired refresh tokens: %v", err)
	}
}
