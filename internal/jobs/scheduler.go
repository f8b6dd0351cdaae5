package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/amora/backend/internal/config"
	"github.com/amora/backend/internal/services/subscription"
	"github.com/amora/backend/internal/services/transaction"
)

// Scheduler runs the periodic maintenance sweeps.
type Scheduler struct {
	cron *gocron.Scheduler
}

// NewScheduler wires the recurring jobs: expiring stale pending_payment
// transactions and lapsed subscriptions.
func NewScheduler(cfg *config.Config, txSvc *transaction.Service, subSvc *subscription.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)

	s.Every(15).Minutes().Do(func() {
		expired, err := txSvc.ExpireStale(cfg.Payment.PendingPaymentTTL)
		if err != nil {
			log.Printf("transaction expiry sweep failed: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("expired %d stale pending transactions", expired)
		}
	})

	s.Every(1).Hour().Do(func() {
		expired, err := subSvc.ExpireLapsed()
		if err != nil {
			log.Printf("subscription expiry sweep failed: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("expired %d lapsed subscriptions", expired)
		}
	})

	return &Scheduler{cron: s}
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

// Stop halts the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
