package background

import (
	"context"
	"log"
	"sync"
	"time"

	"saudemart/internal/models"
	"saudemart/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic expiration sweeps
type JobScheduler struct {
	scheduler   gocron.Scheduler
	quoteRepo   repositories.QuoteRepository
	voucherRepo repositories.VoucherRepository
	jobs        map[string]gocron.Job
	mu          sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(quoteRepo repositories.QuoteRepository, voucherRepo repositories.VoucherRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		quoteRepo:   quoteRepo,
		voucherRepo: voucherRepo,
		jobs:        make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	quoteJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.expirePendingQuotes, context.Background()),
		gocron.WithName("quote-expiration-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create quote expiration job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["quote-expiration"] = quoteJob
		js.mu.Unlock()
	}

	voucherJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.expireIssuedVouchers, context.Background()),
		gocron.WithName("voucher-expiration-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create voucher expiration job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["voucher-expiration"] = voucherJob
		js.mu.Unlock()
	}
}

// expirePendingQuotes persists the expired status on quotes whose validity
// window has closed. The CAS keeps the sweep from clobbering a quote that
// was approved or cancelled between the list and the update.
func (js *JobScheduler) expirePendingQuotes(ctx context.Context) {
	now := time.Now()
	quotes, err := js.quoteRepo.ListExpiredPending(ctx, now)
	if err != nil {
		log.Printf("Quote expiration sweep failed to list: %v", err)
		return
	}

	expired := 0
	for _, quote := range quotes {
		if ctx.Err() != nil {
			return
		}
		updated, err := js.quoteRepo.UpdateStatusIfPending(ctx, quote.TenantID, quote.ID, models.QuoteStatusExpired)
		if err != nil {
			log.Printf("Quote expiration sweep failed for quote %s: %v", quote.ID, err)
			continue
		}
		if updated {
			expired++
		}
	}
	if expired > 0 {
		log.Printf("Quote expiration sweep: marked %d of %d quotes expired", expired, len(quotes))
	}
}

// expireIssuedVouchers persists the expired status on vouchers that sat in
// the issued state past the expiration window.
func (js *JobScheduler) expireIssuedVouchers(ctx context.Context) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, -models.VoucherExpirationDays)
	vouchers, err := js.voucherRepo.ListIssuedOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Voucher expiration sweep failed to list: %v", err)
		return
	}

	expired := 0
	for _, voucher := range vouchers {
		if ctx.Err() != nil {
			return
		}
		updated, err := js.voucherRepo.UpdateStatusCAS(ctx, voucher.TenantID, voucher.ID, models.VoucherStatusIssued, models.VoucherStatusExpired, now)
		if err != nil {
			log.Printf("Voucher expiration sweep failed for voucher %s: %v", voucher.ID, err)
			continue
		}
		if updated {
			expired++
		}
	}
	if expired > 0 {
		log.Printf("Voucher expiration sweep: marked %d of %d vouchers expired", expired, len(vouchers))
	}
}
