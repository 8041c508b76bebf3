package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zoneboy/zilcycler/internal/config"
	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository"
)

// Scheduler runs the recurring maintenance jobs.
type Scheduler struct {
	cron    *cron.Cron
	otpRepo repository.OTPRepository
	cfg     *config.Config
}

func NewScheduler(otpRepo repository.OTPRepository, cfg *config.Config) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:    c,
		otpRepo: otpRepo,
		cfg:     cfg,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.PurgeExpiredOTPs, s.PurgeExpiredOTPs)
	if err != nil {
		logger.Error("Failed to register PurgeExpiredOTPs job", "error", err)
		return
	}
	logger.Info("Cron jobs registered")
}

// PurgeExpiredOTPs removes verification codes past their expiry. Expired rows
// are already rejected at consume time; this keeps the table from growing.
func (s *Scheduler) PurgeExpiredOTPs() {
	s.runWithRecovery("purge_expired_otps", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		purged, err := s.otpRepo.PurgeExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to purge expired verification codes", "error", err)
			return
		}
		if purged > 0 {
			logger.Info("Purged expired verification codes", "count", purged)
		}
	})
}

func (s *Scheduler) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Cron scheduler started")
}

// Stop waits for any running job before returning.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
