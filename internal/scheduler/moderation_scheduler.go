package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/addispot/addispot-backend/config"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/pkg/logger"
)

// ModerationScheduler periodically logs a digest of the pending
// moderation queues so a quiet dashboard still leaves a trail when
// requests pile up.
type ModerationScheduler struct {
	cron        *cron.Cron
	requestRepo repository.RequestRepository
	cfg         *config.ModerationConfig
}

func NewModerationScheduler(requestRepo repository.RequestRepository, cfg *config.ModerationConfig) *ModerationScheduler {
	return &ModerationScheduler{
		cron:        cron.New(),
		requestRepo: requestRepo,
		cfg:         cfg,
	}
}

func (s *ModerationScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.DigestSchedule, s.runDigest)
	if err != nil {
		logger.Error("Failed to add cron job for moderation digest", err, map[string]interface{}{
			"schedule": s.cfg.DigestSchedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Moderation digest scheduler started", map[string]interface{}{
		"schedule": s.cfg.DigestSchedule,
	})
	return nil
}

func (s *ModerationScheduler) Stop() {
	logger.Info("Stopping moderation digest scheduler", nil)
	s.cron.Stop()
}

func (s *ModerationScheduler) runDigest() {
	placeStats, err := s.requestRepo.PlaceAddQueueStats()
	if err != nil {
		logger.Error("Failed to collect place-add queue stats", err, nil)
		return
	}
	branchStats, err := s.requestRepo.BranchAddQueueStats()
	if err != nil {
		logger.Error("Failed to collect branch-add queue stats", err, nil)
		return
	}

	fields := map[string]interface{}{
		"place_add_pending":  placeStats.Pending,
		"branch_add_pending": branchStats.Pending,
	}
	if placeStats.OldestPending != nil {
		fields["place_add_oldest"] = placeStats.OldestPending.Format(time.RFC3339)
	}
	if branchStats.OldestPending != nil {
		fields["branch_add_oldest"] = branchStats.OldestPending.Format(time.RFC3339)
	}

	if s.hasStale(placeStats) || s.hasStale(branchStats) {
		fields["stale_after"] = s.cfg.StaleAfter.String()
		logger.Warn("Moderation queue has stale pending requests", fields)
		return
	}

	logger.Info("Moderation queue digest", fields)
}

func (s *ModerationScheduler) hasStale(stats *repository.QueueStats) bool {
	if stats.Pending == 0 || stats.OldestPending == nil {
		return false
	}
	return time.Since(*stats.OldestPending) > s.cfg.StaleAfter
}
