package controller

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultRetentionSchedule runs the prune once a day.
	DefaultRetentionSchedule = "@daily"
	// DefaultRetentionAge is how old an inactive chat must be before it
	// is pruned.
	DefaultRetentionAge = 30 * 24 * time.Hour
)

// RetentionService prunes old inactive chats on a cron schedule.
type RetentionService struct {
	controller *Controller
	schedule   string
	maxAge     time.Duration
	cron       *cron.Cron
	running    bool
}

// NewRetentionService creates a retention service. Empty schedule and
// zero maxAge select the defaults.
func NewRetentionService(c *Controller, schedule string, maxAge time.Duration) *RetentionService {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	if maxAge <= 0 {
		maxAge = DefaultRetentionAge
	}

	return &RetentionService{
		controller: c,
		schedule:   schedule,
		maxAge:     maxAge,
	}
}

// Start schedules the prune job.
func (r *RetentionService) Start() error {
	if r.running {
		return fmt.Errorf("retention service is already running")
	}

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(r.schedule, r.runOnce); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", r.schedule, err)
	}
	r.cron.Start()
	r.running = true

	log.Info().
		Str("schedule", r.schedule).
		Dur("max_age", r.maxAge).
		Msg("Retention service started")

	return nil
}

// Stop stops the scheduled job.
func (r *RetentionService) Stop() error {
	if !r.running {
		return fmt.Errorf("retention service is not running")
	}

	r.cron.Stop()
	r.running = false

	log.Info().Msg("Retention service stopped")

	return nil
}

// runOnce executes one prune pass. Exposed via RunOnce for manual runs.
func (r *RetentionService) runOnce() {
	pruned := r.controller.PruneChats(r.maxAge)
	if pruned > 0 {
		log.Info().Int("pruned", pruned).Msg("Retention pass completed")
	}
}

// RunOnce triggers a prune pass outside the schedule.
func (r *RetentionService) RunOnce() {
	r.runOnce()
}
