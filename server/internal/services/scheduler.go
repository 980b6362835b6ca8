package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// reminderTimeout bounds one reminder delivery.
const reminderTimeout = 30 * time.Second

type Scheduler struct {
	log    *zap.Logger
	mailer Mailer
	cron   *cron.Cron
	wg     sync.WaitGroup

	// enabled is consulted on every tick so reminders can be switched off
	// without restarting.
	enabled func() bool
}

func NewScheduler(log *zap.Logger, mailer Mailer) *Scheduler {
	return &Scheduler{
		log:     log,
		mailer:  mailer,
		cron:    cron.New(cron.WithLocation(time.UTC)),
		enabled: func() bool { return true },
	}
}

// SetEnabledFunc replaces the per-tick check deciding whether reminders run.
func (s *Scheduler) SetEnabledFunc(f func() bool) {
	if f != nil {
		s.enabled = f
	}
}

// Start registers the reminder check on the given cron schedule and starts
// the cron goroutine.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.runReminderCheck(ctx, time.Now())
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	s.log.Info("Starting reminder scheduler...", zap.String("schedule", schedule))
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for in-flight reminders.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("Reminder scheduler stopped")
}

// runReminderCheck dispatches a reminder to every user whose reminder time is
// now (UTC, HH:MM) and who has not checked in for their local today. It
// returns the number of reminders dispatched, zero while reminders are
// disabled.
func (s *Scheduler) runReminderCheck(ctx context.Context, now time.Time) int {
	if !s.enabled() {
		s.log.Debug("Reminders disabled, skipping check")
		return 0
	}
	currentTime := now.UTC().Format("15:04")
	s.log.Debug("Running reminder check", zap.String("utc_time", currentTime))

	users, err := repository.GetUsersForEmailReminder(ctx, currentTime)
	if err != nil {
		s.log.Error("Failed to get users for email reminder", zap.Error(err))
		return 0
	}

	dispatched := 0
	for _, user := range users {
		today := utils.Day(now, utils.LoadLocation(user.TimeZone))
		checkedIn, err := repository.HasCheckedInOn(ctx, user.ID, today)
		if err != nil {
			s.log.Error("Failed to check check-in status", zap.Uint("userID", user.ID), zap.Error(err))
			continue
		}
		if checkedIn {
			continue
		}
		dispatched++
		s.wg.Add(1)
		go s.sendReminder(ctx, user, today)
	}
	return dispatched
}

func (s *Scheduler) sendReminder(ctx context.Context, user models.User, day time.Time) {
	defer s.wg.Done()
	ctx, cancel := context.WithTimeout(ctx, reminderTimeout)
	defer cancel()
	if err := s.mailer.SendReminder(ctx, user, day); err != nil {
		s.log.Error("Failed to send reminder", zap.Uint("userID", user.ID), zap.Error(err))
	}
}
