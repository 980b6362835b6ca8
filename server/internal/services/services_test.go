package services

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent map[string]time.Time
}

func (m *recordingMailer) SendReminder(_ context.Context, user models.User, day time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[user.Email] = day
	return nil
}

func newTestDB(t *testing.T) {
	t.Helper()
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(filepath.Join(t.TempDir(), "services.db"))), zap.NewNop(), "silent")
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = prev
	})
}

func TestRunReminderCheck(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()

	// 23:30 UTC on March 4th is already March 5th in Tokyo.
	now := time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC)

	mk := func(email string, enabled bool, at, tz string) *models.User {
		u, err := repository.CreateUser(ctx, email, "Password1!", "", "")
		if err != nil {
			t.Fatal(err)
		}
		if err := repository.UpdateNotificationPreferences(ctx, u.ID, enabled, at, tz); err != nil {
			t.Fatal(err)
		}
		return u
	}
	mk("due@example.com", true, "23:30", "UTC")
	tokyo := mk("tokyo@example.com", true, "23:30", "Asia/Tokyo")
	done := mk("done@example.com", true, "23:30", "UTC")
	mk("off@example.com", false, "23:30", "UTC")
	mk("later@example.com", true, "08:00", "UTC")

	metrics := burnout.WellnessMetrics{StressLevel: 2, SleepHours: 8, MoodLevel: 4, TimeSpentHours: 6}
	if _, err := repository.UpsertCheckin(ctx, done.ID, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), metrics, ""); err != nil {
		t.Fatal(err)
	}
	// Tokyo user checked in for the UTC date, but not for their local date.
	if _, err := repository.UpsertCheckin(ctx, tokyo.ID, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), metrics, ""); err != nil {
		t.Fatal(err)
	}

	mailer := &recordingMailer{sent: map[string]time.Time{}}
	s := NewScheduler(zap.NewNop(), mailer)
	if n := s.runReminderCheck(ctx, now); n != 2 {
		t.Fatalf("dispatched %d reminders, want 2", n)
	}
	s.wg.Wait()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 2 {
		t.Fatalf("sent = %v", mailer.sent)
	}
	if d := mailer.sent["due@example.com"]; !d.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("due reminder day = %v", d)
	}
	if d := mailer.sent["tokyo@example.com"]; !d.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("tokyo reminder day = %v", d)
	}
}

func TestRunReminderCheck_Disabled(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	u, err := repository.CreateUser(ctx, "due@example.com", "Password1!", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := repository.UpdateNotificationPreferences(ctx, u.ID, true, "09:00", "UTC"); err != nil {
		t.Fatal(err)
	}

	enabled := false
	mailer := &recordingMailer{sent: map[string]time.Time{}}
	s := NewScheduler(zap.NewNop(), mailer)
	s.SetEnabledFunc(func() bool { return enabled })
	if n := s.runReminderCheck(ctx, now); n != 0 {
		t.Fatalf("dispatched %d reminders while disabled", n)
	}

	enabled = true
	if n := s.runReminderCheck(ctx, now); n != 1 {
		t.Fatalf("dispatched %d reminders after enabling, want 1", n)
	}
	s.wg.Wait()
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(zap.NewNop(), NewEmailService(zap.NewNop()))
	if err := s.Start(context.Background(), "every tuesday"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestEmailService_LogsReminder(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewEmailService(zap.New(core))
	user := models.User{Email: "a@example.com", FirstName: "Ada"}

	if err := svc.SendReminder(context.Background(), user, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("Sending reminder email").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries", len(entries))
	}
	body, _ := entries[0].ContextMap()["body"].(string)
	if !strings.Contains(body, "Hi Ada") || !strings.Contains(body, "2024-03-04") {
		t.Errorf("body = %q", body)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.SendReminder(ctx, user, time.Now()); err == nil {
		t.Error("expected error for cancelled context")
	}
}
