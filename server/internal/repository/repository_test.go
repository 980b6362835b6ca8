package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

// newTestDB points database.DB at a fresh migrated SQLite file.
func newTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repo-test.db")
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(path)), zap.NewNop(), "silent")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("migrate test db: %v", err)
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

func mustUser(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := CreateUser(context.Background(), email, "Password1!", "Test", "User")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var goodMetrics = burnout.WellnessMetrics{StressLevel: 3, SleepHours: 8, MoodLevel: 3, TimeSpentHours: 8}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()

	u := mustUser(t, "Ada@Example.com")
	if u.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if _, err := CreateUser(ctx, "ada@example.com", "Password1!", "", ""); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second CreateUser = %v, want ErrDuplicate", err)
	}

	got, err := GetUserByEmail(ctx, " ADA@example.com ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if !got.CheckPassword("Password1!") {
		t.Error("stored password does not verify")
	}
	if _, err := GetUserByID(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByID(missing) = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserAndPassword(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	u := mustUser(t, "grace@example.com")

	if err := UpdateUser(ctx, u.ID, " Grace ", "Hopper"); err != nil {
		t.Fatal(err)
	}
	if err := UpdateUserPassword(ctx, u.ID, "NewPassword2@"); err != nil {
		t.Fatal(err)
	}
	got, _ := GetUserByID(ctx, u.ID)
	if got.FirstName != "Grace" || got.LastName != "Hopper" {
		t.Errorf("names = %q %q", got.FirstName, got.LastName)
	}
	if !got.CheckPassword("NewPassword2@") || got.CheckPassword("Password1!") {
		t.Error("password was not replaced")
	}
}

func TestUpsertCheckin_ReplacesSameDay(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	u := mustUser(t, "a@example.com")
	d := day(2024, 3, 4)

	first, err := UpsertCheckin(ctx, u.ID, d, goodMetrics, "ok")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.BurnoutScore != 3.5 {
		t.Errorf("score = %v, want 3.5", first.BurnoutScore)
	}

	worse := burnout.WellnessMetrics{StressLevel: 5, SleepHours: 4, MoodLevel: 1, TimeSpentHours: 16}
	second, err := UpsertCheckin(ctx, u.ID, d, worse, "rough")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new row: %d != %d", second.ID, first.ID)
	}
	if second.BurnoutScore != 10 || second.Notes != "rough" || second.StressLevel != 5 {
		t.Errorf("row not updated: %+v", second)
	}

	all, err := ListCheckins(ctx, u.ID, d.AddDate(0, 0, -7), d.AddDate(0, 0, 7))
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d check-ins, want 1", len(all))
	}
}

func TestUpsertCheckin_RejectsInvalidMetrics(t *testing.T) {
	newTestDB(t)
	u := mustUser(t, "a@example.com")
	bad := goodMetrics
	bad.StressLevel = 9
	if _, err := UpsertCheckin(context.Background(), u.ID, day(2024, 3, 4), bad, ""); !errors.Is(err, burnout.ErrInvalidMetrics) {
		t.Fatalf("err = %v, want ErrInvalidMetrics", err)
	}
}

func TestCheckins_ScopedToUser(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	a := mustUser(t, "a@example.com")
	b := mustUser(t, "b@example.com")
	d := day(2024, 3, 4)

	if _, err := UpsertCheckin(ctx, a.ID, d, goodMetrics, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := GetCheckin(ctx, b.ID, d); !errors.Is(err, ErrNotFound) {
		t.Errorf("user b sees user a's check-in: %v", err)
	}
	if err := DeleteCheckin(ctx, b.ID, d); !errors.Is(err, ErrNotFound) {
		t.Errorf("user b deleted user a's check-in: %v", err)
	}
	if ok, _ := HasCheckedInOn(ctx, a.ID, d); !ok {
		t.Error("HasCheckedInOn should be true for user a")
	}
	if err := DeleteCheckin(ctx, a.ID, d); err != nil {
		t.Fatal(err)
	}
	if ok, _ := HasCheckedInOn(ctx, a.ID, d); ok {
		t.Error("HasCheckedInOn should be false after delete")
	}
}

func TestListCheckinsAndDates_Order(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	u := mustUser(t, "a@example.com")
	for _, d := range []time.Time{day(2024, 3, 6), day(2024, 3, 4), day(2024, 3, 5)} {
		if _, err := UpsertCheckin(ctx, u.ID, d, goodMetrics, ""); err != nil {
			t.Fatal(err)
		}
	}

	list, err := ListCheckins(ctx, u.ID, day(2024, 3, 5), day(2024, 3, 6))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || !list[0].Day().Equal(day(2024, 3, 5)) || !list[1].Day().Equal(day(2024, 3, 6)) {
		t.Fatalf("unexpected range result: %+v", list)
	}

	dates, err := ListCheckinDates(ctx, u.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 3 || !dates[0].Equal(day(2024, 3, 6)) || !dates[2].Equal(day(2024, 3, 4)) {
		t.Fatalf("dates not newest first: %v", dates)
	}
}

func TestGoals_CRUD(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	u := mustUser(t, "a@example.com")
	other := mustUser(t, "b@example.com")
	wednesday := day(2024, 3, 6)

	g, err := CreateGoal(ctx, u.ID, wednesday, GoalInput{Title: "  Run  ", TargetDays: 3})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if g.Title != "Run" || !time.Time(g.WeekStart).Equal(day(2024, 3, 4)) {
		t.Errorf("goal = %+v", g)
	}

	if _, err := CreateGoal(ctx, u.ID, wednesday, GoalInput{Title: "Too many", TargetDays: 8}); err == nil {
		t.Error("expected error for target 8")
	}

	goals, err := ListGoalsForWeek(ctx, u.ID, day(2024, 3, 10))
	if err != nil || len(goals) != 1 {
		t.Fatalf("ListGoalsForWeek = %v, %v", goals, err)
	}
	if goals, _ := ListGoalsForWeek(ctx, u.ID, day(2024, 3, 11)); len(goals) != 0 {
		t.Errorf("next week should be empty, got %d", len(goals))
	}

	if _, err := UpdateGoal(ctx, other.ID, g.ID, GoalInput{Title: "Hijack", TargetDays: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateGoal by other user = %v, want ErrNotFound", err)
	}
	updated, err := UpdateGoal(ctx, u.ID, g.ID, GoalInput{Title: "Run far", Description: "5k", TargetDays: 4})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Run far" || updated.TargetDays != 4 || updated.Description != "5k" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := DeleteGoal(ctx, other.ID, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteGoal by other user = %v", err)
	}
	if err := DeleteGoal(ctx, u.ID, g.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := GetGoal(ctx, u.ID, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("goal still present: %v", err)
	}
}

func TestToggleCompletion(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	u := mustUser(t, "a@example.com")
	g, err := CreateGoal(ctx, u.ID, day(2024, 3, 4), GoalInput{Title: "Read", TargetDays: 2})
	if err != nil {
		t.Fatal(err)
	}

	done, err := ToggleCompletion(ctx, u.ID, g.ID, day(2024, 3, 5))
	if err != nil || !done {
		t.Fatalf("first toggle = %v, %v", done, err)
	}
	done, err = ToggleCompletion(ctx, u.ID, g.ID, day(2024, 3, 5))
	if err != nil || done {
		t.Fatalf("second toggle = %v, %v", done, err)
	}
	if _, err := ToggleCompletion(ctx, u.ID, g.ID, day(2024, 3, 11)); !errors.Is(err, ErrOutsideWeek) {
		t.Errorf("toggle next Monday = %v, want ErrOutsideWeek", err)
	}
	if _, err := ToggleCompletion(ctx, u.ID, g.ID, day(2024, 3, 3)); !errors.Is(err, ErrOutsideWeek) {
		t.Errorf("toggle previous Sunday = %v, want ErrOutsideWeek", err)
	}
	if _, err := ToggleCompletion(ctx, u.ID+1, g.ID, day(2024, 3, 5)); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle by other user = %v, want ErrNotFound", err)
	}

	for _, d := range []time.Time{day(2024, 3, 4), day(2024, 3, 10)} {
		if _, err := ToggleCompletion(ctx, u.ID, g.ID, d); err != nil {
			t.Fatal(err)
		}
	}
	comps, err := ListCompletionsForGoals(ctx, u.ID, []uint{g.ID})
	if err != nil || len(comps) != 2 {
		t.Fatalf("completions = %v, %v", comps, err)
	}

	counts, err := GetCompletionCounts(ctx, u.ID, day(2024, 3, 4), day(2024, 3, 10))
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 || counts[0].Count != 1 || !counts[0].Date.Equal(day(2024, 3, 4)) {
		t.Errorf("counts = %+v", counts)
	}

	if err := DeleteGoal(ctx, u.ID, g.ID); err != nil {
		t.Fatal(err)
	}
	if comps, _ := ListCompletionsInRange(ctx, u.ID, day(2024, 3, 1), day(2024, 3, 31)); len(comps) != 0 {
		t.Errorf("completions survived goal deletion: %d", len(comps))
	}
}

func TestGetBurnoutTimeline(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	u := mustUser(t, "a@example.com")
	if _, err := UpsertCheckin(ctx, u.ID, day(2024, 3, 5), goodMetrics, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := UpsertCheckin(ctx, u.ID, day(2024, 3, 4), burnout.WellnessMetrics{StressLevel: 1, SleepHours: 7.5, MoodLevel: 5, TimeSpentHours: 6}, ""); err != nil {
		t.Fatal(err)
	}

	points, err := GetBurnoutTimeline(ctx, u.ID, day(2024, 3, 1), day(2024, 3, 31))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points", len(points))
	}
	if points[0].Value != 0 || points[1].Value != 3.5 {
		t.Errorf("points = %+v", points)
	}
}

func TestNotifications(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	a := mustUser(t, "a@example.com")
	b := mustUser(t, "b@example.com")

	if err := UpdateNotificationPreferences(ctx, a.ID, true, "08:00", "Europe/Paris"); err != nil {
		t.Fatal(err)
	}
	if err := UpdateNotificationPreferences(ctx, b.ID, false, "08:00", "UTC"); err != nil {
		t.Fatal(err)
	}

	users, err := GetUsersForEmailReminder(ctx, "08:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].ID != a.ID || users[0].TimeZone != "Europe/Paris" {
		t.Fatalf("reminder users = %+v", users)
	}
}

func TestDeleteUser_RemovesOwnedRows(t *testing.T) {
	newTestDB(t)
	ctx := context.Background()
	u := mustUser(t, "a@example.com")
	g, _ := CreateGoal(ctx, u.ID, day(2024, 3, 4), GoalInput{Title: "Walk", TargetDays: 1})
	if _, err := ToggleCompletion(ctx, u.ID, g.ID, day(2024, 3, 4)); err != nil {
		t.Fatal(err)
	}
	if _, err := UpsertCheckin(ctx, u.ID, day(2024, 3, 4), goodMetrics, ""); err != nil {
		t.Fatal(err)
	}

	if err := DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := GetUserByID(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("user still present: %v", err)
	}
	var n int64
	database.DB.Model(&models.Checkin{}).Where("user_id = ?", u.ID).Count(&n)
	if n != 0 {
		t.Errorf("%d check-ins survived", n)
	}
	if err := DeleteUser(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteUser = %v", err)
	}
}
