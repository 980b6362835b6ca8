package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
)

func TestCheckin_SetMetricsRecomputesScore(t *testing.T) {
	var c Checkin
	c.SetMetrics(burnout.WellnessMetrics{StressLevel: 3, SleepHours: 8, MoodLevel: 3, TimeSpentHours: 8})
	if c.BurnoutScore != 3.5 {
		t.Fatalf("BurnoutScore = %v, want 3.5", c.BurnoutScore)
	}

	c.SetMetrics(burnout.WellnessMetrics{StressLevel: 5, SleepHours: 4, MoodLevel: 1, TimeSpentHours: 16})
	if c.BurnoutScore != 10 {
		t.Fatalf("BurnoutScore after update = %v, want 10", c.BurnoutScore)
	}
	if got := c.Metrics(); got.StressLevel != 5 || got.TimeSpentHours != 16 {
		t.Fatalf("Metrics() = %+v", got)
	}
}

func TestUser_Password(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	if err != nil {
		t.Fatal(err)
	}
	u := User{Email: "a@example.com", Password: hash}
	if !u.CheckPassword("Str0ng!pass") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
	if u.DisplayName() != "a@example.com" {
		t.Errorf("DisplayName() = %q", u.DisplayName())
	}
	u.FirstName = "Ada"
	if u.DisplayName() != "Ada" {
		t.Errorf("DisplayName() = %q", u.DisplayName())
	}
}

func TestLoadGoalCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.yaml")
	data := `
categories:
  - name: Health
    ideas:
      - title: Walk 30 minutes
        target_days: 5
      - title: Stretch
        target_days: 12
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	catalog, err := LoadGoalCatalog(path)
	if err != nil {
		t.Fatalf("LoadGoalCatalog: %v", err)
	}
	if len(catalog.Categories) != 1 || len(catalog.Categories[0].Ideas) != 2 {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
	if got := catalog.Categories[0].Ideas[1].TargetDays; got != 3 {
		t.Errorf("out-of-range target should default to 3, got %d", got)
	}

	if _, err := LoadGoalCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
