package analytics

import (
	"testing"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	"gorm.io/datatypes"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func checkin(d time.Time, score float64) models.Checkin {
	return models.Checkin{Date: datatypes.Date(d), BurnoutScore: score, StressLevel: 3, SleepHours: 7, MoodLevel: 3, TimeSpentHours: 8}
}

func TestSummarize(t *testing.T) {
	checkins := []models.Checkin{
		checkin(day(2024, 3, 3), 7.0),
		checkin(day(2024, 3, 1), 2.0),
		checkin(day(2024, 3, 2), 3.0),
		checkin(day(2024, 2, 1), 9.9), // outside the range
	}
	s := Summarize(checkins, day(2024, 3, 1), day(2024, 3, 7))

	if s.Count != 3 {
		t.Fatalf("Count = %d, want 3", s.Count)
	}
	if s.AverageScore != 4.0 {
		t.Errorf("AverageScore = %v, want 4", s.AverageScore)
	}
	if s.MinScore != 2 || s.MaxScore != 7 {
		t.Errorf("min/max = %v/%v", s.MinScore, s.MaxScore)
	}
	if s.Latest == nil || !s.Latest.Day().Equal(day(2024, 3, 3)) {
		t.Fatalf("Latest = %+v", s.Latest)
	}
	if s.Classification.Level != burnout.LevelHigh {
		t.Errorf("classification should follow the latest score, got %q", s.Classification.Level)
	}
	if s.Suggestion != burnout.Suggest(4.0) {
		t.Errorf("suggestion should follow the average, got %q", s.Suggestion)
	}
	if s.Trend != TrendWorsening {
		t.Errorf("Trend = %q, want worsening", s.Trend)
	}
	if s.Averages.SleepHours != 7 || s.Averages.StressLevel != 3 {
		t.Errorf("Averages = %+v", s.Averages)
	}
}

// Averages share the score's rounding: halves round away from zero.
func TestSummarize_RoundsLikeScores(t *testing.T) {
	a := checkin(day(2024, 3, 1), 0.5)
	b := checkin(day(2024, 3, 2), 0)
	b.SleepHours = 7.5

	s := Summarize([]models.Checkin{a, b}, day(2024, 3, 1), day(2024, 3, 7))
	if s.AverageScore != burnout.RoundToTenth(0.25) || s.AverageScore != 0.3 {
		t.Errorf("AverageScore = %v, want 0.3", s.AverageScore)
	}
	if s.Averages.SleepHours != 7.3 {
		t.Errorf("Averages.SleepHours = %v, want 7.3", s.Averages.SleepHours)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, day(2024, 3, 1), day(2024, 3, 7))
	if s.Count != 0 || s.Latest != nil || s.Trend != TrendInsufficient || s.Suggestion != "" {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   Trend
	}{
		{"no data", nil, TrendInsufficient},
		{"single point", []float64{5}, TrendInsufficient},
		{"falling", []float64{8, 7, 4, 3}, TrendImproving},
		{"rising", []float64{1, 2, 5, 6}, TrendWorsening},
		{"flat", []float64{4, 4.2, 4.1, 4}, TrendStable},
		{"exactly half a point down", []float64{4, 3.5}, TrendImproving},
		{"exactly half a point up", []float64{3, 3.5}, TrendWorsening},
		{"odd count ignores middle", []float64{2, 9, 2}, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendOf(tt.scores); got != tt.want {
				t.Errorf("TrendOf(%v) = %q, want %q", tt.scores, got, tt.want)
			}
		})
	}
}

func TestCheckinStreak(t *testing.T) {
	today := day(2024, 3, 10)
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"none", nil, 0},
		{"today only", []time.Time{today}, 1},
		{"ends today", []time.Time{day(2024, 3, 8), day(2024, 3, 9), today}, 3},
		{"ends yesterday", []time.Time{day(2024, 3, 8), day(2024, 3, 9)}, 2},
		{"gap breaks streak", []time.Time{day(2024, 3, 7), day(2024, 3, 9), today}, 2},
		{"stale", []time.Time{day(2024, 3, 5), day(2024, 3, 6)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckinStreak(tt.dates, today); got != tt.want {
				t.Errorf("CheckinStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeeklyProgress(t *testing.T) {
	monday := day(2024, 3, 4)
	goals := []models.Goal{
		{ID: 1, TargetDays: 2, WeekStart: datatypes.Date(monday)},
		{ID: 2, TargetDays: 4, WeekStart: datatypes.Date(monday)},
	}
	completions := []models.GoalCompletion{
		{GoalID: 1, Date: datatypes.Date(monday)},
		{GoalID: 1, Date: datatypes.Date(day(2024, 3, 5))},
		{GoalID: 1, Date: datatypes.Date(day(2024, 3, 6))},  // over target
		{GoalID: 1, Date: datatypes.Date(day(2024, 3, 11))}, // next week
		{GoalID: 2, Date: datatypes.Date(day(2024, 3, 10))},
	}

	p := WeeklyProgress(goals, completions)
	if len(p.Goals) != 2 {
		t.Fatalf("got %d goals", len(p.Goals))
	}
	g1, g2 := p.Goals[0], p.Goals[1]
	if g1.Completed != 3 || g1.Percent != 100 || !g1.Met() {
		t.Errorf("goal 1 = %+v", g1)
	}
	if !g1.DoneOn["2024-03-05"] || g1.DoneOn["2024-03-11"] {
		t.Errorf("goal 1 DoneOn = %v", g1.DoneOn)
	}
	if g2.Completed != 1 || g2.Percent != 25 || g2.Met() {
		t.Errorf("goal 2 = %+v", g2)
	}
	// Credited 2 of 2 plus 1 of 4 → 3/6.
	if p.Rate != 50 {
		t.Errorf("Rate = %d, want 50", p.Rate)
	}
	if p.Target != 6 || p.Completed != 4 {
		t.Errorf("totals = %d/%d", p.Completed, p.Target)
	}
}

func TestWeeklyProgress_NoGoals(t *testing.T) {
	p := WeeklyProgress(nil, nil)
	if p.Rate != 0 || len(p.Goals) != 0 {
		t.Errorf("empty progress = %+v", p)
	}
}
