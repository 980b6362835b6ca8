package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/analytics"
	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	"github.com/a-h/templ"
	"gorm.io/datatypes"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestLayout_WrapsChildren(t *testing.T) {
	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), Login("tok", ""))
	if err := Layout("Login", false, "tok", "n0nce").Render(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`<title>Login | Goal-Sync</title>`, `nonce="n0nce"`, `hx-post="/login"`, `value="tok"`} {
		if !strings.Contains(out, want) {
			t.Errorf("layout missing %q", want)
		}
	}
}

func TestCheckinPage_ShowsScore(t *testing.T) {
	c := &models.Checkin{Date: datatypes.Date(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)), Notes: "<b>tired</b>"}
	c.SetMetrics(burnout.WellnessMetrics{StressLevel: 5, SleepHours: 4, MoodLevel: 1, TimeSpentHours: 16})
	out := render(t, CheckinPage(CheckinData{
		Day:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Today:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Checkin:   c,
		CSRFToken: "tok",
	}))
	if !strings.Contains(out, "10.0") || !strings.Contains(out, "High burnout detected") {
		t.Errorf("score card missing: %s", out)
	}
	if strings.Contains(out, "<b>tired</b>") {
		t.Error("notes not escaped")
	}
	if !strings.Contains(out, `name="stress_level" value="5" checked`) {
		t.Error("stored stress level not preselected")
	}
}

func TestGoalsPage_RendersToggles(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	goal := models.Goal{ID: 7, Title: "Walk", TargetDays: 3, WeekStart: datatypes.Date(monday)}
	progress := analytics.WeeklyProgress([]models.Goal{goal}, []models.GoalCompletion{{GoalID: 7, Date: datatypes.Date(monday)}})

	out := render(t, GoalsPage(GoalsData{
		WeekStart: monday,
		Today:     monday.AddDate(0, 0, 2),
		Progress:  progress,
		Catalog:   &models.GoalCatalog{Categories: []models.GoalCategory{{Name: "Move", Ideas: []models.GoalIdea{{Title: "Stretch", TargetDays: 7}}}}},
		CSRFToken: "tok",
	}))
	if !strings.Contains(out, `hx-post="/goals/7/toggle?date=2024-03-04"`) {
		t.Error("toggle button missing")
	}
	if !strings.Contains(out, `class="toggle done"`) {
		t.Error("completed day not marked")
	}
	if strings.Count(out, " disabled ") != 4 {
		t.Errorf("expected the four future days disabled, got %d", strings.Count(out, " disabled "))
	}
	if !strings.Contains(out, "Stretch (daily)") {
		t.Error("goal ideas missing")
	}
}

func TestAnalyticsPage_EmbedsChartOptions(t *testing.T) {
	out := render(t, AnalyticsPage(AnalyticsData{
		Days:               30,
		Summary:            analytics.Summary{Trend: analytics.TrendInsufficient},
		TimelineOptions:    map[string]any{"series": []any{}},
		CompletionsOptions: map[string]any{"title": "</script><b>x</b>"},
		Nonce:              "abc",
	}))
	if !strings.Contains(out, `<script id="burnout-chart-options" type="application/json" nonce="abc">{"series":[]}`) {
		t.Errorf("timeline options missing: %s", out)
	}
	if strings.Contains(out, "</script><b>x</b>") {
		t.Error("chart options not escaped inside the script element")
	}
	if !strings.Contains(out, `<script nonce="abc">`) || !strings.Contains(out, "echarts.init") {
		t.Error("chart init script missing")
	}
	if !strings.Contains(out, `class="active" hx-get="/analytics?days=30"`) {
		t.Error("selected range not highlighted")
	}
	if !strings.Contains(out, "Not enough data") {
		t.Error("trend label missing")
	}
}

func TestProfileSection_Notifications(t *testing.T) {
	u := &models.User{Email: "a@example.com", TimeZone: "Europe/Paris", ReminderTime: "09:30", EmailNotificationsEnabled: true}
	out := render(t, Profile(u, "tok", "notifications"))
	if !strings.Contains(out, `value="09:30"`) || !strings.Contains(out, "checked") {
		t.Errorf("notification form not prefilled: %s", out)
	}
}
