package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestReminderTimeConversion(t *testing.T) {
	// Mid-July: Berlin is UTC+2, New York UTC-4.
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		local, tz, utc string
	}{
		{"09:00", "UTC", "09:00"},
		{"09:00", "Europe/Berlin", "07:00"},
		{"21:30", "America/New_York", "01:30"},
	}
	for _, tt := range tests {
		got, err := reminderTimeToUTC(tt.local, tt.tz, summer)
		if err != nil {
			t.Fatalf("reminderTimeToUTC(%s, %s): %v", tt.local, tt.tz, err)
		}
		if got != tt.utc {
			t.Errorf("reminderTimeToUTC(%s, %s) = %s, want %s", tt.local, tt.tz, got, tt.utc)
		}
		if back := localReminderTime(got, tt.tz, summer); back != tt.local {
			t.Errorf("localReminderTime(%s, %s) = %s, want %s", got, tt.tz, back, tt.local)
		}
	}

	if _, err := reminderTimeToUTC("25:00", "UTC", summer); err == nil {
		t.Error("expected error for invalid time")
	}
	if _, err := reminderTimeToUTC("09:00", "Mars/Olympus", summer); err == nil {
		t.Error("expected error for unknown zone")
	}
	if got := localReminderTime("", "Europe/Berlin", summer); got != "" {
		t.Errorf("empty reminder = %q", got)
	}
}

func TestParseDays(t *testing.T) {
	tests := map[string]int{"": 30, "abc": 30, "0": 30, "-3": 30, "7": 7, "90": 90, "5000": 365}
	for in, want := range tests {
		if got := parseDays(in); got != want {
			t.Errorf("parseDays(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestGenerateCompletionsChart_LabelsEveryDay(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)
	bar := generateCompletionsChart([]repository.DailyCount{{Date: from.AddDate(0, 0, 1), Count: 2}}, from, to)
	bar.Validate()

	axes, ok := bar.JSON()["xAxis"].([]opts.XAxis)
	if !ok || len(axes) == 0 {
		t.Fatalf("xAxis missing from chart options: %#v", bar.JSON()["xAxis"])
	}
	labels, ok := axes[0].Data.([]string)
	if !ok || strings.Join(labels, ",") != "2024-03-01,2024-03-02,2024-03-03" {
		t.Errorf("x axis labels = %#v", axes[0].Data)
	}
}

func TestMetricsFromForm(t *testing.T) {
	form := url.Values{
		"stress_level":     {"4"},
		"mood_level":       {"2"},
		"sleep_hours":      {"6.5"},
		"time_spent_hours": {"10"},
	}
	c := formContext(form)
	m, err := metricsFromForm(c)
	if err != nil {
		t.Fatal(err)
	}
	want := burnout.WellnessMetrics{StressLevel: 4, MoodLevel: 2, SleepHours: 6.5, TimeSpentHours: 10}
	if m != want {
		t.Errorf("metrics = %+v, want %+v", m, want)
	}

	form.Set("sleep_hours", "lots")
	if _, err := metricsFromForm(formContext(form)); !errors.Is(err, burnout.ErrInvalidMetrics) {
		t.Errorf("err = %v, want ErrInvalidMetrics", err)
	}
}

func TestAPIHandler_FailStatus(t *testing.T) {
	h := NewAPIHandler(zap.NewNop(), "secret", time.Hour)
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", errInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", burnout.ErrInvalidMetrics), http.StatusBadRequest},
		{utils.ErrInvalidTarget, http.StatusBadRequest},
		{repository.ErrOutsideWeek, http.StatusBadRequest},
		{errFutureDate, http.StatusBadRequest},
		{repository.ErrNotFound, http.StatusNotFound},
		{repository.ErrDuplicate, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		h.fail(c, tt.err)
		if w.Code != tt.want {
			t.Errorf("fail(%v) = %d, want %d", tt.err, w.Code, tt.want)
		}
		if tt.want == http.StatusInternalServerError && strings.Contains(w.Body.String(), "disk on fire") {
			t.Error("internal error leaked to client")
		}
	}
}

func formContext(form url.Values) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}
