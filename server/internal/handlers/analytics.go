package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/analytics"
	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
	"github.com/Aryanthe1/Goal-Sync/server/views"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
)

type AnalyticsHandler struct {
	log *zap.Logger
}

func NewAnalyticsHandler(log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{log: log}
}

func (h *AnalyticsHandler) Show(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()
	today, _ := userToday(user)
	days := parseDays(c.Query("days"))
	from := today.AddDate(0, 0, -(days - 1))

	checkins, err := repository.ListCheckins(ctx, user.ID, from, today)
	if err != nil {
		h.log.Error("Failed to load check-ins", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	timeline, err := repository.GetBurnoutTimeline(ctx, user.ID, from, today)
	if err != nil {
		h.log.Error("Failed to get timeline data", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load timeline data")
		return
	}
	counts, err := repository.GetCompletionCounts(ctx, user.ID, from, today)
	if err != nil {
		h.log.Error("Failed to get completion counts", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load completion data")
		return
	}
	streak, err := checkinStreak(ctx, user.ID, today)
	if err != nil {
		h.log.Error("Failed to compute streak", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	timelineChart := generateBurnoutChart(timeline)
	completionsChart := generateCompletionsChart(counts, from, today)
	// Validate copies the category labels onto the x axis; JSON does not.
	timelineChart.Validate()
	completionsChart.Validate()

	render(c, h.log, http.StatusOK, "Analytics", views.AnalyticsPage(views.AnalyticsData{
		Days:               days,
		Summary:            analytics.Summarize(checkins, from, today),
		Streak:             streak,
		TimelineOptions:    timelineChart.JSON(),
		CompletionsOptions: completionsChart.JSON(),
		Nonce:              cspNonce(c),
	}))
}

// parseDays reads the analytics window, defaulting to 30 and capped at a year.
func parseDays(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return defaultAnalyticsDays
	}
	return min(days, maxAnalyticsDays)
}

func generateBurnoutChart(data []repository.TimelineDataPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Burnout Score Over Time",
			Subtitle: "0 = no burnout risk, 10 = severe",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  burnout.MinScore,
			Max:  burnout.MaxScore,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	// Create data points in the format [date, value]
	items := make([]opts.LineData, 0, len(data))
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date.Format(utils.DayLayout), point.Value}})
	}

	line.AddSeries("Burnout score", items).SetSeriesOptions(
		charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "Moderate", YAxis: burnout.LowCeiling},
			opts.MarkLineNameYAxisItem{Name: "High", YAxis: burnout.ModerateCeiling},
		),
	)
	return line
}

// generateCompletionsChart plots completions per day, with zero bars for
// days without any.
func generateCompletionsChart(data []repository.DailyCount, from, to time.Time) *charts.Bar {
	byDay := make(map[string]int64, len(data))
	for _, d := range data {
		byDay[d.Date.Format(utils.DayLayout)] = d.Count
	}

	var labels []string
	var items []opts.BarData
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format(utils.DayLayout)
		labels = append(labels, key)
		items = append(items, opts.BarData{Value: byDay[key]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Goal Completions per Day"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	bar.SetXAxis(labels).AddSeries("Completions", items)
	return bar
}
