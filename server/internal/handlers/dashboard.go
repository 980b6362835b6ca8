package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/analytics"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
	"github.com/Aryanthe1/Goal-Sync/server/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streakLookback caps how many check-in dates are read to compute a streak.
const streakLookback = 366

type DashboardHandler struct {
	log *zap.Logger
}

func NewDashboardHandler(log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{log: log}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()
	today, _ := userToday(user)

	todayCheckin, err := repository.GetCheckin(ctx, user.ID, today)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.log.Error("Failed to load today's check-in", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	from := today.AddDate(0, 0, -6)
	recent, err := repository.ListCheckins(ctx, user.ID, from, today)
	if err != nil {
		h.log.Error("Failed to load recent check-ins", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	streak, err := checkinStreak(ctx, user.ID, today)
	if err != nil {
		h.log.Error("Failed to compute streak", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	progress, err := weeklyProgress(ctx, user.ID, utils.WeekStart(today))
	if err != nil {
		h.log.Error("Failed to load goal progress", zap.Uint("userID", user.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	render(c, h.log, http.StatusOK, "Dashboard", views.Dashboard(views.DashboardData{
		User:         user,
		Today:        today,
		TodayCheckin: todayCheckin,
		LastWeek:     analytics.Summarize(recent, from, today),
		Streak:       streak,
		Progress:     progress,
	}))
}

func checkinStreak(ctx context.Context, userID uint, today time.Time) (int, error) {
	dates, err := repository.ListCheckinDates(ctx, userID, streakLookback)
	if err != nil {
		return 0, err
	}
	return analytics.CheckinStreak(dates, today), nil
}

// weeklyProgress loads a week's goals with their completions.
func weeklyProgress(ctx context.Context, userID uint, weekStart time.Time) (analytics.Progress, error) {
	goals, err := repository.ListGoalsForWeek(ctx, userID, weekStart)
	if err != nil {
		return analytics.Progress{}, err
	}
	ids := make([]uint, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	completions, err := repository.ListCompletionsForGoals(ctx, userID, ids)
	if err != nil {
		return analytics.Progress{}, err
	}
	return analytics.WeeklyProgress(goals, completions), nil
}
