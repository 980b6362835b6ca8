package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
	"github.com/Aryanthe1/Goal-Sync/server/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckinHandler struct {
	log *zap.Logger
}

func NewCheckinHandler(log *zap.Logger) *CheckinHandler {
	return &CheckinHandler{log: log}
}

func (h *CheckinHandler) Show(c *gin.Context) {
	user := currentUser(c)
	today, _ := userToday(user)
	day, err := utils.ParseDay(c.Query("date"), today)
	if err != nil || day.After(today) {
		day = today
	}
	h.renderDay(c, user, day, today, "")
}

func (h *CheckinHandler) Save(c *gin.Context) {
	user := currentUser(c)
	today, _ := userToday(user)
	day, err := utils.ParseDay(c.PostForm("date"), today)
	if err != nil {
		h.renderDay(c, user, today, today, err.Error())
		return
	}
	if day.After(today) {
		h.renderDay(c, user, today, today, "You can't check in for a future day.")
		return
	}

	metrics, err := metricsFromForm(c)
	if err == nil {
		err = burnout.Validate(metrics)
	}
	if err != nil {
		h.renderDay(c, user, day, today, err.Error())
		return
	}

	checkin, err := repository.UpsertCheckin(c.Request.Context(), user.ID, day, metrics, c.PostForm("notes"))
	if err != nil {
		h.log.Error("Failed to save check-in", zap.Uint("userID", user.ID), zap.Error(err))
		h.renderDay(c, user, day, today, "Failed to save check-in, please try again.")
		return
	}
	h.log.Info("Check-in saved",
		zap.Uint("userID", user.ID),
		zap.String("date", day.Format(utils.DayLayout)),
		zap.Float64("burnout_score", checkin.BurnoutScore),
	)
	render(c, h.log, http.StatusOK, "Check-in", views.CheckinPage(views.CheckinData{
		Day: day, Today: today, Checkin: checkin, CSRFToken: csrfToken(c),
	}))
}

func (h *CheckinHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	today, _ := userToday(user)
	day, err := utils.ParseDay(c.PostForm("date"), today)
	if err != nil {
		h.renderDay(c, user, today, today, err.Error())
		return
	}
	if err := repository.DeleteCheckin(c.Request.Context(), user.ID, day); err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.log.Error("Failed to delete check-in", zap.Uint("userID", user.ID), zap.Error(err))
		h.renderDay(c, user, day, today, "Failed to delete check-in.")
		return
	}
	h.renderDay(c, user, day, today, "")
}

func (h *CheckinHandler) renderDay(c *gin.Context, user *models.User, day, today time.Time, errMsg string) {
	checkin, err := repository.GetCheckin(c.Request.Context(), user.ID, day)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.log.Error("Failed to load check-in", zap.Uint("userID", user.ID), zap.Error(err))
		}
		checkin = nil
	}
	render(c, h.log, http.StatusOK, "Check-in", views.CheckinPage(views.CheckinData{
		Day: day, Today: today, Checkin: checkin, CSRFToken: csrfToken(c), Error: errMsg,
	}))
}

func metricsFromForm(c *gin.Context) (burnout.WellnessMetrics, error) {
	var m burnout.WellnessMetrics
	var err error
	if m.StressLevel, err = strconv.Atoi(c.PostForm("stress_level")); err != nil {
		return m, fmt.Errorf("%w: stress level must be a whole number", burnout.ErrInvalidMetrics)
	}
	if m.MoodLevel, err = strconv.Atoi(c.PostForm("mood_level")); err != nil {
		return m, fmt.Errorf("%w: mood level must be a whole number", burnout.ErrInvalidMetrics)
	}
	if m.SleepHours, err = strconv.ParseFloat(c.PostForm("sleep_hours"), 64); err != nil {
		return m, fmt.Errorf("%w: sleep hours must be a number", burnout.ErrInvalidMetrics)
	}
	if m.TimeSpentHours, err = strconv.ParseFloat(c.PostForm("time_spent_hours"), 64); err != nil {
		return m, fmt.Errorf("%w: time spent must be a number", burnout.ErrInvalidMetrics)
	}
	return m, nil
}
