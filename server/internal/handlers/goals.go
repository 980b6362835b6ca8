package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/analytics"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
	"github.com/Aryanthe1/Goal-Sync/server/views"
	"github.com/Aryanthe1/Goal-Sync/server/views/components"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GoalsHandler struct {
	log     *zap.Logger
	catalog *models.GoalCatalog
}

func NewGoalsHandler(log *zap.Logger, catalog *models.GoalCatalog) *GoalsHandler {
	if catalog == nil {
		catalog = models.EmptyGoalCatalog()
	}
	return &GoalsHandler{log: log, catalog: catalog}
}

func (h *GoalsHandler) Show(c *gin.Context) {
	user := currentUser(c)
	today, _ := userToday(user)
	week, err := utils.ParseDay(c.Query("week"), today)
	if err != nil {
		week = today
	}
	h.renderWeek(c, user, utils.WeekStart(week), "", false)
}

func (h *GoalsHandler) Create(c *gin.Context) {
	user := currentUser(c)
	today, _ := userToday(user)
	week, err := utils.ParseDay(c.PostForm("week"), today)
	if err != nil {
		h.renderWeek(c, user, utils.WeekStart(today), err.Error(), true)
		return
	}
	weekStart := utils.WeekStart(week)

	in, err := goalInputFromForm(c)
	if err == nil {
		_, err = repository.CreateGoal(c.Request.Context(), user.ID, weekStart, in)
	}
	if err != nil {
		h.renderWeek(c, user, weekStart, h.userMessage(err, "Failed to add goal"), true)
		return
	}
	h.renderWeek(c, user, weekStart, "Goal added.", false)
}

func (h *GoalsHandler) Update(c *gin.Context) {
	user := currentUser(c)
	goalID, ok := goalIDParam(c)
	if !ok {
		return
	}
	in, err := goalInputFromForm(c)
	var goal *models.Goal
	if err == nil {
		goal, err = repository.UpdateGoal(c.Request.Context(), user.ID, goalID, in)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.String(http.StatusNotFound, "Goal not found")
			return
		}
		today, _ := userToday(user)
		h.renderWeek(c, user, utils.WeekStart(today), h.userMessage(err, "Failed to update goal"), true)
		return
	}
	h.renderWeek(c, user, time.Time(goal.WeekStart), "Goal updated.", false)
}

func (h *GoalsHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	goalID, ok := goalIDParam(c)
	if !ok {
		return
	}
	goal, err := repository.GetGoal(c.Request.Context(), user.ID, goalID)
	if err == nil {
		err = repository.DeleteGoal(c.Request.Context(), user.ID, goalID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.String(http.StatusNotFound, "Goal not found")
			return
		}
		h.log.Error("Failed to delete goal", zap.Uint("goalID", goalID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to delete goal")
		return
	}
	h.renderWeek(c, user, time.Time(goal.WeekStart), "Goal deleted.", false)
}

// Toggle flips one day's completion and re-renders the goal's row.
func (h *GoalsHandler) Toggle(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()
	goalID, ok := goalIDParam(c)
	if !ok {
		return
	}
	today, _ := userToday(user)
	day, err := utils.ParseDay(c.Query("date"), today)
	if err != nil {
		c.Status(http.StatusBadRequest)
		renderAlert(c, h.log, err.Error(), "error")
		return
	}
	if day.After(today) {
		c.Status(http.StatusBadRequest)
		renderAlert(c, h.log, "You can't complete a goal in the future.", "error")
		return
	}

	if _, err := repository.ToggleCompletion(ctx, user.ID, goalID, day); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.String(http.StatusNotFound, "Goal not found")
		case errors.Is(err, repository.ErrOutsideWeek):
			c.Status(http.StatusBadRequest)
			renderAlert(c, h.log, "That day is outside the goal's week.", "error")
		default:
			h.log.Error("Failed to toggle completion", zap.Uint("goalID", goalID), zap.Error(err))
			c.String(http.StatusInternalServerError, "Failed to update goal")
		}
		return
	}

	goal, err := repository.GetGoal(ctx, user.ID, goalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to reload goal")
		return
	}
	completions, err := repository.ListCompletionsForGoals(ctx, user.ID, []uint{goalID})
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to reload goal")
		return
	}
	progress := analytics.WeeklyProgress([]models.Goal{*goal}, completions)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("HX-Trigger", "goal-toggled")
	row := views.GoalRow(progress.Goals[0], utils.WeekDays(time.Time(goal.WeekStart)), today, csrfToken(c))
	if err := row.Render(ctx, c.Writer); err != nil {
		h.log.Error("Failed to render goal row", zap.Error(err))
	}
}

func (h *GoalsHandler) renderWeek(c *gin.Context, user *models.User, weekStart time.Time, message string, isError bool) {
	progress, err := weeklyProgress(c.Request.Context(), user.ID, weekStart)
	if err != nil {
		h.log.Error("Failed to load goals", zap.Uint("userID", user.ID), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		renderAlert(c, h.log, "Failed to load goals", "error")
		return
	}
	today, _ := userToday(user)
	render(c, h.log, http.StatusOK, "Goals", views.GoalsPage(views.GoalsData{
		WeekStart: weekStart,
		Today:     today,
		Progress:  progress,
		Catalog:   h.catalog,
		CSRFToken: csrfToken(c),
		Message:   message,
		IsError:   isError,
	}))
}

// userMessage returns the validation message for input errors and logs
// everything else behind a generic message.
func (h *GoalsHandler) userMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, utils.ErrInvalidTitle), errors.Is(err, utils.ErrInvalidTarget):
		return err.Error()
	default:
		h.log.Error(fallback, zap.Error(err))
		return fallback
	}
}

func goalInputFromForm(c *gin.Context) (repository.GoalInput, error) {
	target, err := strconv.Atoi(c.PostForm("target_days"))
	if err != nil {
		return repository.GoalInput{}, utils.ErrInvalidTarget
	}
	in := repository.GoalInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		TargetDays:  target,
	}
	return in, utils.ValidateGoal(in.Title, in.TargetDays)
}

func goalIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.Status(http.StatusBadRequest)
		c.Header("Content-Type", "text/html; charset=utf-8")
		components.Alert("Invalid goal id", "error").Render(c.Request.Context(), c.Writer)
		return 0, false
	}
	return uint(id), true
}
