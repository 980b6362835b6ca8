package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/analytics"
	"github.com/Aryanthe1/Goal-Sync/server/internal/auth"
	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidInput = errors.New("invalid input")

// APIHandler serves the JSON API under /api/v1.
type APIHandler struct {
	log       *zap.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAPIHandler(log *zap.Logger, jwtSecret string, tokenTTL time.Duration) *APIHandler {
	return &APIHandler{log: log, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type goalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDays  int    `json:"target_days"`
	Week        string `json:"week"`
}

type completionRequest struct {
	Date string `json:"date"`
}

type completionResponse struct {
	GoalID uint   `json:"goal_id"`
	Date   string `json:"date"`
	Done   bool   `json:"done"`
}

// MetricsRequest is the JSON body carrying wellness metrics. All four are
// required: an absent field is rejected rather than read as zero.
type MetricsRequest struct {
	StressLevel    *int     `json:"stress_level" binding:"required"`
	SleepHours     *float64 `json:"sleep_hours" binding:"required"`
	MoodLevel      *int     `json:"mood_level" binding:"required"`
	TimeSpentHours *float64 `json:"time_spent_hours" binding:"required"`
}

func (r MetricsRequest) metrics() burnout.WellnessMetrics {
	return burnout.WellnessMetrics{
		StressLevel:    *r.StressLevel,
		SleepHours:     *r.SleepHours,
		MoodLevel:      *r.MoodLevel,
		TimeSpentHours: *r.TimeSpentHours,
	}
}

type checkinRequest struct {
	MetricsRequest
	Notes string `json:"notes"`
}

// Token exchanges email and password for a bearer token.
func (h *APIHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: email and password are required", errInvalidInput))
		return
	}
	user, err := repository.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			h.log.Error("Failed to look up user", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	now := time.Now()
	token, err := auth.IssueToken(h.jwtSecret, user.ID, user.Email, h.tokenTTL, now)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: token, ExpiresAt: now.Add(h.tokenTTL).UTC()})
}

// Score evaluates metrics without storing anything.
func (h *APIHandler) Score(c *gin.Context) {
	var req MetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	m := req.metrics()
	if err := burnout.Validate(m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, burnout.Evaluate(m))
}

func (h *APIHandler) ListGoals(c *gin.Context) {
	user := currentUser(c)
	today, _ := userToday(user)
	week, err := utils.ParseDay(c.Query("week"), today)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	progress, err := weeklyProgress(c.Request.Context(), user.ID, utils.WeekStart(week))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *APIHandler) CreateGoal(c *gin.Context) {
	user := currentUser(c)
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	today, _ := userToday(user)
	week, err := utils.ParseDay(req.Week, today)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	goal, err := repository.CreateGoal(c.Request.Context(), user.ID, week, repository.GoalInput{
		Title: req.Title, Description: req.Description, TargetDays: req.TargetDays,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *APIHandler) UpdateGoal(c *gin.Context) {
	user := currentUser(c)
	goalID, err := parseID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	goal, err := repository.UpdateGoal(c.Request.Context(), user.ID, goalID, repository.GoalInput{
		Title: req.Title, Description: req.Description, TargetDays: req.TargetDays,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *APIHandler) DeleteGoal(c *gin.Context) {
	goalID, err := parseID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := repository.DeleteGoal(c.Request.Context(), currentUser(c).ID, goalID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleCompletion flips a goal's completion for the given date (default
// today).
func (h *APIHandler) ToggleCompletion(c *gin.Context) {
	user := currentUser(c)
	goalID, err := parseID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var req completionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
			return
		}
	}
	today, _ := userToday(user)
	day, err := utils.ParseDay(req.Date, today)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	if day.After(today) {
		h.fail(c, errFutureDate)
		return
	}
	done, err := repository.ToggleCompletion(c.Request.Context(), user.ID, goalID, day)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, completionResponse{GoalID: goalID, Date: day.Format(utils.DayLayout), Done: done})
}

func (h *APIHandler) ListCheckins(c *gin.Context) {
	user := currentUser(c)
	today, _ := userToday(user)
	to, err := utils.ParseDay(c.Query("to"), today)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	from, err := utils.ParseDay(c.Query("from"), to.AddDate(0, 0, -(defaultAnalyticsDays-1)))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	if from.After(to) {
		h.fail(c, fmt.Errorf("%w: from must not be after to", errInvalidInput))
		return
	}
	checkins, err := repository.ListCheckins(c.Request.Context(), user.ID, from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, checkins)
}

// PutCheckin creates or replaces the check-in for the date in the path.
func (h *APIHandler) PutCheckin(c *gin.Context) {
	user := currentUser(c)
	day, err := time.Parse(utils.DayLayout, c.Param("date"))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidInput))
		return
	}
	today, _ := userToday(user)
	if day.After(today) {
		h.fail(c, errFutureDate)
		return
	}
	var req checkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}
	checkin, err := repository.UpsertCheckin(c.Request.Context(), user.ID, day, req.metrics(), req.Notes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, checkin)
}

func (h *APIHandler) DeleteCheckin(c *gin.Context) {
	day, err := time.Parse(utils.DayLayout, c.Param("date"))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidInput))
		return
	}
	if err := repository.DeleteCheckin(c.Request.Context(), currentUser(c).ID, day); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type summaryResponse struct {
	analytics.Summary
	Streak int `json:"streak"`
}

func (h *APIHandler) Summary(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()
	today, _ := userToday(user)
	days := parseDays(c.Query("days"))
	from := today.AddDate(0, 0, -(days - 1))

	checkins, err := repository.ListCheckins(ctx, user.ID, from, today)
	if err != nil {
		h.fail(c, err)
		return
	}
	streak, err := checkinStreak(ctx, user.ID, today)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{Summary: analytics.Summarize(checkins, from, today), Streak: streak})
}

// fail maps err onto a status code and a JSON error body.
func (h *APIHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errInvalidInput),
		errors.Is(err, errFutureDate),
		errors.Is(err, burnout.ErrInvalidMetrics),
		errors.Is(err, utils.ErrInvalidTitle),
		errors.Is(err, utils.ErrInvalidTarget),
		errors.Is(err, repository.ErrOutsideWeek):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		status = http.StatusConflict
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Error("API request failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errInvalidInput, raw)
	}
	return uint(id), nil
}
