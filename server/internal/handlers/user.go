package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
	"github.com/Aryanthe1/Goal-Sync/server/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	log *zap.Logger
}

func NewUserHandler(log *zap.Logger) *UserHandler {
	return &UserHandler{log: log}
}

// ShowProfilePage is the single handler for all GET requests to the profile.
func (h *UserHandler) ShowProfilePage(c *gin.Context) {
	activeSection := c.Param("section")
	if activeSection == "" {
		activeSection = "personal"
	}

	userForView := *currentUser(c)
	userForView.ReminderTime = localReminderTime(userForView.ReminderTime, userForView.TimeZone, time.Now())

	if isHTMX(c) && c.GetHeader("HX-Target") == "profile-content" {
		render(c, h.log, http.StatusOK, "Profile", views.ProfileSection(&userForView, csrfToken(c), activeSection))
		return
	}
	render(c, h.log, http.StatusOK, "Profile", views.Profile(&userForView, csrfToken(c), activeSection))
}

func (h *UserHandler) UpdateInfo(c *gin.Context) {
	userID := currentUser(c).ID
	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")

	if err := repository.UpdateUser(c.Request.Context(), userID, firstName, lastName); err != nil {
		h.log.Error("Failed to update user info", zap.Error(err), zap.Uint("userID", userID))
		renderAlert(c, h.log, "Failed to update profile", "error")
		return
	}
	renderAlert(c, h.log, "Profile updated successfully!", "success")
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user := currentUser(c)
	currentPassword := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirmPassword := c.PostForm("confirm_password")

	if !user.CheckPassword(currentPassword) {
		renderAlert(c, h.log, "Incorrect current password", "error")
		return
	}
	if newPassword != confirmPassword {
		renderAlert(c, h.log, "New passwords do not match", "error")
		return
	}
	if !utils.IsComplexPassword(newPassword) {
		renderAlert(c, h.log, utils.ErrWeakPassword.Error(), "error")
		return
	}
	if err := repository.UpdateUserPassword(c.Request.Context(), user.ID, newPassword); err != nil {
		h.log.Error("Failed to update password", zap.Error(err), zap.Uint("userID", user.ID))
		renderAlert(c, h.log, "Failed to update password", "error")
		return
	}
	renderAlert(c, h.log, "Password updated successfully", "success")
}

func (h *UserHandler) UpdateNotificationSettings(c *gin.Context) {
	userID := currentUser(c).ID

	enabled := c.PostForm("enable_email_notifications") == "on"
	userTimezone := c.PostForm("timezone")
	if userTimezone == "" {
		userTimezone = "UTC"
	}
	reminder := c.PostForm("reminder_time")

	utcReminderTime := ""
	if reminder != "" || enabled {
		var err error
		utcReminderTime, err = reminderTimeToUTC(reminder, userTimezone, time.Now())
		if err != nil {
			renderAlert(c, h.log, err.Error(), "error")
			return
		}
	}

	if err := repository.UpdateNotificationPreferences(c.Request.Context(), userID, enabled, utcReminderTime, userTimezone); err != nil {
		h.log.Error("Failed to update notification preferences", zap.Error(err), zap.Uint("userID", userID))
		renderAlert(c, h.log, "Failed to save notification settings.", "error")
		return
	}
	renderAlert(c, h.log, "Notification settings saved successfully!", "success")
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)
	password := c.PostForm("password")
	confirmation := c.PostForm("confirmation")
	if confirmation != "DELETE" {
		renderAlert(c, h.log, "Please type DELETE to confirm.", "error")
		return
	}
	if !user.CheckPassword(password) {
		renderAlert(c, h.log, "Incorrect password.", "error")
		return
	}
	if err := repository.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.Uint("userID", user.ID))
		renderAlert(c, h.log, "Failed to delete account.", "error")
		return
	}
	h.log.Info("Account deleted", zap.Uint("userID", user.ID))

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Warn("Failed to clear session after account deletion", zap.Error(err))
	}
	c.Header("HX-Redirect", "/")
}

// reminderTimeToUTC converts a local HH:MM in the named zone to UTC HH:MM,
// using today's date in that zone so that DST is applied correctly.
func reminderTimeToUTC(local, timezone string, now time.Time) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("unknown time zone %q", timezone)
	}
	dateTimeString := fmt.Sprintf("%s %s", now.In(loc).Format(utils.DayLayout), local)
	parsedTime, err := time.ParseInLocation("2006-01-02 15:04", dateTimeString, loc)
	if err != nil {
		return "", fmt.Errorf("invalid time format, please use HH:MM")
	}
	return parsedTime.UTC().Format("15:04"), nil
}

// localReminderTime converts a stored UTC HH:MM back to the user's zone.
// Unparseable input is returned unchanged.
func localReminderTime(utcHHMM, timezone string, now time.Time) string {
	if utcHHMM == "" || timezone == "" {
		return utcHHMM
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcHHMM
	}
	t, err := time.Parse("15:04", utcHHMM)
	if err != nil {
		return utcHHMM
	}
	now = now.UTC()
	inUTC := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return inUTC.In(loc).Format("15:04")
}
