package repository

import (
	"context"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	"gorm.io/datatypes"
)

// GetUsersForEmailReminder finds users who have email reminders enabled for
// the given UTC time (HH:MM).
func GetUsersForEmailReminder(ctx context.Context, reminderTime string) ([]models.User, error) {
	var users []models.User
	err := database.DB.WithContext(ctx).
		Where("email_notifications_enabled = ? AND reminder_time = ?", true, reminderTime).
		Find(&users).Error
	return users, err
}

// HasCheckedInOn reports whether the user has a check-in for day.
func HasCheckedInOn(ctx context.Context, userID uint, day time.Time) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Checkin{}).
		Where("user_id = ? AND date = ?", userID, datatypes.Date(day)).
		Count(&count).Error
	return count > 0, err
}

// UpdateNotificationPreferences updates a user's notification settings.
func UpdateNotificationPreferences(ctx context.Context, userID uint, enabled bool, reminderTime, timezone string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email_notifications_enabled": enabled,
		"reminder_time":               reminderTime,
		"time_zone":                   timezone,
	}).Error
}
