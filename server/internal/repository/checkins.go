package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// UpsertCheckin creates or replaces the user's check-in for day. The burnout
// score is recomputed from m every time.
func UpsertCheckin(ctx context.Context, userID uint, day time.Time, m burnout.WellnessMetrics, notes string) (*models.Checkin, error) {
	if err := burnout.Validate(m); err != nil {
		return nil, err
	}

	checkin := models.Checkin{
		UserID: userID,
		Date:   datatypes.Date(day),
		Notes:  strings.TrimSpace(notes),
	}
	checkin.SetMetrics(m)

	err := database.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stress_level", "sleep_hours", "mood_level", "time_spent_hours",
				"notes", "burnout_score", "updated_at",
			}),
		}).
		Create(&checkin).Error
	if err != nil {
		return nil, translate(err)
	}
	return GetCheckin(ctx, userID, day)
}

// GetCheckin returns the user's check-in for day.
func GetCheckin(ctx context.Context, userID uint, day time.Time) (*models.Checkin, error) {
	var checkin models.Checkin
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, datatypes.Date(day)).
		First(&checkin).Error
	if err != nil {
		return nil, translate(err)
	}
	return &checkin, nil
}

// ListCheckins returns the user's check-ins in [from, to], oldest first.
func ListCheckins(ctx context.Context, userID uint, from, to time.Time) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, datatypes.Date(from), datatypes.Date(to)).
		Order("date").
		Find(&checkins).Error
	return checkins, err
}

// ListCheckinDates returns the dates of the user's most recent check-ins,
// newest first.
func ListCheckinDates(ctx context.Context, userID uint, limit int) ([]time.Time, error) {
	var dates []datatypes.Date
	err := database.DB.WithContext(ctx).Model(&models.Checkin{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = time.Time(d)
	}
	return out, nil
}

// DeleteCheckin removes the user's check-in for day.
func DeleteCheckin(ctx context.Context, userID uint, day time.Time) error {
	res := database.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, datatypes.Date(day)).
		Delete(&models.Checkin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
