package repository

import (
	"context"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	"gorm.io/datatypes"
)

type TimelineDataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// GetBurnoutTimeline returns one point per check-in in [from, to].
func GetBurnoutTimeline(ctx context.Context, userID uint, from, to time.Time) ([]TimelineDataPoint, error) {
	var data []TimelineDataPoint
	err := database.DB.WithContext(ctx).Model(&models.Checkin{}).
		Select("date, burnout_score AS value").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, datatypes.Date(from), datatypes.Date(to)).
		Order("date").
		Scan(&data).Error
	return data, err
}

// GetCompletionCounts returns the number of goal completions per day in
// [from, to]. Days without completions are absent.
func GetCompletionCounts(ctx context.Context, userID uint, from, to time.Time) ([]DailyCount, error) {
	var data []DailyCount
	err := database.DB.WithContext(ctx).Model(&models.GoalCompletion{}).
		Select("date, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, datatypes.Date(from), datatypes.Date(to)).
		Group("date").
		Order("date").
		Scan(&data).Error
	return data, err
}
