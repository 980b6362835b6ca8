package repository

import (
	"context"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleCompletion flips the completion of goalID on day and reports whether
// the goal is now marked done. The day must fall inside the goal's week.
func ToggleCompletion(ctx context.Context, userID, goalID uint, day time.Time) (bool, error) {
	var done bool
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			return translate(err)
		}
		weekStart := time.Time(goal.WeekStart)
		if day.Before(weekStart) || !day.Before(weekStart.AddDate(0, 0, 7)) {
			return ErrOutsideWeek
		}

		res := tx.Where("goal_id = ? AND date = ?", goalID, datatypes.Date(day)).Delete(&models.GoalCompletion{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			done = false
			return nil
		}

		completion := models.GoalCompletion{GoalID: goalID, UserID: userID, Date: datatypes.Date(day)}
		if err := tx.Omit(clause.Associations).Create(&completion).Error; err != nil {
			return translate(err)
		}
		done = true
		return nil
	})
	return done, err
}

// ListCompletionsForGoals returns completions of the given goals.
func ListCompletionsForGoals(ctx context.Context, userID uint, goalIDs []uint) ([]models.GoalCompletion, error) {
	var completions []models.GoalCompletion
	if len(goalIDs) == 0 {
		return completions, nil
	}
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND goal_id IN ?", userID, goalIDs).
		Order("date, goal_id").
		Find(&completions).Error
	return completions, err
}

// ListCompletionsInRange returns all of the user's completions in [from, to].
func ListCompletionsInRange(ctx context.Context, userID uint, from, to time.Time) ([]models.GoalCompletion, error) {
	var completions []models.GoalCompletion
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, datatypes.Date(from), datatypes.Date(to)).
		Order("date, goal_id").
		Find(&completions).Error
	return completions, err
}
