package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalInput is the editable part of a goal.
type GoalInput struct {
	Title       string
	Description string
	TargetDays  int
}

// ListGoalsForWeek returns the user's goals for the week starting weekStart,
// oldest first.
func ListGoalsForWeek(ctx context.Context, userID uint, weekStart time.Time) ([]models.Goal, error) {
	var goals []models.Goal
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, datatypes.Date(utils.WeekStart(weekStart))).
		Order("created_at, id").
		Find(&goals).Error
	return goals, err
}

// ListGoalsInRange returns goals whose week starts within [from, to].
func ListGoalsInRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Goal, error) {
	var goals []models.Goal
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND week_start >= ? AND week_start <= ?", userID, datatypes.Date(utils.WeekStart(from)), datatypes.Date(to)).
		Order("week_start, id").
		Find(&goals).Error
	return goals, err
}

// GetGoal returns the goal only if it belongs to userID.
func GetGoal(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := database.DB.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

// CreateGoal adds a goal to the week containing weekOf.
func CreateGoal(ctx context.Context, userID uint, weekOf time.Time, in GoalInput) (*models.Goal, error) {
	if err := utils.ValidateGoal(in.Title, in.TargetDays); err != nil {
		return nil, err
	}
	goal := &models.Goal{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		TargetDays:  in.TargetDays,
		WeekStart:   datatypes.Date(utils.WeekStart(weekOf)),
	}
	if err := database.DB.WithContext(ctx).Omit(clause.Associations).Create(goal).Error; err != nil {
		return nil, translate(err)
	}
	return goal, nil
}

// UpdateGoal edits a goal owned by userID.
func UpdateGoal(ctx context.Context, userID, goalID uint, in GoalInput) (*models.Goal, error) {
	if err := utils.ValidateGoal(in.Title, in.TargetDays); err != nil {
		return nil, err
	}
	res := database.DB.WithContext(ctx).Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Updates(map[string]interface{}{
			"title":       strings.TrimSpace(in.Title),
			"description": strings.TrimSpace(in.Description),
			"target_days": in.TargetDays,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetGoal(ctx, userID, goalID)
}

// DeleteGoal removes a goal and its completions.
func DeleteGoal(ctx context.Context, userID, goalID uint) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ? AND user_id = ?", goalID, userID).Delete(&models.GoalCompletion{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
