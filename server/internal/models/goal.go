package models

import (
	"time"

	"gorm.io/datatypes"
)

// Goal is a weekly goal: complete it on TargetDays days of the week that
// starts on WeekStart (a Monday).
type Goal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index:idx_goals_user_week" json:"-"`
	User        User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `json:"description"`
	TargetDays  int            `gorm:"not null;default:1;check:target_days >= 1 AND target_days <= 7" json:"target_days"`
	WeekStart   datatypes.Date `gorm:"not null;index:idx_goals_user_week" json:"week_start"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// GoalCompletion marks a goal done on one calendar date.
type GoalCompletion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GoalID    uint           `gorm:"not null;uniqueIndex:uidx_goal_date" json:"goal_id"`
	Goal      Goal           `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint           `gorm:"not null;index" json:"-"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:uidx_goal_date" json:"date"`
	CreatedAt time.Time      `json:"created_at"`
}
