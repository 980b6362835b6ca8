package models

import (
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"

	"gorm.io/datatypes"
)

// Checkin is one user's wellness submission for one calendar date.
type Checkin struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;uniqueIndex:uidx_checkin_user_date" json:"-"`
	User           User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Date           datatypes.Date `gorm:"not null;uniqueIndex:uidx_checkin_user_date" json:"date"`
	StressLevel    int            `gorm:"not null;check:stress_level >= 1 AND stress_level <= 5" json:"stress_level"`
	SleepHours     float64        `gorm:"not null;check:sleep_hours >= 0 AND sleep_hours <= 24" json:"sleep_hours"`
	MoodLevel      int            `gorm:"not null;check:mood_level >= 1 AND mood_level <= 5" json:"mood_level"`
	TimeSpentHours float64        `gorm:"not null;check:time_spent_hours >= 0 AND time_spent_hours <= 24" json:"time_spent_hours"`
	Notes          string         `json:"notes,omitempty"`
	BurnoutScore   float64        `gorm:"not null" json:"burnout_score"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Metrics returns the scoring input recorded by c.
func (c *Checkin) Metrics() burnout.WellnessMetrics {
	return burnout.WellnessMetrics{
		StressLevel:    c.StressLevel,
		SleepHours:     c.SleepHours,
		MoodLevel:      c.MoodLevel,
		TimeSpentHours: c.TimeSpentHours,
	}
}

// SetMetrics replaces the recorded metrics and recomputes the burnout score.
func (c *Checkin) SetMetrics(m burnout.WellnessMetrics) {
	c.StressLevel = m.StressLevel
	c.SleepHours = m.SleepHours
	c.MoodLevel = m.MoodLevel
	c.TimeSpentHours = m.TimeSpentHours
	c.BurnoutScore = burnout.Score(m)
}

// Day returns the check-in date as a time.Time at midnight UTC.
func (c *Checkin) Day() time.Time {
	return time.Time(c.Date)
}
