package burnout

import (
	"errors"
	"fmt"
	"math"
)

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Input domains accepted at the storage and request boundary.
const (
	MinLevel = 1
	MaxLevel = 5
	MinHours = 0.0
	MaxHours = 24.0
)

// Sleep and workload windows used by the formula.
const (
	sleepFloorHours   = 6.0
	sleepCeilingHours = 9.0
	workloadHours     = 8.0

	maxSleepDeficitPenalty = 3.0
	maxOversleepPenalty    = 2.0
	maxWorkloadPenalty     = 3.0
)

// ErrInvalidMetrics is returned by Validate when a metric is outside its domain.
var ErrInvalidMetrics = errors.New("invalid wellness metrics")

// WellnessMetrics is one day's self-reported wellness input.
type WellnessMetrics struct {
	StressLevel    int     `json:"stress_level"`
	SleepHours     float64 `json:"sleep_hours"`
	MoodLevel      int     `json:"mood_level"`
	TimeSpentHours float64 `json:"time_spent_hours"`
}

// Terms is the per-factor breakdown of a score before clamping and rounding.
type Terms struct {
	Stress float64 `json:"stress"`
	Sleep  float64 `json:"sleep"`
	Mood   float64 `json:"mood"`
	Time   float64 `json:"time"`
	Raw    float64 `json:"raw"`
}

// Breakdown computes the four penalty terms and their raw sum.
//
//	stress = (stress-1)/4 * 4                     0..4
//	sleep  = 3 - sleep/6*3          if sleep < 6  3..0
//	       = min(2, (sleep-9)*0.5)  if sleep > 9
//	mood   = (5-mood)/4 * 3                       3..0
//	time   = min(3, (time-8)*0.3)   if time > 8
func Breakdown(m WellnessMetrics) Terms {
	t := Terms{
		Stress: float64(m.StressLevel-1) / 4 * 4,
		Sleep:  sleepPenalty(m.SleepHours),
		Mood:   float64(5-m.MoodLevel) / 4 * 3,
		Time:   workloadPenalty(m.TimeSpentHours),
	}
	t.Raw = t.Stress + t.Sleep + t.Mood + t.Time
	return t
}

// Score maps wellness metrics to a burnout score in [0,10] with one decimal.
// Input is not validated; callers reject out-of-domain values with Validate.
func Score(m WellnessMetrics) float64 {
	return RoundToTenth(clamp(Breakdown(m).Raw, MinScore, MaxScore))
}

func sleepPenalty(hours float64) float64 {
	switch {
	case hours < sleepFloorHours:
		return maxSleepDeficitPenalty - (hours/sleepFloorHours)*maxSleepDeficitPenalty
	case hours > sleepCeilingHours:
		return math.Min(maxOversleepPenalty, (hours-sleepCeilingHours)*0.5)
	default:
		return 0
	}
}

func workloadPenalty(hours float64) float64 {
	if hours > workloadHours {
		return math.Min(maxWorkloadPenalty, (hours-workloadHours)*0.3)
	}
	return 0
}

// RoundToTenth rounds to one decimal, half away from zero. For the
// non-negative values scores and averages take this equals rounding half up.
func RoundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Validate reports whether every metric lies inside its declared domain.
func Validate(m WellnessMetrics) error {
	if m.StressLevel < MinLevel || m.StressLevel > MaxLevel {
		return fmt.Errorf("%w: stress_level must be between %d and %d, got %d", ErrInvalidMetrics, MinLevel, MaxLevel, m.StressLevel)
	}
	if m.MoodLevel < MinLevel || m.MoodLevel > MaxLevel {
		return fmt.Errorf("%w: mood_level must be between %d and %d, got %d", ErrInvalidMetrics, MinLevel, MaxLevel, m.MoodLevel)
	}
	if !validHours(m.SleepHours) {
		return fmt.Errorf("%w: sleep_hours must be between %g and %g, got %g", ErrInvalidMetrics, MinHours, MaxHours, m.SleepHours)
	}
	if !validHours(m.TimeSpentHours) {
		return fmt.Errorf("%w: time_spent_hours must be between %g and %g, got %g", ErrInvalidMetrics, MinHours, MaxHours, m.TimeSpentHours)
	}
	return nil
}

func validHours(h float64) bool {
	return !math.IsNaN(h) && h >= MinHours && h <= MaxHours
}
