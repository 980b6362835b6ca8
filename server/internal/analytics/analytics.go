// Package analytics aggregates stored check-ins and goal completions into the
// numbers shown on the dashboard and analytics pages.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
)

type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendStable       Trend = "stable"
	TrendWorsening    Trend = "worsening"
	TrendInsufficient Trend = "insufficient_data"
)

// trendDelta is the change in mean score between the older and newer halves
// of a window that counts as a real movement.
const trendDelta = 0.5

// Summary describes the burnout scores of a date range.
type Summary struct {
	From           time.Time              `json:"from"`
	To             time.Time              `json:"to"`
	Count          int                    `json:"count"`
	AverageScore   float64                `json:"average_score"`
	MinScore       float64                `json:"min_score"`
	MaxScore       float64                `json:"max_score"`
	Latest         *models.Checkin        `json:"latest,omitempty"`
	Classification burnout.Classification `json:"classification"`
	Suggestion     string                 `json:"suggestion"`
	Trend          Trend                  `json:"trend"`
	Averages       Averages               `json:"averages"`
}

// Averages holds the mean of each wellness metric.
type Averages struct {
	StressLevel    float64 `json:"stress_level"`
	SleepHours     float64 `json:"sleep_hours"`
	MoodLevel      float64 `json:"mood_level"`
	TimeSpentHours float64 `json:"time_spent_hours"`
}

// Summarize aggregates the check-ins dated within [from, to]. The
// classification describes the latest score and the suggestion the average.
func Summarize(checkins []models.Checkin, from, to time.Time) Summary {
	s := Summary{From: from, To: to, Trend: TrendInsufficient}

	inRange := make([]models.Checkin, 0, len(checkins))
	for _, c := range checkins {
		d := c.Day()
		if d.Before(from) || d.After(to) {
			continue
		}
		inRange = append(inRange, c)
	}
	if len(inRange) == 0 {
		return s
	}
	sort.SliceStable(inRange, func(i, j int) bool { return inRange[i].Day().Before(inRange[j].Day()) })

	scores := make([]float64, len(inRange))
	sum := 0.0
	s.MinScore, s.MaxScore = math.Inf(1), math.Inf(-1)
	for i, c := range inRange {
		scores[i] = c.BurnoutScore
		sum += c.BurnoutScore
		s.MinScore = math.Min(s.MinScore, c.BurnoutScore)
		s.MaxScore = math.Max(s.MaxScore, c.BurnoutScore)
	}

	latest := inRange[len(inRange)-1]
	s.Count = len(inRange)
	s.AverageScore = burnout.RoundToTenth(sum / float64(len(inRange)))
	s.Latest = &latest
	s.Classification = burnout.Classify(latest.BurnoutScore)
	s.Suggestion = burnout.Suggest(s.AverageScore)
	s.Trend = TrendOf(scores)
	s.Averages = AverageMetrics(inRange)
	return s
}

// TrendOf compares the mean of the older half of scores (chronological order)
// with the newer half. With an odd count the middle score is ignored. Lower
// burnout is an improvement.
func TrendOf(scores []float64) Trend {
	n := len(scores)
	if n < 2 {
		return TrendInsufficient
	}
	half := n / 2
	delta := mean(scores[n-half:]) - mean(scores[:half])
	switch {
	case delta <= -trendDelta:
		return TrendImproving
	case delta >= trendDelta:
		return TrendWorsening
	default:
		return TrendStable
	}
}

// CheckinStreak counts consecutive days with a check-in ending today, or
// ending yesterday when today has no check-in yet.
func CheckinStreak(dates []time.Time, today time.Time) int {
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		seen[d.Format(utils.DayLayout)] = struct{}{}
	}
	has := func(d time.Time) bool {
		_, ok := seen[d.Format(utils.DayLayout)]
		return ok
	}

	cursor := today
	if !has(cursor) {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for has(cursor) {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// AverageMetrics returns the mean of each metric, rounded to one decimal.
func AverageMetrics(checkins []models.Checkin) Averages {
	if len(checkins) == 0 {
		return Averages{}
	}
	var a Averages
	for _, c := range checkins {
		a.StressLevel += float64(c.StressLevel)
		a.SleepHours += c.SleepHours
		a.MoodLevel += float64(c.MoodLevel)
		a.TimeSpentHours += c.TimeSpentHours
	}
	n := float64(len(checkins))
	return Averages{
		StressLevel:    burnout.RoundToTenth(a.StressLevel / n),
		SleepHours:     burnout.RoundToTenth(a.SleepHours / n),
		MoodLevel:      burnout.RoundToTenth(a.MoodLevel / n),
		TimeSpentHours: burnout.RoundToTenth(a.TimeSpentHours / n),
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
