package analytics

import (
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
)

// GoalProgress is one goal's standing within its week.
type GoalProgress struct {
	Goal      models.Goal     `json:"goal"`
	Completed int             `json:"completed"`
	Target    int             `json:"target"`
	Percent   int             `json:"percent"`
	DoneOn    map[string]bool `json:"done_on"`
}

// Met reports whether the weekly target has been reached.
func (p GoalProgress) Met() bool {
	return p.Completed >= p.Target
}

// Progress covers every goal of a week.
type Progress struct {
	Goals     []GoalProgress `json:"goals"`
	Completed int            `json:"completed"`
	Target    int            `json:"target"`
	Rate      int            `json:"rate"`
}

// WeeklyProgress matches completions to their goals. Completions dated outside
// a goal's week are ignored. Completions beyond a goal's target count towards
// that goal's Completed but not towards the overall rate.
func WeeklyProgress(goals []models.Goal, completions []models.GoalCompletion) Progress {
	byGoal := make(map[uint][]models.GoalCompletion)
	for _, c := range completions {
		byGoal[c.GoalID] = append(byGoal[c.GoalID], c)
	}

	p := Progress{Goals: make([]GoalProgress, 0, len(goals))}
	credited := 0
	for _, g := range goals {
		weekStart := time.Time(g.WeekStart)
		weekEnd := weekStart.AddDate(0, 0, 7)
		gp := GoalProgress{Goal: g, Target: g.TargetDays, DoneOn: make(map[string]bool)}
		for _, c := range byGoal[g.ID] {
			d := time.Time(c.Date)
			if d.Before(weekStart) || !d.Before(weekEnd) {
				continue
			}
			key := d.Format(utils.DayLayout)
			if gp.DoneOn[key] {
				continue
			}
			gp.DoneOn[key] = true
			gp.Completed++
		}
		if gp.Target > 0 {
			gp.Percent = min(100, gp.Completed*100/gp.Target)
		}
		p.Goals = append(p.Goals, gp)
		p.Completed += gp.Completed
		p.Target += gp.Target
		credited += min(gp.Completed, gp.Target)
	}
	if p.Target > 0 {
		p.Rate = credited * 100 / p.Target
	}
	return p
}
