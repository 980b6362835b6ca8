package burnout

// Level is the qualitative burnout bucket.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Label is the display form of the level.
func (l Level) Label() string {
	switch l {
	case LevelLow:
		return "Low burnout"
	case LevelModerate:
		return "Moderate burnout"
	case LevelHigh:
		return "High burnout"
	default:
		return "Unknown"
	}
}

// Classification thresholds, inclusive on the upper bound of each band.
const (
	LowCeiling      = 3.0
	ModerateCeiling = 6.0
)

// Suggestion thresholds, inclusive on the lower bound of each band.
// Independent of the classification thresholds.
const (
	MaintainFloor = 4.0
	ReduceFloor   = 7.0
)

const (
	messageLow      = "You're doing great! Keep up the healthy habits."
	messageModerate = "Consider taking some time to recharge and relax."
	messageHigh     = "High burnout detected. Please prioritize rest and self-care."

	suggestReduce   = "Consider reducing your weekly goals by 30-50% to focus on recovery."
	suggestMaintain = "You might want to maintain current goals but add more rest periods."
	suggestHealthy  = "Your burnout levels look healthy - you can maintain or slightly increase your goals."
)

// Classification is the level and advisory message for a score.
type Classification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Classify buckets a score into low (<=3), moderate (<=6) or high.
func Classify(score float64) Classification {
	switch {
	case score <= LowCeiling:
		return Classification{Level: LevelLow, Message: messageLow}
	case score <= ModerateCeiling:
		return Classification{Level: LevelModerate, Message: messageModerate}
	default:
		return Classification{Level: LevelHigh, Message: messageHigh}
	}
}

// Suggest returns the goal-load recommendation for a score.
func Suggest(score float64) string {
	switch {
	case score >= ReduceFloor:
		return suggestReduce
	case score >= MaintainFloor:
		return suggestMaintain
	default:
		return suggestHealthy
	}
}

// Result bundles everything derived from one set of metrics.
type Result struct {
	Score          float64        `json:"score"`
	Terms          Terms          `json:"terms"`
	Classification Classification `json:"classification"`
	Suggestion     string         `json:"suggestion"`
}

// Evaluate scores m and derives its classification and suggestion.
func Evaluate(m WellnessMetrics) Result {
	score := Score(m)
	return Result{
		Score:          score,
		Terms:          Breakdown(m),
		Classification: Classify(score),
		Suggestion:     Suggest(score),
	}
}
