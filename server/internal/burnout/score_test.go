package burnout

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestScore_Examples(t *testing.T) {
	tests := []struct {
		name  string
		in    WellnessMetrics
		want  float64
		level Level
	}{
		{
			// stress=2, sleep=0, mood=1.5, time=0 → 3.5
			name:  "average day",
			in:    WellnessMetrics{StressLevel: 3, SleepHours: 8, MoodLevel: 3, TimeSpentHours: 8},
			want:  3.5,
			level: LevelModerate,
		},
		{
			// stress=4, sleep=1, mood=3, time=2.4 → 10.4, clamped to 10
			name:  "overloaded day clamps at ten",
			in:    WellnessMetrics{StressLevel: 5, SleepHours: 4, MoodLevel: 1, TimeSpentHours: 16},
			want:  10,
			level: LevelHigh,
		},
		{
			name:  "best possible day",
			in:    WellnessMetrics{StressLevel: 1, SleepHours: 7.5, MoodLevel: 5, TimeSpentHours: 6},
			want:  0,
			level: LevelLow,
		},
		{
			// stress=1, sleep=0, mood=0.75, time=0 → 1.75 → 1.8
			name:  "mild stress",
			in:    WellnessMetrics{StressLevel: 2, SleepHours: 7, MoodLevel: 4, TimeSpentHours: 8},
			want:  1.8,
			level: LevelLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.in)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Fatalf("Score(%+v) = %v, want %v", tt.in, got, tt.want)
			}
			if lvl := Classify(got).Level; lvl != tt.level {
				t.Errorf("Classify(%v).Level = %q, want %q", got, lvl, tt.level)
			}
		})
	}
}

func TestBreakdown_OverloadedDay(t *testing.T) {
	terms := Breakdown(WellnessMetrics{StressLevel: 5, SleepHours: 4, MoodLevel: 1, TimeSpentHours: 16})

	checks := []struct {
		name      string
		got, want float64
	}{
		{"stress", terms.Stress, 4},
		{"sleep", terms.Sleep, 1},
		{"mood", terms.Mood, 3},
		{"time", terms.Time, 2.4},
		{"raw", terms.Raw, 10.4},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want, 1e-9) {
			t.Errorf("%s term = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	for stress := MinLevel; stress <= MaxLevel; stress++ {
		for mood := MinLevel; mood <= MaxLevel; mood++ {
			for sleep := 0.0; sleep <= 24; sleep += 0.5 {
				for work := 0.0; work <= 24; work += 0.5 {
					m := WellnessMetrics{StressLevel: stress, SleepHours: sleep, MoodLevel: mood, TimeSpentHours: work}
					s := Score(m)
					if s < MinScore || s > MaxScore {
						t.Fatalf("Score(%+v) = %v, outside [0,10]", m, s)
					}
					if tenths := s * 10; !almostEqual(tenths, math.Round(tenths), 1e-9) {
						t.Fatalf("Score(%+v) = %v, not rounded to one decimal", m, s)
					}
				}
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	m := WellnessMetrics{StressLevel: 4, SleepHours: 5.25, MoodLevel: 2, TimeSpentHours: 10.5}
	first := Score(m)
	for i := 0; i < 100; i++ {
		if got := Score(m); got != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	base := WellnessMetrics{StressLevel: 3, SleepHours: 7, MoodLevel: 3, TimeSpentHours: 8}

	t.Run("stress up never lowers score", func(t *testing.T) {
		prev := -1.0
		for s := MinLevel; s <= MaxLevel; s++ {
			m := base
			m.StressLevel = s
			got := Score(m)
			if got < prev {
				t.Fatalf("stress %d scored %v, below previous %v", s, got, prev)
			}
			prev = got
		}
	})

	t.Run("mood up never raises score", func(t *testing.T) {
		prev := math.Inf(1)
		for md := MinLevel; md <= MaxLevel; md++ {
			m := base
			m.MoodLevel = md
			got := Score(m)
			if got > prev {
				t.Fatalf("mood %d scored %v, above previous %v", md, got, prev)
			}
			prev = got
		}
	})

	t.Run("less sleep below six never lowers score", func(t *testing.T) {
		prev := -1.0
		for h := 6.0; h >= 0; h -= 0.25 {
			m := base
			m.SleepHours = h
			got := Score(m)
			if got < prev {
				t.Fatalf("sleep %v scored %v, below previous %v", h, got, prev)
			}
			prev = got
		}
	})

	t.Run("more sleep above nine never lowers score", func(t *testing.T) {
		prev := -1.0
		for h := 9.0; h <= 24; h += 0.25 {
			m := base
			m.SleepHours = h
			got := Score(m)
			if got < prev {
				t.Fatalf("sleep %v scored %v, below previous %v", h, got, prev)
			}
			prev = got
		}
	})

	t.Run("more hours above eight never lowers score", func(t *testing.T) {
		prev := -1.0
		for h := 8.0; h <= 24; h += 0.25 {
			m := base
			m.TimeSpentHours = h
			got := Score(m)
			if got < prev {
				t.Fatalf("time %v scored %v, below previous %v", h, got, prev)
			}
			prev = got
		}
	})
}

func TestBreakdown_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		sleep     float64
		work      float64
		wantSleep float64
		wantTime  float64
	}{
		{"six hours sleep is optimal", 6, 0, 0, 0},
		{"nine hours sleep is optimal", 9, 0, 0, 0},
		{"no sleep is the maximum penalty", 0, 0, 3, 0},
		{"three hours sleep", 3, 0, 1.5, 0},
		{"oversleep penalty", 11, 0, 1, 0},
		{"oversleep caps at two", 20, 0, 2, 0},
		{"eight hours work is free", 7, 8, 0, 0},
		{"ten hours work", 7, 10, 0, 0.6},
		{"eighteen hours saturates", 7, 18, 0, 3},
		{"twenty-four hours stays saturated", 7, 24, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := Breakdown(WellnessMetrics{StressLevel: 1, SleepHours: tt.sleep, MoodLevel: 5, TimeSpentHours: tt.work})
			if !almostEqual(terms.Sleep, tt.wantSleep, 1e-9) {
				t.Errorf("sleep term = %v, want %v", terms.Sleep, tt.wantSleep)
			}
			if !almostEqual(terms.Time, tt.wantTime, 1e-9) {
				t.Errorf("time term = %v, want %v", terms.Time, tt.wantTime)
			}
		})
	}
}

// Halves round away from zero (math.Round), not to even.
func TestRoundToTenth_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.25, 0.3},
		{2.25, 2.3},
		{0.75, 0.8},
		{1.25, 1.3},
		{3.5, 3.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundToTenth(tt.in); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("RoundToTenth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Oversleeping by 0.5h gives an exact raw score of 0.25; by 2.5h, 1.25.
	if got := Score(WellnessMetrics{StressLevel: 1, SleepHours: 9.5, MoodLevel: 5}); !almostEqual(got, 0.3, 1e-9) {
		t.Errorf("Score with raw 0.25 = %v, want 0.3", got)
	}
	if got := Score(WellnessMetrics{StressLevel: 1, SleepHours: 11.5, MoodLevel: 5}); !almostEqual(got, 1.3, 1e-9) {
		t.Errorf("Score with raw 1.25 = %v, want 1.3", got)
	}
}

func TestValidate(t *testing.T) {
	valid := WellnessMetrics{StressLevel: 3, SleepHours: 7, MoodLevel: 3, TimeSpentHours: 8}
	if err := Validate(valid); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*WellnessMetrics)
	}{
		{"stress too low", func(m *WellnessMetrics) { m.StressLevel = 0 }},
		{"stress too high", func(m *WellnessMetrics) { m.StressLevel = 6 }},
		{"mood too low", func(m *WellnessMetrics) { m.MoodLevel = 0 }},
		{"mood too high", func(m *WellnessMetrics) { m.MoodLevel = 6 }},
		{"negative sleep", func(m *WellnessMetrics) { m.SleepHours = -1 }},
		{"sleep over a day", func(m *WellnessMetrics) { m.SleepHours = 24.5 }},
		{"negative time", func(m *WellnessMetrics) { m.TimeSpentHours = -0.1 }},
		{"time over a day", func(m *WellnessMetrics) { m.TimeSpentHours = 25 }},
		{"NaN sleep", func(m *WellnessMetrics) { m.SleepHours = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := Validate(m)
			if !errors.Is(err, ErrInvalidMetrics) {
				t.Fatalf("Validate(%+v) = %v, want ErrInvalidMetrics", m, err)
			}
		})
	}
}
