// Package burnout derives a daily burnout score from self-reported wellness
// metrics.
//
// Score is a pure function of stress, sleep, mood and hours worked and
// returns a value in [0,10] rounded to one decimal. Classify and Suggest map
// that value onto two independent threshold sets: 3/6 for the low, moderate
// and high levels, and 4/7 for the goal-load recommendation.
//
// Nothing in this package validates its input implicitly. Request handlers
// and the CLI call Validate before scoring, and the database enforces the same
// domains with CHECK constraints.
package burnout
