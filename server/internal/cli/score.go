package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Aryanthe1/Goal-Sync/server/internal/burnout"

	"github.com/spf13/cobra"
)

func newScoreCommand() *cobra.Command {
	var (
		m      burnout.WellnessMetrics
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute a burnout score from wellness metrics",
		Example: "  goalsync score --stress 3 --sleep 8 --mood 3 --time 8\n" +
			"  goalsync score --stress 5 --sleep 4 --mood 1 --time 16 --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := burnout.Validate(m); err != nil {
				return err
			}
			res := burnout.Evaluate(m)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&m.StressLevel, "stress", 0, "stress level, 1 (calm) to 5 (overwhelmed)")
	cmd.Flags().Float64Var(&m.SleepHours, "sleep", 0, "hours slept, 0 to 24")
	cmd.Flags().IntVar(&m.MoodLevel, "mood", 0, "mood level, 1 (low) to 5 (great)")
	cmd.Flags().Float64Var(&m.TimeSpentHours, "time", 0, "hours worked, 0 to 24")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	for _, name := range []string{"stress", "sleep", "mood", "time"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printResult(w io.Writer, res burnout.Result) error {
	_, err := fmt.Fprintf(w,
		"Burnout score: %.1f / 10\n"+
			"  stress  %5.2f\n  sleep   %5.2f\n  mood    %5.2f\n  time    %5.2f\n  raw     %5.2f\n"+
			"Level:      %s\n"+
			"Message:    %s\n"+
			"Suggestion: %s\n",
		res.Score,
		res.Terms.Stress, res.Terms.Sleep, res.Terms.Mood, res.Terms.Time, res.Terms.Raw,
		res.Classification.Level.Label(),
		res.Classification.Message,
		res.Suggestion,
	)
	return err
}
