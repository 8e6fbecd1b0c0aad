package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type throttleOutput struct {
	LockPath      string `json:"lock_path"`
	IntervalMs    int64  `json:"interval_ms"`
	BurstWindowMs int64  `json:"burst_window_ms"`
	Burst         bool   `json:"burst"`
	WaitedMs      int64  `json:"waited_ms"`
	LastCallMs    int64  `json:"last_call_ms"`
}

func newThrottleCommand(ctx *commandContext) *cobra.Command {
	var burst bool

	cmd := &cobra.Command{
		Use:   "throttle",
		Short: "Take one slot from the shared resolver rate limit and report the wait",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limiter, err := ctx.newLimiter()
			if err != nil {
				return err
			}
			waited := limiter.Acquire(cmd.Context(), burst)
			last, err := limiter.LastTimestamp()
			if err != nil {
				return fmt.Errorf("read %s: %w", limiter.LockPath(), err)
			}

			out := throttleOutput{
				LockPath:      limiter.LockPath(),
				IntervalMs:    limiter.Interval().Milliseconds(),
				BurstWindowMs: limiter.BurstWindow().Milliseconds(),
				Burst:         burst,
				WaitedMs:      waited.Milliseconds(),
				LastCallMs:    last,
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, out)
			}
			w := cmd.OutOrStdout()
			if out.IntervalMs == 0 {
				fmt.Fprintln(w, "Rate limiting disabled (interval 0)")
				return nil
			}
			fmt.Fprintf(w, "Lock file:    %s\n", out.LockPath)
			fmt.Fprintf(w, "Interval:     %s\n", limiter.Interval())
			fmt.Fprintf(w, "Burst window: %s (burst request: %s)\n", limiter.BurstWindow(), yesNo(burst))
			fmt.Fprintf(w, "Waited:       %s\n", waited.Round(time.Millisecond))
			fmt.Fprintf(w, "Last call:    %s\n", formatMillis(last))
			return nil
		},
	}

	cmd.Flags().BoolVar(&burst, "burst", false, "Request a burst-eligible slot")
	return cmd
}
