package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lyricist/internal/store"
)

type statsOutput struct {
	Stats  store.Stats          `json:"stats"`
	Health store.DatabaseHealth `json:"health"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics and database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(st *store.Store) error {
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return fmt.Errorf("collect stats: %w", err)
				}
				health, err := st.CheckHealth(cmd.Context())
				if err != nil {
					return fmt.Errorf("check database health: %w", err)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, statsOutput{Stats: stats, Health: health})
				}

				rows := [][]string{
					{"Database", health.DBPath},
					{"Schema version", strconv.Itoa(health.SchemaVersion)},
					{"Integrity", okLabel(health.IntegrityCheck)},
					{"Entries", strconv.Itoa(stats.Entries)},
					{"Artists", strconv.Itoa(stats.Artists)},
					{"Lyrics bytes", strconv.FormatInt(stats.LyricsBytes, 10)},
					{"Oldest entry", formatMillis(stats.OldestMillis)},
					{"Last update", formatMillis(stats.NewestMillis)},
				}
				if len(health.MissingColumns) > 0 {
					rows = append(rows, []string{"Missing columns", strings.Join(health.MissingColumns, ", ")})
				}
				if health.Error != "" {
					rows = append(rows, []string{"Error", health.Error})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			})
		},
	}
}

func okLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAILED"
}
