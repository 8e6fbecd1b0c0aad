package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricist/internal/lyrics"
	"lyricist/internal/store"
	"lyricist/internal/validate"
)

type lookupOutput struct {
	Query    string       `json:"query"`
	Strategy string       `json:"strategy,omitempty"`
	Entry    *store.Entry `json:"entry"`
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var withLyrics bool

	cmd := &cobra.Command{
		Use:   "lookup <query...>",
		Short: "Find cached lyrics for a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, ok := validate.SanitizeQuery(strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("query %q is empty or not allowed", strings.Join(args, " "))
			}
			return ctx.withStore(cmd, func(st *store.Store) error {
				svc, err := ctx.newService(st, nil)
				if err != nil {
					return err
				}
				result, err := ctx.resolveQuery(cmd, svc, query)
				if err != nil {
					return fmt.Errorf("lookup %q: %w", query, err)
				}
				entry, strategy := result.Entry, result.Strategy
				if ctx.jsonOutput() {
					return writeJSON(cmd, lookupOutput{Query: query, Strategy: string(strategy), Entry: entry})
				}
				out := cmd.OutOrStdout()
				if entry == nil {
					fmt.Fprintf(out, "No cached lyrics for %q\n", query)
					return nil
				}
				fmt.Fprintf(out, "Matched by %s\n", strategyLabel(strategy))
				writeEntryDetail(out, entry, withLyrics)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&withLyrics, "lyrics", "l", false, "Print the lyrics text")
	return cmd
}

func strategyLabel(strategy lyrics.Strategy) string {
	switch strategy {
	case lyrics.StrategyPath:
		return "path"
	case lyrics.StrategyURL:
		return "source URL"
	case lyrics.StrategyArtistTitle:
		return "artist and title"
	case lyrics.StrategyTokenSplit:
		return "artist/title split"
	case lyrics.StrategyScoredSearch:
		return "title similarity"
	case lyrics.StrategySearchFallback:
		return "keyword search"
	case lyrics.StrategyPhrase:
		return "saved phrase"
	case lyrics.StrategyRecent:
		return "most recent entry"
	default:
		return string(strategy)
	}
}
