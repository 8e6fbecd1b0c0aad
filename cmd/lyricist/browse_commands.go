package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lyricist/internal/store"
	"lyricist/internal/validate"
)

const defaultListLimit = 20

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <term...>",
		Short: "Search cached entries by artist, title, or keywords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(strings.Join(args, " "))
			return ctx.withStore(cmd, func(st *store.Store) error {
				entries, err := st.Search(cmd.Context(), term, limit)
				if err != nil {
					return fmt.Errorf("search %q: %w", term, err)
				}
				return printEntries(cmd, ctx, entries, fmt.Sprintf("No cached entries match %q", term))
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultListLimit, "Maximum entries to show (0 for all)")
	return cmd
}

func newRecentCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently updated entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(st *store.Store) error {
				entries, err := st.List(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("list entries: %w", err)
				}
				return printEntries(cmd, ctx, entries, "The lyrics cache is empty")
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultListLimit, "Maximum entries to show (0 for all)")
	return cmd
}

func printEntries(cmd *cobra.Command, ctx *commandContext, entries []store.Entry, empty string) error {
	if ctx.jsonOutput() {
		if entries == nil {
			entries = []store.Entry{}
		}
		return writeJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}
	writeEntries(cmd.OutOrStdout(), entries)
	return nil
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|path|url>",
		Short: "Show one cached entry with its lyrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.TrimSpace(args[0])
			return ctx.withStore(cmd, func(st *store.Store) error {
				entry, err := findEntry(cmd, st, ref)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, entry)
				}
				writeEntryDetail(cmd.OutOrStdout(), entry, true)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|path|url>",
		Short: "Remove one cached entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.TrimSpace(args[0])
			return ctx.withStore(cmd, func(st *store.Store) error {
				entry, err := findEntry(cmd, st, ref)
				if err != nil {
					return err
				}
				removed, err := st.Delete(cmd.Context(), entry.ID)
				if err != nil {
					return fmt.Errorf("delete entry %d: %w", entry.ID, err)
				}
				if !removed {
					return fmt.Errorf("entry %d was already removed", entry.ID)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (id %d)\n", entry.DisplayTitle(), entry.ID)
				return nil
			})
		},
	}
}

// findEntry resolves a numeric id, a locator path, or a lyrics URL.
func findEntry(cmd *cobra.Command, st *store.Store, ref string) (*store.Entry, error) {
	var (
		entry *store.Entry
		err   error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		entry, err = st.GetByID(cmd.Context(), id)
	} else {
		path := ref
		if extracted, ok := validate.ExtractPath(ref); ok {
			path = extracted
		}
		entry, err = st.FindByPath(cmd.Context(), path)
	}
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", ref, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("no cached entry for %q", ref)
	}
	return entry, nil
}
