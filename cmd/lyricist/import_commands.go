package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lyricist/internal/lyrics"
	"lyricist/internal/store"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var urlFlag, fileFlag string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Cache lyrics from a local file under a lyrics URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, ctx, urlFlag, fileFlag, false)
		},
	}

	cmd.Flags().StringVarP(&urlFlag, "url", "u", "", "Lyrics page URL identifying the song")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "File containing the lyrics text")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	var urlFlag, fileFlag string

	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Replace the most recently cached entry with lyrics for another URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, ctx, urlFlag, fileFlag, true)
		},
	}

	cmd.Flags().StringVarP(&urlFlag, "url", "u", "", "Lyrics page URL of the correct song")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "File containing the lyrics text")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(cmd *cobra.Command, ctx *commandContext, rawURL, file string, replace bool) error {
	url, err := normalizeLyricsURL(rawURL)
	if err != nil {
		return err
	}
	resolver, err := newFileResolver(url, file)
	if err != nil {
		return err
	}

	return ctx.withStore(cmd, func(st *store.Store) error {
		svc, err := ctx.newService(st, resolver)
		if err != nil {
			return err
		}
		var result lyrics.Result
		if replace {
			result, err = svc.CorrectDetailed(cmd.Context(), url)
		} else {
			result, err = svc.ResolveURLDetailed(cmd.Context(), url)
		}
		if !result.Outcome.Found() {
			if err != nil {
				return fmt.Errorf("store lyrics for %s: %s: %w", url, result.Outcome, err)
			}
			return fmt.Errorf("store lyrics for %s: %s", url, result.Outcome)
		}
		if ctx.jsonOutput() {
			return writeJSON(cmd, result.Entry)
		}
		verb := "Cached"
		if replace {
			verb = "Updated lyrics cache to use"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (id %d)\n", verb, result.Entry.SourceURL, result.Entry.ID)
		return nil
	})
}

func newAmendCommand(ctx *commandContext) *cobra.Command {
	var urlFlag, fileFlag string

	cmd := &cobra.Command{
		Use:   "amend",
		Short: "Re-point the most recent entry at another URL, keeping artist and title",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := normalizeLyricsURL(urlFlag)
			if err != nil {
				return err
			}
			var text string
			if strings.TrimSpace(fileFlag) != "" {
				data, err := os.ReadFile(fileFlag)
				if err != nil {
					return fmt.Errorf("read lyrics file: %w", err)
				}
				text = string(data)
			}

			return ctx.withStore(cmd, func(st *store.Store) error {
				entry, err := st.CorrectMostRecent(cmd.Context(), url, text)
				if errors.Is(err, store.ErrNothingToCorrect) {
					return errors.New("the lyrics cache is empty; nothing to amend")
				}
				if err != nil {
					return fmt.Errorf("amend most recent entry: %w", err)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, entry)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Amended %s (id %d)\n", entry.DisplayTitle(), entry.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&urlFlag, "url", "u", "", "Corrected lyrics page URL")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "File containing corrected lyrics; keeps the current text when omitted")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
