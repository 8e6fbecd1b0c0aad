package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"lyricist/internal/store"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const maxKeywordWidth = 48

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeEntries prints entries as a table on a terminal and as tab-separated
// rows otherwise, so output stays greppable in pipelines.
func writeEntries(w io.Writer, entries []store.Entry) {
	headers := []string{"ID", "Artist", "Title", "Path", "Updated"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Artist,
			e.Title,
			e.Path,
			formatMillis(e.UpdatedAt),
		})
	}
	if isTerminal(w) {
		fmt.Fprintln(w, renderTable(headers, rows, []columnAlignment{alignRight}))
		return
	}
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

func writeEntryDetail(w io.Writer, e *store.Entry, withLyrics bool) {
	fmt.Fprintf(w, "ID:         %d\n", e.ID)
	fmt.Fprintf(w, "Song:       %s\n", e.DisplayTitle())
	fmt.Fprintf(w, "Path:       %s\n", e.Path)
	fmt.Fprintf(w, "Source:     %s\n", e.SourceURL)
	fmt.Fprintf(w, "Keywords:   %s\n", truncate(e.Keywords, maxKeywordWidth))
	fmt.Fprintf(w, "Created:    %s\n", formatMillis(e.CreatedAt))
	fmt.Fprintf(w, "Updated:    %s\n", formatMillis(e.UpdatedAt))
	if withLyrics {
		fmt.Fprintln(w)
		fmt.Fprintln(w, e.Lyrics)
	}
}

func formatMillis(millis int64) string {
	if millis <= 0 {
		return "-"
	}
	return time.UnixMilli(millis).Local().Format("2006-01-02 15:04:05")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
