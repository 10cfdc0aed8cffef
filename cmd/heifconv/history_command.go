package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"heifconv/internal/history"
	"heifconv/internal/report"
)

const defaultHistoryLimit = 20

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent conversion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive (got %d)", limit)
			}
			return ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				runs, err := store.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No conversion runs recorded.")
					return nil
				}
				fmt.Fprintln(out, renderRunsTable(runs, time.Now()))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of runs to list")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the files converted by one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := strings.TrimSpace(args[0])
			return ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				run, err := store.GetRun(cmd.Context(), runID)
				if err != nil {
					if errors.Is(err, history.ErrRunNotFound) {
						return fmt.Errorf("run %s not found", runID)
					}
					return err
				}
				entries, err := store.Conversions(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:       %s\n", run.ID)
				fmt.Fprintf(out, "Directory: %s\n", run.InputDir)
				fmt.Fprintf(out, "Format:    %s\n", run.Format)
				fmt.Fprintf(out, "Started:   %s\n", run.StartedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Finished:  %s\n", finishedLabel(run))
				fmt.Fprintf(out, "Result:    %d converted, %d failed\n", run.Converted, run.Failed)
				if len(entries) > 0 {
					fmt.Fprintln(out, renderEntriesTable(entries))
				}
				return nil
			})
		},
	}
}

func (c *commandContext) withHistory(ctx context.Context, fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.History.Enabled {
		return errors.New("history is disabled in the configuration ([history] enabled = false)")
	}
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func renderRunsTable(runs []history.Run, now time.Time) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			run.Format,
			strconv.Itoa(run.Converted),
			strconv.Itoa(run.Failed),
			run.InputDir,
		})
	}
	return report.Table(
		[]string{"Run", "Started", "Format", "Converted", "Failed", "Directory"},
		rows,
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignLeft},
	)
}

func renderEntriesTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		preserved := "-"
		output := "-"
		if entry.Status == history.StatusConverted {
			preserved = fmt.Sprintf("%.2f%%", entry.Preserved)
			output = entry.Output
		}
		rows = append(rows, []string{
			entry.Source,
			output,
			string(entry.Status),
			preserved,
			entry.Duration.Round(time.Millisecond).String(),
			entry.Error,
		})
	}
	return report.Table(
		[]string{"File", "Output", "Status", "Preserved", "Duration", "Error"},
		rows,
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignLeft},
	)
}

func finishedLabel(run history.Run) string {
	if run.FinishedAt.IsZero() {
		return "not finished"
	}
	return run.FinishedAt.Local().Format(time.DateTime)
}
