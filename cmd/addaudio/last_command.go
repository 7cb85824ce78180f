package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"addaudio/internal/lastrun"
)

func newLastCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the most recent remux invocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := lastrun.Open(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if record == nil {
				fmt.Fprintln(out, "No remux has been recorded yet.")
				return nil
			}

			rows := [][]string{
				{"Run ID", record.RunID},
				{"When", record.CreatedAt.Local().Format(time.RFC1123)},
				{"Status", record.Status},
				{"Primary", record.PrimaryPath},
				{"Secondary", record.SecondaryPath},
				{"Target", record.TargetPath},
			}
			if record.ErrorMessage != "" {
				rows = append(rows, []string{"Error", record.ErrorMessage})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))

			if record.PrimaryStreamsJSON != "" {
				fmt.Fprintf(out, "Primary streams:   %s\n", record.PrimaryStreamsJSON)
			}
			if record.SecondaryStreamsJSON != "" {
				fmt.Fprintf(out, "Secondary streams: %s\n", record.SecondaryStreamsJSON)
			}
			if record.CommandLine != "" {
				fmt.Fprintf(out, "Command: %s\n", record.CommandLine)
			}
			return nil
		},
	}
}
