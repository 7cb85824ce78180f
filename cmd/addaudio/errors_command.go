package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newErrorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "errors",
		Short:       "Explain exit codes and common failures",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{
				{strconv.Itoa(exitOK), "Success", "The target file was written."},
				{strconv.Itoa(exitFailure), "Failure", "Probe, config, lock, or preflight error; see the message."},
				{strconv.Itoa(exitUsage), "Usage", "Wrong arguments; run addaudio --help."},
				{strconv.Itoa(exitEmptyInput), "Empty input", "An input file contains no streams at all."},
				{strconv.Itoa(exitNoAudioStream), "No audio stream", "The secondary file has no audio stream to add."},
				{strconv.Itoa(exitTooManyStreams), "Too many streams", "The result would exceed 9 output streams."},
				{strconv.Itoa(exitDeclined), "Declined", "A confirmation prompt was answered no; nothing was written."},
				{strconv.Itoa(exitExecutorFailure), "Remux failed", "ffmpeg exited with an error; the partial target was removed."},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Exit", "Meaning", "Notes"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
