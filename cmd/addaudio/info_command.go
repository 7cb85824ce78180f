package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"addaudio/internal/media/classify"
	"addaudio/internal/media/ffprobe"
)

var kindTitle = cases.Title(language.English)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the classified streams of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := args[0]
			probeCtx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
			defer cancel()

			result, err := ffprobe.Inspect(probeCtx, cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}

			set, err := classify.Classify(path, classify.DescriptorsFromProbe(0, result))
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(set.Streams))
			for _, stream := range set.Streams {
				rows = append(rows, []string{
					strconv.Itoa(stream.StreamIndex),
					kindLabel(stream.Kind),
					stream.Codec,
					yesNo(stream.DefaultCandidate),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Index", "Kind", "Codec", "Default"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%s: %d streams (%d video, %d audio, %d subtitle, %d data, %d cover art)\n",
				path, set.StreamCount(), set.VideoCount, set.AudioCount,
				set.SubtitleCount, set.AuxiliaryCount, set.CoverArtCount)
			return nil
		},
	}
}

func kindLabel(kind classify.StreamKind) string {
	return kindTitle.String(kind.String())
}
