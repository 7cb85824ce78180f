package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errUsage marks argument errors so main can map them to exit code 2.
var errUsage = errors.New("usage")

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "addaudio <primary-file> <secondary-file> <target-file>",
		Short: "Add an audio track to a media file without re-encoding",
		Long: `addaudio remuxes every stream of a primary media file together with the
first audio stream of a secondary file into a new container. Streams are
copied bit for bit; the appended audio track becomes the default audio
track of the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) != 3 {
				return usageErrorf("expected <primary-file> <secondary-file> <target-file>, got %d arguments", len(args))
			}
			opts := muxOptionsFromFlags(cmd)
			return runMux(cmd, ctx, args[0], args[1], args[2], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolP("yes", "y", false, "Answer yes to all confirmation prompts")
	rootCmd.Flags().Bool("overwrite", false, "Replace the target file if it exists")
	rootCmd.Flags().BoolP("verbose", "v", false, "Show ffmpeg output while remuxing")

	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newLastCommand(ctx))
	rootCmd.AddCommand(newErrorsCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
