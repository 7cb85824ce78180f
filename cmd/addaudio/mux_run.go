package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"addaudio/internal/config"
	"addaudio/internal/ffmpeg"
	"addaudio/internal/lastrun"
	"addaudio/internal/logging"
	"addaudio/internal/media/classify"
	"addaudio/internal/media/ffprobe"
	"addaudio/internal/media/mapping"
	"addaudio/internal/preflight"
)

// errExecutor marks remux tool failures so main can map them to a
// dedicated exit code.
var errExecutor = errors.New("remux failed")

const probeTimeout = 2 * time.Minute

type muxOptions struct {
	Yes       bool
	Overwrite bool
	Verbose   bool
}

func muxOptionsFromFlags(cmd *cobra.Command) muxOptions {
	yes, _ := cmd.Flags().GetBool("yes")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return muxOptions{Yes: yes, Overwrite: overwrite, Verbose: verbose}
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// runMux drives the full pipeline: probe both inputs, classify, plan,
// gate on confirmations, preflight, execute the remux, and persist the
// last-run record. Declines and failures leave no target file behind.
func runMux(cmd *cobra.Command, cmdCtx *commandContext, primaryPath, secondaryPath, targetPath string, opts muxOptions) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = logging.WithComponent(logger, "mux")

	if opts.Overwrite {
		cfg.Output.OverwriteExisting = true
	}

	// One invocation at a time per state directory; the last-run record
	// and the target would otherwise race.
	lock := flock.New(filepath.Join(cfg.Paths.StateDir, "addaudio.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another addaudio invocation is already running")
	}
	defer func() { _ = lock.Unlock() }()

	ctx := cmd.Context()
	record := lastrun.NewRecord(primaryPath, secondaryPath, targetPath)

	primary, secondary, err := probeAndClassify(ctx, cfg, primaryPath, secondaryPath, record, logger)
	if err != nil {
		record.Status = lastrun.StatusFailed
		record.ErrorMessage = err.Error()
		persistRecord(ctx, cfg, record, logger)
		return err
	}

	outcome, err := mapping.Build(primary, secondary)
	if err != nil {
		record.Status = lastrun.StatusFailed
		record.ErrorMessage = err.Error()
		persistRecord(ctx, cfg, record, logger)
		return err
	}

	approved := true
	for _, confirmation := range outcome.Confirmations {
		if !confirm(cmd, confirmation.Message, opts.Yes) {
			approved = false
			break
		}
	}

	plan, err := outcome.Resolve(approved)
	if err != nil {
		logger.Info("aborted at confirmation gate")
		record.Status = lastrun.StatusDeclined
		record.ErrorMessage = err.Error()
		persistRecord(ctx, cfg, record, logger)
		return err
	}

	if err := preflight.FirstFailure(preflight.Remux(cfg, primaryPath, secondaryPath, targetPath)); err != nil {
		record.Status = lastrun.StatusFailed
		record.ErrorMessage = err.Error()
		persistRecord(ctx, cfg, record, logger)
		return err
	}

	args := ffmpeg.BuildArgs(ffmpeg.Request{
		Binary:        cfg.FFmpegBinary(),
		Plan:          plan,
		PrimaryPath:   primaryPath,
		SecondaryPath: secondaryPath,
		TargetPath:    targetPath,
		Overwrite:     cfg.Output.OverwriteExisting,
		Verbose:       opts.Verbose,
	})
	record.CommandLine = ffmpeg.CommandLine(args)

	logger.Info("remuxing",
		logging.String("target", targetPath),
		logging.Int("streams", plan.TotalOutputStreams),
		logging.String("added_audio", plan.SecondarySelector.String()),
	)
	logger.Debug("ffmpeg command", logging.String("argv", record.CommandLine))

	if err := ffmpeg.Run(ctx, args, opts.Verbose); err != nil {
		if removeErr := ffmpeg.RemovePartialTarget(targetPath); removeErr != nil {
			logger.Warn("cleanup failed", logging.Error(removeErr))
		}
		record.Status = lastrun.StatusFailed
		record.ErrorMessage = err.Error()
		persistRecord(ctx, cfg, record, logger)
		return fmt.Errorf("%w: %v", errExecutor, err)
	}

	record.Status = lastrun.StatusSucceeded
	persistRecord(ctx, cfg, record, logger)

	logger.Info("done", logging.String("target", targetPath))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d streams, added audio is the default track)\n",
		targetPath, plan.TotalOutputStreams)
	return nil
}

// probeAndClassify inspects both inputs and builds their stream sets.
// The probed lists are stashed on the record even when planning later
// fails, so "addaudio last" always shows what the prober saw.
func probeAndClassify(
	ctx context.Context,
	cfg *config.Config,
	primaryPath, secondaryPath string,
	record *lastrun.Record,
	logger *slog.Logger,
) (*classify.FileStreamSet, *classify.FileStreamSet, error) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	primaryResult, err := ffprobe.Inspect(probeCtx, cfg.FFprobeBinary(), primaryPath)
	if err != nil {
		return nil, nil, err
	}
	secondaryResult, err := ffprobe.Inspect(probeCtx, cfg.FFprobeBinary(), secondaryPath)
	if err != nil {
		return nil, nil, err
	}

	primaryDescriptors := classify.DescriptorsFromProbe(0, primaryResult)
	secondaryDescriptors := classify.DescriptorsFromProbe(1, secondaryResult)
	record.PrimaryStreamsJSON = descriptorsJSON(primaryDescriptors)
	record.SecondaryStreamsJSON = descriptorsJSON(secondaryDescriptors)

	primary, err := classify.Classify(primaryPath, primaryDescriptors)
	if err != nil {
		return nil, nil, err
	}
	secondary, err := classify.Classify(secondaryPath, secondaryDescriptors)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("classified inputs",
		logging.Int("primary_streams", primary.StreamCount()),
		logging.Int("primary_video", primary.VideoCount),
		logging.Int("secondary_streams", secondary.StreamCount()),
		logging.Int("secondary_audio", secondary.AudioCount),
	)

	return primary, secondary, nil
}

type streamView struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Codec   string `json:"codec,omitempty"`
	Default bool   `json:"default,omitempty"`
}

func descriptorsJSON(descriptors []classify.Descriptor) string {
	views := make([]streamView, 0, len(descriptors))
	for _, d := range descriptors {
		views = append(views, streamView{
			Index:   d.StreamIndex,
			Kind:    d.Kind.String(),
			Codec:   d.Codec,
			Default: d.DefaultCandidate,
		})
	}
	payload, err := json.Marshal(views)
	if err != nil {
		return ""
	}
	return string(payload)
}

// persistRecord writes the last-run record on a best-effort basis;
// failures are logged, never fatal.
func persistRecord(ctx context.Context, cfg *config.Config, record *lastrun.Record, logger *slog.Logger) {
	store, err := lastrun.Open(cfg)
	if err != nil {
		logger.Warn("open last-run store", logging.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Save(ctx, record); err != nil {
		logger.Warn("save last-run record", logging.Error(err))
	}
}
