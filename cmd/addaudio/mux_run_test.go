package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"addaudio/internal/config"
	"addaudio/internal/lastrun"
	"addaudio/internal/media/mapping"
)

func TestMuxHappyPath(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", env.primaryPath, env.secondaryPath, env.targetPath)
	if err != nil {
		t.Fatalf("mux: %v", err)
	}
	requireContains(t, out, "Wrote "+env.targetPath)

	if _, err := os.Stat(env.targetPath); err != nil {
		t.Fatalf("expected target file: %v", err)
	}

	record := loadRecord(t, env)
	if record.Status != lastrun.StatusSucceeded {
		t.Fatalf("status = %q, want %q", record.Status, lastrun.StatusSucceeded)
	}
	if record.CommandLine == "" {
		t.Fatal("expected command line on record")
	}
	requireContains(t, record.CommandLine, "-c copy")
	requireContains(t, record.SecondaryStreamsJSON, `"kind":"audio"`)
}

func TestMuxDeclinesMultipleSecondaryAudio(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "n\n", env.primaryPath, env.dualPath, env.targetPath)
	if !errors.Is(err, mapping.ErrConfirmationDeclined) {
		t.Fatalf("err = %v, want ErrConfirmationDeclined", err)
	}
	if got := exitCodeFor(err); got != exitDeclined {
		t.Fatalf("exit = %d, want %d", got, exitDeclined)
	}
	requireContains(t, out, "WARNING")

	if _, err := os.Stat(env.targetPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("target must not exist after decline, stat: %v", err)
	}
	if record := loadRecord(t, env); record.Status != lastrun.StatusDeclined {
		t.Fatalf("status = %q, want %q", record.Status, lastrun.StatusDeclined)
	}
}

func TestMuxYesApprovesPrompts(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "--yes", env.primaryPath, env.dualPath, env.targetPath)
	if err != nil {
		t.Fatalf("mux --yes: %v", err)
	}
	requireContains(t, out, "Continuing (--yes).")

	if _, err := os.Stat(env.targetPath); err != nil {
		t.Fatalf("expected target file: %v", err)
	}
}

func TestMuxPromptAccepted(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "y\n", env.primaryPath, env.dualPath, env.targetPath)
	if err != nil {
		t.Fatalf("mux with approval: %v", err)
	}
	if _, err := os.Stat(env.targetPath); err != nil {
		t.Fatalf("expected target file: %v", err)
	}
}

func TestMuxNoAudioStream(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "", "--yes", env.primaryPath, env.noAudioPath, env.targetPath)
	var noAudio *mapping.NoAudioStreamError
	if !errors.As(err, &noAudio) {
		t.Fatalf("err = %v, want NoAudioStreamError", err)
	}
	if got := exitCodeFor(err); got != exitNoAudioStream {
		t.Fatalf("exit = %d, want %d", got, exitNoAudioStream)
	}
	if record := loadRecord(t, env); record.Status != lastrun.StatusFailed {
		t.Fatalf("status = %q, want %q", record.Status, lastrun.StatusFailed)
	}
}

func TestMuxUsageError(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "", env.primaryPath, env.secondaryPath)
	if !errors.Is(err, errUsage) {
		t.Fatalf("err = %v, want usage error", err)
	}
	if got := exitCodeFor(err); got != exitUsage {
		t.Fatalf("exit = %d, want %d", got, exitUsage)
	}
}

func TestMuxRefusesExistingTarget(t *testing.T) {
	env := setupCLITestEnv(t)

	if err := os.WriteFile(env.targetPath, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed target: %v", err)
	}

	_, _, err := runCLI(t, env, "", env.primaryPath, env.secondaryPath, env.targetPath)
	if err == nil {
		t.Fatal("expected preflight failure for existing target")
	}
	requireContains(t, err.Error(), "preflight")

	if _, err := runCLIErr(t, env, "--overwrite", env.primaryPath, env.secondaryPath, env.targetPath); err != nil {
		t.Fatalf("mux --overwrite: %v", err)
	}
}

func TestMuxRejectsExtensionMismatch(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "", env.primaryPath, env.secondaryPath, env.targetPath+".mp4")
	if err == nil {
		t.Fatal("expected extension mismatch failure")
	}
	requireContains(t, err.Error(), "extension")
}

func runCLIErr(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLI(t, env, "", args...)
	return out, err
}

func loadRecord(t *testing.T, env *cliTestEnv) *lastrun.Record {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.StateDir = env.stateDir
	cfg.Paths.LogDir = filepath.Join(env.baseDir, "logs")
	store, err := lastrun.Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	record, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record == nil {
		t.Fatal("expected a last-run record")
	}
	return record
}
