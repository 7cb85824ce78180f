package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"addaudio/internal/media/mapping"
)

// Exit codes, documented by "addaudio errors".
const (
	exitOK              = 0
	exitFailure         = 1
	exitUsage           = 2
	exitEmptyInput      = 3
	exitNoAudioStream   = 4
	exitTooManyStreams  = 5
	exitDeclined        = 6
	exitExecutorFailure = 7
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCodeFor(err))
	}
}

// errorKinder is implemented by the typed pipeline errors.
type errorKinder interface {
	Kind() string
}

func exitCodeFor(err error) int {
	if errors.Is(err, mapping.ErrConfirmationDeclined) {
		return exitDeclined
	}
	if errors.Is(err, errUsage) {
		return exitUsage
	}
	if errors.Is(err, errExecutor) {
		return exitExecutorFailure
	}

	var kinder errorKinder
	if errors.As(err, &kinder) {
		switch kinder.Kind() {
		case "empty_input":
			return exitEmptyInput
		case "no_audio_stream":
			return exitNoAudioStream
		case "too_many_streams":
			return exitTooManyStreams
		}
	}
	return exitFailure
}
