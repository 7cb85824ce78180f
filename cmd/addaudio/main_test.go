package main

import (
	"fmt"
	"testing"

	"addaudio/internal/media/classify"
	"addaudio/internal/media/mapping"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitFailure},
		{"generic", fmt.Errorf("boom"), exitFailure},
		{"usage", usageErrorf("bad args"), exitUsage},
		{"declined", mapping.ErrConfirmationDeclined, exitDeclined},
		{"wrapped declined", fmt.Errorf("plan: %w", mapping.ErrConfirmationDeclined), exitDeclined},
		{"executor", fmt.Errorf("%w: exit status 1", errExecutor), exitExecutorFailure},
		{"empty input", &classify.EmptyInputError{Path: "a.mkv"}, exitEmptyInput},
		{"no audio", &mapping.NoAudioStreamError{Path: "b.m4a"}, exitNoAudioStream},
		{"too many streams", &mapping.TooManyStreamsError{Path: "a.mkv", StreamCount: 9, Limit: 9}, exitTooManyStreams},
		{"wrapped kind", fmt.Errorf("plan: %w", &mapping.NoAudioStreamError{Path: "b.m4a"}), exitNoAudioStream},
	}

	for _, tc := range cases {
		if got := exitCodeFor(tc.err); got != tc.want {
			t.Fatalf("%s: exitCodeFor = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestKindLabel(t *testing.T) {
	if got := kindLabel(classify.KindAuxiliaryData); got != "Data" {
		t.Fatalf("kindLabel = %q", got)
	}
	if got := kindLabel(classify.KindCoverArt); got != "Cover Art" {
		t.Fatalf("kindLabel = %q", got)
	}
}
