package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Run executes the rendered ffmpeg invocation. When verbose is set,
// stderr is tee'd to os.Stderr in real time; otherwise it is captured
// silently and folded into the returned error on failure.
func Run(ctx context.Context, args []string, verbose bool) error {
	if len(args) == 0 {
		return errors.New("ffmpeg run: empty argument vector")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderrBuf.String())
		if detail != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, lastLines(detail, 5))
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// RemovePartialTarget deletes a partially written target file after a
// failed remux. A missing file is not an error.
func RemovePartialTarget(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove partial target %s: %w", path, err)
	}
	return nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
