// Package ffmpeg renders a mapping plan into an ffmpeg stream-copy
// invocation and executes it. The builder is deterministic and free of
// I/O so the exact command can be inspected, logged, and persisted
// before anything runs.
package ffmpeg
