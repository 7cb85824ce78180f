// Package main hosts the addaudio CLI entrypoint and command graph.
//
// The Cobra-based command tree wires terminal invocations into the remux
// pipeline: probing inputs with ffprobe, classifying streams, planning the
// output mapping, gating anomalies behind confirmation prompts, and running
// ffmpeg in stream-copy mode. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
