// Package lastrun persists a single debugging record describing the most
// recent invocation: the probed stream lists of both inputs, the target,
// the rendered ffmpeg command, and the final status. The record is
// overwritten each run and surfaced by "addaudio last".
package lastrun
