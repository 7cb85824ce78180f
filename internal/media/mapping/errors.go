package mapping

import (
	"errors"
	"fmt"
)

// ErrConfirmationDeclined is returned when the operator answers no at a
// confirmation gate. It is a clean cancellation, not a fault: no plan is
// emitted and no remux runs.
var ErrConfirmationDeclined = errors.New("confirmation declined")

// NoAudioStreamError reports a secondary file without any audio stream.
type NoAudioStreamError struct {
	Path string
}

func (e *NoAudioStreamError) Error() string {
	return fmt.Sprintf("%s: no audio stream found", e.Path)
}

// Kind classifies the error for CLI status mapping.
func (e *NoAudioStreamError) Kind() string { return "no_audio_stream" }

// TooManyStreamsError reports that the output would exceed the supported
// stream ceiling. The plan is never truncated to fit.
type TooManyStreamsError struct {
	Path        string
	StreamCount int
	Limit       int
}

func (e *TooManyStreamsError) Error() string {
	return fmt.Sprintf("%s: output would contain %d streams, the supported maximum is %d",
		e.Path, e.StreamCount, e.Limit)
}

// Kind classifies the error for CLI status mapping.
func (e *TooManyStreamsError) Kind() string { return "too_many_streams" }
