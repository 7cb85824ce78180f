package mapping

import (
	"fmt"

	"addaudio/internal/media/classify"
)

// MaxOutputStreams is the ceiling on streams in the produced container.
const MaxOutputStreams = 9

// Selector references one elementary stream by input file ordinal and
// probe-order stream index, the only addressing ffmpeg understands.
type Selector struct {
	FileOrdinal int
	StreamIndex int
	Kind        classify.StreamKind
}

func (s Selector) String() string {
	return fmt.Sprintf("%d:%d", s.FileOrdinal, s.StreamIndex)
}

// Plan is the ordered remux plan: every stream of the primary file in
// original order, followed by exactly one audio stream from the
// secondary file. A Plan is never modified after Build returns it.
type Plan struct {
	PrimarySelectors  []Selector
	SecondarySelector Selector
	// TotalOutputStreams is len(PrimarySelectors) + 1.
	TotalOutputStreams int
	// DefaultAudioOutputIndex is the output position flagged as the
	// default audio track. It is always the appended secondary stream,
	// i.e. the last output position.
	DefaultAudioOutputIndex int
	// DefaultVideoOutputIndex is the output position of the primary
	// file's first real video stream, or -1 when it has none.
	DefaultVideoOutputIndex int
}

// OutputSelectors returns all selectors in output order: the primary
// file's streams followed by the secondary audio stream.
func (p *Plan) OutputSelectors() []Selector {
	out := make([]Selector, 0, len(p.PrimarySelectors)+1)
	out = append(out, p.PrimarySelectors...)
	out = append(out, p.SecondarySelector)
	return out
}

// Confirmation reasons surfaced by Build.
const (
	ReasonPrimaryVideoCount      = "primary_video_count"
	ReasonMultipleSecondaryAudio = "secondary_multiple_audio"
)

// Confirmation describes an anomaly that requires the operator's
// explicit go-ahead. Message states the anomaly and the action that
// will be taken, so declining is an informed choice.
type Confirmation struct {
	Reason  string
	Message string
}

// Outcome is the suspended result of planning. The plan is already
// computed; confirmations only gate whether to proceed, never what the
// plan contains. Callers answer via Resolve.
type Outcome struct {
	plan          *Plan
	Confirmations []Confirmation
}

// NeedsConfirmation reports whether the caller must obtain operator
// approval before using the plan.
func (o *Outcome) NeedsConfirmation() bool {
	return len(o.Confirmations) > 0
}

// Resolve completes the planning exchange. When no confirmations are
// pending the plan is returned regardless of approved. Declining a
// pending confirmation yields ErrConfirmationDeclined and no plan.
func (o *Outcome) Resolve(approved bool) (*Plan, error) {
	if len(o.Confirmations) > 0 && !approved {
		return nil, ErrConfirmationDeclined
	}
	return o.plan, nil
}

// Build computes the remux plan for a primary and secondary stream set.
//
// Policy:
//   - every primary stream is included, in probe order, unconditionally
//   - the secondary file contributes its first audio stream by probe
//     order; the selector keeps the true probe index, never a re-based
//     audio ordinal
//   - the appended audio stream becomes the default audio track; the
//     primary file's first real video stream becomes the default video
//     track; all other default flags are cleared downstream
//
// Fatal conditions (no confirmation offered): more than MaxOutputStreams
// output streams, or a secondary file without any audio stream.
// Anomalous-but-continuable conditions (primary real-video count != 1,
// secondary audio count > 1) surface as confirmations on the Outcome.
func Build(primary, secondary *classify.FileStreamSet) (*Outcome, error) {
	total := primary.StreamCount() + 1
	if total > MaxOutputStreams {
		return nil, &TooManyStreamsError{
			Path:        primary.Path,
			StreamCount: total,
			Limit:       MaxOutputStreams,
		}
	}

	secondarySelector, err := selectSecondaryAudio(secondary)
	if err != nil {
		return nil, err
	}

	primarySelectors := make([]Selector, 0, primary.StreamCount())
	defaultVideo := -1
	for position, d := range primary.Streams {
		primarySelectors = append(primarySelectors, Selector{
			FileOrdinal: 0,
			StreamIndex: d.StreamIndex,
			Kind:        d.Kind,
		})
		if defaultVideo < 0 && d.Kind == classify.KindVideo {
			defaultVideo = position
		}
	}

	plan := &Plan{
		PrimarySelectors:        primarySelectors,
		SecondarySelector:       secondarySelector,
		TotalOutputStreams:      total,
		DefaultAudioOutputIndex: total - 1,
		DefaultVideoOutputIndex: defaultVideo,
	}

	outcome := &Outcome{plan: plan}
	if primary.VideoCount != 1 {
		outcome.Confirmations = append(outcome.Confirmations, Confirmation{
			Reason:  ReasonPrimaryVideoCount,
			Message: primaryVideoMessage(primary),
		})
	}
	if secondary.AudioCount > 1 {
		outcome.Confirmations = append(outcome.Confirmations, Confirmation{
			Reason: ReasonMultipleSecondaryAudio,
			Message: fmt.Sprintf(
				"%s: %d audio streams found; the first (stream %d) will be used",
				secondary.Path, secondary.AudioCount, secondarySelector.StreamIndex,
			),
		})
	}

	return outcome, nil
}

// selectSecondaryAudio picks the stream the secondary file contributes.
// A single-stream file is selected directly; otherwise the first audio
// stream in probe order wins. The upstream pipeline should already have
// rejected audio-less files, but the check stays fatal here rather than
// assumed.
func selectSecondaryAudio(secondary *classify.FileStreamSet) (Selector, error) {
	if secondary.StreamCount() == 1 {
		only := secondary.Streams[0]
		if only.Kind != classify.KindAudio {
			return Selector{}, &NoAudioStreamError{Path: secondary.Path}
		}
		return Selector{FileOrdinal: 1, StreamIndex: only.StreamIndex, Kind: only.Kind}, nil
	}

	for _, d := range secondary.Streams {
		if d.Kind == classify.KindAudio {
			return Selector{FileOrdinal: 1, StreamIndex: d.StreamIndex, Kind: d.Kind}, nil
		}
	}
	return Selector{}, &NoAudioStreamError{Path: secondary.Path}
}

func primaryVideoMessage(primary *classify.FileStreamSet) string {
	if primary.VideoCount == 0 {
		return fmt.Sprintf("%s: no real video stream found; all %d streams will still be carried over",
			primary.Path, primary.StreamCount())
	}
	return fmt.Sprintf("%s: %d real video streams found; all %d streams will still be carried over",
		primary.Path, primary.VideoCount, primary.StreamCount())
}
