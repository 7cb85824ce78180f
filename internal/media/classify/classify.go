package classify

import (
	"fmt"
	"strings"
)

// StreamKind partitions container streams into the buckets the mapping
// planner reasons about.
type StreamKind int

const (
	// KindVideo is a playable video track.
	KindVideo StreamKind = iota
	// KindAudio is an audio track.
	KindAudio
	// KindSubtitle is a subtitle track.
	KindSubtitle
	// KindAuxiliaryData is the catch-all for non-AV payload such as
	// embedded text or data tracks.
	KindAuxiliaryData
	// KindCoverArt is a still image stored as a video stream (an
	// attached picture). It never counts as a real video track.
	KindCoverArt
)

// String returns the lowercase label for the kind.
func (k StreamKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	case KindAuxiliaryData:
		return "data"
	case KindCoverArt:
		return "cover art"
	default:
		return "unknown"
	}
}

// Descriptor is one media stream as reported by the prober.
type Descriptor struct {
	// FileOrdinal is the input file the stream belongs to: 0 for the
	// primary file, 1 for the secondary file.
	FileOrdinal int
	// StreamIndex is the zero-based position within the file's stream
	// list, in probe order. This is the only identifier ffmpeg
	// understands, so it is preserved verbatim.
	StreamIndex int
	Kind        StreamKind
	Codec       string
	// DefaultCandidate records whether the source container marks the
	// stream default. Informational only; the planner re-derives
	// defaults instead of trusting it.
	DefaultCandidate bool
}

// FileStreamSet is the ordered stream list of one input file plus
// derived counts. It is immutable after construction.
type FileStreamSet struct {
	Path    string
	Streams []Descriptor

	// VideoCount excludes cover art.
	VideoCount     int
	AudioCount     int
	SubtitleCount  int
	AuxiliaryCount int
	CoverArtCount  int
}

// StreamCount returns the total number of streams in the set.
func (s *FileStreamSet) StreamCount() int {
	return len(s.Streams)
}

// FirstAudioIndex returns the probe-order index of the first audio
// stream, or -1 when the set has none.
func (s *FileStreamSet) FirstAudioIndex() int {
	for _, d := range s.Streams {
		if d.Kind == KindAudio {
			return d.StreamIndex
		}
	}
	return -1
}

// FirstVideoIndex returns the probe-order index of the first real video
// stream (cover art excluded), or -1 when the set has none.
func (s *FileStreamSet) FirstVideoIndex() int {
	for _, d := range s.Streams {
		if d.Kind == KindVideo {
			return d.StreamIndex
		}
	}
	return -1
}

// stillImageCodecs are video-kind codecs that denote an attached
// picture rather than a playable video track.
var stillImageCodecs = map[string]struct{}{
	"mjpeg":    {},
	"png":      {},
	"bmp":      {},
	"gif":      {},
	"tiff":     {},
	"webp":     {},
	"jpegxl":   {},
	"jpeg2000": {},
}

// IsStillImageCodec reports whether a video-kind codec denotes cover art.
func IsStillImageCodec(codec string) bool {
	_, ok := stillImageCodecs[strings.ToLower(strings.TrimSpace(codec))]
	return ok
}

// Classify builds a FileStreamSet from an ordered descriptor list. It is
// a pure function: no I/O, no mutation of the input. Video streams whose
// codec is a still-image codec are reclassified as cover art so they do
// not count toward real-video checks.
//
// An empty stream list fails with *EmptyInputError: a file must report
// at least one stream to be classifiable.
func Classify(path string, streams []Descriptor) (*FileStreamSet, error) {
	if len(streams) == 0 {
		return nil, &EmptyInputError{Path: path}
	}

	set := &FileStreamSet{
		Path:    path,
		Streams: make([]Descriptor, len(streams)),
	}
	copy(set.Streams, streams)

	for i := range set.Streams {
		d := &set.Streams[i]
		if d.Kind == KindVideo && IsStillImageCodec(d.Codec) {
			d.Kind = KindCoverArt
		}
		switch d.Kind {
		case KindVideo:
			set.VideoCount++
		case KindAudio:
			set.AudioCount++
		case KindSubtitle:
			set.SubtitleCount++
		case KindCoverArt:
			set.CoverArtCount++
		default:
			set.AuxiliaryCount++
		}
	}

	return set, nil
}

// EmptyInputError reports a file whose prober returned no streams.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: file reports no streams", e.Path)
}

// Kind classifies the error for CLI status mapping.
func (e *EmptyInputError) Kind() string { return "empty_input" }
