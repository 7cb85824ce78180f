package classify

import (
	"errors"
	"testing"

	"addaudio/internal/media/ffprobe"
)

func descriptors(kinds ...StreamKind) []Descriptor {
	out := make([]Descriptor, len(kinds))
	for i, kind := range kinds {
		out[i] = Descriptor{FileOrdinal: 0, StreamIndex: i, Kind: kind}
	}
	return out
}

func TestClassifyCountsByKind(t *testing.T) {
	set, err := Classify("movie.mkv", descriptors(KindVideo, KindAudio, KindAudio, KindSubtitle, KindAuxiliaryData))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if set.VideoCount != 1 || set.AudioCount != 2 || set.SubtitleCount != 1 || set.AuxiliaryCount != 1 {
		t.Fatalf("unexpected counts: %+v", set)
	}
	if set.StreamCount() != 5 {
		t.Fatalf("StreamCount: got %d, want 5", set.StreamCount())
	}
}

func TestClassifyReclassifiesStillImageVideoAsCoverArt(t *testing.T) {
	streams := []Descriptor{
		{StreamIndex: 0, Kind: KindVideo, Codec: "h264"},
		{StreamIndex: 1, Kind: KindVideo, Codec: "mjpeg"},
		{StreamIndex: 2, Kind: KindAudio, Codec: "aac"},
	}
	set, err := Classify("movie.mkv", streams)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if set.VideoCount != 1 {
		t.Fatalf("cover art counted as real video: %+v", set)
	}
	if set.CoverArtCount != 1 {
		t.Fatalf("expected 1 cover art stream, got %d", set.CoverArtCount)
	}
	if set.Streams[1].Kind != KindCoverArt {
		t.Fatalf("stream 1 kind: got %v", set.Streams[1].Kind)
	}
	// Input must not be mutated.
	if streams[1].Kind != KindVideo {
		t.Fatal("Classify mutated its input")
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	_, err := Classify("empty.m4a", nil)
	var emptyErr *EmptyInputError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected *EmptyInputError, got %v", err)
	}
	if emptyErr.Path != "empty.m4a" {
		t.Fatalf("error should name the file: %v", emptyErr)
	}
	if emptyErr.Kind() != "empty_input" {
		t.Fatalf("unexpected kind: %s", emptyErr.Kind())
	}
}

func TestFirstAudioIndexUsesProbeOrder(t *testing.T) {
	set, err := Classify("dub.mka", []Descriptor{
		{StreamIndex: 0, Kind: KindVideo, Codec: "png"},
		{StreamIndex: 1, Kind: KindAudio, Codec: "flac"},
		{StreamIndex: 2, Kind: KindAudio, Codec: "aac"},
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := set.FirstAudioIndex(); got != 1 {
		t.Fatalf("FirstAudioIndex: got %d, want 1", got)
	}
	if got := set.FirstVideoIndex(); got != -1 {
		t.Fatalf("FirstVideoIndex with only cover art: got %d, want -1", got)
	}
}

func TestDescriptorsFromProbe(t *testing.T) {
	result := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 0, CodecType: "video", CodecName: "h264", Disposition: ffprobe.Disposition{Default: 1}},
			{Index: 1, CodecType: "audio", CodecName: "dts"},
			{Index: 2, CodecType: "video", CodecName: "h264", Disposition: ffprobe.Disposition{AttachedPic: 1}},
			{Index: 3, CodecType: "attachment", CodecName: "ttf"},
		},
	}

	descriptors := DescriptorsFromProbe(1, result)
	if len(descriptors) != 4 {
		t.Fatalf("expected 4 descriptors, got %d", len(descriptors))
	}
	for i, d := range descriptors {
		if d.FileOrdinal != 1 {
			t.Fatalf("descriptor %d file ordinal: got %d", i, d.FileOrdinal)
		}
		if d.StreamIndex != i {
			t.Fatalf("descriptor %d stream index: got %d", i, d.StreamIndex)
		}
	}
	if !descriptors[0].DefaultCandidate {
		t.Fatal("stream 0 should be a default candidate")
	}
	if descriptors[2].Kind != KindCoverArt {
		t.Fatalf("attached pic should map to cover art, got %v", descriptors[2].Kind)
	}
	if descriptors[3].Kind != KindAuxiliaryData {
		t.Fatalf("attachment should map to auxiliary data, got %v", descriptors[3].Kind)
	}
}

func TestIsStillImageCodec(t *testing.T) {
	for _, codec := range []string{"mjpeg", "PNG", " webp "} {
		if !IsStillImageCodec(codec) {
			t.Fatalf("%q should be a still-image codec", codec)
		}
	}
	for _, codec := range []string{"h264", "hevc", "av1", ""} {
		if IsStillImageCodec(codec) {
			t.Fatalf("%q should not be a still-image codec", codec)
		}
	}
}
