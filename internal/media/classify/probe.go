package classify

import (
	"strings"

	"addaudio/internal/media/ffprobe"
)

// DescriptorsFromProbe converts an ffprobe result into the ordered
// descriptor list the classifier consumes. Stream order is preserved
// from the probe report. Video streams flagged attached_pic are marked
// cover art immediately; codec-based reclassification still applies in
// Classify for containers that omit the flag.
func DescriptorsFromProbe(fileOrdinal int, result ffprobe.Result) []Descriptor {
	descriptors := make([]Descriptor, 0, len(result.Streams))
	for _, stream := range result.Streams {
		kind := kindForCodecType(stream.CodecType)
		if kind == KindVideo && stream.Disposition.AttachedPic != 0 {
			kind = KindCoverArt
		}
		descriptors = append(descriptors, Descriptor{
			FileOrdinal:      fileOrdinal,
			StreamIndex:      stream.Index,
			Kind:             kind,
			Codec:            stream.CodecName,
			DefaultCandidate: stream.Disposition.Default != 0,
		})
	}
	return descriptors
}

func kindForCodecType(codecType string) StreamKind {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitle":
		return KindSubtitle
	default:
		return KindAuxiliaryData
	}
}
