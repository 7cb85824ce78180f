package ffmpeg

import (
	"fmt"
	"strconv"

	"addaudio/internal/media/classify"
	"addaudio/internal/media/mapping"
)

// Request carries everything needed to render an ffmpeg remux invocation.
type Request struct {
	Binary        string
	Plan          *mapping.Plan
	PrimaryPath   string
	SecondaryPath string
	TargetPath    string
	Overwrite     bool
	Verbose       bool
}

// BuildArgs renders the complete ffmpeg argument vector for a remux.
// Every stream is copied (never re-encoded); the plan's selectors become
// explicit -map directives in output order, and every audio/video output
// position gets an explicit disposition directive so the target never
// carries conflicting default flags.
func BuildArgs(req Request) []string {
	binary := req.Binary
	if binary == "" {
		binary = "ffmpeg"
	}

	args := make([]string, 0, 32)
	args = append(args, binary, "-hide_banner", "-nostdin")

	if req.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}

	if req.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	args = append(args, "-i", req.PrimaryPath, "-i", req.SecondaryPath)

	selectors := req.Plan.OutputSelectors()
	for _, sel := range selectors {
		args = append(args, "-map", sel.String())
	}

	args = append(args, "-c", "copy")
	args = append(args, dispositionArgs(req.Plan, selectors)...)
	args = append(args, "-map_metadata", "0", "-map_chapters", "0")
	args = append(args, req.TargetPath)

	return args
}

// dispositionArgs emits one -disposition directive per audio/video
// output stream. ffmpeg addresses dispositions by per-type ordinal, so
// the output positions are walked once counting video and audio ordinals
// as they appear. Cover art keeps its attached_pic flag, which also
// clears default.
func dispositionArgs(plan *mapping.Plan, selectors []mapping.Selector) []string {
	args := make([]string, 0, len(selectors)*2)
	videoOrdinal := 0
	audioOrdinal := 0

	for position, sel := range selectors {
		switch sel.Kind {
		case classify.KindVideo:
			value := "0"
			if position == plan.DefaultVideoOutputIndex {
				value = "default"
			}
			args = append(args, "-disposition:v:"+strconv.Itoa(videoOrdinal), value)
			videoOrdinal++
		case classify.KindCoverArt:
			args = append(args, "-disposition:v:"+strconv.Itoa(videoOrdinal), "attached_pic")
			videoOrdinal++
		case classify.KindAudio:
			value := "0"
			if position == plan.DefaultAudioOutputIndex {
				value = "default"
			}
			args = append(args, "-disposition:a:"+strconv.Itoa(audioOrdinal), value)
			audioOrdinal++
		}
	}

	return args
}

// CommandLine renders the argument vector as a shell-like string for
// logging and the last-run record. Arguments containing whitespace are
// quoted.
func CommandLine(args []string) string {
	out := ""
	for i, arg := range args {
		if i > 0 {
			out += " "
		}
		if needsShellQuote(arg) {
			out += fmt.Sprintf("%q", arg)
		} else {
			out += arg
		}
	}
	return out
}

func needsShellQuote(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == '\'' {
			return true
		}
	}
	return false
}
