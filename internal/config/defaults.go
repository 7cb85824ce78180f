package config

const (
	defaultStateDir  = "~/.local/share/addaudio"
	defaultLogDir    = "~/.local/share/addaudio/logs"
	defaultFFmpeg    = "ffmpeg"
	defaultFFprobe   = "ffprobe"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Output: Output{
			OverwriteExisting: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
