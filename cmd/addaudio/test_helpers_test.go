package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"addaudio/internal/testsupport"
)

type cliTestEnv struct {
	baseDir       string
	configPath    string
	stateDir      string
	primaryPath   string
	secondaryPath string
	dualPath      string
	noAudioPath   string
	targetPath    string
}

// ffprobe stub keys its canned JSON off the probed filename so one
// script can serve every fixture in the environment.
const ffprobeScript = `#!/bin/sh
for arg; do last="$arg"; done
case "$last" in
*dual*)
cat <<'JSON'
{"streams":[
  {"index":0,"codec_type":"audio","codec_name":"aac"},
  {"index":1,"codec_type":"audio","codec_name":"ac3"}
],"format":{"nb_streams":2}}
JSON
;;
*noaudio*)
cat <<'JSON'
{"streams":[
  {"index":0,"codec_type":"video","codec_name":"h264"},
  {"index":1,"codec_type":"subtitle","codec_name":"subrip"}
],"format":{"nb_streams":2}}
JSON
;;
*secondary*)
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"audio","codec_name":"aac"}],"format":{"nb_streams":1}}
JSON
;;
*)
cat <<'JSON'
{"streams":[
  {"index":0,"codec_type":"video","codec_name":"h264","disposition":{"default":1}},
  {"index":1,"codec_type":"audio","codec_name":"ac3","disposition":{"default":1}}
],"format":{"nb_streams":2}}
JSON
;;
esac
`

const ffmpegScript = `#!/bin/sh
for arg; do last="$arg"; done
: > "$last"
exit 0
`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	writeScript(t, filepath.Join(binDir, "ffprobe"), ffprobeScript)
	writeScript(t, filepath.Join(binDir, "ffmpeg"), ffmpegScript)

	env := &cliTestEnv{
		baseDir:       base,
		stateDir:      filepath.Join(base, "state"),
		primaryPath:   filepath.Join(base, "media", "primary.mkv"),
		secondaryPath: filepath.Join(base, "media", "secondary.m4a"),
		dualPath:      filepath.Join(base, "media", "dual.mka"),
		noAudioPath:   filepath.Join(base, "media", "noaudio.mkv"),
		targetPath:    filepath.Join(base, "media", "combined.mkv"),
	}

	testsupport.WriteFile(t, env.primaryPath, 4096)
	testsupport.WriteFile(t, env.secondaryPath, 1024)
	testsupport.WriteFile(t, env.dualPath, 1024)
	testsupport.WriteFile(t, env.noAudioPath, 1024)

	env.configPath = filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
state_dir = %q
log_dir = %q

[tools]
ffmpeg = %q
ffprobe = %q

[logging]
level = "error"
`,
		env.stateDir,
		filepath.Join(base, "logs"),
		filepath.Join(binDir, "ffmpeg"),
		filepath.Join(binDir, "ffprobe"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return env
}

func writeScript(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
