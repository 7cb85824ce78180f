package main

import "testing"

func TestInfoCommandRendersStreams(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "info", env.primaryPath)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	requireContains(t, out, "Video")
	requireContains(t, out, "h264")
	requireContains(t, out, "2 streams (1 video, 1 audio, 0 subtitle, 0 data, 0 cover art)")
}

func TestLastCommandWithoutRecord(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "last")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	requireContains(t, out, "No remux has been recorded yet.")
}

func TestLastCommandAfterRun(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "", env.primaryPath, env.secondaryPath, env.targetPath); err != nil {
		t.Fatalf("mux: %v", err)
	}

	out, _, err := runCLI(t, env, "", "last")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	requireContains(t, out, "succeeded")
	requireContains(t, out, env.targetPath)
	requireContains(t, out, "-c copy")
}

func TestErrorsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "errors")
	if err != nil {
		t.Fatalf("errors: %v", err)
	}
	requireContains(t, out, "No audio stream")
	requireContains(t, out, "Too many streams")
}
