package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"addaudio/internal/config"
)

// Result captures the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckBinary verifies that an external tool resolves on PATH (or is an
// absolute path to an executable).
func CheckBinary(name, command string) Result {
	resolved, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found (%v)", command, err)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckDirectoryAccess verifies that the directory exists and is writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding dir has at least the
// required number of bytes available. A stream-copy remux needs roughly
// the combined size of its inputs.
func CheckFreeSpace(name, dir string, required int64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", dir, err)}
	}
	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < required {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("%s (%d bytes free, %d required)", dir, available, required),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes free)", dir, available)}
}

// CheckExtensionMatch verifies the target shares the primary file's
// container extension; a remux cannot change container semantics safely
// without one.
func CheckExtensionMatch(primaryPath, targetPath string) Result {
	const name = "Target extension"
	primaryExt := strings.ToLower(filepath.Ext(primaryPath))
	targetExt := strings.ToLower(filepath.Ext(targetPath))
	if primaryExt == "" || primaryExt != targetExt {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("target %q must use the primary file's extension %q", targetExt, primaryExt),
		}
	}
	return Result{Name: name, Passed: true, Detail: primaryExt}
}

// CheckTargetWritable verifies the target does not already exist unless
// overwriting is allowed.
func CheckTargetWritable(targetPath string, overwrite bool) Result {
	const name = "Target file"
	if _, err := os.Stat(targetPath); err == nil {
		if !overwrite {
			return Result{Name: name, Detail: fmt.Sprintf("%s exists; enable output.overwrite_existing or pass --overwrite", targetPath)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be overwritten)", targetPath)}
	} else if !os.IsNotExist(err) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", targetPath, err)}
	}
	return Result{Name: name, Passed: true, Detail: targetPath}
}

// Remux runs every check a remux invocation depends on.
func Remux(cfg *config.Config, primaryPath, secondaryPath, targetPath string) []Result {
	results := []Result{
		CheckBinary("FFmpeg", cfg.FFmpegBinary()),
		CheckBinary("FFprobe", cfg.FFprobeBinary()),
		CheckExtensionMatch(primaryPath, targetPath),
		CheckTargetWritable(targetPath, cfg.Output.OverwriteExisting),
	}

	targetDir := filepath.Dir(targetPath)
	results = append(results, CheckDirectoryAccess("Target directory", targetDir))

	if required := combinedSize(primaryPath, secondaryPath); required > 0 {
		results = append(results, CheckFreeSpace("Free space", targetDir, required))
	}

	return results
}

// FirstFailure returns an error describing the first failed check, or nil.
func FirstFailure(results []Result) error {
	for _, result := range results {
		if !result.Passed {
			return fmt.Errorf("preflight: %s: %s", result.Name, result.Detail)
		}
	}
	return nil
}

func combinedSize(paths ...string) int64 {
	var total int64
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return 0
		}
		total += info.Size()
	}
	return total
}
