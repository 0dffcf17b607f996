// Package fftools locates the ffmpeg and ffprobe executables.
package fftools

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg cannot be located.
	ErrFFmpegNotFound = errors.New("fftools: ffmpeg not found")

	// ErrFFprobeNotFound is returned when ffprobe cannot be located.
	ErrFFprobeNotFound = errors.New("fftools: ffprobe not found")
)

var (
	mu               sync.RWMutex
	customFFmpegPath string
)

// SetFFmpegPath overrides discovery with an explicit ffmpeg binary.
// ffprobe is then looked up next to it first.
func SetFFmpegPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	customFFmpegPath = path
}

func customPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return customFFmpegPath
}

// IsFFmpegAvailable checks if ffmpeg is available on the system.
func IsFFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// IsFFprobeAvailable checks if ffprobe is available on the system.
func IsFFprobeAvailable() bool {
	_, err := FindFFprobe()
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	if custom := customPath(); custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}
	return find("ffmpeg", "FFMPEG_PATH", ErrFFmpegNotFound)
}

// FindFFprobe searches for ffprobe.
// Priority: 1) next to a custom ffmpeg, 2) FFPROBE_PATH env, 3) PATH, 4) common locations
func FindFFprobe() (string, error) {
	if custom := customPath(); custom != "" {
		sibling := filepath.Join(filepath.Dir(custom), execName("ffprobe"))
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	return find("ffprobe", "FFPROBE_PATH", ErrFFprobeNotFound)
}

func find(tool, envVar string, notFound error) (string, error) {
	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", notFound, envVar, envPath)
	}

	if path, err := exec.LookPath(execName(tool)); err == nil {
		return path, nil
	}

	for _, dir := range commonDirs() {
		p := filepath.Join(dir, execName(tool))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}

func execName(tool string) string {
	if runtime.GOOS == "windows" {
		return tool + ".exe"
	}
	return tool
}

func commonDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
		}
	default:
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
}
