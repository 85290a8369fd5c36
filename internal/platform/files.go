package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Characters that are invalid in file names on at least one supported OS.
// Kept as one superset so output names are portable across platforms.
const invalidFileNameChars = `/\:*?"<>|`

// Replacement for invalid file name characters
const fileNameReplacement = '-'

// FFmpeg executable name used when no explicit path is configured
const FFmpegCommand = "ffmpeg"

// SanitizeFileName replaces every filesystem-invalid character in name with a
// dash. Control characters count as invalid.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(invalidFileNameChars, r) {
			return fileNameReplacement
		}
		return r
	}, name)
}

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, DefaultDirPermissions)
}

// TempPath returns a path in the OS temp directory namespaced by token.
// Namespacing keeps concurrent downloads from colliding on work files.
func TempPath(token, name string) string {
	return filepath.Join(os.TempDir(), token+"-"+name)
}

// LocateFFmpeg resolves the encoder executable. A configured path must exist;
// with no configured path the executable is searched on PATH.
func LocateFFmpeg(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("ffmpeg not found at %q: %w", configured, err)
		}
		return configured, nil
	}
	path, err := exec.LookPath(FFmpegCommand)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found on PATH: %w", err)
	}
	return path, nil
}

// HomeDownloadsDir returns the user's Downloads directory.
func HomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}
