package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ytgrab/ytgrab/internal/platform"
)

// Default values
const (
	DefaultLogLevel  = "info"
	FallbackDownload = "."
)

// Settings holds the persisted application configuration consumed by the
// pipeline. The core treats these as opaque inputs.
type Settings struct {
	DownloadDir string `json:"download_dir"`
	FFmpegPath  string `json:"ffmpeg_path"` // empty means search PATH
	LogLevel    string `json:"log_level"`
}

// Default returns settings with platform defaults filled in.
func Default() Settings {
	dir, err := platform.HomeDownloadsDir()
	if err != nil {
		dir = FallbackDownload
	}
	return Settings{
		DownloadDir: dir,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads settings from a JSON file, overlaying them on defaults. A missing
// file is not an error; the defaults are returned.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if s.DownloadDir == "" {
		s.DownloadDir = Default().DownloadDir
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	return s, nil
}
