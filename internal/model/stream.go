package model

import (
	"fmt"
	"time"
)

// StreamCategory identifies the kind of stream a manifest entry carries.
type StreamCategory string

const (
	// CategoryMuxed is a single stream with audio and video already combined.
	CategoryMuxed StreamCategory = "Muxed"

	// CategoryAudio is an audio-only stream.
	CategoryAudio StreamCategory = "Audio"

	// CategoryVideo is a video-only stream.
	CategoryVideo StreamCategory = "Video"
)

// String returns the string representation of StreamCategory.
func (c StreamCategory) String() string {
	return string(c)
}

// ParseCategory converts a user-supplied category name into a StreamCategory.
func ParseCategory(s string) (StreamCategory, error) {
	switch s {
	case "mixed", "muxed":
		return CategoryMuxed, nil
	case "audio":
		return CategoryAudio, nil
	case "video":
		return CategoryVideo, nil
	}
	return "", fmt.Errorf("invalid stream category %q", s)
}

// VideoMetadata is an immutable snapshot of a resolved video.
type VideoMetadata struct {
	Title        string
	Author       string
	Duration     time.Duration
	ThumbnailURL string
}

// StreamDescriptor is one entry of the provider's manifest. The pipeline never
// mutates descriptors, it only reads and indexes them.
type StreamDescriptor struct {
	Itag       int
	Category   StreamCategory
	Container  string // container name, e.g. "mp4"
	Bitrate    int    // bits per second
	Resolution string // e.g. "1920x1080", empty for audio-only streams

	// RequiresMerge marks a muxed descriptor the provider delivers as
	// separate audio and video endpoints. AudioItag identifies the
	// companion audio stream in that case.
	RequiresMerge bool
	AudioItag     int
}
