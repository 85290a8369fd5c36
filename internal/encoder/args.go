package encoder

import (
	"time"

	"github.com/ytgrab/ytgrab/internal/model"
)

// ConvertJpgArgs builds arguments that convert an image into a normalized jpg.
func ConvertJpgArgs(input, output string) []string {
	return []string{"-i", input, output}
}

// TrimArgs builds arguments that cut a stream to a time range without
// re-encoding (stream copy).
func TrimArgs(input string, start, duration time.Duration, output string) []string {
	return []string{
		"-i", input,
		"-ss", model.FormatClock(start),
		"-t", model.FormatClock(duration),
		"-c:v", "copy",
		"-c:a", "copy",
		output,
	}
}

// EmbedThumbnailArgs builds arguments that attach an image to a video file as
// its cover art.
func EmbedThumbnailArgs(video, image, output string) []string {
	return []string{
		"-i", video,
		"-i", image,
		"-map", "0",
		"-map", "1",
		"-c", "copy",
		"-disposition:v:1", "attached_pic",
		output,
	}
}

// MergeArgs builds arguments that combine separate video and audio streams
// into one output file.
func MergeArgs(video, audio, output string) []string {
	return []string{
		"-i", video,
		"-i", audio,
		"-c:v", "copy",
		"-c:a", "aac",
		"-strict", "experimental",
		output,
	}
}
