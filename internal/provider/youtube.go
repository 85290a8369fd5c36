package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/ytgrab/ytgrab/internal/logging"
	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/reply"
)

// YoutubeProvider implements Provider on top of the kkdai/youtube extraction
// library. The library performs its own URL validation; no format checks are
// done locally.
type YoutubeProvider struct {
	client youtube.Client
	logger logging.Logger
	video  *youtube.Video
}

// NewYoutubeProvider creates a provider with a default extraction client.
func NewYoutubeProvider(logger logging.Logger) *YoutubeProvider {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &YoutubeProvider{logger: logger}
}

// Resolve contacts the extraction library and converts its format list into
// the pipeline's manifest form. On failure no partial state is retained.
func (p *YoutubeProvider) Resolve(ctx context.Context, videoURL string) (model.VideoMetadata, []model.StreamDescriptor, error) {
	p.video = nil

	video, err := p.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		p.logger.Errorf("manifest resolution failed for %q: %v", videoURL, err)
		return model.VideoMetadata{}, nil, reply.Wrap(reply.ServerError, err, "failed to resolve video %q", videoURL)
	}

	p.video = video

	meta := model.VideoMetadata{
		Title:        video.Title,
		Author:       video.Author,
		Duration:     video.Duration,
		ThumbnailURL: bestThumbnailURL(video.Thumbnails),
	}

	manifest := make([]model.StreamDescriptor, 0, len(video.Formats))
	for _, f := range video.Formats {
		manifest = append(manifest, describeFormat(f))
	}
	return meta, manifest, nil
}

// Download streams the selected variant's bytes directly to path.
func (p *YoutubeProvider) Download(ctx context.Context, itag int, path string, prg Progresser) error {
	if p.video == nil {
		return reply.New(reply.AppError, "no video resolved")
	}

	var format *youtube.Format
	if matches := p.video.Formats.Itag(itag); len(matches) > 0 {
		format = &matches[0]
	}
	if format == nil {
		return reply.New(reply.NotFound, "stream itag %d not present in manifest", itag)
	}

	stream, size, err := p.client.GetStreamContext(ctx, p.video, format)
	if err != nil {
		p.logger.Errorf("stream open failed for itag %d: %v", itag, err)
		return reply.Wrap(reply.NetworkError, err, "failed to open stream itag %d", itag)
	}
	defer stream.Close()

	out, err := os.Create(path)
	if err != nil {
		return reply.Wrap(reply.IoError, err, "failed to create %q", path)
	}
	defer out.Close()

	if prg != nil {
		prg.Init(size)
	}
	var written int64
	buf := make([]byte, 64*1024)
	for {
		n, readErr := stream.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return reply.Wrap(reply.IoError, writeErr, "failed writing %q", path)
			}
			written += int64(n)
			if prg != nil {
				prg.Update(written, size)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			p.logger.Errorf("stream copy interrupted for itag %d: %v", itag, readErr)
			return reply.Wrap(reply.NetworkError, readErr, "stream download interrupted")
		}
	}
	return nil
}

// describeFormat classifies one extraction-library format into a descriptor.
// A format with audio channels and a video track is muxed; audio mime types
// are audio-only; the rest carry video without sound.
func describeFormat(f youtube.Format) model.StreamDescriptor {
	d := model.StreamDescriptor{
		Itag:      f.ItagNo,
		Container: containerOf(f.MimeType),
		Bitrate:   f.Bitrate,
	}
	switch {
	case strings.HasPrefix(f.MimeType, "audio/"):
		d.Category = model.CategoryAudio
	case f.AudioChannels > 0:
		d.Category = model.CategoryMuxed
		d.Resolution = resolutionOf(f)
	default:
		d.Category = model.CategoryVideo
		d.Resolution = resolutionOf(f)
	}
	return d
}

func resolutionOf(f youtube.Format) string {
	if f.Width > 0 && f.Height > 0 {
		return fmt.Sprintf("%dx%d", f.Width, f.Height)
	}
	return f.QualityLabel
}

// containerOf extracts the container name from a mime type such as
// `video/mp4; codecs="avc1.640028"`.
func containerOf(mimeType string) string {
	s := mimeType
	if i := strings.Index(s, ";"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// bestThumbnailURL picks the largest-area thumbnail, falling back to the
// first entry when sizes are unreported.
func bestThumbnailURL(thumbs youtube.Thumbnails) string {
	if len(thumbs) == 0 {
		return ""
	}
	best := thumbs[0]
	bestArea := best.Width * best.Height
	for _, t := range thumbs[1:] {
		if area := t.Width * t.Height; area > bestArea {
			best, bestArea = t, area
		}
	}
	return best.URL
}
