package session

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ytgrab/ytgrab/internal/encoder"
	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/platform"
	"github.com/ytgrab/ytgrab/internal/reply"
)

// Temp file names, namespaced per invocation by a token
const (
	tempThumbnailName = "thumbnail.jpg"
	tempConvertedName = "thumbnail_converted.jpg"
	tempVideoName     = "video_temp"
	tempTrimName      = "video_trim"
	tempVideoPartName = "video_part"
	tempAudioPartName = "audio_part.m4a"
)

// Download executes the pipeline for one selected stream: select, raw
// download (merging split audio/video when the descriptor requires it),
// optional trim, optional thumbnail embed. Stages run strictly in order;
// each stage's output file is the next stage's input.
func (s *Session) Download(ctx context.Context, req model.DownloadRequest) error {
	desc, err := s.selectStream(req.Category, req.QualityIndex)
	if err != nil {
		s.logger.Errorf("stream selection failed: %v", err)
		return err
	}

	if err := platform.EnsureDir(req.OutputDir); err != nil {
		return reply.Wrap(reply.IoError, err, "cannot create output directory %q", req.OutputDir)
	}

	title := s.Metadata().Title
	path := filepath.Join(req.OutputDir, platform.SanitizeFileName(title)+"."+desc.Container)
	token := uuid.NewString()

	// Raw download writes directly to the final path; a failure here can
	// leave a truncated file behind.
	if desc.RequiresMerge {
		err = s.downloadAndMerge(ctx, desc, path, token)
	} else {
		err = s.provider.Download(ctx, desc.Itag, path, s.progress)
	}
	if err != nil {
		s.logger.Errorf("raw download failed for %q: %v", title, err)
		return err
	}

	if req.WantsTrim() {
		if err := s.applyTrim(ctx, path, req, token); err != nil {
			s.logger.Errorf("trim failed for %q: %v", path, err)
			return err
		}
	}

	if len(req.ThumbnailBytes) > 0 {
		if err := s.embedThumbnail(ctx, path, req.ThumbnailBytes, token); err != nil {
			s.logger.Errorf("thumbnail embed failed for %q: %v", path, err)
			return err
		}
	}

	s.logger.Infof("download complete: %s", path)
	return nil
}

// downloadAndMerge fetches the descriptor's separate video and audio parts to
// temp paths and combines them into the output file. Failure aborts before
// any later stage runs; both parts are removed either way.
func (s *Session) downloadAndMerge(ctx context.Context, desc model.StreamDescriptor, path, token string) error {
	videoPart := platform.TempPath(token, tempVideoPartName+"."+desc.Container)
	audioPart := platform.TempPath(token, tempAudioPartName)
	defer removeIfExists(videoPart)
	defer removeIfExists(audioPart)

	if err := s.provider.Download(ctx, desc.Itag, videoPart, s.progress); err != nil {
		return err
	}
	if err := s.provider.Download(ctx, desc.AudioItag, audioPart, s.progress); err != nil {
		return err
	}

	_, stderr, err := s.runner.Run(ctx, encoder.MergeArgs(videoPart, audioPart, path))
	if err != nil || !fileExists(path) {
		removeIfExists(path)
		if err != nil {
			return reply.Wrap(reply.TypeOf(err), err, "audio/video merge failed")
		}
		s.logger.Errorf("merge produced no output, stderr: %s", stderr)
		return reply.New(reply.ExternalError, "audio/video merge produced no output")
	}
	return nil
}

// applyTrim cuts the file to the requested range via stream copy. Times not
// matching hh:mm:ss skip the trim entirely rather than failing the download.
// On encoder failure the untrimmed file is left in place and the error
// surfaces.
func (s *Session) applyTrim(ctx context.Context, path string, req model.DownloadRequest, token string) error {
	start, startErr := model.ParseClock(req.StartTime)
	end, endErr := model.ParseClock(req.EndTime)
	if startErr != nil || endErr != nil {
		s.logger.Errorf("trim skipped, bad time range (%q, %q)", req.StartTime, req.EndTime)
		return nil
	}

	trimmed := platform.TempPath(token, tempTrimName+filepath.Ext(path))
	defer removeIfExists(trimmed)

	_, stderr, err := s.runner.Run(ctx, encoder.TrimArgs(path, start, end-start, trimmed))
	if err != nil || !fileExists(trimmed) {
		if err != nil {
			return reply.Wrap(reply.TypeOf(err), err, "trim failed")
		}
		s.logger.Errorf("trim produced no output, stderr: %s", stderr)
		return reply.New(reply.ExternalError, "trim produced no output")
	}

	if err := os.Remove(path); err != nil {
		return reply.Wrap(reply.IoError, err, "cannot replace %q with trimmed file", path)
	}
	if err := os.Rename(trimmed, path); err != nil {
		return reply.Wrap(reply.IoError, err, "cannot move trimmed file into %q", path)
	}
	return nil
}

// embedThumbnail writes the image bytes to a temp jpg, normalizes it with the
// encoder, muxes it into the video as attached cover art, and swaps the result
// into place. All three temp files are removed on success and failure alike.
func (s *Session) embedThumbnail(ctx context.Context, path string, thumbnail []byte, token string) error {
	rawThumb := platform.TempPath(token, tempThumbnailName)
	convThumb := platform.TempPath(token, tempConvertedName)
	tempVideo := platform.TempPath(token, tempVideoName+filepath.Ext(path))
	defer removeIfExists(rawThumb)
	defer removeIfExists(convThumb)
	defer removeIfExists(tempVideo)

	if err := os.WriteFile(rawThumb, thumbnail, 0644); err != nil {
		return reply.Wrap(reply.IoError, err, "cannot write temp thumbnail")
	}

	// The jpg conversion's exit code is not significant, only whether the
	// converted file appeared. A missing executable still aborts.
	if _, _, err := s.runner.Run(ctx, encoder.ConvertJpgArgs(rawThumb, convThumb)); err != nil {
		if reply.IsType(err, reply.IoError) {
			return err
		}
		s.logger.Debugf("thumbnail conversion exited abnormally: %v", err)
	}
	if !fileExists(convThumb) {
		return reply.New(reply.ExternalError, "thumbnail conversion produced no output")
	}

	if _, _, err := s.runner.Run(ctx, encoder.EmbedThumbnailArgs(path, convThumb, tempVideo)); err != nil {
		if reply.IsType(err, reply.IoError) {
			return err
		}
		s.logger.Debugf("thumbnail embed exited abnormally: %v", err)
	}
	if !fileExists(tempVideo) {
		return reply.New(reply.ExternalError, "thumbnail embed produced no usable output")
	}

	if err := os.Remove(path); err != nil {
		return reply.Wrap(reply.IoError, err, "cannot replace %q with thumbnailed file", path)
	}
	if err := os.Rename(tempVideo, path); err != nil {
		return reply.Wrap(reply.IoError, err, "cannot move thumbnailed file into %q", path)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func removeIfExists(path string) {
	if fileExists(path) {
		os.Remove(path)
	}
}
