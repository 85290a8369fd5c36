package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/vbauerster/mpb/v4"

	"github.com/ytgrab/ytgrab/internal/config"
	"github.com/ytgrab/ytgrab/internal/encoder"
	"github.com/ytgrab/ytgrab/internal/logging"
	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/platform"
	"github.com/ytgrab/ytgrab/internal/provider"
	"github.com/ytgrab/ytgrab/internal/session"
)

func main() {
	var (
		videoURL   string
		outputDir  string
		streamType string
		quality    int
		startTime  string
		endTime    string
		thumbnail  bool
		listOnly   bool
		configPath string
		logLevel   string
		headless   bool
	)

	flag.StringVar(&videoURL, "url", "", "Video URL to download.")
	flag.StringVar(&outputDir, "dir", "", "Output directory. Defaults to the configured download directory.")
	flag.StringVar(&streamType, "type", "mixed", "Stream type: mixed, audio or video.")
	flag.IntVar(&quality, "quality", 0, "0-based quality index, see -list.")
	flag.StringVar(&startTime, "start", "", "Trim start time (hh:mm:ss).")
	flag.StringVar(&endTime, "end", "", "Trim end time (hh:mm:ss).")
	flag.BoolVar(&thumbnail, "thumbnail", false, "Embed the video thumbnail as cover art.")
	flag.BoolVar(&listOnly, "list", false, "List available qualities and exit.")
	flag.StringVar(&configPath, "config", "", "Configuration file name.")
	flag.StringVar(&logLevel, "log-level", "", "Log level: error, info or debug.")
	flag.BoolVar(&headless, "headless", false, "Headless mode. Progression bars are not displayed.")
	flag.Parse()

	if videoURL == "" {
		fmt.Fprintln(os.Stderr, "usage: ytgrab -url <video url> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if outputDir == "" {
		outputDir = settings.DownloadDir
	}
	if logLevel == "" {
		logLevel = settings.LogLevel
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.New(level, os.Stderr)

	// trap Ctrl+C and cancel the pipeline
	ctx, cancel := context.WithCancel(context.Background())
	breakChannel := make(chan os.Signal, 1)
	signal.Notify(breakChannel, os.Interrupt)
	defer func() {
		signal.Stop(breakChannel)
		cancel()
	}()
	go func() {
		select {
		case <-breakChannel:
			cancel()
		case <-ctx.Done():
		}
	}()

	ffmpegPath, err := platform.LocateFFmpeg(settings.FFmpegPath)
	if err != nil {
		// Only trim, merge and thumbnail embedding need the encoder.
		logger.Infof("%v; downloads requiring post-processing will fail", err)
	}
	logger.Debugf("ffmpeg path: %q", ffmpegPath)

	yt := provider.NewYoutubeProvider(logger)
	runner := encoder.NewExecRunner(ffmpegPath, logger)
	sess := session.New(yt, runner, logger)

	meta, err := sess.Initialize(ctx, videoURL)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n%s - %s\n", meta.Title, meta.Author, meta.Duration)

	if listOnly {
		printQualities(sess)
		return
	}

	category, err := model.ParseCategory(streamType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var pc *mpb.Progress
	var bar *downloadBar
	if !headless {
		pc = mpb.NewWithContext(ctx, mpb.WithWidth(64))
		bar = newDownloadBar(pc, platform.SanitizeFileName(meta.Title))
		sess.SetProgress(bar)
	}

	req := model.DownloadRequest{
		OutputDir:    outputDir,
		Category:     category,
		QualityIndex: quality,
		StartTime:    startTime,
		EndTime:      endTime,
	}
	if thumbnail {
		req.ThumbnailBytes = sess.ThumbnailBytes()
	}

	err = sess.Download(ctx, req)
	if bar != nil {
		bar.finish()
		pc.Wait()
	}
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	fmt.Printf("Saved to %s\n", outputDir)
}

func printQualities(sess *session.Session) {
	for _, category := range []model.StreamCategory{model.CategoryMuxed, model.CategoryAudio, model.CategoryVideo} {
		list := sess.GetQualities(category)
		fmt.Printf("%s streams:\n", category)
		if len(list) == 0 {
			fmt.Println("  (none)")
			continue
		}
		for _, label := range list.Labels() {
			fmt.Printf("  %s\n", label)
		}
	}
}
