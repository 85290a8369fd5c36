package session

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/provider"
	"github.com/ytgrab/ytgrab/internal/reply"
)

// fakeProvider serves a canned manifest and writes canned payloads to disk.
type fakeProvider struct {
	meta       model.VideoMetadata
	manifest   []model.StreamDescriptor
	resolveErr error
	payload    map[int][]byte
	failItag   int
	downloaded []int
}

func (f *fakeProvider) Resolve(ctx context.Context, url string) (model.VideoMetadata, []model.StreamDescriptor, error) {
	if f.resolveErr != nil {
		return model.VideoMetadata{}, nil, f.resolveErr
	}
	return f.meta, f.manifest, nil
}

func (f *fakeProvider) Download(ctx context.Context, itag int, path string, prg provider.Progresser) error {
	if f.failItag != 0 && itag == f.failItag {
		return reply.New(reply.NetworkError, "stream download interrupted")
	}
	data, ok := f.payload[itag]
	if !ok {
		data = []byte("stream-" + strconv.Itoa(itag))
	}
	if prg != nil {
		prg.Init(int64(len(data)))
		prg.Update(int64(len(data)), int64(len(data)))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return reply.Wrap(reply.IoError, err, "failed to create %q", path)
	}
	f.downloaded = append(f.downloaded, itag)
	return nil
}

// fakeRunner records encoder invocations and emulates ffmpeg by writing the
// output file named by the last argument.
type fakeRunner struct {
	calls    [][]string
	err      error  // returned from every call
	failOn   string // argument that makes the call fail without output
	noOutput bool   // succeed but produce no output file
	output   []byte // content written to the output path
}

func (r *fakeRunner) Run(ctx context.Context, args []string) (string, string, error) {
	r.calls = append(r.calls, append([]string(nil), args...))
	if r.err != nil {
		return "", "simulated encoder failure", r.err
	}
	for _, a := range args {
		if r.failOn != "" && a == r.failOn {
			return "", "simulated encoder failure", reply.New(reply.ExternalError, "encoder exited abnormally")
		}
	}
	if r.noOutput {
		return "", "", nil
	}
	out := r.output
	if out == nil {
		out = []byte("encoded output")
	}
	if err := os.WriteFile(args[len(args)-1], out, 0644); err != nil {
		return "", "", err
	}
	return "", "", nil
}

func fixtureProvider() *fakeProvider {
	return &fakeProvider{
		meta: model.VideoMetadata{
			Title:        "My/Video:Test?",
			Author:       "Fixture Author",
			Duration:     time.Minute,
			ThumbnailURL: "http://thumbnails.example/hq.jpg",
		},
		manifest: []model.StreamDescriptor{
			{Itag: 18, Category: model.CategoryMuxed, Container: "mp4", Bitrate: 500000, Resolution: "640x360"},
			{Itag: 22, Category: model.CategoryMuxed, Container: "mp4", Bitrate: 1000000, Resolution: "1280x720"},
			{Itag: 140, Category: model.CategoryAudio, Container: "m4a", Bitrate: 131072},
			{Itag: 251, Category: model.CategoryAudio, Container: "webm", Bitrate: 160000},
			{Itag: 137, Category: model.CategoryVideo, Container: "mp4", Bitrate: 4000000, Resolution: "1920x1080"},
		},
		payload: map[int][]byte{},
	}
}

func newTestSession(t *testing.T, p *fakeProvider, r *fakeRunner) *Session {
	t.Helper()
	s := New(p, r, nil)
	s.fetchFunc = func(ctx context.Context, url string) ([]byte, error) {
		return []byte("thumbnail bytes"), nil
	}
	return s
}

func initTestSession(t *testing.T, p *fakeProvider, r *fakeRunner) *Session {
	t.Helper()
	s := newTestSession(t, p, r)
	if _, err := s.Initialize(context.Background(), "https://youtube.com/watch?v=fixture"); err != nil {
		t.Fatalf("Initialize: unexpected error %v", err)
	}
	return s
}

func TestInitializeReturnsMetadata(t *testing.T) {
	p := fixtureProvider()
	s := newTestSession(t, p, &fakeRunner{})

	meta, err := s.Initialize(context.Background(), "https://youtube.com/watch?v=fixture")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if meta.Title != p.meta.Title {
		t.Errorf("Expected title %q, got %q", p.meta.Title, meta.Title)
	}
	if got := s.ThumbnailBytes(); string(got) != "thumbnail bytes" {
		t.Errorf("Expected thumbnail bytes to be stored, got %q", got)
	}
}

func TestInitializeFailureLeavesSessionUnusable(t *testing.T) {
	p := fixtureProvider()
	p.resolveErr = reply.New(reply.ServerError, "video unavailable")
	s := newTestSession(t, p, &fakeRunner{})

	if _, err := s.Initialize(context.Background(), "https://youtube.com/watch?v=gone"); err == nil {
		t.Fatal("Expected error, got nil")
	}

	if got := s.GetQualities(model.CategoryMuxed); got != nil {
		t.Errorf("Expected nil qualities for uninitialized session, got %v", got)
	}

	err := s.Download(context.Background(), model.DownloadRequest{OutputDir: t.TempDir(), Category: model.CategoryMuxed})
	if !reply.IsType(err, reply.AppError) {
		t.Errorf("Expected AppError, got %v", err)
	}
}

func TestThumbnailFetchFailureIsNonFatal(t *testing.T) {
	p := fixtureProvider()
	s := newTestSession(t, p, &fakeRunner{})
	s.fetchFunc = func(ctx context.Context, url string) ([]byte, error) {
		return nil, reply.New(reply.NetworkError, "thumbnail fetch failed")
	}

	if _, err := s.Initialize(context.Background(), "https://youtube.com/watch?v=fixture"); err != nil {
		t.Fatalf("Expected initialization to succeed, got %v", err)
	}
	if s.ThumbnailBytes() != nil {
		t.Error("Expected no thumbnail bytes after fetch failure")
	}
	if len(s.GetQualities(model.CategoryMuxed)) == 0 {
		t.Error("Expected session to be usable after thumbnail failure")
	}
}

func TestGetQualitiesIsIdempotent(t *testing.T) {
	s := initTestSession(t, fixtureProvider(), &fakeRunner{})

	first := s.GetQualities(model.CategoryAudio)
	second := s.GetQualities(model.CategoryAudio)

	if len(first) != len(second) {
		t.Fatalf("Expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Label != second[i].Label {
			t.Errorf("Label %d changed between calls: %q vs %q", i, first[i].Label, second[i].Label)
		}
	}
}

func TestPartitionCompleteness(t *testing.T) {
	p := fixtureProvider()
	s := initTestSession(t, p, &fakeRunner{})

	total := len(s.GetQualities(model.CategoryMuxed)) +
		len(s.GetQualities(model.CategoryAudio)) +
		len(s.GetQualities(model.CategoryVideo))

	if total != len(p.manifest) {
		t.Errorf("Expected %d classified entries, got %d", len(p.manifest), total)
	}
}

func TestQualityLabelFormat(t *testing.T) {
	s := initTestSession(t, fixtureProvider(), &fakeRunner{})

	muxed := s.GetQualities(model.CategoryMuxed)
	if len(muxed) < 1 {
		t.Fatal("Expected at least one muxed quality")
	}
	pattern := regexp.MustCompile(`^\d+ : \S+ px - \d+ bps - \w+$`)
	if !pattern.MatchString(muxed[0].Label) {
		t.Errorf("Muxed label %q does not match expected pattern", muxed[0].Label)
	}
	if muxed[0].Label != "1 : 640x360 px - 500000 bps - mp4" {
		t.Errorf("Unexpected first muxed label: %q", muxed[0].Label)
	}
}

func TestReinitializeReplacesManifest(t *testing.T) {
	p := fixtureProvider()
	s := initTestSession(t, p, &fakeRunner{})

	if got := len(s.GetQualities(model.CategoryAudio)); got != 2 {
		t.Fatalf("Expected 2 audio qualities, got %d", got)
	}

	p.manifest = []model.StreamDescriptor{
		{Itag: 140, Category: model.CategoryAudio, Container: "m4a", Bitrate: 131072},
	}
	if _, err := s.Initialize(context.Background(), "https://youtube.com/watch?v=other"); err != nil {
		t.Fatalf("Reinitialize: unexpected error %v", err)
	}

	if got := len(s.GetQualities(model.CategoryAudio)); got != 1 {
		t.Errorf("Expected 1 audio quality after reinitialize, got %d", got)
	}
	if got := len(s.GetQualities(model.CategoryMuxed)); got != 0 {
		t.Errorf("Expected no muxed qualities after reinitialize, got %d", got)
	}
}

func TestEmptyCategoryYieldsEmptyList(t *testing.T) {
	p := fixtureProvider()
	p.manifest = []model.StreamDescriptor{
		{Itag: 140, Category: model.CategoryAudio, Container: "m4a", Bitrate: 131072},
	}
	s := initTestSession(t, p, &fakeRunner{})

	if got := s.GetQualities(model.CategoryVideo); len(got) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(got))
	}

	// the empty category is rejected at download time, not before
	err := s.Download(context.Background(), model.DownloadRequest{
		OutputDir: t.TempDir(),
		Category:  model.CategoryVideo,
	})
	if !reply.IsType(err, reply.ValidationError) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

func TestResolveErrorsPassThrough(t *testing.T) {
	p := fixtureProvider()
	cause := errors.New("http 410")
	p.resolveErr = reply.Wrap(reply.ServerError, cause, "failed to resolve video")
	s := newTestSession(t, p, &fakeRunner{})

	_, err := s.Initialize(context.Background(), "https://youtube.com/watch?v=gone")
	if !errors.Is(err, cause) {
		t.Error("Expected provider error to pass through unwrapped")
	}
	if !reply.IsType(err, reply.ServerError) {
		t.Errorf("Expected ServerError, got %s", reply.TypeOf(err))
	}
}
