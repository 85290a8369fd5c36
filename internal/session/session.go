package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/ytgrab/ytgrab/internal/encoder"
	"github.com/ytgrab/ytgrab/internal/logging"
	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/provider"
	"github.com/ytgrab/ytgrab/internal/reply"
)

// Session is the aggregate root for one resolved video. It owns the metadata,
// manifest, quality lists, and thumbnail bytes by composition; nothing is
// shared across sessions. A session is unusable until Initialize succeeds and
// is reset by every Initialize call.
type Session struct {
	provider  provider.Provider
	runner    encoder.Runner
	logger    logging.Logger
	fetchFunc func(ctx context.Context, url string) ([]byte, error)
	progress  provider.Progresser

	mu          sync.Mutex
	id          string
	initialized bool
	meta        model.VideoMetadata
	manifest    []model.StreamDescriptor
	thumbnail   []byte
	streams     map[model.StreamCategory][]model.StreamDescriptor
	qualities   map[model.StreamCategory]model.QualityList
}

// New creates a session around its collaborators. Passing a nil logger
// disables diagnostics.
func New(p provider.Provider, r encoder.Runner, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Session{
		provider: p,
		runner:   r,
		logger:   logger,
		fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return provider.FetchThumbnail(ctx, http.DefaultClient, url)
		},
	}
}

// SetProgress installs a sink for byte-level download progress.
func (s *Session) SetProgress(prg provider.Progresser) {
	s.progress = prg
}

// Initialize resolves a video URL into metadata and a stream manifest and
// fetches the preview thumbnail. A thumbnail failure is logged and ignored;
// a resolution failure leaves the session uninitialized.
func (s *Session) Initialize(ctx context.Context, videoURL string) (model.VideoMetadata, error) {
	meta, manifest, err := s.provider.Resolve(ctx, videoURL)

	s.mu.Lock()
	s.initialized = false
	s.meta = model.VideoMetadata{}
	s.manifest = nil
	s.thumbnail = nil
	s.streams = nil
	s.qualities = nil
	if err != nil {
		s.mu.Unlock()
		return model.VideoMetadata{}, err
	}
	s.id = uuid.NewString()
	s.meta = meta
	s.manifest = manifest
	s.initialized = true
	s.mu.Unlock()

	if meta.ThumbnailURL != "" {
		data, fetchErr := s.fetchFunc(ctx, meta.ThumbnailURL)
		if fetchErr != nil {
			s.logger.Errorf("thumbnail fetch failed for %q: %v", meta.ThumbnailURL, fetchErr)
		} else {
			s.mu.Lock()
			s.thumbnail = data
			s.mu.Unlock()
		}
	}
	return meta, nil
}

// Metadata returns the snapshot captured by the last successful Initialize.
func (s *Session) Metadata() model.VideoMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// ThumbnailBytes returns the raw preview image bytes, nil when unavailable.
func (s *Session) ThumbnailBytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thumbnail
}

// GetQualities returns the display labels for one stream category. The first
// call per category partitions and formats the manifest; repeated calls return
// the cached list. An empty category yields an empty list, rejected only at
// download time.
func (s *Session) GetQualities(category model.StreamCategory) model.QualityList {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil
	}
	return s.qualitiesLocked(category)
}

func (s *Session) qualitiesLocked(category model.StreamCategory) model.QualityList {
	if list, ok := s.qualities[category]; ok {
		return list
	}
	if s.qualities == nil {
		s.qualities = make(map[model.StreamCategory]model.QualityList)
	}
	list := model.BuildQualityList(s.streamsLocked(category))
	s.qualities[category] = list
	return list
}

// streamsLocked partitions the manifest on first use. Every entry lands in
// exactly one category and the provider's manifest order is preserved.
func (s *Session) streamsLocked(category model.StreamCategory) []model.StreamDescriptor {
	if s.streams == nil {
		s.streams = make(map[model.StreamCategory][]model.StreamDescriptor)
		for _, d := range s.manifest {
			s.streams[d.Category] = append(s.streams[d.Category], d)
		}
	}
	return s.streams[category]
}

// selectStream revalidates the requested category and index against the
// current manifest, guarding against stale indices from a prior session.
func (s *Session) selectStream(category model.StreamCategory, index int) (model.StreamDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return model.StreamDescriptor{}, reply.New(reply.AppError, "session is not initialized")
	}
	streams := s.streamsLocked(category)
	if index < 0 || index >= len(streams) {
		return model.StreamDescriptor{}, reply.New(reply.ValidationError,
			"quality index %d out of range for %s streams (%d available)", index, category, len(streams))
	}
	return streams[index], nil
}
