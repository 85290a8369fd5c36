package provider

import (
	"context"

	"github.com/ytgrab/ytgrab/internal/model"
)

// Progresser receives byte-level progress of one stream download.
type Progresser interface {
	// Init is called once with the expected total size, -1 if unknown.
	Init(total int64)
	// Update is called as bytes arrive with the running count and total.
	Update(count int64, total int64)
}

// Provider resolves a video URL into metadata plus a manifest of stream
// descriptors and downloads descriptor bytes to local storage. One Provider
// instance serves one resolved video at a time; Resolve replaces any
// previously resolved state.
type Provider interface {
	Resolve(ctx context.Context, videoURL string) (model.VideoMetadata, []model.StreamDescriptor, error)

	// Download copies the bytes of the stream identified by itag to path.
	// The itag must come from the manifest of the last successful Resolve.
	Download(ctx context.Context, itag int, path string, prg Progresser) error
}
