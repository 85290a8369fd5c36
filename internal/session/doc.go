package session

// Package session implements the stream-selection-and-acquisition pipeline.
// A Session binds one resolved video URL to its metadata, manifest, classified
// quality lists, and thumbnail bytes, and drives the download stages:
// stream selection, raw download, optional merge, optional trim, optional
// thumbnail embed, all through injected provider/encoder collaborators.
