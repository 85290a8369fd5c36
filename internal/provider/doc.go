package provider

// Package provider defines the stream-extraction collaborator contract and
// its YouTube implementation backed by github.com/kkdai/youtube/v2, plus the
// thumbnail fetcher used for previews and cover-art embedding.
