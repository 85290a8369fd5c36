package model

// DownloadRequest is the per-invocation input to the download orchestrator.
// StartTime and EndTime are raw hh:mm:ss strings; the trim stage runs only
// when both are present and both parse exactly.
type DownloadRequest struct {
	OutputDir      string
	Category       StreamCategory
	QualityIndex   int
	StartTime      string
	EndTime        string
	ThumbnailBytes []byte
}

// WantsTrim reports whether the caller asked for a time-range trim.
func (r DownloadRequest) WantsTrim() bool {
	return r.StartTime != "" && r.EndTime != ""
}
