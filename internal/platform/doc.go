package platform

// Package platform contains OS integration glue: output filename sanitizing,
// namespaced temp-file paths, directory creation, and locating the ffmpeg
// executable on the host.
