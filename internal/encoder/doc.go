package encoder

// Package encoder wraps invocation of the external ffmpeg executable: pure
// argument builders for the operations the pipeline needs (jpg conversion,
// trim, thumbnail embed, audio/video merge) and a process runner that spawns
// one process per call with both output streams captured.
