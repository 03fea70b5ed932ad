// Package ffprobe wraps ffprobe's JSON output for the border transform.
//
// Inspect runs ffprobe once per file. Result.Video picks the first video
// stream, whose dimensions, frame rate and frame count drive the pipeline.
package ffprobe
