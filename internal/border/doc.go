// Package border shrinks every frame of a video into a centred box and pads
// it with black so the picture keeps its aspect ratio inside a margin.
//
// ffmpeg decodes to raw RGBA frames on a pipe; Go resizes and composites each
// frame with golang.org/x/image/draw and writes it to a second ffmpeg that
// encodes the output. Geometry is pure and computed once per job.
package border
