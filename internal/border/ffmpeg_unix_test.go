//go:build !windows

package border

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"menubg/internal/logging"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFFmpegPipelineWithStubBinaries(t *testing.T) {
	dir := t.TempDir()
	ffprobe := writeScript(t, dir, "ffprobe", `cat <<'JSON'
{"streams":[{"codec_type":"video","width":4,"height":2,"r_frame_rate":"10/1","nb_frames":"3"}],"format":{"duration":"0.3"}}
JSON
`)
	// Three 4x2 rgba frames; the encoder stub copies stdin to its last argument.
	ffmpeg := writeScript(t, dir, "ffmpeg", `case "$*" in
*rawvideo*-i\ -*) for a; do out=$a; done; cat > "$out" ;;
*) head -c 96 /dev/zero ;;
esac
`)

	in := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(in, []byte("x"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	out := filepath.Join(dir, "bordered_clip.mp4")

	codec := FFmpeg{FFmpegBinary: ffmpeg, FFprobeBinary: ffprobe, VideoCodec: "mpeg4"}
	result, err := NewTransformer(codec, nil, logging.NewNop(), 30).Run(context.Background(), Job{Input: in, Output: out}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Frames != 3 || result.FPS != 10 {
		t.Fatalf("result = %+v", result)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() != 96 {
		t.Fatalf("output size = %d, want 96", info.Size())
	}
}

func TestProbeSwapsDimensionsForRotatedStream(t *testing.T) {
	dir := t.TempDir()
	ffprobe := writeScript(t, dir, "ffprobe", `cat <<'JSON'
{"streams":[{"codec_type":"video","width":4,"height":2,"r_frame_rate":"10/1","nb_frames":"3",
 "side_data_list":[{"side_data_type":"Display Matrix","rotation":-90}]}],"format":{}}
JSON
`)
	// Autorotated decode emits 2x4 frames; byte count is the same as 4x2.
	ffmpeg := writeScript(t, dir, "ffmpeg", `case "$*" in
*rawvideo*-i\ -*) for a; do out=$a; done; cat > "$out" ;;
*) head -c 96 /dev/zero ;;
esac
`)
	in := filepath.Join(dir, "portrait.mp4")
	if err := os.WriteFile(in, []byte("x"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	codec := FFmpeg{FFmpegBinary: ffmpeg, FFprobeBinary: ffprobe, VideoCodec: "mpeg4"}
	info, err := codec.Probe(context.Background(), in)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.Width != 2 || info.Height != 4 {
		t.Fatalf("probe size = %dx%d, want 2x4", info.Width, info.Height)
	}

	result, err := NewTransformer(codec, nil, logging.NewNop(), 30).Run(context.Background(),
		Job{Input: in, Output: filepath.Join(dir, "out.mp4")}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Geometry.CanvasWidth != 2 || result.Geometry.CanvasHeight != 4 {
		t.Fatalf("canvas = %dx%d, want 2x4", result.Geometry.CanvasWidth, result.Geometry.CanvasHeight)
	}
}
