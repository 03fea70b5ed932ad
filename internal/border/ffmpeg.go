package border

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"menubg/internal/media/ffprobe"
)

// Info is what the pipeline needs to know about the input stream.
type Info struct {
	Width  int
	Height int
	FPS    float64
	// Frames is the expected frame count, 0 when unknown.
	Frames int
}

// FrameReader yields decoded frames in order. ReadFrame returns io.EOF after
// the last frame.
type FrameReader interface {
	ReadFrame(dst *image.RGBA) error
	Close() error
}

// FrameWriter accepts composited frames in order.
type FrameWriter interface {
	WriteFrame(src *image.RGBA) error
	Close() error
}

// Codec probes, decodes and encodes video. FFmpeg is the production
// implementation.
type Codec interface {
	Probe(ctx context.Context, path string) (Info, error)
	Decode(ctx context.Context, path string, info Info) (FrameReader, error)
	Encode(ctx context.Context, path string, info Info) (FrameWriter, error)
}

// FFmpeg runs ffprobe and ffmpeg binaries over rawvideo RGBA pipes.
type FFmpeg struct {
	FFmpegBinary  string
	FFprobeBinary string
	// VideoCodec is passed to -c:v for the output.
	VideoCodec string
}

// Probe reads the first video stream's display dimensions, rate and frame
// count. Dimensions are swapped for quarter-turn rotations because ffmpeg
// autorotates while decoding.
func (f FFmpeg) Probe(ctx context.Context, path string) (Info, error) {
	result, err := ffprobe.Inspect(ctx, f.FFprobeBinary, path)
	if err != nil {
		return Info{}, err
	}
	video, err := result.Video()
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", path, err)
	}
	width, height := video.DisplaySize()
	return Info{
		Width:  width,
		Height: height,
		FPS:    video.FrameRate(),
		Frames: video.FrameCount(result.DurationSeconds()),
	}, nil
}

// Decode starts ffmpeg writing rgba frames of the first video stream to stdout.
func (f FFmpeg) Decode(ctx context.Context, path string, info Info) (FrameReader, error) {
	cmd := exec.CommandContext(ctx, f.ffmpeg(),
		"-v", "error", "-nostdin",
		"-i", path,
		"-map", "0:v:0",
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-",
	)
	stderr := &tailBuffer{limit: 4096}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg decode: %w", err)
	}
	return &pipeReader{cmd: cmd, stdout: stdout, stderr: stderr, frameSize: info.Width * info.Height * 4}, nil
}

// Encode starts ffmpeg reading rgba frames from stdin and writing path.
func (f FFmpeg) Encode(ctx context.Context, path string, info Info) (FrameWriter, error) {
	codec := strings.TrimSpace(f.VideoCodec)
	if codec == "" {
		codec = "mpeg4"
	}
	cmd := exec.CommandContext(ctx, f.ffmpeg(),
		"-v", "error", "-y",
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"-r", strconv.FormatFloat(info.FPS, 'f', -1, 64),
		"-i", "-",
		"-an",
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
		path,
	)
	stderr := &tailBuffer{limit: 4096}
	cmd.Stderr = stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg encode pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg encode: %w", err)
	}
	return &pipeWriter{cmd: cmd, stdin: stdin, stderr: stderr}, nil
}

func (f FFmpeg) ffmpeg() string {
	if b := strings.TrimSpace(f.FFmpegBinary); b != "" {
		return b
	}
	return "ffmpeg"
}

type pipeReader struct {
	cmd       *exec.Cmd
	stdout    io.ReadCloser
	stderr    *tailBuffer
	frameSize int
	drained   bool
}

func (r *pipeReader) ReadFrame(dst *image.RGBA) error {
	if len(dst.Pix) != r.frameSize {
		return fmt.Errorf("frame buffer is %d bytes, want %d", len(dst.Pix), r.frameSize)
	}
	_, err := io.ReadFull(r.stdout, dst.Pix)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		r.drained = true
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		r.drained = true
		return fmt.Errorf("truncated frame: %w", err)
	default:
		return err
	}
}

func (r *pipeReader) Close() error {
	if !r.drained && r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
		_ = r.cmd.Wait()
		return nil
	}
	if err := r.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg decode: %w: %s", err, r.stderr.String())
	}
	return nil
}

type pipeWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *tailBuffer
}

func (w *pipeWriter) WriteFrame(src *image.RGBA) error {
	if _, err := w.stdin.Write(src.Pix); err != nil {
		return fmt.Errorf("ffmpeg encode write: %w: %s", err, w.stderr.String())
	}
	return nil
}

func (w *pipeWriter) Close() error {
	closeErr := w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encode: %w: %s", err, w.stderr.String())
	}
	return closeErr
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Write(p)
	if over := b.buf.Len() - b.limit; over > 0 {
		b.buf.Next(over)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(b.buf.String())
}
