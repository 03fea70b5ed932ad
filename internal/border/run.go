package border

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"menubg/internal/fileutil"
	"menubg/internal/journal"
	"menubg/internal/logging"
)

// bufferedFrames bounds how far decoding may run ahead of encoding.
const bufferedFrames = 4

// Progress reports frames written so far. Total is 0 when the frame count is
// unknown.
type Progress struct {
	Frame int
	Total int
}

// ProgressFunc receives Progress after every written frame.
type ProgressFunc func(Progress)

// Result summarises a finished transform.
type Result struct {
	Output   string
	Geometry Geometry
	FPS      float64
	Frames   int
}

// Transformer runs border jobs.
type Transformer struct {
	codec       Codec
	journal     journal.Recorder
	logger      *slog.Logger
	fallbackFPS float64
}

// NewTransformer builds a Transformer. fallbackFPS is used when the input
// rate cannot be detected.
func NewTransformer(codec Codec, recorder journal.Recorder, logger *slog.Logger, fallbackFPS float64) *Transformer {
	if recorder == nil {
		recorder = journal.Discard
	}
	if fallbackFPS <= 0 {
		fallbackFPS = 30
	}
	return &Transformer{
		codec:       codec,
		journal:     recorder,
		logger:      logging.NewComponentLogger(logger, "border"),
		fallbackFPS: fallbackFPS,
	}
}

// Run transforms job.Input into job.Output. Frames are processed strictly in
// order; cancellation is checked between frames. A failed run may leave a
// partial output file.
func (t *Transformer) Run(ctx context.Context, job Job, progress ProgressFunc) (Result, error) {
	if err := job.Validate(); err != nil {
		return Result{}, err
	}
	if _, err := os.Stat(job.Input); err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	info, err := t.codec.Probe(ctx, job.Input)
	if err != nil {
		return Result{}, fmt.Errorf("inspect input: %w", err)
	}
	geom, err := Compute(info.Width, info.Height, job.Percent)
	if err != nil {
		return Result{}, err
	}
	if info.FPS <= 0 {
		t.logger.Warn("frame rate not detected; using fallback", logging.Float64("fps", t.fallbackFPS))
		info.FPS = t.fallbackFPS
	}

	t.logger.Info("border transform starting",
		logging.String("input", job.Input),
		logging.String("output", job.Output),
		logging.Float64("percent", job.Percent),
		logging.Int("width", info.Width),
		logging.Int("height", info.Height),
		logging.Int("interior_width", geom.Width),
		logging.Int("interior_height", geom.Height),
		logging.Int("x", geom.X),
		logging.Int("y", geom.Y),
		logging.Float64("fps", info.FPS),
	)

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	reader, err := t.codec.Decode(ctx, job.Input, info)
	if err != nil {
		return Result{}, err
	}
	writer, err := t.codec.Encode(ctx, job.Output, info)
	if err != nil {
		_ = reader.Close()
		return Result{}, err
	}

	written, runErr := pump(ctx, reader, writer, NewComposer(geom), info, progress)
	readErr := reader.Close()
	writeErr := writer.Close()
	if err := errors.Join(runErr, writeErr); err != nil {
		return Result{}, fmt.Errorf("border transform: %w", err)
	}
	if readErr != nil {
		return Result{}, readErr
	}
	if written == 0 {
		return Result{}, fmt.Errorf("%w from %s", ErrNoFrames, job.Input)
	}

	result := Result{Output: job.Output, Geometry: geom, FPS: info.FPS, Frames: written}
	t.logger.Info("border transform finished", logging.String("output", job.Output), logging.Int("frames", written))
	t.record(ctx, job, result)
	return result, nil
}

func pump(ctx context.Context, reader FrameReader, writer FrameWriter, composer *Composer, info Info, progress ProgressFunc) (int, error) {
	frames := make(chan *image.RGBA, bufferedFrames)
	free := make(chan *image.RGBA, bufferedFrames)
	for range bufferedFrames {
		free <- image.NewRGBA(image.Rect(0, 0, info.Width, info.Height))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(frames)
		for {
			var buf *image.RGBA
			select {
			case buf = <-free:
			case <-gctx.Done():
				return gctx.Err()
			}
			if err := reader.ReadFrame(buf); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("decode frame: %w", err)
			}
			select {
			case frames <- buf:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	written := 0
	g.Go(func() error {
		for frame := range frames {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writer.WriteFrame(composer.Compose(frame)); err != nil {
				return fmt.Errorf("encode frame %d: %w", written+1, err)
			}
			free <- frame
			written++
			if progress != nil {
				progress(Progress{Frame: written, Total: info.Frames})
			}
		}
		return nil
	})

	err := g.Wait()
	return written, err
}

func (t *Transformer) record(ctx context.Context, job Job, result Result) {
	sum, size, err := fileutil.Checksum(job.Output)
	if err != nil {
		t.logger.Warn("journal checksum failed", logging.String("target", job.Output), logging.Error(err))
	}
	detail := fmt.Sprintf("%v%% border, %dx%d at (%d,%d), %d frames",
		job.Percent, result.Geometry.Width, result.Geometry.Height, result.Geometry.X, result.Geometry.Y, result.Frames)
	if _, err := t.journal.Record(ctx, journal.Entry{
		Kind:      journal.KindBorder,
		Source:    job.Input,
		Target:    job.Output,
		SizeBytes: size,
		SHA256:    sum,
		Detail:    detail,
	}); err != nil {
		t.logger.Warn("journal write failed", logging.String("kind", string(journal.KindBorder)), logging.Error(err))
	}
}
