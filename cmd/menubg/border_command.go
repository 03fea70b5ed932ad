package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"menubg/internal/border"
	"menubg/internal/config"
)

func newBorderCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var percent float64

	cmd := &cobra.Command{
		Use:   "border <input>",
		Short: "Shrink a video into a centred box with black borders",
		Long: "Resize every frame of <input> to fit inside a margin of --percent on each side,\n" +
			"pad it with black, and write the result (default bordered_<name>.mp4 next to\n" +
			"the input). Convert the result with `menubg convert` afterwards.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			input, err := resolveInputFile(args[0])
			if err != nil {
				return err
			}
			output := strings.TrimSpace(outputPath)
			if output == "" {
				output = border.DefaultOutput(input, cfg.Border.OutputPrefix)
			} else if output, err = config.ExpandPath(output); err != nil {
				return err
			}
			if !cmd.Flags().Changed("percent") {
				percent = cfg.Border.DefaultPercent
			}

			job := border.Job{Input: input, Output: output, Percent: percent}
			if err := job.Validate(); err != nil {
				return err
			}

			codec := border.FFmpeg{
				FFmpegBinary:  cfg.FFmpegBinary(),
				FFprobeBinary: cfg.FFprobeBinary(),
				VideoCodec:    cfg.Border.Codec,
			}
			transformer := border.NewTransformer(codec, ctx.recorder(), ctx.loggerValue(), cfg.Border.FallbackFPS)

			out := cmd.OutOrStdout()
			bar := newFrameBar(out)
			var result border.Result
			elapsed, err := runJob(cmd.Context(), ctx, "border", func(jctx context.Context) error {
				var runErr error
				result, runErr = transformer.Run(jctx, job, bar.update)
				return runErr
			})
			bar.finish()
			if err != nil {
				return err
			}

			colorize := shouldColorize(out)
			g := result.Geometry
			fmt.Fprintln(out, renderStatusLine("Picture", statusInfo,
				fmt.Sprintf("%dx%d at (%d,%d) on %dx%d", g.Width, g.Height, g.X, g.Y, g.CanvasWidth, g.CanvasHeight), colorize))
			fmt.Fprintln(out, renderStatusLine("Frames", statusInfo,
				fmt.Sprintf("%s at %.3g fps in %s", humanize.Comma(int64(result.Frames)), result.FPS, elapsed.Round(time.Millisecond)), colorize))
			fmt.Fprintln(out, renderStatusLine("Written", statusOK, result.Output, colorize))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output video path")
	cmd.Flags().Float64VarP(&percent, "percent", "p", 5, "Border size on each side, 0-50 percent of the frame")
	return cmd
}

// frameBar creates its progress bar lazily once the frame total is known.
type frameBar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func newFrameBar(out io.Writer) *frameBar {
	return &frameBar{out: out}
}

func (f *frameBar) update(p border.Progress) {
	if f.bar == nil {
		total := p.Total
		if total <= 0 {
			total = -1
		}
		f.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(f.out),
			progressbar.OptionSetDescription("Bordering"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("frames"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	_ = f.bar.Set(p.Frame)
}

func (f *frameBar) finish() {
	if f.bar == nil {
		return
	}
	_ = f.bar.Finish()
	fmt.Fprintln(f.out)
}
