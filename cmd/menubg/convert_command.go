package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"menubg/internal/config"
	"menubg/internal/converter"
	"menubg/internal/deps"
	"menubg/internal/fileutil"
	"menubg/internal/logging"
	"menubg/internal/preflight"
	"menubg/internal/prompt"
	"menubg/internal/watch"
	"menubg/internal/workflow"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool
	var located string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Back up, launch the converter, and install its output",
		Long: "Run the full replacement workflow: take the one-time backup, start RAD Video\n" +
			"Tools, wait for you to convert your video to BK2, then install the result.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, assumeYes, located)
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.Flags().StringVar(&located, "output", "", "Converted BK2 to install; replaces anything at the expected output path")
	return cmd
}

func runConvert(cmd *cobra.Command, cc *commandContext, assumeYes bool, located string) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	logger := cc.loggerValue()
	if err := preflight.Failed(preflight.RunAll(cmd.Context(), cfg)); err != nil {
		return err
	}
	converterPath, err := deps.FindConverter(preflight.ConverterSearch(cfg))
	if err != nil {
		return fmt.Errorf("%w; set paths.converter_dir, or convert the video yourself and run `menubg install-file`", err)
	}
	if strings.TrimSpace(located) != "" {
		if located, err = resolveInputFile(located); err != nil {
			return err
		}
	}

	svc, err := cc.assetService()
	if err != nil {
		return err
	}
	w, err := cc.newWorker()
	if err != nil {
		return err
	}
	defer w.Close()

	events := make(chan workflow.Event, 16)
	bridge := workflow.NewBridge()
	machine := workflow.New(workflow.Options{
		Assets:        svc,
		Launcher:      converter.NewExec(logger),
		ConverterPath: converterPath,
		Output:        located,
		Events:        events,
		Logger:        logger,
	})

	var final workflow.State
	job, err := w.Submit(cmd.Context(), "convert", func(jctx context.Context) error {
		var runErr error
		final, runErr = workflow.Run(jctx, machine, bridge)
		return runErr
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := &convertPresenter{
		out:      out,
		colorize: shouldColorize(out),
		prompter: &prompt.Prompter{
			In:          cmd.InOrStdin(),
			Out:         out,
			AssumeYes:   assumeYes,
			Interactive: isTerminal(cmd.InOrStdin()),
		},
		logger: logger,
	}

	for {
		select {
		case ev := <-events:
			p.event(ev)
		case q := <-bridge.Questions():
			p.drain(events)
			q.Answer(p.answer(cmd.Context(), q))
		case <-job.Done():
			p.drain(events)
			err := job.Err()
			if errors.Is(err, workflow.ErrCancelled) {
				fmt.Fprintln(out, renderStatusLine("Cancelled", statusWarn, "the live file was not replaced", p.colorize))
				return nil
			}
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}
			layout := machine.Layout()
			msg := layout.LivePath
			if st := svc.Status(); st.Live.Exists {
				msg = fmt.Sprintf("%s (%s)", layout.LivePath, humanize.Bytes(uint64(st.Live.SizeBytes)))
			}
			fmt.Fprintln(out, renderStatusLine(stateLabel(final), stateKind(final), msg, p.colorize))
			fmt.Fprintln(out, "Start the game to see the new menu background. Run `menubg restore` to undo.")
			return nil
		}
	}
}

type convertPresenter struct {
	out      io.Writer
	colorize bool
	prompter *prompt.Prompter
	logger   *slog.Logger
}

func (p *convertPresenter) event(ev workflow.Event) {
	msg := ev.Detail
	if ev.Err != nil {
		msg = ev.Err.Error()
	}
	fmt.Fprintln(p.out, renderStatusLine(stateLabel(ev.To), stateKind(ev.To), msg, p.colorize))
}

// drain prints transitions queued before a question so output stays ordered.
func (p *convertPresenter) drain(events <-chan workflow.Event) {
	for {
		select {
		case ev := <-events:
			p.event(ev)
		default:
			return
		}
	}
}

func (p *convertPresenter) answer(ctx context.Context, q workflow.Question) workflow.Answer {
	switch q.Kind {
	case workflow.AskConfirmConverted:
		ok, err := p.confirmConverted(ctx, q)
		return workflow.Answer{Confirmed: ok, Err: err}
	case workflow.AskLocateOutput:
		path, err := p.locateOutput(ctx, q.Expected)
		return workflow.Answer{Path: path, Err: err}
	default:
		return workflow.Answer{Err: fmt.Errorf("unknown question %d", q.Kind)}
	}
}

func (p *convertPresenter) confirmConverted(ctx context.Context, q workflow.Question) (bool, error) {
	details := []string{
		fmt.Sprintf("RAD Video Tools is running (%s, pid %d).", q.Process.Path, q.Process.PID),
		"1. Select your video and click \"Bink it!\".",
		"2. Save the output as " + q.Expected,
		"3. Wait for the conversion to finish, then answer here.",
	}

	notices := make(chan string, 1)
	stop := make(chan struct{})
	w, err := watch.Start(ctx, q.Expected, watch.DefaultSettle, p.logger)
	if err != nil {
		p.logger.Warn("output watcher unavailable", logging.Error(err))
		close(notices)
	} else {
		go func() {
			defer close(notices)
			select {
			case found := <-w.Found():
				notices <- fmt.Sprintf("%s appeared (%s)", found.Path, humanize.Bytes(uint64(found.SizeBytes)))
			case <-stop:
			}
		}()
	}

	ok, err := p.prompter.Confirm(ctx, "Has the conversion finished?", details, notices)
	close(stop)
	if w != nil {
		_ = w.Close()
	}
	return ok, err
}

func (p *convertPresenter) locateOutput(ctx context.Context, expected string) (string, error) {
	fmt.Fprintln(p.out, renderStatusLine("Output", statusWarn, "nothing found at "+expected, p.colorize))
	path, err := p.prompter.Path(ctx, "Where did the converter save the BK2 file? (empty to cancel)", expected, func(path string) error {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return err
		}
		ok, err := fileutil.Exists(expanded)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not a file", expanded)
		}
		return nil
	})
	if err != nil || path == "" {
		return "", err
	}
	return config.ExpandPath(path)
}
