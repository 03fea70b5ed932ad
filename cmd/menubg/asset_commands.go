package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"menubg/internal/asset"
	"menubg/internal/config"
	"menubg/internal/fileutil"
	"menubg/internal/preflight"
)

func newInstallFileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install-file <file.bk2>",
		Short: "Install an already converted BK2 file",
		Long: "Back up the original menu background (once) and install the given BK2 file\n" +
			"in its place without launching the converter.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveInputFile(args[0])
			if err != nil {
				return err
			}
			svc, err := prepareAssets(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			var backedUp bool
			_, err = runJob(cmd.Context(), ctx, "install-file", func(jctx context.Context) error {
				copied, err := svc.Backup(jctx)
				if err != nil {
					return err
				}
				backedUp = copied
				return svc.Install(jctx, source)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			layout := svc.Layout()
			fmt.Fprintln(out, backupLine(layout, backedUp, colorize))
			fmt.Fprintln(out, renderStatusLine("Installed", statusOK, fmt.Sprintf("%s -> %s", source, layout.LivePath), colorize))
			return nil
		},
	}
}

func newBackupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Take the one-time backup of the original menu background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := prepareAssets(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			live, err := fileutil.Exists(svc.Layout().LivePath)
			if err != nil {
				return err
			}
			if !live {
				return fmt.Errorf("%w: live asset %s", asset.ErrMissingPath, svc.Layout().LivePath)
			}
			var copied bool
			_, err = runJob(cmd.Context(), ctx, "backup", func(jctx context.Context) error {
				var err error
				copied, err = svc.Backup(jctx)
				return err
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, backupLine(svc.Layout(), copied, shouldColorize(out)))
			return nil
		},
	}
}

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Put the original menu background back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := prepareAssets(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			if _, err := runJob(cmd.Context(), ctx, "restore", svc.Restore); err != nil {
				if errors.Is(err, asset.ErrNoBackup) {
					return fmt.Errorf("nothing to restore: %w", err)
				}
				return err
			}
			out := cmd.OutOrStdout()
			layout := svc.Layout()
			msg := layout.LivePath
			if st := svc.Status(); st.Live.Exists {
				msg = fmt.Sprintf("%s (%s)", layout.LivePath, humanize.Bytes(uint64(st.Live.SizeBytes)))
			}
			fmt.Fprintln(out, renderStatusLine("Restored", statusOK, msg, shouldColorize(out)))
			return nil
		},
	}
}

// prepareAssets runs the path preflight and builds the asset service.
func prepareAssets(ctx context.Context, cc *commandContext) (*asset.Service, error) {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := preflight.Failed(preflight.RunAll(ctx, cfg)); err != nil {
		return nil, err
	}
	return cc.assetService()
}

// runJob executes fn on the background worker and waits for it. It returns
// how long fn ran.
func runJob(ctx context.Context, cc *commandContext, name string, fn func(context.Context) error) (time.Duration, error) {
	w, err := cc.newWorker()
	if err != nil {
		return 0, err
	}
	defer w.Close()
	job, err := w.Submit(ctx, name, fn)
	if err != nil {
		return 0, err
	}
	if err := job.Wait(ctx); err != nil {
		return 0, err
	}
	return job.Duration(), nil
}

func resolveInputFile(path string) (string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	ok, err := fileutil.Exists(expanded)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", asset.ErrMissingPath, expanded)
	}
	return expanded, nil
}

func backupLine(layout asset.Layout, copied bool, colorize bool) string {
	if copied {
		return renderStatusLine("Backup", statusOK, "original saved to "+layout.BackupPath, colorize)
	}
	return renderStatusLine("Backup", statusInfo, "already present at "+layout.BackupPath+"; kept as is", colorize)
}
