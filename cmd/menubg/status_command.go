package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"menubg/internal/asset"
	"menubg/internal/deps"
	"menubg/internal/journal"
	"menubg/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show paths, installed files, and tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := ctx.assetService()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config: %s\n\n", ctx.configPath)

			st := svc.Status()
			rows := [][]string{
				fileRow("Live asset", st.Live),
				fileRow("Backup", st.Backup),
				fileRow("Converter output", st.Converted),
			}
			fmt.Fprintln(out, renderTable([]string{"File", "Present", "Size", "Path"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
			fmt.Fprintln(out)

			lines := renderSectionHeader("Paths", colorize)
			for _, r := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Tools", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cmd.Context(), cfg), colorize)...)

			if store, err := ctx.journalStore(); err == nil {
				if last, ok, err := store.Latest(cmd.Context(), journal.KindInstall); err == nil && ok {
					lines = append(lines, "")
					lines = append(lines, renderStatusLine("Last install", statusInfo,
						fmt.Sprintf("%s from %s", humanize.Time(last.CreatedAt), last.Source), colorize))
				}
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func fileRow(name string, st asset.FileState) []string {
	size := "-"
	if st.Exists {
		size = humanize.Bytes(uint64(st.SizeBytes))
	}
	return []string{name, yesNo(st.Exists), size, st.Path}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses))
	for _, s := range statuses {
		switch {
		case s.Available:
			lines = append(lines, renderStatusLine(s.Name, statusOK, fmt.Sprintf("Ready (command: %s)", s.Command), colorize))
		case s.Optional:
			detail := s.Detail
			if detail == "" {
				detail = "not available"
			}
			lines = append(lines, renderStatusLine(s.Name, statusWarn, fmt.Sprintf("%s - %s", detail, s.Description), colorize))
		default:
			lines = append(lines, renderStatusLine(s.Name, statusError, "not available", colorize))
		}
	}
	return lines
}
