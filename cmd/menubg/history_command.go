package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent backups, installs, restores, and border runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.journalStore()
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				sum := e.SHA256
				if len(sum) > 12 {
					sum = sum[:12]
				}
				rows = append(rows, []string{
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					string(e.Kind),
					humanize.Bytes(uint64(e.SizeBytes)),
					sum,
					e.Source,
					e.Target,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Kind", "Size", "SHA256", "Source", "Target"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d entries shown\n", len(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}
