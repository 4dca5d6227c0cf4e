package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/reportpager/layout"
)

// reportStats is one entry of the stats output. File keeps entries apart
// when several inputs declare the same report ID.
type reportStats struct {
	File     string             `json:"file" yaml:"file"`
	ReportID string             `json:"report_id" yaml:"report_id"`
	Stats    layout.LayoutStats `json:"stats" yaml:"stats"`
}

func newStatsCmd(a *app) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "stats <report-file>...",
		Short: "Print layout statistics for one or more reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.plan(cmd.Context(), args)
			if err != nil {
				return err
			}

			if summary {
				for i, r := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", args[i], r.ReportID, r.Stats)
				}
				return nil
			}

			stats := make([]reportStats, len(results))
			for i, r := range results {
				stats[i] = reportStats{File: args[i], ReportID: r.ReportID, Stats: r.Stats}
			}
			return a.write(cmd, stats)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "Print one line per report instead of structured output")

	return cmd
}
