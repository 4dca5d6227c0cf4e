package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/reportpager"
	"github.com/tsawler/reportpager/format"
	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
)

func newPlanCmd(a *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "plan <report-file>...",
		Short: "Print the page groups of one or more reports",
		Long: `Lays out each report file (JSON or YAML, a report object or a bare list
of sections) and prints its page groups. Several files are planned
concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.plan(cmd.Context(), args)
			if err != nil {
				return err
			}

			if verify {
				if err := a.verify(args, results); err != nil {
					return err
				}
			}

			if len(results) == 1 {
				return a.write(cmd, results[0])
			}
			return a.write(cmd, results)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Check every layout against the pagination invariants")

	return cmd
}

// readReports decodes every file, naming reports without an ID after
// their file.
func readReports(paths []string) ([]model.Report, error) {
	reports := make([]model.Report, len(paths))
	for i, path := range paths {
		r, err := format.ReadReport(path)
		if err != nil {
			return nil, err
		}
		if r.ID == "" {
			r.ID = path
		}
		reports[i] = r
	}
	return reports, nil
}

// plan lays out every report file, logging warnings as it goes.
func (a *app) plan(ctx context.Context, paths []string) ([]reportpager.ReportLayout, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reports, err := readReports(paths)
	if err != nil {
		return nil, err
	}
	engine, err := a.engine()
	if err != nil {
		return nil, err
	}

	results, err := engine.PlanReports(ctx, reports)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		for _, w := range r.Warnings {
			if w.Kind == reportpager.WarningUntitledSection {
				a.logger.Warn(w.Message, zap.String("report", r.ReportID), zap.String("page", w.PageID))
			}
		}
	}
	return results, nil
}

// verify re-reads the inputs and checks each layout against them.
func (a *app) verify(paths []string, results []reportpager.ReportLayout) error {
	reports, err := readReports(paths)
	if err != nil {
		return err
	}
	cfg, err := a.heightConfig()
	if err != nil {
		return err
	}

	var errs []error
	for i, r := range reports {
		if err := layout.Verify(r.Sections, results[i].Pages, cfg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", paths[i], err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.logger.Info("layouts verified", zap.Int("reports", len(reports)))
	return nil
}
