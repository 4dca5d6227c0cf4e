// Package reportpager splits inspection reports into printable pages.
//
// It estimates the printed height of every report section with a tunable
// cost model and greedily groups consecutive sections into pages that fit a
// fixed page budget. Sections too tall to share a page are printed alone.
//
// Basic usage:
//
//	pages, warnings, err := reportpager.Paginate(report.Sections).Layout()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", reportpager.FormatWarnings(warnings))
//	}
//
// With options:
//
//	pages, _, err := reportpager.Paginate(report.Sections).
//	    WithConfig(layout.CompactHeightConfig()).
//	    PageSpec(model.PageSpec{Size: model.A4}).
//	    TextMode(text.LengthVisible).
//	    Layout()
//
// For many reports at once, or to reuse results across calls, use an
// [Engine]. The lower-level layout package is also available.
package reportpager

import (
	"github.com/tsawler/reportpager/model"
)

// Paginate returns a Paginator for the given sections using the default
// cost model. The report-details section, if present, is skipped.
//
// Example:
//
//	pages, warnings, err := reportpager.Paginate(sections).Layout()
func Paginate(sections []model.Section) *Paginator {
	return &Paginator{
		sections: sections,
		options:  defaultOptions(),
	}
}

// PaginateReport is Paginate for a whole report.
func PaginateReport(report model.Report) *Paginator {
	return Paginate(report.Sections)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	stats := reportpager.Must(reportpager.Paginate(sections).Stats())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustLayout is a helper that wraps a call to Layout() and panics if the
// error is non-nil. It discards warnings and returns just the pages.
//
// Example:
//
//	pages := reportpager.MustLayout(reportpager.Paginate(sections).Layout())
func MustLayout[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
