// Package layout estimates the printed height of inspection-report sections
// and groups them into pages before PDF or print rendering.
//
// The package never measures rendered output. Heights are estimated from a
// configurable cost model and used to decide which sections share a page.
//
// # Content Analysis
//
// The [Analyzer] turns one [model.Section] into a [SectionContentAnalysis]:
//
//	analyzer := layout.NewAnalyzer()
//	a := analyzer.AnalyzeSection(section)
//	fmt.Println(a.EstimatedHeight, a.FindingsCount, a.MediaCount)
//
// A section costs a fixed header, an info block sized by its field count,
// and either a "no defects" placeholder or, per finding, a base cost plus a
// per-media cost plus a per-character cost for narrative and recommendation
// text.
//
// # Page Planning
//
// The [Planner] makes one forward pass over the sections, filling pages
// greedily and never reordering:
//
//	pages := layout.CalculatePageLayout(report.Sections)
//	for _, pg := range pages {
//	    fmt.Println(pg.PageID, pg.SectionIDs(), pg.IsOverflow)
//	}
//
// The "report_details" metadata section is skipped. A section taller than
// [HeightConfig.LargeSectionFraction] of the available height gets a page of
// its own; if it is taller than the whole page the [PageGroup] is marked
// IsOverflow and the renderer decides how to cope.
//
// # Configuration
//
// All constants live in [HeightConfig]:
//
//	config := layout.DefaultHeightConfig()
//	config.MediaHeight = 140
//	planner, err := layout.NewPlannerWithConfig(config)
//
// [HeightConfigForPage] derives the page budget from a [model.PageSpec].
// CharacterHeight and LargeSectionFraction are uncalibrated heuristics and
// are expected to be tuned per template.
//
// # Statistics and Verification
//
// [GetPageLayoutStats] summarizes a layout and [Verify] checks a layout
// against the ordering, budget, isolation and overflow rules above.
package layout
