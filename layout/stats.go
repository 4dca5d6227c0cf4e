package layout

import "fmt"

// LayoutStats summarizes a page layout for diagnostics.
type LayoutStats struct {
	TotalPages             int     `json:"total_pages" yaml:"total_pages"`
	TotalSections          int     `json:"total_sections" yaml:"total_sections"`
	EmptySections          int     `json:"empty_sections" yaml:"empty_sections"`
	SingleSectionPages     int     `json:"single_section_pages" yaml:"single_section_pages"`
	MultiSectionPages      int     `json:"multi_section_pages" yaml:"multi_section_pages"`
	AverageSectionsPerPage float64 `json:"average_sections_per_page" yaml:"average_sections_per_page"`
	OverflowPages          int     `json:"overflow_pages" yaml:"overflow_pages"`
}

// GetPageLayoutStats aggregates statistics over a planner result. An empty
// layout yields all-zero stats.
func GetPageLayoutStats(pages []PageGroup) LayoutStats {
	var stats LayoutStats
	stats.TotalPages = len(pages)

	for _, pg := range pages {
		stats.TotalSections += len(pg.Sections)
		for _, s := range pg.Sections {
			if s.IsEmpty {
				stats.EmptySections++
			}
		}

		switch {
		case len(pg.Sections) == 1:
			stats.SingleSectionPages++
		case len(pg.Sections) > 1:
			stats.MultiSectionPages++
		}

		if pg.IsOverflow {
			stats.OverflowPages++
		}
	}

	if stats.TotalPages > 0 {
		stats.AverageSectionsPerPage = float64(stats.TotalSections) / float64(stats.TotalPages)
	}

	return stats
}

// String returns a one-line summary of the stats
func (s LayoutStats) String() string {
	return fmt.Sprintf("%d pages, %d sections (%d empty), %d single / %d multi, %.2f sections/page, %d overflowing",
		s.TotalPages, s.TotalSections, s.EmptySections,
		s.SingleSectionPages, s.MultiSectionPages,
		s.AverageSectionsPerPage, s.OverflowPages)
}
