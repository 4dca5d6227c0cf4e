package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsawler/reportpager/model"
)

// heightEpsilon absorbs floating point drift when re-summing page heights.
const heightEpsilon = 1e-6

// Verify checks that pages is a valid layout of sections under config:
//
//   - every page has at least one section and pages are numbered page-1, page-2, ...
//   - the pages' sections, concatenated, are the paginated input in order
//   - each page's height is its sections' heights plus GroupSpacing between them
//   - multi-section pages fit the available page height
//   - sections above the large-section threshold are alone on their page
//   - IsOverflow is set exactly on single-section pages taller than the page
//
// It returns nil for a valid layout, otherwise an error joining one
// ErrLayoutViolation per problem found.
func Verify(sections []model.Section, pages []PageGroup, config HeightConfig) error {
	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrLayoutViolation}, args...)...))
	}

	available := config.AvailablePageHeight()
	threshold := config.LargeSectionThreshold()

	var placed []SectionContentAnalysis
	for i, pg := range pages {
		if want := pageID(i + 1); pg.PageID != want {
			violation("page %d has ID %q, want %q", i+1, pg.PageID, want)
		}
		if len(pg.Sections) == 0 {
			violation("%s has no sections", pg.PageID)
			continue
		}

		sum := 0.0
		for j, s := range pg.Sections {
			sum += s.EstimatedHeight
			if j > 0 {
				sum += config.GroupSpacing
			}
			if s.EstimatedHeight > threshold && len(pg.Sections) > 1 {
				violation("%s: large section %q (%.1f > %.1f) shares the page",
					pg.PageID, s.SectionID, s.EstimatedHeight, threshold)
			}
		}
		if math.Abs(sum-pg.EstimatedHeight) > heightEpsilon {
			violation("%s: estimated height %.3f, sections add up to %.3f", pg.PageID, pg.EstimatedHeight, sum)
		}

		if len(pg.Sections) > 1 && pg.EstimatedHeight > available {
			violation("%s: %d sections need %.1f, only %.1f available",
				pg.PageID, len(pg.Sections), pg.EstimatedHeight, available)
		}

		wantOverflow := len(pg.Sections) == 1 && pg.Sections[0].EstimatedHeight > available
		if pg.IsOverflow != wantOverflow {
			violation("%s: IsOverflow = %v, want %v", pg.PageID, pg.IsOverflow, wantOverflow)
		}

		placed = append(placed, pg.Sections...)
	}

	expected := model.PaginatedSections(sections)
	if len(placed) != len(expected) {
		violation("layout places %d sections, report has %d paginated sections", len(placed), len(expected))
	}
	for i := 0; i < len(placed) && i < len(expected); i++ {
		got, want := placed[i], expected[i]
		if got.SectionID != want.ID || got.SectionKey != want.Key {
			violation("position %d holds section %q (%s), want %q (%s)",
				i, got.SectionID, got.SectionKey, want.ID, want.Key)
			break
		}
	}

	return errors.Join(errs...)
}
