package layout

import (
	"fmt"
	"math"

	"github.com/tsawler/reportpager/model"
	"github.com/tsawler/reportpager/text"
)

// HeightConfig holds the cost model used to estimate section heights and the
// page budget they are packed into. All heights are CSS pixels.
//
// HeightConfig is a plain value: copy it, modify the copy, and pass it to
// NewAnalyzerWithConfig or NewPlannerWithConfig. Nothing in this package
// mutates a config after construction.
type HeightConfig struct {
	// SectionHeaderHeight is charged once per section for its title bar
	SectionHeaderHeight float64 `json:"section_header_height" yaml:"section_header_height"`

	// InfoBlockHeight is charged once when a section has at least one info field
	InfoBlockHeight float64 `json:"info_block_height" yaml:"info_block_height"`

	// InfoFieldHeight is charged per info field (one rendered row each)
	InfoFieldHeight float64 `json:"info_field_height" yaml:"info_field_height"`

	// NoDefectsHeight is the "no defects observed" placeholder shown for
	// sections without findings
	NoDefectsHeight float64 `json:"no_defects_height" yaml:"no_defects_height"`

	// FindingBaseHeight is charged per finding
	FindingBaseHeight float64 `json:"finding_base_height" yaml:"finding_base_height"`

	// MediaHeight is charged per media attachment
	MediaHeight float64 `json:"media_height" yaml:"media_height"`

	// CharacterHeight is charged per character of narrative and
	// recommendation text. It is an uncalibrated linear heuristic.
	CharacterHeight float64 `json:"character_height" yaml:"character_height"`

	// PageHeight is the full paper height
	PageHeight float64 `json:"page_height" yaml:"page_height"`

	// PageMargin is applied at both the top and the bottom of the page
	PageMargin float64 `json:"page_margin" yaml:"page_margin"`

	// GroupSpacing separates consecutive sections on one page
	GroupSpacing float64 `json:"group_spacing" yaml:"group_spacing"`

	// LargeSectionFraction is the share of the available page height above
	// which a section is printed on a page of its own. Heuristic; must be
	// in (0, 1].
	LargeSectionFraction float64 `json:"large_section_fraction" yaml:"large_section_fraction"`

	// TextMode selects how narrative length is counted
	TextMode text.LengthMode `json:"text_mode" yaml:"text_mode"`
}

// DefaultHeightConfig returns the cost model used by the report preview and
// export, tuned for US Letter at 96 DPI with 30px margins (996px available).
func DefaultHeightConfig() HeightConfig {
	return HeightConfig{
		SectionHeaderHeight:  60,
		InfoBlockHeight:      16,
		InfoFieldHeight:      24,
		NoDefectsHeight:      40,
		FindingBaseHeight:    80,
		MediaHeight:          100,
		CharacterHeight:      0.2,
		PageHeight:           1056,
		PageMargin:           30,
		GroupSpacing:         24,
		LargeSectionFraction: 0.6,
		TextMode:             text.LengthUTF16,
	}
}

// CompactHeightConfig returns a cost model for the condensed export, which
// prints media as thumbnails and uses a smaller body font.
func CompactHeightConfig() HeightConfig {
	c := DefaultHeightConfig()
	c.SectionHeaderHeight = 40
	c.InfoFieldHeight = 18
	c.NoDefectsHeight = 28
	c.FindingBaseHeight = 56
	c.MediaHeight = 48
	c.CharacterHeight = 0.14
	c.GroupSpacing = 16
	return c
}

// HeightConfigForPage returns the default cost model with the page budget
// taken from spec. Asymmetric top and bottom margins are averaged so that
// AvailablePageHeight equals spec.AvailableHeight().
func HeightConfigForPage(spec model.PageSpec) HeightConfig {
	return DefaultHeightConfig().WithPage(spec)
}

// WithPage returns a copy of c whose page budget is taken from spec.
func (c HeightConfig) WithPage(spec model.PageSpec) HeightConfig {
	r := spec.Resolved()
	_, h := r.Dimensions()
	c.PageHeight = h
	c.PageMargin = (r.Margin.Top + r.Margin.Bottom) / 2
	return c
}

// AvailablePageHeight returns the printable height per page: page height
// minus the top and bottom margins.
func (c HeightConfig) AvailablePageHeight() float64 {
	return c.PageHeight - 2*c.PageMargin
}

// LargeSectionThreshold returns the height above which a section is isolated
// on its own page.
func (c HeightConfig) LargeSectionThreshold() float64 {
	return c.LargeSectionFraction * c.AvailablePageHeight()
}

// Validate reports whether the configuration can be used for layout. All
// costs must be finite and non-negative, the available page height must be
// positive, and LargeSectionFraction must lie in (0, 1].
func (c HeightConfig) Validate() error {
	costs := []struct {
		name  string
		value float64
	}{
		{"section_header_height", c.SectionHeaderHeight},
		{"info_block_height", c.InfoBlockHeight},
		{"info_field_height", c.InfoFieldHeight},
		{"no_defects_height", c.NoDefectsHeight},
		{"finding_base_height", c.FindingBaseHeight},
		{"media_height", c.MediaHeight},
		{"character_height", c.CharacterHeight},
		{"page_margin", c.PageMargin},
		{"group_spacing", c.GroupSpacing},
	}
	for _, cost := range costs {
		if math.IsNaN(cost.value) || math.IsInf(cost.value, 0) || cost.value < 0 {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v",
				ErrInvalidConfig, cost.name, cost.value)
		}
	}

	if math.IsNaN(c.PageHeight) || math.IsInf(c.PageHeight, 0) {
		return fmt.Errorf("%w: page_height must be finite, got %v", ErrInvalidConfig, c.PageHeight)
	}
	if avail := c.AvailablePageHeight(); avail <= 0 {
		return fmt.Errorf("%w: available page height must be positive, got %v (page %v, margin %v)",
			ErrInvalidConfig, avail, c.PageHeight, c.PageMargin)
	}

	// Above 1, a section taller than the page could share it without
	// being flagged as overflowing.
	if math.IsNaN(c.LargeSectionFraction) || c.LargeSectionFraction <= 0 || c.LargeSectionFraction > 1 {
		return fmt.Errorf("%w: large_section_fraction must be in (0, 1], got %v",
			ErrInvalidConfig, c.LargeSectionFraction)
	}

	switch c.TextMode {
	case text.LengthUTF16, text.LengthRunes, text.LengthVisible:
	default:
		return fmt.Errorf("%w: unknown text_mode %d", ErrInvalidConfig, int(c.TextMode))
	}

	return nil
}
