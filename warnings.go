package reportpager

import (
	"fmt"
	"strings"

	"github.com/tsawler/reportpager/layout"
)

// WarningKind classifies a Warning.
type WarningKind int

const (
	// WarningOverflow marks a section taller than the available page height.
	WarningOverflow WarningKind = iota
	// WarningUntitledSection marks a section with a blank title.
	WarningUntitledSection
)

// String returns the string representation of the kind.
func (k WarningKind) String() string {
	switch k {
	case WarningOverflow:
		return "overflow"
	case WarningUntitledSection:
		return "untitled-section"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *WarningKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "overflow":
		*k = WarningOverflow
	case "untitled-section":
		*k = WarningUntitledSection
	default:
		return fmt.Errorf("unknown warning kind %q", b)
	}
	return nil
}

// Warning describes a non-fatal layout issue. The layout is still usable;
// warnings point the renderer or the report author at content that will
// not print cleanly.
type Warning struct {
	Kind      WarningKind `json:"kind" yaml:"kind"`
	PageID    string      `json:"page_id" yaml:"page_id"`
	SectionID string      `json:"section_id" yaml:"section_id"`
	Message   string      `json:"message" yaml:"message"`
}

// String returns the warning as a single line.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.PageID, w.Message)
}

// FormatWarnings joins warnings into a single string, one per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// collectWarnings reports overflowing pages and untitled sections in page
// order.
func collectWarnings(pages []layout.PageGroup, cfg layout.HeightConfig) []Warning {
	var warnings []Warning
	available := cfg.AvailablePageHeight()

	for _, pg := range pages {
		for _, s := range pg.Sections {
			if strings.TrimSpace(s.Title) == "" {
				warnings = append(warnings, Warning{
					Kind:      WarningUntitledSection,
					PageID:    pg.PageID,
					SectionID: s.SectionID,
					Message:   fmt.Sprintf("section %q has no title", s.SectionID),
				})
			}
		}
		if pg.IsOverflow {
			s := pg.Sections[0]
			warnings = append(warnings, Warning{
				Kind:      WarningOverflow,
				PageID:    pg.PageID,
				SectionID: s.SectionID,
				Message: fmt.Sprintf("section %q needs %.0f of %.0f available height and will span pages",
					s.SectionID, s.EstimatedHeight, available),
			})
		}
	}

	return warnings
}
