package layout

import (
	"strconv"

	"github.com/tsawler/reportpager/model"
)

// PageGroup is one printable page's worth of sections.
type PageGroup struct {
	// PageID is "page-N", N counting emitted pages from 1
	PageID string `json:"page_id" yaml:"page_id"`

	// Sections are the sections printed on this page, in report order. Never empty.
	Sections []SectionContentAnalysis `json:"sections" yaml:"sections"`

	// EstimatedHeight is the sum of section heights plus the spacing
	// between them
	EstimatedHeight float64 `json:"estimated_height" yaml:"estimated_height"`

	// IsOverflow is set when the page holds a single section taller than
	// the available page height. The renderer decides how to deal with it.
	IsOverflow bool `json:"is_overflow" yaml:"is_overflow"`
}

// SectionIDs returns the IDs of the sections on the page, in order
func (g PageGroup) SectionIDs() []string {
	ids := make([]string, len(g.Sections))
	for i, s := range g.Sections {
		ids[i] = s.SectionID
	}
	return ids
}

// Planner groups analyzed sections into pages with a single greedy,
// order-preserving pass. A Planner is immutable and safe for concurrent use.
type Planner struct {
	analyzer *Analyzer
}

// NewPlanner creates a planner with DefaultHeightConfig.
func NewPlanner() *Planner {
	return &Planner{analyzer: NewAnalyzer()}
}

// NewPlannerWithConfig creates a planner with a custom cost model and page
// budget. It returns ErrInvalidConfig if the config does not validate.
func NewPlannerWithConfig(config HeightConfig) (*Planner, error) {
	a, err := NewAnalyzerWithConfig(config)
	if err != nil {
		return nil, err
	}
	return &Planner{analyzer: a}, nil
}

// Config returns the planner's cost model
func (p *Planner) Config() HeightConfig {
	return p.analyzer.config
}

// Analyzer returns the analyzer used to estimate section heights
func (p *Planner) Analyzer() *Analyzer {
	return p.analyzer
}

// CalculatePageLayout drops the report-details section, estimates every
// remaining section and groups them into pages. An empty input yields nil.
func (p *Planner) CalculatePageLayout(sections []model.Section) []PageGroup {
	return p.PlanAnalyses(p.analyzer.AnalyzeSections(sections))
}

// PlanAnalyses groups already-analyzed sections into pages.
//
// Sections are placed in order. A section starts a new page when it does
// not fit after the current page's content plus GroupSpacing, or when it is
// large (taller than LargeSectionFraction of the available height). A large
// section is always printed alone; its page is marked IsOverflow when the
// section alone exceeds the available height.
func (p *Planner) PlanAnalyses(analyses []SectionContentAnalysis) []PageGroup {
	cfg := p.analyzer.config
	available := cfg.AvailablePageHeight()
	threshold := cfg.LargeSectionThreshold()

	b := pageBuilder{}
	for _, s := range analyses {
		spacing := 0.0
		if len(b.sections) > 0 {
			spacing = cfg.GroupSpacing
		}
		cost := s.EstimatedHeight + spacing
		canFit := b.height+cost <= available
		isLarge := s.EstimatedHeight > threshold

		if (!canFit || isLarge) && len(b.sections) > 0 {
			b.flush(false)
			cost = s.EstimatedHeight
		}

		b.sections = append(b.sections, s)
		b.height += cost

		if isLarge && len(b.sections) == 1 {
			b.flush(s.EstimatedHeight > available)
		}
	}
	b.flush(false)

	return b.pages
}

// pageBuilder accumulates the page currently being filled.
type pageBuilder struct {
	sections []SectionContentAnalysis
	height   float64
	pages    []PageGroup
}

// flush emits the current page, if any, and starts an empty one.
func (b *pageBuilder) flush(overflow bool) {
	if len(b.sections) == 0 {
		return
	}
	b.pages = append(b.pages, PageGroup{
		PageID:          pageID(len(b.pages) + 1),
		Sections:        b.sections,
		EstimatedHeight: b.height,
		IsOverflow:      overflow,
	})
	b.sections = nil
	b.height = 0
}

func pageID(n int) string {
	return "page-" + strconv.Itoa(n)
}

// CalculatePageLayout groups sections into pages with DefaultHeightConfig.
func CalculatePageLayout(sections []model.Section) []PageGroup {
	return defaultPlanner.CalculatePageLayout(sections)
}

var defaultPlanner = NewPlanner()
