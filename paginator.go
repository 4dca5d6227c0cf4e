package reportpager

import (
	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
	"github.com/tsawler/reportpager/text"
)

// Paginator provides a fluent interface for laying out report sections.
// Each configuration method returns a new Paginator instance, making it
// safe for concurrent use and allowing method chaining.
//
// A Paginator keeps a reference to the caller's sections until a terminal
// method runs but never modifies them.
type Paginator struct {
	sections []model.Section
	options  LayoutOptions
}

// clone creates a shallow copy of the Paginator with a deep copy of options.
func (p *Paginator) clone() *Paginator {
	return &Paginator{
		sections: p.sections,
		options:  p.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Paginator instance)
// ============================================================================

// WithConfig replaces the cost model and page budget. Page and text mode
// overrides set with PageSpec and TextMode still apply on top of it.
//
// Example:
//
//	pages, _, err := reportpager.Paginate(sections).WithConfig(cfg).Layout()
func (p *Paginator) WithConfig(config layout.HeightConfig) *Paginator {
	newP := p.clone()
	newP.options.config = config
	return newP
}

// Compact selects the compact cost model for denser print layouts.
//
// Example:
//
//	pages, _, err := reportpager.Paginate(sections).Compact().Layout()
func (p *Paginator) Compact() *Paginator {
	return p.WithConfig(layout.CompactHeightConfig())
}

// PageSpec derives the page budget from a paper size, orientation and
// margins instead of the config's page height and margin.
//
// Example:
//
//	spec := model.PageSpec{Size: model.A4, Orientation: model.Landscape}
//	pages, _, err := reportpager.Paginate(sections).PageSpec(spec).Layout()
func (p *Paginator) PageSpec(spec model.PageSpec) *Paginator {
	newP := p.clone()
	newP.options.page = &spec
	return newP
}

// TextMode selects how narrative length is measured.
//
// Example:
//
//	pages, _, err := reportpager.Paginate(sections).TextMode(text.LengthVisible).Layout()
func (p *Paginator) TextMode(mode text.LengthMode) *Paginator {
	newP := p.clone()
	newP.options.textMode = &mode
	return newP
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Config returns the effective height config, or ErrInvalidConfig if the
// options combine into an unusable one.
func (p *Paginator) Config() (layout.HeightConfig, error) {
	return p.options.heightConfig()
}

// Analyze returns the height estimate of every paginated section, in order.
func (p *Paginator) Analyze() ([]layout.SectionContentAnalysis, error) {
	cfg, err := p.options.heightConfig()
	if err != nil {
		return nil, err
	}
	a, err := layout.NewAnalyzerWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeSections(p.sections), nil
}

// Layout groups the sections into pages. It returns the pages, warnings
// about content the renderer should look at, and an error only if the
// configuration is invalid. An empty section list yields no pages.
//
// Example:
//
//	pages, warnings, err := reportpager.Paginate(sections).Layout()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range warnings {
//	    log.Println("Warning:", w.Message)
//	}
func (p *Paginator) Layout() ([]layout.PageGroup, []Warning, error) {
	cfg, err := p.options.heightConfig()
	if err != nil {
		return nil, nil, err
	}
	planner, err := layout.NewPlannerWithConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	pages := planner.CalculatePageLayout(p.sections)
	return pages, collectWarnings(pages, cfg), nil
}

// Stats lays out the sections and summarizes the result.
//
// Example:
//
//	stats, err := reportpager.Paginate(sections).Stats()
//	fmt.Println(stats)
func (p *Paginator) Stats() (layout.LayoutStats, error) {
	pages, _, err := p.Layout()
	if err != nil {
		return layout.LayoutStats{}, err
	}
	return layout.GetPageLayoutStats(pages), nil
}

// Verify lays out the sections and checks the result against every layout
// invariant. A nil error means the layout is sound.
func (p *Paginator) Verify() error {
	cfg, err := p.options.heightConfig()
	if err != nil {
		return err
	}
	planner, err := layout.NewPlannerWithConfig(cfg)
	if err != nil {
		return err
	}
	return layout.Verify(p.sections, planner.CalculatePageLayout(p.sections), cfg)
}
