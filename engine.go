package reportpager

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/reportpager/cache"
	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
)

// ReportLayout is the layout of one report produced by an Engine.
type ReportLayout struct {
	ReportID string             `json:"report_id" yaml:"report_id"`
	Title    string             `json:"title,omitempty" yaml:"title,omitempty"`
	Pages    []layout.PageGroup `json:"pages" yaml:"pages"`
	Stats    layout.LayoutStats `json:"stats" yaml:"stats"`
	Warnings []Warning          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Engine lays out reports with a fixed configuration, memoising results.
// It is safe for concurrent use.
type Engine struct {
	planner     *layout.Planner
	memo        *cache.Memo
	logger      *zap.Logger
	concurrency int
}

type engineOptions struct {
	config      layout.HeightConfig
	logger      *zap.Logger
	concurrency int
	cacheSize   int
	noCache     bool
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithConfig sets the cost model and page budget.
func WithConfig(config layout.HeightConfig) Option {
	return func(o *engineOptions) { o.config = config }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

// WithConcurrency bounds how many reports PlanReports lays out at once.
// The default is GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *engineOptions) { o.concurrency = n }
}

// WithCacheSize sets how many layouts are memoised. Zero selects
// cache.DefaultSize.
func WithCacheSize(n int) Option {
	return func(o *engineOptions) { o.cacheSize = n }
}

// WithoutCache disables memoisation.
func WithoutCache() Option {
	return func(o *engineOptions) { o.noCache = true }
}

// NewEngine creates an Engine. It fails if the config does not validate or
// an option is out of range.
func NewEngine(opts ...Option) (*Engine, error) {
	o := engineOptions{
		config:      layout.DefaultHeightConfig(),
		logger:      zap.NewNop(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.concurrency < 1 {
		return nil, fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidOption, o.concurrency)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	planner, err := layout.NewPlannerWithConfig(o.config)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		planner:     planner,
		logger:      o.logger,
		concurrency: o.concurrency,
	}
	if !o.noCache {
		if o.cacheSize < 0 {
			return nil, fmt.Errorf("%w: cache size must not be negative, got %d", ErrInvalidOption, o.cacheSize)
		}
		e.memo, err = cache.New(o.cacheSize)
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Config returns the engine's height config.
func (e *Engine) Config() layout.HeightConfig {
	return e.planner.Config()
}

// CacheStats returns memoisation counters. It is all zero when the cache
// is disabled.
func (e *Engine) CacheStats() cache.Stats {
	if e.memo == nil {
		return cache.Stats{}
	}
	return e.memo.Stats()
}

// Layout groups sections into pages. The result is the caller's to modify.
func (e *Engine) Layout(sections []model.Section) ([]layout.PageGroup, []Warning) {
	var pages []layout.PageGroup
	if e.memo != nil {
		var hit bool
		pages, hit = e.memo.Layout(e.planner, sections)
		e.logger.Debug("layout cache lookup", zap.Bool("hit", hit), zap.Int("sections", len(sections)))
	} else {
		pages = e.planner.CalculatePageLayout(sections)
	}

	warnings := collectWarnings(pages, e.planner.Config())
	for _, w := range warnings {
		if w.Kind == WarningOverflow {
			e.logger.Warn("section overflows page",
				zap.String("page", w.PageID),
				zap.String("section", w.SectionID))
		}
	}
	return pages, warnings
}

// LayoutReport lays out a single report.
func (e *Engine) LayoutReport(report model.Report) ReportLayout {
	pages, warnings := e.Layout(report.Sections)
	stats := layout.GetPageLayoutStats(pages)

	e.logger.Debug("report laid out",
		zap.String("report", report.ID),
		zap.Int("pages", stats.TotalPages),
		zap.Int("sections", stats.TotalSections),
		zap.Int("overflow", stats.OverflowPages))

	return ReportLayout{
		ReportID: report.ID,
		Title:    report.Title,
		Pages:    pages,
		Stats:    stats,
		Warnings: warnings,
	}
}

// PlanReports lays out reports concurrently, at most WithConcurrency at a
// time. Results are in input order. If ctx is cancelled, reports not yet
// started are skipped and the context's error is returned.
func (e *Engine) PlanReports(ctx context.Context, reports []model.Report) ([]ReportLayout, error) {
	results := make([]ReportLayout, len(reports))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, r := range reports {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.LayoutReport(r)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("planning reports: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("planning reports: %w", err)
	}

	e.logger.Info("reports planned", zap.Int("reports", len(reports)))
	return results, nil
}
