package reportpager

import (
	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
	"github.com/tsawler/reportpager/text"
)

// LayoutOptions holds configuration for a pagination run.
type LayoutOptions struct {
	// Cost model and page budget
	config layout.HeightConfig

	// Paper the budget is derived from; nil keeps the config's budget
	page *model.PageSpec

	// Narrative length mode; nil keeps the config's mode
	textMode *text.LengthMode
}

// defaultOptions returns the default layout options.
func defaultOptions() LayoutOptions {
	return LayoutOptions{
		config:   layout.DefaultHeightConfig(),
		page:     nil,
		textMode: nil,
	}
}

// clone creates a deep copy of LayoutOptions.
func (o LayoutOptions) clone() LayoutOptions {
	newOpts := LayoutOptions{config: o.config}

	if o.page != nil {
		page := *o.page
		newOpts.page = &page
	}
	if o.textMode != nil {
		mode := *o.textMode
		newOpts.textMode = &mode
	}

	return newOpts
}

// heightConfig applies the page and text mode overrides to the base config
// and validates the result.
func (o LayoutOptions) heightConfig() (layout.HeightConfig, error) {
	cfg := o.config
	if o.page != nil {
		cfg = cfg.WithPage(*o.page)
	}
	if o.textMode != nil {
		cfg.TextMode = *o.textMode
	}
	if err := cfg.Validate(); err != nil {
		return layout.HeightConfig{}, err
	}
	return cfg, nil
}
