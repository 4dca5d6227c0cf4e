package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
	"github.com/tsawler/reportpager/text"
)

// Base selects the starting cost model and page before explicit values are
// applied. Explicit height values (page_height, page_margin and the costs)
// from the file win over Base even when Base comes from the environment.
type Base struct {
	Preset string `yaml:"preset" env:"REPORTPAGER_PRESET" env-description:"cost model preset: default or compact (explicit height values in the config file still win)"`
	Page   Page   `yaml:"page"`
}

// Page describes the paper the budget is derived from. An empty Page keeps
// the preset's page budget. A page_height or page_margin set in the file
// overrides the values derived from Page, including REPORTPAGER_PAGE_*.
//
// An unset Margin means the default 30px. A margin given explicitly as 0,
// in the file or the environment, yields a borderless page.
type Page struct {
	Size        string  `yaml:"size" env:"REPORTPAGER_PAGE_SIZE" env-description:"paper size: letter, legal, a4 or a5 (page_height in the config file wins)"`
	Orientation string  `yaml:"orientation" env:"REPORTPAGER_PAGE_ORIENTATION" env-description:"portrait or landscape (page_height in the config file wins)"`
	Margin      float64 `yaml:"margin" env:"REPORTPAGER_PAGE_MARGIN" env-description:"uniform page margin in CSS pixels, 0 for borderless (page_margin in the config file wins)"`

	marginSet bool
}

// Heights mirrors layout.HeightConfig with file and environment bindings.
type Heights struct {
	SectionHeaderHeight  float64 `yaml:"section_header_height" env:"REPORTPAGER_SECTION_HEADER_HEIGHT" env-description:"height charged per section title"`
	InfoBlockHeight      float64 `yaml:"info_block_height" env:"REPORTPAGER_INFO_BLOCK_HEIGHT" env-description:"height charged once for a non-empty info block"`
	InfoFieldHeight      float64 `yaml:"info_field_height" env:"REPORTPAGER_INFO_FIELD_HEIGHT" env-description:"height charged per info field"`
	NoDefectsHeight      float64 `yaml:"no_defects_height" env:"REPORTPAGER_NO_DEFECTS_HEIGHT" env-description:"placeholder height for sections without findings"`
	FindingBaseHeight    float64 `yaml:"finding_base_height" env:"REPORTPAGER_FINDING_BASE_HEIGHT" env-description:"height charged per finding"`
	MediaHeight          float64 `yaml:"media_height" env:"REPORTPAGER_MEDIA_HEIGHT" env-description:"height charged per media attachment"`
	CharacterHeight      float64 `yaml:"character_height" env:"REPORTPAGER_CHARACTER_HEIGHT" env-description:"height charged per narrative character"`
	PageHeight           float64 `yaml:"page_height" env:"REPORTPAGER_PAGE_HEIGHT" env-description:"full page height"`
	PageMargin           float64 `yaml:"page_margin" env:"REPORTPAGER_PAGE_MARGIN_HEIGHT" env-description:"top and bottom margin"`
	GroupSpacing         float64 `yaml:"group_spacing" env:"REPORTPAGER_GROUP_SPACING" env-description:"spacing between sections on a page"`
	LargeSectionFraction float64 `yaml:"large_section_fraction" env:"REPORTPAGER_LARGE_SECTION_FRACTION" env-description:"share of the page above which a section is printed alone"`
	TextMode             string  `yaml:"text_mode" env:"REPORTPAGER_TEXT_MODE" env-description:"narrative length mode: utf16, runes or visible"`
}

// Engine holds settings for the concurrent layout engine.
type Engine struct {
	CacheSize   int `json:"cache_size" yaml:"cache_size" env:"REPORTPAGER_CACHE_SIZE" env-description:"number of layouts kept in memory (0 = library default)"`
	Concurrency int `json:"concurrency" yaml:"concurrency" env:"REPORTPAGER_CONCURRENCY" env-description:"reports laid out in parallel (0 = library default)"`
}

// File is the complete configuration: YAML file contents overridden by
// REPORTPAGER_* environment variables. The one exception is the page
// selection (REPORTPAGER_PRESET and REPORTPAGER_PAGE_*): it only sets the
// starting point, so explicit height values in the file still win.
type File struct {
	Base    `yaml:",inline"`
	Heights `yaml:",inline"`
	Engine  Engine `yaml:"engine"`
}

// Load reads the configuration at path, then applies environment overrides.
// An empty path reads the environment only. Values absent from both keep
// the preset's defaults.
//
// Resolution order: preset, then page (if given), then explicit height
// values from the file, then environment variables.
func Load(path string) (*File, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return load(data)
}

// Parse is Load for configuration already in memory.
func Parse(data []byte) (*File, error) {
	return load(data)
}

func load(data []byte) (*File, error) {
	var base Base
	if err := yaml.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cleanenv.ReadEnv(&base); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	set, err := marginGiven(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	base.Page.marginSet = set

	start, err := base.HeightConfig()
	if err != nil {
		return nil, err
	}

	f := &File{Base: base, Heights: heightsFrom(start)}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cleanenv.ReadEnv(f); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if _, err := f.HeightConfig(); err != nil {
		return nil, err
	}
	return f, nil
}

// HeightConfig returns the preset, adjusted to the page if one is set.
func (b Base) HeightConfig() (layout.HeightConfig, error) {
	var cfg layout.HeightConfig
	switch strings.ToLower(strings.TrimSpace(b.Preset)) {
	case "", "default":
		cfg = layout.DefaultHeightConfig()
	case "compact":
		cfg = layout.CompactHeightConfig()
	default:
		return cfg, fmt.Errorf("%w: unknown preset %q", layout.ErrInvalidConfig, b.Preset)
	}

	if b.Page == (Page{}) {
		return cfg, nil
	}
	spec, err := b.Page.Spec()
	if err != nil {
		return cfg, err
	}
	cfg = cfg.WithPage(spec)
	if b.Page.marginSet && b.Page.Margin == 0 {
		cfg.PageMargin = 0
	}
	return cfg, nil
}

// marginGiven reports whether the page margin is set explicitly, in the
// file or the environment, so that an explicit 0 is told apart from unset.
func marginGiven(data []byte) (bool, error) {
	var doc struct {
		Page struct {
			Margin *float64 `yaml:"margin"`
		} `yaml:"page"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, err
	}
	if doc.Page.Margin != nil {
		return true, nil
	}
	_, ok := os.LookupEnv("REPORTPAGER_PAGE_MARGIN")
	return ok, nil
}

// Spec converts the page settings to a model.PageSpec. Empty fields take
// the model defaults, so a zero Margin here means 30px; Base.HeightConfig
// applies an explicit zero margin on top.
func (p Page) Spec() (model.PageSpec, error) {
	var spec model.PageSpec

	switch strings.ToLower(strings.TrimSpace(p.Size)) {
	case "":
	case "letter":
		spec.Size = model.Letter
	case "legal":
		spec.Size = model.Legal
	case "a4":
		spec.Size = model.A4
	case "a5":
		spec.Size = model.A5
	default:
		return spec, fmt.Errorf("%w: unknown page size %q", layout.ErrInvalidConfig, p.Size)
	}

	switch strings.ToLower(strings.TrimSpace(p.Orientation)) {
	case "", "portrait":
		spec.Orientation = model.Portrait
	case "landscape":
		spec.Orientation = model.Landscape
	default:
		return spec, fmt.Errorf("%w: unknown orientation %q", layout.ErrInvalidConfig, p.Orientation)
	}

	if p.Margin < 0 {
		return spec, fmt.Errorf("%w: page margin must not be negative, got %v", layout.ErrInvalidConfig, p.Margin)
	}
	if p.Margin > 0 {
		spec.Margin = model.UniformMargin(p.Margin)
	}

	return spec.Resolved(), nil
}

// HeightConfig converts the loaded values to a validated layout.HeightConfig.
func (f *File) HeightConfig() (layout.HeightConfig, error) {
	mode, err := text.ParseLengthMode(f.TextMode)
	if err != nil {
		return layout.HeightConfig{}, fmt.Errorf("%w: %v", layout.ErrInvalidConfig, err)
	}
	cfg := layout.HeightConfig{
		SectionHeaderHeight:  f.SectionHeaderHeight,
		InfoBlockHeight:      f.InfoBlockHeight,
		InfoFieldHeight:      f.InfoFieldHeight,
		NoDefectsHeight:      f.NoDefectsHeight,
		FindingBaseHeight:    f.FindingBaseHeight,
		MediaHeight:          f.MediaHeight,
		CharacterHeight:      f.CharacterHeight,
		PageHeight:           f.PageHeight,
		PageMargin:           f.PageMargin,
		GroupSpacing:         f.GroupSpacing,
		LargeSectionFraction: f.LargeSectionFraction,
		TextMode:             mode,
	}
	if err := cfg.Validate(); err != nil {
		return layout.HeightConfig{}, err
	}
	return cfg, nil
}

func heightsFrom(c layout.HeightConfig) Heights {
	return Heights{
		SectionHeaderHeight:  c.SectionHeaderHeight,
		InfoBlockHeight:      c.InfoBlockHeight,
		InfoFieldHeight:      c.InfoFieldHeight,
		NoDefectsHeight:      c.NoDefectsHeight,
		FindingBaseHeight:    c.FindingBaseHeight,
		MediaHeight:          c.MediaHeight,
		CharacterHeight:      c.CharacterHeight,
		PageHeight:           c.PageHeight,
		PageMargin:           c.PageMargin,
		GroupSpacing:         c.GroupSpacing,
		LargeSectionFraction: c.LargeSectionFraction,
		TextMode:             c.TextMode.String(),
	}
}

// EnvHelp describes every supported environment variable.
func EnvHelp() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(&File{}, &header)
}
