package layout

import (
	"github.com/tsawler/reportpager/model"
	"github.com/tsawler/reportpager/text"
)

// SectionContentAnalysis is the estimated printed cost of one section.
type SectionContentAnalysis struct {
	SectionID  string `json:"section_id" yaml:"section_id"`
	SectionKey string `json:"section_key" yaml:"section_key"`
	Title      string `json:"title" yaml:"title"`

	// EstimatedHeight is an upper-bound heuristic in CSS pixels, never negative
	EstimatedHeight float64 `json:"estimated_height" yaml:"estimated_height"`

	// IsEmpty is true when the section has no findings
	IsEmpty bool `json:"is_empty" yaml:"is_empty"`

	FindingsCount int `json:"findings_count" yaml:"findings_count"`
	MediaCount    int `json:"media_count" yaml:"media_count"`
}

// Analyzer converts report sections into height estimates. It holds only an
// immutable config and is safe for concurrent use.
type Analyzer struct {
	config  HeightConfig
	counter text.Counter
}

// NewAnalyzer creates an analyzer with DefaultHeightConfig.
func NewAnalyzer() *Analyzer {
	a, _ := NewAnalyzerWithConfig(DefaultHeightConfig())
	return a
}

// NewAnalyzerWithConfig creates an analyzer with a custom cost model. It
// returns ErrInvalidConfig if the config does not validate.
func NewAnalyzerWithConfig(config HeightConfig) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		config:  config,
		counter: text.NewCounter(config.TextMode),
	}, nil
}

// Config returns the analyzer's cost model
func (a *Analyzer) Config() HeightConfig {
	return a.config
}

// AnalyzeSection estimates the printed height of one section. It never
// fails: nil info, findings or media contribute nothing.
func (a *Analyzer) AnalyzeSection(section model.Section) SectionContentAnalysis {
	cfg := a.config
	height := cfg.SectionHeaderHeight

	if fields := section.InfoFieldCount(); fields > 0 {
		height += cfg.InfoBlockHeight + float64(fields)*cfg.InfoFieldHeight
	}

	media := 0
	if len(section.Findings) == 0 {
		height += cfg.NoDefectsHeight
	} else {
		for _, f := range section.Findings {
			chars := a.counter.Len(f.Narrative) + a.counter.Len(f.Recommendation)
			height += cfg.FindingBaseHeight +
				float64(len(f.Media))*cfg.MediaHeight +
				float64(chars)*cfg.CharacterHeight
			media += len(f.Media)
		}
	}

	return SectionContentAnalysis{
		SectionID:       section.ID,
		SectionKey:      section.Key,
		Title:           section.Title,
		EstimatedHeight: height,
		IsEmpty:         len(section.Findings) == 0,
		FindingsCount:   len(section.Findings),
		MediaCount:      media,
	}
}

// AnalyzeSections analyzes every paginated section in order, skipping the
// report-details metadata section.
func (a *Analyzer) AnalyzeSections(sections []model.Section) []SectionContentAnalysis {
	analyses := make([]SectionContentAnalysis, 0, len(sections))
	for _, s := range sections {
		if s.IsMetadata() {
			continue
		}
		analyses = append(analyses, a.AnalyzeSection(s))
	}
	return analyses
}

// AnalyzeSectionContent estimates a section's height with DefaultHeightConfig.
func AnalyzeSectionContent(section model.Section) SectionContentAnalysis {
	return defaultAnalyzer.AnalyzeSection(section)
}

var defaultAnalyzer = NewAnalyzer()
