package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/tsawler/reportpager/model"
	"github.com/tsawler/reportpager/text"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// ============================================================================
// Test helpers
// ============================================================================

func emptySection(id string) model.Section {
	return model.Section{ID: id, Key: "key-" + id, Title: "Section " + id}
}

func narrativeSection(id string, chars int) model.Section {
	s := emptySection(id)
	s.Findings = []model.Finding{{Narrative: strings.Repeat("x", chars)}}
	return s
}

func infoSection(id string, fields int) model.Section {
	s := emptySection(id)
	s.Info = make(map[string]any, fields)
	for i := 0; i < fields; i++ {
		s.Info[string(rune('a'+i))] = i
	}
	return s
}

func media(n int) []model.Media {
	m := make([]model.Media, n)
	for i := range m {
		m[i] = model.Media{ID: string(rune('m' + i)), ContentType: "image/jpeg"}
	}
	return m
}

// ============================================================================
// Analyzer Tests
// ============================================================================

func TestAnalyzeSection(t *testing.T) {
	tests := []struct {
		name         string
		section      model.Section
		wantHeight   float64
		wantEmpty    bool
		wantFindings int
		wantMedia    int
	}{
		{
			name:       "empty section gets placeholder",
			section:    emptySection("1"),
			wantHeight: 60 + 40,
			wantEmpty:  true,
		},
		{
			name:       "info fields",
			section:    infoSection("2", 3),
			wantHeight: 60 + 16 + 3*24 + 40,
			wantEmpty:  true,
		},
		{
			name:       "empty info map costs nothing",
			section:    model.Section{ID: "3", Info: map[string]any{}},
			wantHeight: 60 + 40,
			wantEmpty:  true,
		},
		{
			name: "findings with media and text",
			section: model.Section{
				ID: "4",
				Findings: []model.Finding{
					{
						Media:          media(2),
						Narrative:      strings.Repeat("n", 50),
						Recommendation: strings.Repeat("r", 25),
					},
					{},
				},
			},
			wantHeight:   60 + (80 + 2*100 + 75*0.2) + 80,
			wantFindings: 2,
			wantMedia:    2,
		},
		{
			name: "info and findings",
			section: model.Section{
				ID:       "5",
				Info:     map[string]any{"material": "asphalt"},
				Findings: []model.Finding{{Media: media(1)}},
			},
			wantHeight:   60 + 16 + 24 + 80 + 100,
			wantFindings: 1,
			wantMedia:    1,
		},
	}

	a := NewAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.AnalyzeSection(tt.section)
			if !almostEqual(got.EstimatedHeight, tt.wantHeight, 1e-9) {
				t.Errorf("EstimatedHeight = %v, want %v", got.EstimatedHeight, tt.wantHeight)
			}
			if got.IsEmpty != tt.wantEmpty {
				t.Errorf("IsEmpty = %v, want %v", got.IsEmpty, tt.wantEmpty)
			}
			if got.FindingsCount != tt.wantFindings {
				t.Errorf("FindingsCount = %d, want %d", got.FindingsCount, tt.wantFindings)
			}
			if got.MediaCount != tt.wantMedia {
				t.Errorf("MediaCount = %d, want %d", got.MediaCount, tt.wantMedia)
			}
			if got.SectionID != tt.section.ID || got.SectionKey != tt.section.Key || got.Title != tt.section.Title {
				t.Errorf("identity = (%q, %q, %q), want (%q, %q, %q)",
					got.SectionID, got.SectionKey, got.Title,
					tt.section.ID, tt.section.Key, tt.section.Title)
			}
			if got.EstimatedHeight < 0 {
				t.Errorf("EstimatedHeight = %v, want >= 0", got.EstimatedHeight)
			}
		})
	}
}

func TestAnalyzeSectionContentUsesDefaults(t *testing.T) {
	s := narrativeSection("1", 100)
	got := AnalyzeSectionContent(s)
	want := NewAnalyzer().AnalyzeSection(s)
	if got != want {
		t.Errorf("AnalyzeSectionContent() = %+v, want %+v", got, want)
	}
}

func TestAnalyzeSectionZeroCostConfig(t *testing.T) {
	cfg := DefaultHeightConfig()
	cfg.SectionHeaderHeight = 0
	cfg.NoDefectsHeight = 0
	a, err := NewAnalyzerWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzerWithConfig: %v", err)
	}
	if got := a.AnalyzeSection(model.Section{}).EstimatedHeight; got != 0 {
		t.Errorf("zero-cost empty section height = %v, want 0", got)
	}
}

func TestAnalyzeSectionTextModes(t *testing.T) {
	s := model.Section{
		ID: "1",
		Findings: []model.Finding{{
			Narrative:      "<p>Roof <b>leaks</b></p>",
			Recommendation: "Fix 👍",
		}},
	}

	tests := []struct {
		mode  text.LengthMode
		chars int
	}{
		{text.LengthUTF16, 24 + 6},
		{text.LengthRunes, 24 + 5},
		{text.LengthVisible, 10 + 5},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := DefaultHeightConfig()
			cfg.TextMode = tt.mode
			a, err := NewAnalyzerWithConfig(cfg)
			if err != nil {
				t.Fatalf("NewAnalyzerWithConfig: %v", err)
			}
			want := 60 + 80 + float64(tt.chars)*0.2
			if got := a.AnalyzeSection(s).EstimatedHeight; !almostEqual(got, want, 1e-9) {
				t.Errorf("EstimatedHeight = %v, want %v", got, want)
			}
		})
	}
}

func TestAnalyzeSectionsSkipsMetadata(t *testing.T) {
	sections := []model.Section{
		{ID: "0", Key: model.MetadataSectionKey, Findings: []model.Finding{{Narrative: "client info"}}},
		emptySection("1"),
		emptySection("2"),
	}
	got := NewAnalyzer().AnalyzeSections(sections)
	if len(got) != 2 {
		t.Fatalf("AnalyzeSections() returned %d analyses, want 2", len(got))
	}
	if got[0].SectionID != "1" || got[1].SectionID != "2" {
		t.Errorf("AnalyzeSections() order = [%s %s], want [1 2]", got[0].SectionID, got[1].SectionID)
	}
}

func TestNewAnalyzerWithConfigRejectsInvalid(t *testing.T) {
	cfg := DefaultHeightConfig()
	cfg.MediaHeight = -1
	if _, err := NewAnalyzerWithConfig(cfg); err == nil {
		t.Error("expected error for negative media height")
	}
}
