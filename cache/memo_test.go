package cache

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
)

func sampleSections() []model.Section {
	return []model.Section{
		{ID: "0", Key: model.MetadataSectionKey, Title: "Details"},
		{ID: "1", Key: "roof", Title: "Roof", Info: map[string]any{"material": "asphalt"}},
		{ID: "2", Key: "attic", Title: "Attic", Findings: []model.Finding{
			{Narrative: strings.Repeat("x", 3000), Media: []model.Media{{ID: "p1"}}},
		}},
		{ID: "3", Key: "electrical", Title: "Electrical"},
	}
}

func TestMemoLayout(t *testing.T) {
	memo, err := New(8)
	require.NoError(t, err)
	planner := layout.NewPlanner()
	sections := sampleSections()

	first, hit := memo.Layout(planner, sections)
	assert.False(t, hit)
	assert.Equal(t, planner.CalculatePageLayout(sections), first)

	second, hit := memo.Layout(planner, sections)
	assert.True(t, hit)
	assert.Equal(t, first, second)

	stats := memo.Stats()
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, stats)
}

func TestMemoReturnsPrivateCopies(t *testing.T) {
	memo, err := New(8)
	require.NoError(t, err)
	planner := layout.NewPlanner()
	sections := sampleSections()

	first, _ := memo.Layout(planner, sections)
	require.NotEmpty(t, first)
	first[0].PageID = "tampered"
	first[0].Sections[0].Title = "tampered"

	second, hit := memo.Layout(planner, sections)
	require.True(t, hit)
	assert.Equal(t, "page-1", second[0].PageID)
	assert.Equal(t, "Roof", second[0].Sections[0].Title)
}

func TestMemoDistinguishesConfigs(t *testing.T) {
	memo, err := New(8)
	require.NoError(t, err)
	sections := sampleSections()

	compact, err := layout.NewPlannerWithConfig(layout.CompactHeightConfig())
	require.NoError(t, err)

	_, hit := memo.Layout(layout.NewPlanner(), sections)
	assert.False(t, hit)
	_, hit = memo.Layout(compact, sections)
	assert.False(t, hit, "a different config must not reuse the default layout")
	assert.Equal(t, 2, memo.Stats().Entries)
}

func TestMemoEvictsAndPurges(t *testing.T) {
	memo, err := New(2)
	require.NoError(t, err)
	planner := layout.NewPlanner()

	for i := 0; i < 3; i++ {
		memo.Layout(planner, []model.Section{{ID: strconv.Itoa(i), Key: "k"}})
	}
	assert.Equal(t, 2, memo.Stats().Entries)

	_, hit := memo.Layout(planner, []model.Section{{ID: "0", Key: "k"}})
	assert.False(t, hit, "oldest entry should have been evicted")

	memo.Purge()
	assert.Equal(t, 0, memo.Stats().Entries)
}

func TestMemoConcurrentUse(t *testing.T) {
	memo, err := New(0)
	require.NoError(t, err)
	planner := layout.NewPlanner()
	sections := sampleSections()
	want := planner.CalculatePageLayout(sections)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, _ := memo.Layout(planner, sections)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()

	stats := memo.Stats()
	assert.Equal(t, uint64(16*50), stats.Hits+stats.Misses)
}

func TestNewRejectsNegativeSize(t *testing.T) {
	_, err := New(-1)
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	cfg := layout.DefaultHeightConfig()
	base := sampleSections()
	fp := Fingerprint(base, cfg)

	assert.Equal(t, fp, Fingerprint(sampleSections(), cfg), "fingerprint must be deterministic")

	changed := sampleSections()
	changed[2].Findings[0].Narrative += "!"
	assert.NotEqual(t, fp, Fingerprint(changed, cfg), "narrative change")

	changed = sampleSections()
	changed[1].Info["age"] = 12
	assert.NotEqual(t, fp, Fingerprint(changed, cfg), "info field count change")

	changed = sampleSections()
	changed[1].Info["material"] = "metal"
	assert.Equal(t, fp, Fingerprint(changed, cfg), "info values do not affect layout")

	changed = sampleSections()
	changed[2].Findings[0].Media[0].URL = "https://example.com/p1.jpg"
	assert.Equal(t, fp, Fingerprint(changed, cfg), "media contents do not affect layout")

	changed = sampleSections()
	changed[1].ID, changed[1].Key = "1r", "oof"
	assert.NotEqual(t, fp, Fingerprint(changed, cfg), "field boundaries are length-prefixed")

	other := cfg
	other.GroupSpacing++
	assert.NotEqual(t, fp, Fingerprint(base, other), "config change")
}
