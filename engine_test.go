package reportpager

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func batch(n int) []model.Report {
	reports := make([]model.Report, n)
	for i := range reports {
		sections := []model.Section{{ID: "details", Key: model.MetadataSectionKey}}
		for j := 0; j <= i%7; j++ {
			s := model.Section{
				ID:    fmt.Sprintf("r%d-s%d", i, j),
				Key:   fmt.Sprintf("k%d", j),
				Title: fmt.Sprintf("Section %d", j),
			}
			if j%2 == 1 {
				s.Findings = []model.Finding{{
					Narrative: strings.Repeat("n", 200*(i%5)*j),
					Media:     make([]model.Media, j%3),
				}}
			}
			sections = append(sections, s)
		}
		reports[i] = model.Report{ID: fmt.Sprintf("report-%d", i), Title: "Inspection", Sections: sections}
	}
	return reports
}

func TestNewEngine(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)
	assert.Equal(t, layout.DefaultHeightConfig(), e.Config())

	compact, err := NewEngine(WithConfig(layout.CompactHeightConfig()), WithConcurrency(2), WithCacheSize(4))
	require.NoError(t, err)
	assert.Equal(t, layout.CompactHeightConfig(), compact.Config())

	nilLogger, err := NewEngine(WithLogger(nil))
	require.NoError(t, err)
	assert.NotPanics(t, func() { nilLogger.Layout(testSections()) })
}

func TestNewEngineErrors(t *testing.T) {
	_, err := NewEngine(WithConcurrency(0))
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = NewEngine(WithCacheSize(-1))
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = NewEngine(WithConfig(layout.HeightConfig{}))
	assert.ErrorIs(t, err, layout.ErrInvalidConfig)
}

func TestEngineLayoutUsesCache(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	first, _ := e.Layout(testSections())
	second, _ := e.Layout(testSections())
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), e.CacheStats().Hits)
	assert.Equal(t, uint64(1), e.CacheStats().Misses)

	uncached, err := NewEngine(WithoutCache())
	require.NoError(t, err)
	third, _ := uncached.Layout(testSections())
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("cached and uncached layouts differ (-cached +uncached):\n%s", diff)
	}
	assert.Zero(t, uncached.CacheStats())
}

func TestEngineLayoutMatchesPaginate(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	sections := append(testSections(), overflowSection("crawlspace"))
	gotPages, gotWarnings := e.Layout(sections)
	wantPages, wantWarnings, err := Paginate(sections).Layout()
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(wantPages, gotPages))
	assert.Equal(t, wantWarnings, gotWarnings)
}

func TestPlanReportsMatchesSequential(t *testing.T) {
	reports := batch(40)

	e, err := NewEngine(WithConcurrency(4), WithCacheSize(8))
	require.NoError(t, err)
	got, err := e.PlanReports(context.Background(), reports)
	require.NoError(t, err)
	require.Len(t, got, len(reports))

	sequential, err := NewEngine(WithoutCache())
	require.NoError(t, err)
	for i, r := range reports {
		want := sequential.LayoutReport(r)
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Errorf("report %s differs from sequential layout (-want +got):\n%s", r.ID, diff)
		}
		assert.NoError(t, layout.Verify(r.Sections, got[i].Pages, e.Config()))
	}
}

func TestPlanReportsEmpty(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	got, err := e.PlanReports(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlanReportsCancelled(t *testing.T) {
	e, err := NewEngine(WithConcurrency(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := e.PlanReports(ctx, batch(10))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestEngineLogsOverflow(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := NewEngine(WithLogger(zap.New(core)))
	require.NoError(t, err)

	report := model.Report{ID: "r1", Sections: []model.Section{overflowSection("attic")}}
	result := e.LayoutReport(report)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningOverflow, result.Warnings[0].Kind)

	overflow := logs.FilterMessage("section overflows page").All()
	require.Len(t, overflow, 1)
	assert.Equal(t, zapcore.WarnLevel, overflow[0].Level)
	assert.Equal(t, "attic", overflow[0].ContextMap()["section"])

	assert.Equal(t, 1, logs.FilterMessage("report laid out").Len())
	assert.Equal(t, 1, logs.FilterMessage("layout cache lookup").Len())
}
