package cache

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tsawler/reportpager/layout"
	"github.com/tsawler/reportpager/model"
)

// DefaultSize is the number of layouts kept by a Memo created with size 0.
const DefaultSize = 256

// Memo caches page layouts keyed by a fingerprint of the sections and the
// height config that produced them. It is safe for concurrent use.
type Memo struct {
	layouts *lru.Cache[uint64, []layout.PageGroup]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// New creates a Memo holding at most size layouts. A size of 0 selects
// DefaultSize.
func New(size int) (*Memo, error) {
	if size == 0 {
		size = DefaultSize
	}
	if size < 0 {
		return nil, fmt.Errorf("cache: size must be positive, got %d", size)
	}
	c, err := lru.New[uint64, []layout.PageGroup](size)
	if err != nil {
		return nil, fmt.Errorf("cache: creating LRU: %w", err)
	}
	return &Memo{layouts: c}, nil
}

// Layout returns the planner's layout of sections, computing and storing it
// on a miss. The returned slice is a private copy; callers may modify it.
func (m *Memo) Layout(planner *layout.Planner, sections []model.Section) (pages []layout.PageGroup, hit bool) {
	key := Fingerprint(sections, planner.Config())

	if cached, ok := m.layouts.Get(key); ok {
		m.hits.Add(1)
		return clonePages(cached), true
	}

	m.misses.Add(1)
	pages = planner.CalculatePageLayout(sections)
	m.layouts.Add(key, clonePages(pages))
	return pages, false
}

// Stats returns hit/miss counters and the current number of entries
func (m *Memo) Stats() Stats {
	return Stats{
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
		Entries: m.layouts.Len(),
	}
}

// Purge drops every cached layout. Counters are kept.
func (m *Memo) Purge() {
	m.layouts.Purge()
}

// Fingerprint hashes everything the layout of sections depends on under
// config: every config field, and per section its ID, key, title, info field
// count, and per finding the media count and the narrative and
// recommendation text. Info values and media contents do not affect layout
// and are not hashed.
func Fingerprint(sections []model.Section, config layout.HeightConfig) uint64 {
	h := fingerprinter{d: xxhash.New()}

	h.writeFloat(config.SectionHeaderHeight)
	h.writeFloat(config.InfoBlockHeight)
	h.writeFloat(config.InfoFieldHeight)
	h.writeFloat(config.NoDefectsHeight)
	h.writeFloat(config.FindingBaseHeight)
	h.writeFloat(config.MediaHeight)
	h.writeFloat(config.CharacterHeight)
	h.writeFloat(config.PageHeight)
	h.writeFloat(config.PageMargin)
	h.writeFloat(config.GroupSpacing)
	h.writeFloat(config.LargeSectionFraction)
	h.writeUint(uint64(config.TextMode))

	h.writeUint(uint64(len(sections)))
	for _, s := range sections {
		h.writeString(s.ID)
		h.writeString(s.Key)
		h.writeString(s.Title)
		h.writeUint(uint64(len(s.Info)))
		h.writeUint(uint64(len(s.Findings)))
		for _, f := range s.Findings {
			h.writeUint(uint64(len(f.Media)))
			h.writeString(f.Narrative)
			h.writeString(f.Recommendation)
		}
	}

	return h.d.Sum64()
}

// fingerprinter writes length-prefixed fields so adjacent strings cannot
// run into each other.
type fingerprinter struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (f *fingerprinter) writeUint(v uint64) {
	binary.LittleEndian.PutUint64(f.buf[:], v)
	_, _ = f.d.Write(f.buf[:])
}

func (f *fingerprinter) writeFloat(v float64) {
	f.writeUint(math.Float64bits(v))
}

func (f *fingerprinter) writeString(s string) {
	f.writeUint(uint64(len(s)))
	_, _ = f.d.WriteString(s)
}

func clonePages(pages []layout.PageGroup) []layout.PageGroup {
	if pages == nil {
		return nil
	}
	out := make([]layout.PageGroup, len(pages))
	for i, pg := range pages {
		out[i] = pg
		out[i].Sections = append([]layout.SectionContentAnalysis(nil), pg.Sections...)
	}
	return out
}
