// Package cache memoizes page layouts.
//
// Layout is a pure function of the section list and the height config, so a
// layout computed once can be reused whenever a report is previewed again
// without edits. A [Memo] keeps the most recently used layouts in an LRU
// keyed by [Fingerprint], a 64-bit xxhash of the inputs:
//
//	memo, _ := cache.New(512)
//	pages, hit := memo.Layout(planner, report.Sections)
//
// Fingerprints are not collision-proof; two different inputs hashing to the
// same value would share a layout.
package cache
