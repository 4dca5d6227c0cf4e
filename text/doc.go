// Package text measures the length of finding narratives and
// recommendations for the per-character height estimate.
//
// Lengths are a linear proxy for rendered height, not a font measurement.
// Three [LengthMode] values are supported:
//
//   - [LengthUTF16] - UTF-16 code units, matching what the report editor
//     reports as the string length (default)
//   - [LengthRunes] - Unicode code points
//   - [LengthVisible] - code points of the visible text after stripping
//     HTML markup produced by rich-text editors
//
// Use a [Counter] to fix the mode once:
//
//	c := text.NewCounter(text.LengthVisible)
//	n := c.Len("<p>Loose <b>shingles</b></p>") // 14
//
// [VisibleText] exposes the markup-stripping step on its own.
package text
