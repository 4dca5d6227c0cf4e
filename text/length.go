package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// LengthMode selects how the length of narrative text is counted.
type LengthMode int

const (
	// LengthUTF16 counts UTF-16 code units, the string length reported by
	// the browser-based report editor. Characters outside the Basic
	// Multilingual Plane (emoji) count twice.
	LengthUTF16 LengthMode = iota
	// LengthRunes counts Unicode code points
	LengthRunes
	// LengthVisible strips HTML markup, collapses whitespace and
	// NFC-normalizes before counting code points
	LengthVisible
)

// String returns a human-readable representation of the length mode
func (m LengthMode) String() string {
	switch m {
	case LengthUTF16:
		return "utf16"
	case LengthRunes:
		return "runes"
	case LengthVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// ParseLengthMode parses the String form of a LengthMode. The empty string
// selects LengthUTF16.
func ParseLengthMode(s string) (LengthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf16":
		return LengthUTF16, nil
	case "runes":
		return LengthRunes, nil
	case "visible":
		return LengthVisible, nil
	default:
		return LengthUTF16, fmt.Errorf("unknown text length mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m LengthMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *LengthMode) UnmarshalText(b []byte) error {
	parsed, err := ParseLengthMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Counter measures text length in a fixed mode. The zero value counts
// UTF-16 code units. A Counter holds no mutable state and is safe for
// concurrent use.
type Counter struct {
	mode LengthMode
}

// NewCounter creates a counter for the given mode
func NewCounter(mode LengthMode) Counter {
	return Counter{mode: mode}
}

// Mode returns the counter's length mode
func (c Counter) Mode() LengthMode {
	return c.mode
}

// Len returns the length of s in the counter's mode
func (c Counter) Len(s string) int {
	return Length(s, c.mode)
}

// Length returns the length of s in the given mode. Unknown modes fall back
// to LengthUTF16.
func Length(s string, mode LengthMode) int {
	if s == "" {
		return 0
	}
	switch mode {
	case LengthRunes:
		return utf8.RuneCountInString(s)
	case LengthVisible:
		return utf8.RuneCountInString(VisibleText(s))
	default:
		return UTF16Len(s)
	}
}

// UTF16Len returns the number of UTF-16 code units needed to encode s.
// Invalid UTF-8 bytes count as one unit each (they decode to U+FFFD).
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// VisibleText returns the text a reader would see when s is rendered as
// rich-text HTML: tags dropped, script/style content skipped, entities
// decoded, runs of whitespace collapsed to one space, NFC-normalized.
// Plain text without markup passes through with only whitespace and
// normalization applied.
func VisibleText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return collapse(s)
	}

	var b strings.Builder
	for _, n := range nodes {
		writeVisible(n, &b)
	}
	return collapse(b.String())
}

func writeVisible(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if isSkippedElement(n.DataAtom) {
			return
		}
		if n.DataAtom == atom.Br {
			b.WriteByte(' ')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisible(c, b)
	}

	if n.Type == html.ElementNode && isBlockElement(n.DataAtom) {
		b.WriteByte(' ')
	}
}

func isSkippedElement(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Template, atom.Noscript:
		return true
	}
	return false
}

func isBlockElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Tr, atom.Td, atom.Th, atom.Blockquote,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Ul, atom.Ol, atom.Table:
		return true
	}
	return false
}

// collapse joins whitespace-separated fields with single spaces and applies
// NFC so combining sequences count as the characters they render as.
func collapse(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
