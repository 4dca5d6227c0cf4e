package model

// Unit is a length unit expressed in CSS pixels (1/96 inch). Layout heights
// throughout the module are CSS pixels, the unit the print renderer lays
// pages out in.
type Unit float64

// Length units
const (
	Px Unit = 1
	In Unit = 96
	Pt Unit = 96.0 / 72.0
	Cm Unit = 96 / 2.54
	Mm Unit = 96 / 25.4
)

// ToPixels converts a value in the given unit to CSS pixels
func ToPixels(value float64, unit Unit) float64 {
	return value * float64(unit)
}

// FromPixels converts CSS pixels to the given unit
func FromPixels(px float64, unit Unit) float64 {
	return px / float64(unit)
}

// PageSize represents paper dimensions in CSS pixels.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard paper sizes.
var (
	Letter = PageSize{Width: 8.5 * 96, Height: 11 * 96}
	Legal  = PageSize{Width: 8.5 * 96, Height: 14 * 96}
	A4     = PageSize{Width: 21.0 * float64(Cm), Height: 29.7 * float64(Cm)}
	A5     = PageSize{Width: 14.8 * float64(Cm), Height: 21.0 * float64(Cm)}
)

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// String returns a human-readable representation of the orientation
func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return "unknown"
	}
}

// Margin represents page margins in CSS pixels.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(px float64) Margin {
	return Margin{Top: px, Right: px, Bottom: px, Left: px}
}

// PageSpec describes the physical page the report is printed on.
//
// A zero Size or Margin is replaced by the defaults: US Letter, portrait,
// 30px margins. A borderless page therefore cannot be described here; set
// the layout config's PageMargin to 0 instead.
type PageSpec struct {
	Size        PageSize
	Orientation Orientation
	Margin      Margin
}

// DefaultPageSpec returns the page the report renderer uses by default.
func DefaultPageSpec() PageSpec {
	return PageSpec{
		Size:        Letter,
		Orientation: Portrait,
		Margin:      UniformMargin(30),
	}
}

// Resolved returns a PageSpec with all zero values replaced by defaults.
func (p PageSpec) Resolved() PageSpec {
	d := DefaultPageSpec()
	r := p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	return r
}

// Dimensions returns the paper width and height accounting for orientation.
func (p PageSpec) Dimensions() (width, height float64) {
	r := p.Resolved()
	if r.Orientation == Landscape {
		return r.Size.Height, r.Size.Width
	}
	return r.Size.Width, r.Size.Height
}

// AvailableHeight returns the printable height: paper height minus the top
// and bottom margins. It is never negative.
func (p PageSpec) AvailableHeight() float64 {
	r := p.Resolved()
	_, h := r.Dimensions()
	avail := h - r.Margin.Top - r.Margin.Bottom
	if avail < 0 {
		return 0
	}
	return avail
}
