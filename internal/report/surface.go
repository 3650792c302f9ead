// Package report draws the daily status report.
package report

import "io"

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text run.
type Baseline int

const (
	// BaselineAlphabetic puts the text baseline at y.
	BaselineAlphabetic Baseline = iota
	// BaselineMiddle centres the text vertically on y.
	BaselineMiddle
)

// FontStyle selects regular or bold text.
type FontStyle string

const (
	FontNormal FontStyle = ""
	FontBold   FontStyle = "B"
)

// Surface is a page that can be drawn on in millimetres from the top left corner.
type Surface interface {
	SetFont(style FontStyle, size float64)
	Text(x, y float64, s string, align Align, baseline Baseline)
	Rect(x, y, w, h float64)
	// TextWidth measures s in the current font.
	TextWidth(s string) float64
	Write(w io.Writer) error
}
