package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// mmPerPoint converts font sizes to page units.
const mmPerPoint = 25.4 / 72

// PDFSurface is an A4 portrait page drawn with the core Helvetica font.
type PDFSurface struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	fontSize  float64
}

// NewPDFSurface creates a single page A4 surface
func NewPDFSurface() *PDFSurface {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineWidth(0.2)
	pdf.AddPage()

	s := &PDFSurface{
		pdf: pdf,
		// core fonts are cp1252; this maps characters such as the bullet
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	s.SetFont(FontNormal, 11)
	return s
}

func (s *PDFSurface) SetFont(style FontStyle, size float64) {
	s.fontSize = size
	s.pdf.SetFont("Helvetica", string(style), size)
}

func (s *PDFSurface) Text(x, y float64, text string, align Align, baseline Baseline) {
	text = s.translate(text)
	switch align {
	case AlignCenter:
		x -= s.pdf.GetStringWidth(text) / 2
	case AlignRight:
		x -= s.pdf.GetStringWidth(text)
	}
	if baseline == BaselineMiddle {
		// roughly half the cap height of Helvetica
		y += s.fontSize * mmPerPoint * 0.35
	}
	s.pdf.Text(x, y, text)
}

func (s *PDFSurface) Rect(x, y, w, h float64) {
	s.pdf.Rect(x, y, w, h, "D")
}

func (s *PDFSurface) TextWidth(text string) float64 {
	return s.pdf.GetStringWidth(s.translate(text))
}

func (s *PDFSurface) Write(w io.Writer) error {
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("failed to draw pdf: %w", err)
	}
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
