package report

import (
	"strconv"
	"strings"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

const (
	pageCenterX = 105.0
	rightEdgeX  = 190.0
	tableX      = 20.0
	tableY      = 50.0
	headerH     = 10.0
	minRowH     = 10.0
	lineH       = 5.0
	cellPadding = 2.0
)

var (
	columnWidths = []float64{60, 25, 25, 25, 35}
	columnTitles = []string{"Type of Bills", "Passed", "Returned", "Total", "Remarks"}
)

// Layout is the fixed text of the report.
type Layout struct {
	OfficeName  string
	ReportTitle string
	Signatures  []string
}

// Draw renders table onto s and returns the y position of the footer line.
func (l Layout) Draw(s Surface, table *summary.StatusTable) float64 {
	s.SetFont(FontBold, 12)
	s.Text(pageCenterX, 20, l.OfficeName, AlignCenter, BaselineAlphabetic)
	s.SetFont(FontNormal, 11)
	s.Text(pageCenterX, 27, l.ReportTitle, AlignCenter, BaselineAlphabetic)
	s.Text(tableX, 40, "Date: "+table.Date, AlignLeft, BaselineAlphabetic)

	s.SetFont(FontBold, 11)
	x := tableX
	for i, title := range columnTitles {
		s.Rect(x, tableY, columnWidths[i], headerH)
		s.Text(x+columnWidths[i]/2, tableY+headerH/2+2, title, AlignCenter, BaselineAlphabetic)
		x += columnWidths[i]
	}

	s.SetFont(FontNormal, 10)
	y := tableY + headerH
	for _, row := range table.Rows {
		y += l.drawRow(s, row, y)
	}

	footerY := y + 10
	s.SetFont(FontBold, 11)
	s.Text(tableX, footerY, "Percentage of E. Bills being passed: "+table.Percentage, AlignLeft, BaselineAlphabetic)

	s.SetFont(FontNormal, 11)
	for i, line := range l.Signatures {
		s.Text(rightEdgeX, footerY+20+float64(i)*5, line, AlignRight, BaselineAlphabetic)
	}
	return footerY
}

// drawRow draws one table row at y and returns its height.
func (l Layout) drawRow(s Surface, row summary.Row, y float64) float64 {
	remarksW := columnWidths[len(columnWidths)-1]
	lines := WrapText(s, row.Remarks, remarksW-2*cellPadding)

	h := minRowH
	if row.Remarks != "" {
		h = max(minRowH, float64(len(lines))*lineH+4)
	}
	middleY := y + h/2

	cells := []string{
		row.Label,
		strconv.Itoa(row.Passed),
		strconv.Itoa(row.Returned),
		strconv.Itoa(row.Total()),
	}

	x := tableX
	for i, text := range cells {
		s.Rect(x, y, columnWidths[i], h)
		s.Text(x+columnWidths[i]/2, middleY, text, AlignCenter, BaselineMiddle)
		x += columnWidths[i]
	}

	s.Rect(x, y, remarksW, h)
	if row.Remarks != "" {
		startY := middleY - float64(len(lines)-1)*lineH/2
		for i, line := range lines {
			s.Text(x+cellPadding, startY+float64(i)*lineH, line, AlignLeft, BaselineMiddle)
		}
	}
	return h
}

// WrapText splits s on newlines and then greedily on spaces so that no line is wider
// than width. A single word wider than width gets a line of its own.
func WrapText(s Surface, text string, width float64) []string {
	if text == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if s.TextWidth(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// Filename builds the report file name from the date, e.g. Daily_Status_Report_05-03-2025.pdf.
func Filename(prefix, date, ext string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(date))
	return prefix + clean + ext
}
