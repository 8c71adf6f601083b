// Package export renders day canvases into portable formats.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/Tiliavir/daysketch/internal/model"
)

// Canvas units per millimetre on the page.
const unitsPerMM = 3.0

const (
	marginMM   = 15.0
	headerMM   = 12.0
	textSizePt = 11.0
)

// Page is one day rendered on its own PDF page.
type Page struct {
	Day      model.Day
	Elements []model.Element
}

// PDF writes one A4 page per day to w. Crossed-out elements are drawn in grey.
func PDF(w io.Writer, pages []Page) error {
	p := gofpdf.New("P", "mm", "A4", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetMargins(marginMM, marginMM, marginMM)
	p.SetAutoPageBreak(false, marginMM)
	if len(pages) == 0 {
		p.AddPage()
	}
	for _, pg := range pages {
		p.AddPage()
		p.SetFont("Helvetica", "B", 14)
		p.SetTextColor(0, 0, 0)
		p.Text(marginMM, marginMM, tr(fmt.Sprintf("%s  %s", pg.Day.Name, pg.Day.ID)))
		for _, e := range pg.Elements {
			if err := drawElement(p, tr, e); err != nil {
				return fmt.Errorf("%s element %d: %w", pg.Day.ID, e.ID, err)
			}
		}
	}
	if err := p.Error(); err != nil {
		return err
	}
	return p.Output(w)
}

func drawElement(p *gofpdf.Fpdf, tr func(string) string, e model.Element) error {
	r, g, b, err := RGB(e.StrokeColor)
	if err != nil {
		return err
	}
	if e.CrossedOut {
		r, g, b = 160, 160, 160
	}
	p.SetDrawColor(r, g, b)
	p.SetFillColor(r, g, b)
	p.SetTextColor(r, g, b)
	p.SetLineWidth(e.StrokeWidth / unitsPerMM)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	switch e.Type {
	case model.ElementText:
		x, y := toPage(e.Points[0])
		p.SetFont("Helvetica", "", textSizePt)
		text := tr(e.Text)
		p.Text(x, y, text)
		if e.CrossedOut {
			width := p.GetStringWidth(text)
			p.SetLineWidth(0.3)
			p.Line(x, y-1, x+width, y-1)
		}
	default:
		if len(e.Points) == 1 {
			x, y := toPage(e.Points[0])
			p.Circle(x, y, e.StrokeWidth/unitsPerMM/2, "F")
			return nil
		}
		for i := 1; i < len(e.Points); i++ {
			x1, y1 := toPage(e.Points[i-1])
			x2, y2 := toPage(e.Points[i])
			p.Line(x1, y1, x2, y2)
		}
	}
	return nil
}

func toPage(pt model.Point) (float64, float64) {
	return marginMM + pt.X/unitsPerMM, marginMM + headerMM + pt.Y/unitsPerMM
}

// RGB parses a #rgb, #rrggbb or #rrggbbaa color. Alpha is ignored.
func RGB(color string) (int, int, int, error) {
	if !model.ValidColor(color) {
		return 0, 0, 0, fmt.Errorf("invalid color %q", color)
	}
	hex := color[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	return int((v >> 16) & 0xff), int((v >> 8) & 0xff), int(v & 0xff), nil
}
