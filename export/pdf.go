// Package export renders a grouped formation grid into downloadable
// documents: a printable PDF and an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/TomiStyle/formaciones-api/grid"
)

const (
	pdfTopMargin  = 30.0 // mm reserved for the page heading
	pdfSideMargin = 15.0
	pdfMinFontPt  = 7.0
	pdfMaxFontPt  = 18.0
)

// PDF writes one A4 portrait page per group: the formation title, a
// "<axis> N - M people" line, then a single full-name column. The font
// size scales with the space left under the heading, clamped to
// 7-18 pt.
func PDF(w io.Writer, title, axisLabel string, groups []grid.Group) error {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := doc.GetPageSize()

	if len(groups) == 0 {
		doc.AddPage()
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 7, tr(title), "", 1, "C", false, 0, "")
	}

	for _, g := range groups {
		doc.AddPage()

		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 7, tr(title), "", 1, "C", false, 0, "")
		doc.SetFontSize(12)
		subtitle := fmt.Sprintf("%s %d - %d people", axisLabel, g.Index, len(g.People))
		doc.CellFormat(0, 7, tr(subtitle), "", 1, "C", false, 0, "")

		rows := len(g.People)
		if rows == 0 {
			rows = 1
		}
		approxRowHeight := (pageH - pdfTopMargin) / float64(rows)
		font := approxRowHeight * 0.4
		if font < pdfMinFontPt {
			font = pdfMinFontPt
		}
		if font > pdfMaxFontPt {
			font = pdfMaxFontPt
		}
		cellH := font*0.3528 + 3 // glyph height in mm plus padding
		tableW := pageW - 2*pdfSideMargin

		doc.SetY(pdfTopMargin)
		doc.SetX(pdfSideMargin)
		doc.SetFont("Helvetica", "B", font)
		doc.SetFillColor(230, 230, 230)
		doc.CellFormat(tableW, cellH, tr("Name and surname"), "1", 1, "C", true, 0, "")

		doc.SetFont("Helvetica", "", font)
		for _, p := range g.People {
			doc.SetX(pdfSideMargin)
			doc.CellFormat(tableW, cellH, tr(p.FullName()), "1", 1, "L", false, 0, "")
		}
	}
	return doc.Output(w)
}
