package export

import (
	"context"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 6.0
)

type pdfRenderer struct{}

func (pdfRenderer) ContentType() string { return "application/pdf" }
func (pdfRenderer) Extension() string   { return ".pdf" }
func (pdfRenderer) Inline() bool        { return false }

func (pdfRenderer) Render(_ context.Context, w io.Writer, rep Report) error {
	orientation := "L"
	if rep.Set.Single {
		orientation = "P"
	}

	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pageW, _ := pdf.GetPageSize()
		half := (pageW - 2*pdfMargin) / 2
		pdf.SetY(-pdfMargin)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(half, 5, rep.GeneratedAt.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, "Page "+strconv.Itoa(pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(reportHeading(rep)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if rep.Set.Single {
		renderPDFRecord(pdf, tr, rep)
	} else {
		renderPDFTable(pdf, tr, rep)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// renderPDFRecord lays out the first record as label/value rows.
func renderPDFRecord(pdf *fpdf.Fpdf, tr func(string) string, rep Report) {
	if len(rep.Set.Records) == 0 {
		return
	}
	row := rep.Set.Records[0]

	pageW, _ := pdf.GetPageSize()
	labelW := 50.0
	valueW := pageW - 2*pdfMargin - labelW

	for i, col := range rep.Set.Columns {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, pdfRowHeight, tr(rep.Headers[i]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(valueW, pdfRowHeight, tr(FormatCell(row[col.Name])), "1", "L", false)
	}
}

// renderPDFTable draws one row per record, repeating the header on each page.
func renderPDFTable(pdf *fpdf.Fpdf, tr func(string) string, rep Report) {
	cols := rep.Set.Columns
	if len(cols) == 0 {
		return
	}

	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(len(cols))
	fontSize := 8.0
	if len(cols) > 10 {
		fontSize = 6
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", fontSize)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range rep.Headers {
			pdf.CellFormat(colW, pdfRowHeight, tr(fitText(pdf, h, colW)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", fontSize)
	}

	header()
	for _, row := range rep.Set.Records {
		if pdf.GetY()+pdfRowHeight > pageH-2*pdfMargin {
			pdf.AddPage()
			header()
		}
		for _, col := range cols {
			text := fitText(pdf, FormatCell(row[col.Name]), colW)
			pdf.CellFormat(colW, pdfRowHeight, tr(text), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fitText truncates s so it fits a cell of width w at the current font.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(s) <= w-padding {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > w-padding {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
