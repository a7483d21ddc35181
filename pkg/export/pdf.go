// Package export renders printable student documents.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ReportCardRow is one subject line on a printed result card.
type ReportCardRow struct {
	Subject  string
	Obtained string
	Total    string
	Weighted string
}

// ReportCard carries everything the PDF renderer needs for one student.
type ReportCard struct {
	SchoolName  string
	SessionYear string
	Title       string
	BioLines    [][2]string
	Rows        []ReportCardRow
	SummaryRows [][2]string
	Remarks     string
}

// PDFExporter renders report cards with gofpdf.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderReportCard produces a single-page A4 result card.
func (e *PDFExporter) RenderReportCard(card ReportCard) ([]byte, error) {
	if len(card.Rows) == 0 {
		return nil, fmt.Errorf("report card requires at least one subject row")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, strings.ToUpper(card.SchoolName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	if card.SessionYear != "" {
		pdf.CellFormat(0, 6, "Session "+card.SessionYear, "", 1, "C", false, 0, "")
	}
	if card.Title != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, card.Title, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	for _, line := range card.BioLines {
		pdf.CellFormat(40, 6, line[0], "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, line[1], "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 8, "Subject", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Obtained", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Weighted", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range card.Rows {
		pdf.CellFormat(70, 7, row.Subject, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, row.Obtained, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, row.Total, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, row.Weighted, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	for _, line := range card.SummaryRows {
		pdf.CellFormat(70, 6, line[0], "", 0, "", false, 0, "")
		pdf.CellFormat(0, 6, line[1], "", 1, "", false, 0, "")
	}

	if card.Remarks != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, "Remarks: "+card.Remarks, "", "L", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render report card: %w", err)
	}
	return buf.Bytes(), nil
}
