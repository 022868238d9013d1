// Package report renders calculator results as PDF documents.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
)

const (
	margin       = 15.0
	contentWidth = 210.0 - 2*margin
	labelShare   = 0.3
)

// PDFReport builds a single calculator report.
type PDFReport struct {
	pdf       *fpdf.Fpdf
	formatter *format.Formatter
	translate func(string) string
	title     string
	values    []string
	result    calculator.Result
	generated time.Time
}

// New prepares a report for result. Inputs are printed in field order and
// amounts are rendered by f; a nil f means the default locale.
func New(title string, fields []input.Field, values calculator.Values, result calculator.Result, f *format.Formatter) *PDFReport {
	if f == nil {
		f = format.Default()
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	r := &PDFReport{
		pdf:       pdf,
		formatter: f,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		title:     title,
		result:    result,
		generated: time.Now(),
	}
	for _, field := range fields {
		r.values = append(r.values, fmt.Sprintf("%s: %s", field.Label, f.Value(field.Kind, values.Get(field.Key))))
	}
	return r
}

// text converts s to the cp1252 encoding of the core PDF fonts. The rupee
// sign has no cp1252 glyph, so it is spelled out.
func (r *PDFReport) text(s string) string {
	return r.translate(strings.ReplaceAll(s, "₹", "Rs. "))
}

// Render writes the PDF to w.
func (r *PDFReport) Render(w io.Writer) error {
	r.pdf.SetMargins(margin, margin, margin)
	r.pdf.SetAutoPageBreak(true, margin)
	r.pdf.AddPage()

	r.header()
	r.inputs()
	r.cards()
	for _, table := range r.result.Tables {
		r.table(table)
	}
	r.notes()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *PDFReport) header() {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.CellFormat(contentWidth, 12, r.text(r.title), "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", r.generated.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *PDFReport) inputs() {
	if len(r.values) == 0 {
		return
	}
	r.section("Inputs")
	r.pdf.SetFont("Arial", "", 10)
	for _, line := range r.values {
		r.pdf.CellFormat(contentWidth, 6, r.text(line), "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)
}

func (r *PDFReport) cards() {
	r.section("Summary")
	r.pdf.SetFillColor(245, 247, 250)
	for _, card := range r.result.Cards {
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.CellFormat(contentWidth*0.6, 7, r.text(card.Title), "1", 0, "L", true, 0, "")
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.CellFormat(contentWidth*0.4, 7, r.text(card.FormattedIn(r.formatter)), "1", 1, "R", false, 0, "")
	}
	r.pdf.Ln(6)
}

func (r *PDFReport) table(table calculator.Table) {
	r.section(table.Title)
	if len(table.Rows) == 0 {
		return
	}

	labelWidth := contentWidth * labelShare
	colWidth := contentWidth - labelWidth
	if len(table.Columns) > 0 {
		colWidth /= float64(len(table.Columns))
	}

	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(230, 233, 240)
	r.pdf.CellFormat(labelWidth, 7, r.text(table.LabelHeader), "1", 0, "L", true, 0, "")
	for _, col := range table.Columns {
		r.pdf.CellFormat(colWidth, 7, r.text(col.Title), "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		r.pdf.CellFormat(labelWidth, 6, r.text(row.Label), "1", 0, "L", false, 0, "")
		for i, v := range row.Values {
			kind := input.KindNumber
			if i < len(table.Columns) {
				kind = table.Columns[i].Kind
			}
			r.pdf.CellFormat(colWidth, 6, r.text(r.formatter.Value(kind, v)), "1", 0, "R", false, 0, "")
		}
		r.pdf.Ln(-1)
	}
	r.pdf.Ln(6)
}

func (r *PDFReport) notes() {
	if len(r.result.Notes) == 0 {
		return
	}
	r.section("Notes")
	r.pdf.SetFont("Arial", "", 10)
	for _, note := range r.result.Notes {
		r.pdf.MultiCell(contentWidth, 5, r.text(note), "", "L", false)
	}
}

func (r *PDFReport) section(title string) {
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.CellFormat(contentWidth, 8, r.text(title), "B", 1, "L", false, 0, "")
	r.pdf.Ln(2)
}

// Generate renders a report for a computed page to w in the page's locale.
func Generate(w io.Writer, page *calculator.Page) error {
	calc := page.Calculator()
	return New(calc.Title(), page.Fields(), page.Values(), page.Result(), page.Formatter()).Render(w)
}
